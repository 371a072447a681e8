package model

type SendMessageRequest struct {
	ToUID   int64  `json:"to_uid"`
	Content string `json:"content"`
}

type SendMessageResponse struct {
	ID int64 `json:"mid"`
}

type GetListMessageRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetListMessageResponse struct {
	Messages []Message `json:"messages"`
	Unread   int64     `json:"unread"`
}

type ReadMessageRequest struct {
	MessageID int64 `json:"mid"`
}

type ReadMessageResponse struct{}
