package model

type CreateReplyRequest struct {
	TopicID int64  `json:"tid"`
	Content string `json:"content"`
}

type CreateReplyResponse struct {
	ID    int64 `json:"rid"`
	Floor int64 `json:"floor"`
}

type GetListReplyRequest struct {
	TopicID int64 `json:"tid"`
	Offset  int   `json:"offset"`
	Limit   int   `json:"limit"`
}

type GetListReplyResponse struct {
	Replies []Reply `json:"replies"`
}

type ReactReplyRequest struct {
	TopicID int64  `json:"tid"`
	ReplyID int64  `json:"rid"`
	ToUID   *int64 `json:"to_uid"`
	IsPush  *bool  `json:"is_push"`
}
