package model

type CreateTopicRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreateTopicResponse struct {
	ID int64 `json:"tid"`
}

type GetTopicRequest struct {
	TopicID int64 `json:"tid"`
}

type GetTopicResponse Topic

type GetListTopicRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetListTopicResponse struct {
	Topics []Topic `json:"topics"`
}

// ToUID and IsPush are pointers so that a missing parameter can be told apart
// from its zero value.
type ReactTopicRequest struct {
	TopicID int64  `json:"tid"`
	ToUID   *int64 `json:"to_uid"`
	IsPush  *bool  `json:"is_push"`
}

type ReactResponse struct {
	Effect string `json:"effect"`
}
