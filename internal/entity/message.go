package entity

type MessageType string

const (
	MessageTypeUser    MessageType = "user"
	MessageTypeLike    MessageType = "like"
	MessageTypeDislike MessageType = "dislike"
)

type MessageStatus string

const (
	MessageUnread MessageStatus = "unread"
	MessageRead   MessageStatus = "read"
)

type Message struct {
	SnowFlakeBase

	SenderID   int64 `gorm:"index"`
	ReceiverID int64 `gorm:"index"`

	Type    MessageType
	Status  MessageStatus `gorm:"default:unread"`
	Content string

	// Set for reaction notifications.
	TopicID int64
	ReplyID int64
}
