package entity

type Reply struct {
	SnowFlakeBase
	Reactions

	TopicID int64 `gorm:"index"`
	Topic   Topic `gorm:"foreignKey:TopicID"`

	AuthorID int64 `gorm:"index"`
	Author   User  `gorm:"foreignKey:AuthorID"`

	Floor   int64
	Content string
}
