package entity

type Topic struct {
	SnowFlakeBase
	Reactions

	AuthorID int64 `gorm:"index"`
	Author   User  `gorm:"foreignKey:AuthorID"`

	Title      string `gorm:"size:256"`
	Content    string
	ReplyCount int64 `gorm:"not null;default:0"`
}
