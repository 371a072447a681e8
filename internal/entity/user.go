package entity

type User struct {
	SnowFlakeBase
	Name     string `gorm:"unique;size:64"`
	Password string
	Avatar   string
	Bio      string

	// Denormalized reaction counters, maintained only by the reaction ledger.
	LikeCount    int64 `gorm:"not null;default:0"`
	DislikeCount int64 `gorm:"not null;default:0"`
}
