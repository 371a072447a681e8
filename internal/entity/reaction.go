package entity

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

func (k ReactionKind) IsValid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// SetColumn is the reactor set column of a reactable entity.
func (k ReactionKind) SetColumn() string {
	switch k {
	case ReactionLike:
		return "likes"
	case ReactionDislike:
		return "dislikes"
	}

	return ""
}

// CounterColumn is the aggregate counter column of the users table.
func (k ReactionKind) CounterColumn() string {
	switch k {
	case ReactionLike:
		return "like_count"
	case ReactionDislike:
		return "dislike_count"
	}

	return ""
}

// Reactions is embedded by every reactable entity. Version is bumped on each
// reactor set write and guards it against concurrent writers.
type Reactions struct {
	Likes    Array[int64] `gorm:"type:json"`
	Dislikes Array[int64] `gorm:"type:json"`
	Version  int64        `gorm:"not null;default:0"`
}

func (r Reactions) Reactors(kind ReactionKind) Array[int64] {
	if kind == ReactionLike {
		return r.Likes
	}

	return r.Dislikes
}

type ReactableType string

const (
	ReactableTopic ReactableType = "topic"
	ReactableReply ReactableType = "reply"
)
