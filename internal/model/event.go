package model

const ReactionTopic = "REACTION"

// ReactionEvent is published after a reaction changed the store.
type ReactionEvent struct {
	Target    string `json:"target"`
	Kind      string `json:"kind"`
	Push      bool   `json:"push"`
	ActorUID  int64  `json:"actor_uid"`
	TargetUID int64  `json:"target_uid"`
	TopicID   int64  `json:"tid"`
	ReplyID   int64  `json:"rid,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
