package model

type CounterDrift struct {
	UserID   int64  `json:"uid"`
	Kind     string `json:"kind"`
	Stored   int64  `json:"stored"`
	Expected int64  `json:"expected"`
	Fixed    bool   `json:"fixed"`
}

type ReconcileReport struct {
	CheckedUsers int            `json:"checked_users"`
	Drifts       []CounterDrift `json:"drifts"`
	Fixed        bool           `json:"fixed"`
}
