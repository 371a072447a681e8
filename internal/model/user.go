package model

type GetUserRequest struct {
	UserID int64 `json:"uid"`
}

type GetUserResponse User
