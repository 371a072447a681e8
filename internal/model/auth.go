package model

import (
	"context"
	"net/http"
	"time"

	"github.com/moemoe-lab/forum/pkg/xcontext"
)

type AccessToken struct {
	UID  int64  `json:"uid"`
	Name string `json:"name"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID int64 `json:"uid"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ID          int64  `json:"uid"`
	AccessToken string `json:"access_token"`
}

func (r LoginResponse) CookieInfo(ctx context.Context) []http.Cookie {
	cfg := xcontext.Configs(ctx).Auth.AccessToken
	return []http.Cookie{{
		Name:     cfg.Name,
		Value:    r.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(cfg.Expiration),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}}
}
