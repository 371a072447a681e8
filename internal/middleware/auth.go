package middleware

import (
	"context"
	"errors"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/jwt"
	"github.com/moemoe-lab/forum/pkg/router"
	"github.com/moemoe-lab/forum/pkg/xcontext"
)

type AuthVerifier struct {
	accessTokenEngine *jwt.Engine[model.AccessToken]
}

func NewAuthVerifier(ctx context.Context) *AuthVerifier {
	cfg := xcontext.Configs(ctx).Auth
	return &AuthVerifier{
		accessTokenEngine: jwt.NewEngine[model.AccessToken](cfg.TokenSecret, cfg.AccessToken.Expiration),
	}
}

// Middleware puts the user id of a valid access token into the context. The
// token is read from the Authorization header first, then from the cookie.
func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := accessToken(ctx)
		if token == "" {
			return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		info, err := a.accessTokenEngine.Verify(token)
		if err != nil {
			if errors.Is(err, gojwt.ErrTokenExpired) {
				return ctx, errorx.New(errorx.TokenExpired, "Your access token is expired")
			}

			return ctx, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		if info.UID == 0 {
			return ctx, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, info.UID), nil
	}
}

func accessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	if authorization := req.Header.Get("Authorization"); authorization != "" {
		auth, token, found := strings.Cut(authorization, " ")
		if found && auth == "Bearer" {
			return token
		}

		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
