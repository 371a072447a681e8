package middleware

import (
	"context"
	"net/http"

	"github.com/moemoe-lab/forum/pkg/router"
	"github.com/moemoe-lab/forum/pkg/xcontext"
)

type CookieResponse interface {
	CookieInfo(context.Context) []http.Cookie
}

func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		resp, ok := xcontext.Response(ctx).(CookieResponse)
		if !ok {
			return ctx, nil
		}

		for _, cookie := range resp.CookieInfo(ctx) {
			cookie := cookie
			http.SetCookie(xcontext.HTTPWriter(ctx), &cookie)
		}

		return ctx, nil
	}
}
