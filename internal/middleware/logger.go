package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/router"
	"github.com/moemoe-lab/forum/pkg/xcontext"
)

// WithRequestID tags the request, the id is echoed in the X-Request-Id header.
func WithRequestID() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		id := uuid.NewString()
		if w := xcontext.HTTPWriter(ctx); w != nil {
			w.Header().Set("X-Request-Id", id)
		}

		return xcontext.WithRequestID(ctx, id), nil
	}
}

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		info := fmt.Sprintf("%s | %s | %s | %s", xcontext.RequestID(ctx), req.Method,
			req.URL.Path, time.Since(xcontext.StartTime(ctx)))

		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d | %v", info, -1, err)
			}
		} else {
			xcontext.Logger(ctx).Infof("%s", info)
		}
	}
}
