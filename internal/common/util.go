package common

import (
	"context"

	"github.com/moemoe-lab/forum/pkg/xcontext"
)

// Paginate bounds offset and limit by the api server configuration.
func Paginate(ctx context.Context, offset, limit int) (int, int) {
	cfg := xcontext.Configs(ctx).ApiServer
	if offset < 0 {
		offset = 0
	}

	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	return offset, limit
}
