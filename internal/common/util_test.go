package common

import (
	"context"
	"testing"

	"github.com/moemoe-lab/forum/config"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	cfg := config.Default()
	cfg.ApiServer.DefaultLimit = 10
	cfg.ApiServer.MaxLimit = 50
	ctx := xcontext.WithConfigs(context.Background(), cfg)

	testCases := []struct {
		name          string
		offset, limit int
		wantOffset    int
		wantLimit     int
	}{
		{name: "default limit", offset: 0, limit: 0, wantOffset: 0, wantLimit: 10},
		{name: "keep limit", offset: 20, limit: 30, wantOffset: 20, wantLimit: 30},
		{name: "max limit", offset: 0, limit: 100, wantOffset: 0, wantLimit: 50},
		{name: "negative offset", offset: -1, limit: 5, wantOffset: 0, wantLimit: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := Paginate(ctx, tc.offset, tc.limit)
			require.Equal(t, tc.wantOffset, offset)
			require.Equal(t, tc.wantLimit, limit)
		})
	}
}
