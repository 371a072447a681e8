package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func requireErrorCode(t *testing.T, err error, code errorx.Code) {
	t.Helper()

	var errx errorx.Error
	require.True(t, errors.As(err, &errx), "expected errorx.Error, got %v", err)
	require.Equal(t, code, errx.Code)
}

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }

var errStoreFault = errors.New("store fault")

// faultyCounters fails every counter update and records the attempts.
type faultyCounters struct {
	attempts int
}

func (c *faultyCounters) IncreaseReactionCount(context.Context, int64, entity.ReactionKind, int64) error {
	c.attempts++
	return errStoreFault
}
