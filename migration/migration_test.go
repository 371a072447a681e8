package migration

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	require.Equal(t, uint(1), version)

	up, _, err := src.ReadUp(version)
	require.NoError(t, err)
	defer up.Close()

	b, err := io.ReadAll(up)
	require.NoError(t, err)
	for _, table := range []string{"users", "topics", "replies", "messages"} {
		require.True(t, strings.Contains(string(b), "CREATE TABLE IF NOT EXISTS `"+table+"`"), table)
	}

	down, _, err := src.ReadDown(version)
	require.NoError(t, err)
	require.NoError(t, down.Close())
}
