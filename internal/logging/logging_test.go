// internal/logging/logging_test.go
package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	for _, lvl := range []string{"", "debug", "info", "warn", "error"} {
		l, err := New(lvl, filepath.Join(t.TempDir(), "x.log"))
		require.NoError(t, err, "level %q", lvl)
		require.NotNil(t, l)
	}

	_, err := New("loud")
	require.Error(t, err)
}

func TestNew_WritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")

	l, err := New("warn", path)
	require.NoError(t, err)

	l.Infow("dropped")
	l.Warnw("kept", "frame", 3)
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "kept")
	require.NotContains(t, string(raw), "dropped")
}
