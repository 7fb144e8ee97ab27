package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, closeFn, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Named("fade").Info("fade settled", zap.String("surface", "track/B"), zap.Duration("took", 800*time.Millisecond))
	logger.Debug("filtered out")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug entries must be filtered at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "fade settled", entry["msg"])
	assert.Equal(t, "fade", entry["logger"])
	assert.Equal(t, "track/B", entry["surface"])
	assert.Equal(t, "800ms", entry["took"])
}

func TestNew_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	for _, msg := range []string{"first", "second"} {
		logger, closeFn, err := New(Options{Level: "debug", File: path})
		require.NoError(t, err)
		logger.Info(msg)
		require.NoError(t, closeFn())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}
