//go:build !windows

package stderr

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCapture_LogsLines(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	c, err := Start(zap.New(core))
	require.NoError(t, err)

	_, _ = os.Stderr.WriteString("ALSA lib pcm.c: underrun\n\n   \nsecond line\n")
	c.Stop()

	entries := logs.FilterMessage("stderr").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "ALSA lib pcm.c: underrun", entries[0].ContextMap()["line"])
	assert.Equal(t, "second line", entries[1].ContextMap()["line"])
}
