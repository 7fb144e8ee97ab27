package player

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelToVolume(t *testing.T) {
	assert.Equal(t, 0.0, levelToVolume(1))
	assert.Equal(t, 0.0, levelToVolume(1.5))
	assert.Equal(t, -1.0, levelToVolume(0.5))
	assert.Equal(t, -2.0, levelToVolume(0.25))
	assert.Equal(t, -10.0, levelToVolume(0))
}

func TestPlayer_VolumeWithoutTrack(t *testing.T) {
	p := New(nil)
	assert.Equal(t, 1.0, p.Volume())

	p.SetVolume(0.4)
	assert.Equal(t, 0.4, p.Volume())

	p.SetVolume(2)
	assert.Equal(t, 1.0, p.Volume())

	p.SetMuted(true)
	assert.True(t, p.Muted())
	assert.False(t, p.IsPlaying())
}

func TestPlayer_UnsupportedFormat(t *testing.T) {
	p := New(nil)
	err := p.Play("/music/track.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
	assert.Equal(t, Stopped, p.State())
}

func TestSkipID3v2(t *testing.T) {
	t.Run("no tag rewinds", func(t *testing.T) {
		r := bytes.NewReader([]byte("fLaC0000000000"))
		require.NoError(t, skipID3v2(r))
		pos, _ := r.Seek(0, io.SeekCurrent)
		assert.Zero(t, pos)
	})

	t.Run("tag is skipped", func(t *testing.T) {
		header := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 5}
		data := append(header, []byte("xxxxxfLaC")...)
		r := bytes.NewReader(data)
		require.NoError(t, skipID3v2(r))
		pos, _ := r.Seek(0, io.SeekCurrent)
		assert.Equal(t, int64(15), pos)
	})
}
