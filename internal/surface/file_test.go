package surface

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_LoadLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	f := NewFile(nil)
	require.NoError(t, f.Load(context.Background(), path))

	assert.Equal(t, ReadyFull, f.ReadyState())
	assert.Equal(t, path, f.URL())
	require.NoError(t, f.Play())
	assert.True(t, f.IsPlaying())
}

func TestFile_LoadMissing(t *testing.T) {
	f := NewFile(nil)

	err := f.Load(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))

	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, ReadyUnloaded, f.ReadyState())
	require.ErrorIs(t, f.Play(), ErrNoSource)
}

func TestFile_LoadDirectory(t *testing.T) {
	f := NewFile(nil)
	require.Error(t, f.Load(context.Background(), t.TempDir()))
}

func TestFile_LoadEmptyURL(t *testing.T) {
	f := NewFile(nil)
	require.ErrorIs(t, f.Load(context.Background(), ""), ErrEmptyURL)
}

func TestFile_LoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/missing.mp4" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewFile(srv.Client())
	require.NoError(t, f.Load(context.Background(), srv.URL+"/clip.mp4"))
	assert.Equal(t, ReadyFull, f.ReadyState())

	err := f.Load(context.Background(), srv.URL+"/missing.mp4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, ReadyUnloaded, f.ReadyState())
}

func TestFile_LoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	f := NewFile(nil)
	require.ErrorIs(t, f.Load(ctx, path), context.Canceled)
}

func TestFile_Reset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	f := NewFile(nil)
	require.NoError(t, f.Load(context.Background(), path))
	require.NoError(t, f.Play())
	f.SetOpacity(0.7)
	f.SetScale(1.05)

	f.Reset()

	assert.Empty(t, f.URL())
	assert.Equal(t, ReadyUnloaded, f.ReadyState())
	assert.False(t, f.IsPlaying())
	assert.Zero(t, f.Opacity())
	assert.InDelta(t, 1.0, f.Scale(), 1e-9)
}
