package surface

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
)

// File is a Media for hosts without a video renderer. It verifies that the
// source exists and tracks playback, opacity and scale in memory so a host
// can draw the layer itself. Remote sources are probed with a HEAD request.
type File struct {
	mu     sync.Mutex
	client *http.Client

	url     string
	state   ReadyState
	playing bool
	opacity float64
	scale   float64
}

// NewFile creates a File. A nil client uses http.DefaultClient.
func NewFile(client *http.Client) *File {
	if client == nil {
		client = http.DefaultClient
	}
	return &File{client: client, scale: 1}
}

// FileFactory returns a media constructor for the engine.
func FileFactory(client *http.Client) func(ID) Media {
	return func(ID) Media { return NewFile(client) }
}

func (f *File) Load(ctx context.Context, url string) error {
	if url == "" {
		return ErrEmptyURL
	}
	f.mu.Lock()
	f.url = url
	f.state = ReadyLoading
	f.playing = false
	f.mu.Unlock()

	err := f.probe(ctx, url)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.url != url {
		// Reset or another Load replaced the source meanwhile.
		return ErrLoadCanceled
	}
	if err != nil {
		f.state = ReadyUnloaded
		return err
	}
	f.state = ReadyFull
	return nil
}

func (f *File) probe(ctx context.Context, url string) error {
	if !isRemote(url) {
		info, err := os.Stat(strings.TrimPrefix(url, "file://"))
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("%s: is a directory", url)
		}
		return ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return ctxErr
		}
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s: %s", url, resp.Status)
	}
	return nil
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

func (f *File) ReadyState() ReadyState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *File) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.state.Usable() {
		return ErrNoSource
	}
	f.playing = true
	return nil
}

func (f *File) Pause() {
	f.mu.Lock()
	f.playing = false
	f.mu.Unlock()
}

func (f *File) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.url = ""
	f.state = ReadyUnloaded
	f.playing = false
	f.opacity = 0
	f.scale = 1
}

func (f *File) SetOpacity(weight float64) {
	f.mu.Lock()
	f.opacity = weight
	f.mu.Unlock()
}

func (f *File) SetScale(scale float64) {
	f.mu.Lock()
	f.scale = scale
	f.mu.Unlock()
}

// URL returns the current source.
func (f *File) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url
}

// IsPlaying reports whether Play was called since the last Pause or Reset.
func (f *File) IsPlaying() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playing
}

// Opacity returns the last weight applied.
func (f *File) Opacity() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opacity
}

// Scale returns the last scale applied.
func (f *File) Scale() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scale
}
