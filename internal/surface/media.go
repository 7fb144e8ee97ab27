package surface

import (
	"context"
	"errors"
	"fmt"
)

// Media is the playable resource behind a surface, typically a video
// element. Implementations must be safe for concurrent use: Load runs off
// the engine loop.
type Media interface {
	// Load fetches url and returns once the media can play through, or
	// with ctx.Err() when ctx ends first.
	Load(ctx context.Context, url string) error
	// ReadyState reports how far the current source has loaded.
	ReadyState() ReadyState
	Play() error
	Pause()
	// Reset stops loading, clears the source and rewinds.
	Reset()
	SetOpacity(weight float64)
	SetScale(scale float64)
}

var (
	// ErrLoadTimeout means the media did not become ready in time.
	ErrLoadTimeout = errors.New("media load timed out")
	// ErrLoadCanceled means the surface was cleaned up or reloaded while
	// the load was in flight.
	ErrLoadCanceled = errors.New("media load canceled")
	// ErrPlaybackRejected means the media refused to start (autoplay
	// policy, decode failure).
	ErrPlaybackRejected = errors.New("media playback rejected")
	// ErrNoSource means play was requested on an unloaded surface.
	ErrNoSource = errors.New("surface has no source")
	// ErrEmptyURL is returned for loads without a URL.
	ErrEmptyURL = errors.New("empty media url")
)

// LoadError describes a failed or degraded load.
type LoadError struct {
	Surface ID
	URL     string
	// Usable is true when the media reached metadata readiness before
	// failing and can still be shown.
	Usable bool
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s on %s: %v", e.URL, e.Surface, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// PlaybackError describes a rejected play call.
type PlaybackError struct {
	Surface ID
	URL     string
	Err     error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("play %s on %s: %v", e.URL, e.Surface, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }

// LoadResult is delivered on the loop when a load settles.
type LoadResult struct {
	Surface ID
	URL     string
	// Usable reports whether the surface may be foregrounded.
	Usable bool
	// Err is nil on a full load. A usable result may still carry a
	// *LoadError wrapping ErrLoadTimeout.
	Err error
}
