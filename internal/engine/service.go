package engine

import (
	"time"

	"github.com/llehouerou/reelbg/internal/fade"
	"github.com/llehouerou/reelbg/internal/idle"
	"github.com/llehouerou/reelbg/internal/player"
	"github.com/llehouerou/reelbg/internal/playlist"
	"github.com/llehouerou/reelbg/internal/rotation"
	"github.com/llehouerou/reelbg/internal/surface"
)

// Service is the background engine of one widget. Every method is safe for
// concurrent use and returns once the request has been applied.
type Service interface {
	// Audio
	HandleAudioEvent(ev player.Event)
	Attach(p player.Interface)

	// Content
	SwitchTrack(t *playlist.Track)
	SetReel(r playlist.Reel)

	// Activity hooks
	NotifyActivity()
	EnterIdleCandidate()
	ExitIdle()

	// Presentation flags
	SetExpandable(enabled bool)
	SetExpanded(expanded bool)

	// State queries
	Snapshot() Snapshot

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

// SurfaceState describes one surface at a point in time.
type SurfaceState struct {
	ID      surface.ID
	URL     string
	Weight  float64
	Scale   float64
	Playing bool
	Ready   surface.ReadyState
	Fade    fade.State
	Zooming bool
	Current bool // the layer cursor points at it
}

// Snapshot is a consistent view of the engine.
type Snapshot struct {
	Surfaces      [4]SurfaceState
	Selection     rotation.Selection
	StaticImage   string
	StaticVisible bool

	Playing   bool
	Switching bool

	Idle      idle.State
	IdleSince time.Time
	IdleArmed bool

	Expandable bool
	Expanded   bool

	LiveFades int
}

// Foreground returns the surfaces with a nonzero weight.
func (s Snapshot) Foreground() []SurfaceState {
	var out []SurfaceState
	for _, st := range s.Surfaces {
		if st.Weight > 0 {
			out = append(out, st)
		}
	}
	return out
}

// Settled reports whether nothing is animating.
func (s Snapshot) Settled() bool {
	if s.LiveFades > 0 {
		return false
	}
	for _, st := range s.Surfaces {
		if st.Zooming {
			return false
		}
	}
	return true
}
