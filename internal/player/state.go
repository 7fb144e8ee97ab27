// internal/player/state.go
package player

// State is the audio playback state.
//
//	Stopped ──Play──▶ Playing ──Pause──▶ Paused
//	   ▲                 │  ◀──Resume──    │
//	   └──────Stop───────┴───────Stop──────┘
//
// Anything else (pausing while stopped, resuming while playing) is a no-op.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// transitionEvent returns the event listeners see when moving from s to
// next: entering Playing is a play, leaving it is a pause. Moves that keep
// the audio silent emit nothing. A track ending naturally is reported as
// EventFinish by the player instead.
func (s State) transitionEvent(next State) (Event, bool) {
	switch {
	case s == next:
		return 0, false
	case next == Playing:
		return EventPlay, true
	case s == Playing:
		return EventPause, true
	default:
		return 0, false
	}
}
