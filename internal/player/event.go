package player

// Event is an audio engine notification.
type Event int

const (
	// EventReady fires once a track is decoded and about to start.
	EventReady Event = iota
	// EventPlay fires when audio starts or resumes.
	EventPlay
	// EventPause fires when audio pauses or stops.
	EventPause
	// EventFinish fires when a track plays to its end.
	EventFinish
)

// String returns the event name for debugging.
func (e Event) String() string {
	switch e {
	case EventReady:
		return "ready"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventFinish:
		return "finish"
	default:
		return "unknown"
	}
}
