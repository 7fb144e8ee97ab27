package idle

// State is the idle state of a widget.
//
//	         timeout (playing)
//	Active ───────────────────► PlaybackIdle
//	  ▲  │                            │
//	  │  │ timeout (collapsed)        │ activity / pause
//	  │  ▼                            │
//	  │ CollapsedIdle                 │
//	  │  │ activity / pause / expand  │
//	  └──┴────────────────────────────┘
type State int

const (
	Active State = iota
	PlaybackIdle
	CollapsedIdle
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case PlaybackIdle:
		return "playback-idle"
	case CollapsedIdle:
		return "collapsed-idle"
	default:
		return "unknown"
	}
}

// IsIdle reports whether s is one of the idle states.
func (s State) IsIdle() bool {
	return s != Active
}

type event int

const (
	evTimeout event = iota
	evTimeoutCollapsed
	evActivity
	evPaused
)

func (e event) String() string {
	switch e {
	case evTimeout:
		return "timeout"
	case evTimeoutCollapsed:
		return "timeout-collapsed"
	case evActivity:
		return "activity"
	case evPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// transitions lists every legal transition. A missing entry is a no-op.
var transitions = map[State]map[event]State{
	Active: {
		evTimeout:          PlaybackIdle,
		evTimeoutCollapsed: CollapsedIdle,
	},
	PlaybackIdle: {
		evActivity: Active,
		evPaused:   Active,
	},
	CollapsedIdle: {
		evActivity: Active,
		evPaused:   Active,
	},
}
