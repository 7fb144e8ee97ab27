// internal/fade/state.go
package fade

// Direction of a blend weight transition.
type Direction int

const (
	In  Direction = iota // toward weight 1
	Out                  // toward weight 0
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return "unknown"
	}
}

// target returns the weight a direction settles at.
func (d Direction) target() float64 {
	if d == In {
		return 1
	}
	return 0
}

// State is the fade state of one surface.
//
//	            fade in                 done
//	┌────────┐ ─────────▶ ┌──────────┐ ──────▶ ┌─────────┐
//	│ Hidden │            │ FadingIn │         │ Visible │
//	└────────┘ ◀───────── └──────────┘         └─────────┘
//	     ▲        done      ▲     │ fade out        │
//	     │                  │     ▼                 │ fade out
//	     │                ┌───────────┐             │
//	     └─────────────── │ FadingOut │ ◀───────────┘
//	          done        └───────────┘
//
// Interruptions (FadingIn ⇄ FadingOut) restart from the current weight.
// Requests toward the state a surface is already heading to are no-ops
// that join the live operation.
type State int

const (
	Hidden State = iota
	FadingIn
	Visible
	FadingOut
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Hidden:
		return "Hidden"
	case FadingIn:
		return "FadingIn"
	case Visible:
		return "Visible"
	case FadingOut:
		return "FadingOut"
	default:
		return "Unknown"
	}
}

// IsFading reports whether a live operation owns the surface.
func (s State) IsFading() bool {
	return s == FadingIn || s == FadingOut
}

// action is what a request does given the surface state.
type action int

const (
	actStart     action = iota // begin a new operation from rest
	actInterrupt               // evict the live operation and reverse
	actJoin                    // same direction already running: no-op
	actSettle                  // already at the target: settle immediately
)

var transitions = map[State]map[Direction]action{
	Hidden:    {In: actStart, Out: actSettle},
	FadingIn:  {In: actJoin, Out: actInterrupt},
	Visible:   {In: actSettle, Out: actStart},
	FadingOut: {In: actInterrupt, Out: actJoin},
}

// Result is how an operation ended.
type Result int

const (
	ResultPending Result = iota
	// ResultCompleted means the weight reached its target.
	ResultCompleted
	// ResultSuperseded means a newer request took over the surface. It is
	// an expected outcome, not a failure: the caller must skip its own
	// completion side effects.
	ResultSuperseded
	// ResultFailed means the media refused to play; the surface was left
	// hidden.
	ResultFailed
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultPending:
		return "pending"
	case ResultCompleted:
		return "completed"
	case ResultSuperseded:
		return "superseded"
	case ResultFailed:
		return "failed"
	default:
		return "unknown"
	}
}
