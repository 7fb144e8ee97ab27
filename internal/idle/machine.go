// Package idle tracks user inactivity during playback.
package idle

import (
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/reelbg/internal/loop"
)

const DefaultDelay = 5 * time.Second

// Machine debounces activity into idle transitions. All methods must be
// called on the loop.
type Machine struct {
	loop   *loop.Loop
	delay  time.Duration
	logger *zap.Logger

	state      State
	playing    bool
	expandable bool
	expanded   bool
	timer      *loop.Timer
	since      time.Time
	onChange   func(prev, next State)
}

// New creates a machine in the Active state. A non-positive delay uses
// DefaultDelay.
func New(l *loop.Loop, delay time.Duration, logger *zap.Logger) *Machine {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		loop:   l,
		delay:  delay,
		logger: logger,
		since:  time.Now(),
	}
}

// OnChange sets the listener called on every state change.
func (m *Machine) OnChange(fn func(prev, next State)) {
	m.onChange = fn
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Since returns when the current state was entered.
func (m *Machine) Since() time.Time { return m.since }

// Delay returns the inactivity delay.
func (m *Machine) Delay() time.Duration { return m.delay }

// Playing reports the last playing state given to SetPlaying.
func (m *Machine) Playing() bool { return m.playing }

// Armed reports whether the idle timer is running.
func (m *Machine) Armed() bool { return m.timer.Pending() }

// Activity records user activity: it leaves idle at once and restarts the
// countdown.
func (m *Machine) Activity() {
	m.fire(evActivity)
	m.arm()
}

// ExitIdle is an explicit request to leave idle.
func (m *Machine) ExitIdle() {
	m.Activity()
}

// EnterIdleCandidate starts the countdown without counting as activity,
// e.g. when the pointer leaves the widget.
func (m *Machine) EnterIdleCandidate() {
	if m.state.IsIdle() {
		return
	}
	m.arm()
}

// SetPlaying updates the playing state. Stopping playback clears the timer
// entirely and leaves idle.
func (m *Machine) SetPlaying(playing bool) {
	if playing == m.playing {
		return
	}
	m.playing = playing
	if !playing {
		m.timer.Stop()
		m.timer = nil
		m.fire(evPaused)
		return
	}
	m.arm()
}

// SetExpandable toggles the collapsed banner presentation. Changing it
// counts as activity.
func (m *Machine) SetExpandable(expandable bool) {
	m.expandable = expandable
	m.Activity()
}

// SetExpanded records whether the player is expanded. Expanding or
// collapsing counts as activity.
func (m *Machine) SetExpanded(expanded bool) {
	m.expanded = expanded
	m.Activity()
}

// Expandable reports whether the collapsed banner presentation is enabled.
func (m *Machine) Expandable() bool { return m.expandable }

// Expanded reports whether the player is expanded.
func (m *Machine) Expanded() bool { return m.expanded }

// Collapsed reports whether the widget is shown as a collapsed banner.
func (m *Machine) Collapsed() bool {
	return m.expandable && !m.expanded
}

func (m *Machine) arm() {
	m.timer.Stop()
	m.timer = nil
	if !m.playing {
		return
	}
	m.timer = m.loop.AfterFunc(m.delay, m.timeout)
}

func (m *Machine) timeout() {
	m.timer = nil
	if !m.playing {
		return
	}
	if m.Collapsed() {
		m.fire(evTimeoutCollapsed)
		return
	}
	m.fire(evTimeout)
}

func (m *Machine) fire(ev event) {
	next, ok := transitions[m.state][ev]
	if !ok {
		return
	}
	prev := m.state
	m.state = next
	m.since = time.Now()
	m.logger.Debug("idle state changed",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
		zap.Stringer("event", ev))
	if m.onChange != nil {
		m.onChange(prev, next)
	}
}
