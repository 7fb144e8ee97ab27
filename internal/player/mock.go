// internal/player/mock.go
package player

import (
	"slices"
	"sync"
)

// Mock is a test double for Player. It emits the same events as Player,
// synchronously.
type Mock struct {
	mu        sync.Mutex
	state     State
	volume    float64
	muted     bool
	playErr   error
	playCalls []string
	listeners []func(Event)
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{state: Stopped, volume: 1}
}

func (m *Mock) Play(path string) error {
	m.Stop()
	m.mu.Lock()
	m.playCalls = append(m.playCalls, path)
	if m.playErr != nil {
		m.mu.Unlock()
		return m.playErr
	}
	m.state = Playing
	m.mu.Unlock()

	m.Emit(EventReady)
	m.Emit(EventPlay)
	return nil
}

func (m *Mock) Stop() {
	m.mu.Lock()
	ev, changed := m.state.transitionEvent(Stopped)
	m.state = Stopped
	m.mu.Unlock()
	if changed {
		m.Emit(ev)
	}
}

func (m *Mock) Pause() {
	if ev, ok := m.transition(Playing, Paused); ok {
		m.Emit(ev)
	}
}

func (m *Mock) Resume() {
	if ev, ok := m.transition(Paused, Playing); ok {
		m.Emit(ev)
	}
}

func (m *Mock) Toggle() {
	switch m.State() {
	case Playing:
		m.Pause()
	case Paused:
		m.Resume()
	case Stopped:
		// Nothing to toggle when stopped
	}
}

func (m *Mock) transition(from, to State) (Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != from {
		return 0, false
	}
	m.state = to
	return from.transitionEvent(to)
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) IsPlaying() bool { return m.State() == Playing }

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = min(max(level, 0), 1)
}

func (m *Mock) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

func (m *Mock) OnEvent(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Test helpers

func (m *Mock) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCalls...)
}

// Emit delivers ev to the listeners without changing the state, for events
// arriving out of order.
func (m *Mock) Emit(ev Event) {
	m.mu.Lock()
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}

// SimulateFinished simulates a track finishing.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	was := m.state
	m.state = Stopped
	m.mu.Unlock()
	if was != Stopped {
		m.Emit(EventFinish)
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
