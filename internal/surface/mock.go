// internal/surface/mock.go
package surface

import (
	"context"
	"sync"
	"time"
)

// Mock is a test double for Media.
type Mock struct {
	mu sync.Mutex

	url       string
	state     ReadyState
	playing   bool
	opacity   float64
	scale     float64
	loadDelay time.Duration
	stallAt   ReadyState
	stalled   bool
	loadErr   error
	playErr   error

	loads   []string
	plays   int
	pauses  int
	resets  int
	history []float64
}

// NewMock creates a media double that loads instantly.
func NewMock() *Mock {
	return &Mock{scale: 1}
}

func (m *Mock) Load(ctx context.Context, url string) error {
	m.mu.Lock()
	m.url = url
	m.state = ReadyLoading
	m.loads = append(m.loads, url)
	delay, stalled, stallAt, loadErr := m.loadDelay, m.stalled, m.stallAt, m.loadErr
	m.mu.Unlock()

	if stalled {
		m.mu.Lock()
		m.state = stallAt
		m.mu.Unlock()
		<-ctx.Done()
		return ctx.Err()
	}

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if loadErr != nil {
		m.mu.Lock()
		m.state = ReadyUnloaded
		m.mu.Unlock()
		return loadErr
	}

	m.mu.Lock()
	m.state = ReadyFull
	m.mu.Unlock()
	return nil
}

func (m *Mock) ReadyState() ReadyState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playErr != nil {
		return m.playErr
	}
	m.playing = true
	m.plays++
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
	m.pauses++
}

func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.url = ""
	m.state = ReadyUnloaded
	m.playing = false
	m.resets++
}

func (m *Mock) SetOpacity(w float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opacity = w
	m.history = append(m.history, w)
}

func (m *Mock) SetScale(s float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scale = s
}

// Test helpers

// SetLoadDelay makes loads take d before succeeding.
func (m *Mock) SetLoadDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadDelay = d
}

// SetStall makes loads hang at the given readiness until canceled.
func (m *Mock) SetStall(at ReadyState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stalled = true
	m.stallAt = at
}

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loads...)
}

func (m *Mock) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *Mock) Opacity() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opacity
}

// OpacityHistory returns every opacity applied, in order.
func (m *Mock) OpacityHistory() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.history...)
}

func (m *Mock) Scale() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scale
}

func (m *Mock) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

func (m *Mock) Plays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plays
}

// Verify Mock implements Media at compile time.
var _ Media = (*Mock)(nil)

// MockSet builds one Mock per surface, for use as a NewPool factory.
type MockSet map[ID]*Mock

// NewMockSet creates mocks for all four surfaces.
func NewMockSet() MockSet {
	set := MockSet{}
	for _, id := range All {
		set[id] = NewMock()
	}
	return set
}

// Factory returns a NewPool media factory backed by the set.
func (s MockSet) Factory() func(ID) Media {
	return func(id ID) Media { return s[id] }
}
