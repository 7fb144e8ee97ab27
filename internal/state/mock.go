// internal/state/mock.go
package state

import (
	"database/sql"
	"slices"
)

// Mock is a test double for Manager.
type Mock struct {
	presentation *Presentation
	session      *Session
	history      []string
	closed       bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) SavePresentation(p Presentation) { m.presentation = &p }

func (m *Mock) GetPresentation() (*Presentation, error) {
	return m.presentation, nil
}

func (m *Mock) SaveSession(s Session) error {
	if s.TrackPath != "" && (m.session == nil || m.session.TrackPath != s.TrackPath) {
		m.history = append(m.history, s.TrackPath)
	}
	m.session = &s
	return nil
}

func (m *Mock) GetSession() (*Session, error) {
	if m.session == nil {
		return &Session{Volume: 1.0, TrackIndex: -1}, nil
	}
	return m.session, nil
}

func (m *Mock) RecentTracks(limit int) ([]string, error) {
	out := slices.Clone(m.history)
	slices.Reverse(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
