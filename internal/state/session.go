package state

import (
	"database/sql"
	"time"

	"github.com/llehouerou/reelbg/internal/db"
)

// Session is the playback state restored on the next start.
type Session struct {
	Volume     float64
	Muted      bool
	TrackPath  string
	TrackIndex int // -1 when no track was playing
}

// GetSession returns the saved session. Without one, it returns full
// volume and no track.
func (m *Manager) GetSession() (*Session, error) {
	var (
		s     Session
		path  sql.NullString
		index sql.NullInt64
	)
	row := m.db.QueryRow(`
		SELECT volume, muted, last_track, last_track_index
		FROM widget_state WHERE id = 1
	`)
	err := row.Scan(&s.Volume, &s.Muted, &path, &index)
	if err == sql.ErrNoRows {
		return &Session{Volume: 1.0, TrackIndex: -1}, nil
	}
	if err != nil {
		return nil, err
	}
	s.TrackPath = db.NullStringValue(path)
	s.TrackIndex = int(db.NullInt64Value(index, -1))
	return &s, nil
}

// SaveSession stores the volume and current track, and records the track
// in the play history when it changed.
func (m *Manager) SaveSession(s Session) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		var prev sql.NullString
		err := tx.QueryRow(`SELECT last_track FROM widget_state WHERE id = 1`).Scan(&prev)
		if err != nil && err != sql.ErrNoRows {
			return err
		}

		var path any
		if s.TrackPath != "" {
			path = s.TrackPath
		}
		_, err = tx.Exec(`
			INSERT INTO widget_state (id, volume, muted, last_track, last_track_index)
			VALUES (1, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				volume = excluded.volume,
				muted = excluded.muted,
				last_track = excluded.last_track,
				last_track_index = excluded.last_track_index
		`, s.Volume, s.Muted, path, s.TrackIndex)
		if err != nil {
			return err
		}

		if s.TrackPath == "" || s.TrackPath == db.NullStringValue(prev) {
			return nil
		}
		_, err = tx.Exec(`INSERT INTO play_history (path, played_at) VALUES (?, ?)`,
			s.TrackPath, time.Now().UnixNano())
		return err
	})
}

// RecentTracks returns up to limit track paths, most recent first.
func (m *Manager) RecentTracks(limit int) ([]string, error) {
	rows, err := m.db.Query(`
		SELECT path FROM play_history
		ORDER BY played_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
