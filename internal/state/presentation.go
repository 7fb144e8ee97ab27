package state

import "database/sql"

// Presentation is the saved widget layout.
type Presentation struct {
	Expandable bool
	Expanded   bool
}

// GetPresentation returns the saved layout, or nil when nothing was saved.
func (m *Manager) GetPresentation() (*Presentation, error) {
	return getPresentation(m.db)
}

func getPresentation(db *sql.DB) (*Presentation, error) {
	var p Presentation
	row := db.QueryRow(`SELECT expandable, expanded FROM widget_state WHERE id = 1`)
	err := row.Scan(&p.Expandable, &p.Expanded)
	if err == sql.ErrNoRows {
		return nil, nil //nolint:nilnil // no saved state is not an error
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func savePresentation(db *sql.DB, p Presentation) error {
	_, err := db.Exec(`
		INSERT INTO widget_state (id, expandable, expanded)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			expandable = excluded.expandable,
			expanded = excluded.expanded
	`, p.Expandable, p.Expanded)
	return err
}
