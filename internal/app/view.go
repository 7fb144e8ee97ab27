// internal/app/view.go
package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reelbg/internal/keymap"
	"github.com/llehouerou/reelbg/internal/player"
	"github.com/llehouerou/reelbg/internal/ui/styles"
	"github.com/llehouerou/reelbg/internal/ui/surfaceview"
)

const recentCount = 3

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 {
		return ""
	}
	s := styles.T().S()

	parts := []string{
		m.trackLine(),
		surfaceview.Render(m.Engine.Snapshot(), m.Width, m.Now),
	}
	if m.ErrorMsg != "" {
		parts = append(parts, s.Error.Render(m.ErrorMsg))
	}
	if m.ShowHelp {
		parts = append(parts, m.Help.FullHelpView(m.fullHelp()))
		if recent := m.recentLine(); recent != "" {
			parts = append(parts, recent)
		}
	} else {
		parts = append(parts, m.Help.ShortHelpView([]key.Binding{
			m.Keys.KeyBinding(keymap.ActionHelp),
			m.Keys.KeyBinding(keymap.ActionQuit),
		}))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) trackLine() string {
	s := styles.T().S()
	if m.Host.IsEmpty() {
		return s.Muted.Render("no tracks configured")
	}

	status := "■"
	switch m.Host.State() {
	case player.Playing:
		status = "▶"
	case player.Paused:
		status = "⏸"
	}

	t := m.Host.CurrentTrack()
	name := t.Title
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(t.Path), filepath.Ext(t.Path))
	}
	if t.Artist != "" {
		name = t.Artist + " - " + name
	}

	pos := fmt.Sprintf("[%d/%d]", m.Host.CurrentIndex()+1, len(m.Host.Tracks()))
	vol := fmt.Sprintf("vol %d%%", int(m.Host.Volume()*100+0.5))
	if m.Host.Muted() {
		vol = "muted"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.Playing.Render(status+" "), s.Title.Render(name), " ",
		s.Muted.Render(pos), " ", s.Subtle.Render(vol))
}

// fullHelp groups the bindings into playback and background columns.
func (m Model) fullHelp() [][]key.Binding {
	columns := [][]keymap.Binding{
		append(keymap.ByContext("global"), keymap.ByContext("playback")...),
		keymap.ByContext("background"),
	}
	out := make([][]key.Binding, len(columns))
	for i, col := range columns {
		for _, b := range col {
			out[i] = append(out[i], m.Keys.KeyBinding(b.Action))
		}
	}
	return out
}

// recentLine lists the last tracks played, newest first.
func (m Model) recentLine() string {
	recent, err := m.StateMgr.RecentTracks(recentCount)
	if err != nil || len(recent) == 0 {
		return ""
	}
	names := make([]string, len(recent))
	for i, p := range recent {
		names[i] = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	return styles.T().S().Subtle.Render("recent: " + strings.Join(names, ", "))
}
