// Package surfaceview draws the engine state: one panel per surface with
// its weight and zoom, plus the idle and selection status.
package surfaceview

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/reelbg/internal/engine"
	"github.com/llehouerou/reelbg/internal/surface"
	"github.com/llehouerou/reelbg/internal/ui/styles"
)

const minPanelWidth = 24

// Render draws snap in width columns. now anchors the relative idle time.
func Render(snap engine.Snapshot, width int, now time.Time) string {
	panelWidth := max(width/2-2, minPanelWidth)

	var rows []string
	for _, k := range []surface.Kind{surface.KindMain, surface.KindTrack} {
		var panels []string
		for _, id := range surface.Layers(k) {
			panels = append(panels, renderSurface(surfaceState(snap, id), panelWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusLine(snap, now),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		selectionLine(snap),
	)
}

func surfaceState(snap engine.Snapshot, id surface.ID) engine.SurfaceState {
	for _, st := range snap.Surfaces {
		if st.ID == id {
			return st
		}
	}
	return engine.SurfaceState{ID: id}
}

func accent(k surface.Kind) lipgloss.Color {
	if k == surface.KindMain {
		return styles.T().Main
	}
	return styles.T().Track
}

func renderSurface(st engine.SurfaceState, width int) string {
	s := styles.T().S()
	inner := width - 2

	title := st.ID.String()
	if st.Current {
		title += " ●"
	}
	name := "—"
	if st.URL != "" {
		name = fitWidth(filepath.Base(st.URL), inner)
	}

	flags := []string{st.Fade.String()}
	if st.Playing {
		flags = append(flags, "playing")
	}
	if st.Zooming {
		flags = append(flags, "zoom")
	}

	lines := []string{
		s.Title.Render(title),
		s.Muted.Render(name),
		styles.Bar(st.Weight, inner-5, accent(st.ID.Kind)) + fmt.Sprintf(" %3.0f%%", st.Weight*100),
		s.Subtle.Render(fmt.Sprintf("×%.3f  %s", max(st.Scale, 1), strings.Join(flags, " "))),
	}
	return styles.PanelStyle(accent(st.ID.Kind), st.Weight).
		Width(inner).
		Render(strings.Join(lines, "\n"))
}

func statusLine(snap engine.Snapshot, now time.Time) string {
	s := styles.T().S()
	t := styles.T()

	parts := []string{styles.ApplyBoldGradient("reelbg", t.Primary, t.Secondary)}
	if snap.Playing {
		parts = append(parts, s.Playing.Render("▶ playing"))
	} else {
		parts = append(parts, s.Muted.Render("⏸ paused"))
	}
	if snap.Switching {
		parts = append(parts, s.Warning.Render("switching"))
	}

	idle := snap.Idle.String()
	if !snap.IdleSince.IsZero() {
		idle += " for " + humanize.RelTime(snap.IdleSince, now, "", "")
	}
	if snap.Idle.IsIdle() {
		parts = append(parts, s.Idle.Render(idle))
	} else {
		parts = append(parts, s.Muted.Render(idle))
	}
	if snap.IdleArmed {
		parts = append(parts, s.Subtle.Render("idle timer armed"))
	}
	if snap.Expandable {
		layout := "collapsed"
		if snap.Expanded {
			layout = "expanded"
		}
		parts = append(parts, s.Muted.Render(layout))
	}
	return strings.Join(parts, "  ")
}

func selectionLine(snap engine.Snapshot) string {
	s := styles.T().S()

	sel := "background: none"
	if !snap.Selection.IsNone() {
		sel = fmt.Sprintf("background: %s (%s)", filepath.Base(snap.Selection.URL), snap.Selection.Kind)
	}
	parts := []string{s.Base.Render(sel)}

	if snap.StaticImage != "" {
		still := "still: " + filepath.Base(snap.StaticImage)
		if snap.StaticVisible {
			parts = append(parts, s.Base.Render(still))
		} else {
			parts = append(parts, s.Subtle.Render(still+" (hidden)"))
		}
	}
	if snap.LiveFades > 0 {
		parts = append(parts, s.Subtle.Render(fmt.Sprintf("%d fade(s) running", snap.LiveFades)))
	} else if snap.Settled() {
		parts = append(parts, s.Subtle.Render("settled"))
	}
	return strings.Join(parts, "  ")
}

// fitWidth truncates s to width cells.
func fitWidth(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
