package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the border style of a surface panel. The border takes
// the surface color blended by its weight, so a fading surface fades its
// frame too.
func PanelStyle(accent lipgloss.Color, weight float64) lipgloss.Style {
	t := T()
	border := t.Border
	if weight > 0 {
		border = Blend(t.Border, accent, weight)
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
