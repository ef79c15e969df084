package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxModalW = 80

func modalWidth(termWidth int) int {
	w := termWidth - 8
	if w > maxModalW {
		w = maxModalW
	}
	if w < 30 {
		w = 30
	}
	return w
}

func modalBodyWidth(termWidth int) int {
	return modalWidth(termWidth) - 4
}

// renderModalBox draws a titled overlay surface. Borders are avoided: some
// terminals show background artifacts when nesting bordered components
// inside a surface with a background color.
func renderModalBox(termWidth int, title, content string) string {
	w := modalWidth(termWidth)
	bodyW := w - 4

	header := lipgloss.NewStyle().
		Bold(true).
		Width(bodyW).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Padding(0, 1).
		Render(title)

	body := lipgloss.NewStyle().
		Width(bodyW).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Padding(0, 1).
		Render(content)

	return lipgloss.NewStyle().
		Width(w).
		Background(colorSurfaceBg).
		Padding(1, 1).
		Render(strings.Join([]string{header, "", body}, "\n"))
}

func (m appModel) placeCentered(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
