package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflow/internal/ui/theme"
)

// ContentWidth returns the inner width used for panels and modals so they
// line up on wide terminals.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Modal renders body in a double-border box centered within width x height.
func Modal(title, body string, width, height int) string {
	cw := ContentWidth(width)
	content := body
	if title != "" {
		content = theme.Title.Width(cw-6).Render(title) + "\n\n" + body
	}
	box := theme.Modal.Width(cw).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// Card wraps content in a rounded-border card at the given width. A
// selected card uses the primary color for its border.
func Card(content string, width int, selected bool) string {
	style := theme.Card.Width(width)
	if selected {
		style = style.BorderForeground(theme.Primary)
	}
	return style.Render(content)
}

// Centered renders s centered horizontally and vertically.
func Centered(s string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
