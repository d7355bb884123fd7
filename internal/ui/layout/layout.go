// Package layout draws the frame around the active screen and holds the
// small text helpers screens share.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflow/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this width detail views stack their columns.
	CompactWidthThreshold = 100
)

const crumbSep = " › "

// KeyHint is one footer entry.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("Terminal too small!\n\nLingoFlow needs at least %d x %d.\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(body))
}

// RenderHeader draws the top bar: brand and the breadcrumb of open screens
// on the left, score and practice language on the right. Leading crumbs are
// dropped when the bar is too narrow.
func RenderHeader(trail []string, score int, language string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" LingoFlow")

	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("Score: %d", score))
	if language != "" {
		right = lipgloss.NewStyle().Foreground(theme.Secondary).Render(language) + "   " + right
	}
	right += " "

	inner := max(width-2, 0)
	room := inner - lipgloss.Width(brand) - lipgloss.Width(right) - 6
	crumbs := renderTrail(trail, room)

	left := brand
	if crumbs != "" {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  │  ") + crumbs
	}
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(left + strings.Repeat(" ", gap) + right)
}

func renderTrail(trail []string, room int) string {
	for len(trail) > 0 {
		text := strings.Join(trail, crumbSep)
		if lipgloss.Width(text) <= room || len(trail) == 1 {
			last := len(trail) - 1
			parts := make([]string, len(trail))
			for i, t := range trail {
				if i == last {
					parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Truncate(t, max(room, 1)))
					continue
				}
				parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(t)
			}
			return strings.Join(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(crumbSep))
		}
		trail = trail[1:]
	}
	return ""
}

// RenderFooter draws the key hints. The last hint is global and always
// shown; screen hints that do not fit are dropped from the end.
func RenderFooter(hints []KeyHint, width int) string {
	const sep = "   "
	inner := max(width-4, 0)

	render := func(h KeyHint) string {
		return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}

	var parts []string
	used := 0
	if n := len(hints); n > 0 {
		last := render(hints[n-1])
		used = lipgloss.Width(last)
		for _, h := range hints[:n-1] {
			p := render(h)
			if used+lipgloss.Width(p)+len(sep) > inner {
				break
			}
			parts = append(parts, p)
			used += lipgloss.Width(p) + len(sep)
		}
		parts = append(parts, last)
	}

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(" " + strings.Join(parts, sep))
}

// RenderFrame stacks header, body and footer into exactly height lines.
// body is called with the space left between the bars.
func RenderFrame(header, footer string, width, height int, body func(width, height int) string) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().
		Width(width).
		Height(h).
		MaxHeight(h).
		Render(body(width, h))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// Window returns at most height lines of content, ending offset lines above
// the bottom. Offsets past the top are clamped.
func Window(content string, height, offset int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	end := max(len(lines)-max(offset, 0), min(height, len(lines)))
	start := max(end-height, 0)
	return strings.Join(lines[start:end], "\n")
}

// MaxOffset returns the largest useful Window offset for content.
func MaxOffset(content string, height int) int {
	return max(strings.Count(content, "\n")+1-height, 0)
}

// Truncate shortens s to limit runes, marking the cut with an ellipsis.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}
