package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/lingoflow/internal/session"
	"github.com/abhisek/lingoflow/internal/ui/components"
	"github.com/abhisek/lingoflow/internal/ui/layout"
	"github.com/abhisek/lingoflow/internal/ui/theme"
)

const summaryUnavailableText = "Summary could not be generated."

func (s *ChatScreen) View(width, height int) string {
	switch s.overlay {
	case overlayAlert:
		return components.Modal("", theme.Banner.Render(s.alert)+"\n\n"+theme.Hint.Render("Press Enter to dismiss"), width, height)
	case overlayHint:
		cw := components.ContentWidth(width)
		return components.Modal("Hint", s.deps.Markup().Render(s.hint, cw-6), width, height)
	case overlayConfirm:
		return renderAbandonConfirm(width, height)
	}

	c := s.deps.Session.Chat()
	if c == nil {
		return ""
	}

	f := s.frame(c, width, height)
	offset := min(s.scroll, layout.MaxOffset(f.log, f.avail))
	body := lipgloss.NewStyle().Width(f.cw).Height(max(f.avail, 0)).
		Render(layout.Window(f.log, f.avail, offset))

	content := strings.Join([]string{f.top, body, f.bottom}, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// chatFrame is the chat body laid out for one size.
type chatFrame struct {
	cw          int
	top, bottom string
	log         string
	avail       int
}

func (s *ChatScreen) frame(c *sess.Chat, width, height int) chatFrame {
	cw := components.ContentWidth(width)
	f := chatFrame{cw: cw, top: renderScenario(c, cw)}

	if c.Complete() {
		f.bottom = s.renderSummary(c, cw)
	} else {
		in := s.input
		in.SetWidth(cw - 4)
		f.bottom = theme.Card.Width(cw).Render(in.View())
	}

	f.log = components.Transcript(c.Messages, s.deps.Markup(), cw)
	if c.Typing() {
		if f.log != "" {
			f.log += "\n\n"
		}
		f.log += theme.Hint.Render(s.spinner.View() + " Partner is typing...")
	}

	f.avail = height - lipgloss.Height(f.top) - lipgloss.Height(f.bottom) - 2
	return f
}

// clampScroll bounds the scroll offset by the transcript length at the
// last known size.
func (s *ChatScreen) clampScroll() {
	c := s.deps.Session.Chat()
	if c == nil || s.height == 0 {
		return
	}
	f := s.frame(c, s.width, s.height)
	s.scroll = min(s.scroll, layout.MaxOffset(f.log, f.avail))
}

func renderScenario(c *sess.Chat, cw int) string {
	lines := []string{theme.Title.Render(c.Scenario.Setting)}
	if c.Scenario.Goal != "" {
		lines = append(lines, theme.Hint.Render("Goal: "+c.Scenario.Goal))
	}
	if c.Scenario.Description != "" {
		lines = append(lines, theme.Hint.Render(c.Scenario.Description))
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}

func (s *ChatScreen) renderSummary(c *sess.Chat, cw int) string {
	var body string
	if c.Summary.Unavailable {
		body = theme.Notice.Render(summaryUnavailableText)
	} else {
		body = s.deps.Markup().Render(c.Summary.Text, cw-4)
	}

	heading := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Goal reached!")
	return theme.Card.Width(cw).BorderForeground(theme.Success).
		Render(heading + "\n\n" + body + "\n\n" + theme.Hint.Render("Press Enter to return to the dashboard"))
}

// renderAbandonConfirm renders the leave confirmation dialog.
func renderAbandonConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Leave this conversation?"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("It will not be saved to your history."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep practicing"))
	return components.Modal("", b.String(), width, height)
}
