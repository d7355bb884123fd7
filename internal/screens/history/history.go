package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflow/internal/api"
	hist "github.com/abhisek/lingoflow/internal/history"
	"github.com/abhisek/lingoflow/internal/router"
	"github.com/abhisek/lingoflow/internal/screen"
	"github.com/abhisek/lingoflow/internal/screens/transcript"
	"github.com/abhisek/lingoflow/internal/ui/components"
	"github.com/abhisek/lingoflow/internal/ui/layout"
	"github.com/abhisek/lingoflow/internal/ui/theme"
)

const (
	deleteFailedText = "Failed to delete conversation"
	clearFailedText  = "Failed to clear history"
)

type historyLoadedMsg struct {
	Owner   int64
	Entries []api.HistoryEntry
	Err     error
}

type historyDeletedMsg struct {
	Owner int64
	ID    int64
	Err   error
}

type historyClearedMsg struct {
	Owner int64
	Err   error
}

type confirm int

const (
	confirmNone confirm = iota
	confirmDelete
	confirmClear
)

// HistoryScreen lists completed conversations.
type HistoryScreen struct {
	deps    screen.Deps
	id      int64
	browser *hist.Browser
	confirm confirm
	loc     *time.Location
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps screen.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:    deps,
		id:      screen.NextID(),
		browser: hist.NewBrowser(),
		loc:     time.Local,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirm != confirmNone {
		return []layout.KeyHint{
			{Key: "Y", Description: "Confirm"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "D", Description: "Delete"},
		{Key: "C", Description: "Clear All"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) load() tea.Cmd {
	s.browser.BeginLoad()
	svc, owner := s.deps.API, s.id
	return func() tea.Msg {
		entries, err := svc.ListHistory(context.Background())
		return historyLoadedMsg{Owner: owner, Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Owner != s.id {
			return s, nil
		}
		if msg.Err != nil {
			s.deps.Log().Warn("list history failed", "error", msg.Err)
		}
		s.browser.FinishLoad(msg.Entries, msg.Err)
		return s, nil

	case historyDeletedMsg:
		if msg.Owner != s.id {
			return s, nil
		}
		if msg.Err != nil {
			s.deps.Log().Warn("delete history failed", "id", msg.ID, "error", msg.Err)
			s.browser.ActionErr = deleteFailedText
			return s, nil
		}
		s.browser.Remove(msg.ID)
		return s, nil

	case historyClearedMsg:
		if msg.Owner != s.id {
			return s, nil
		}
		if msg.Err != nil {
			s.deps.Log().Warn("clear history failed", "error", msg.Err)
			cmd := s.load()
			s.browser.ActionErr = clearFailedText
			return s, cmd
		}
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirm != confirmNone {
		switch key {
		case "y", "Y":
			return s, s.runConfirmed()
		case "n", "N", "esc":
			s.confirm = confirmNone
		}
		return s, nil
	}

	switch key {
	case "esc", "q":
		if err := s.deps.Session.CloseHistory(); err != nil {
			s.deps.Log().Error("close history", "error", err)
			return s, nil
		}
		return s, router.Pop
	case "up", "k":
		s.browser.Up()
	case "down", "j":
		s.browser.Down()
	case "enter":
		e, ok := s.browser.Selected()
		if !ok {
			return s, nil
		}
		if err := s.deps.Session.OpenHistoryDetail(e.ID); err != nil {
			s.deps.Log().Error("open history detail", "id", e.ID, "error", err)
			return s, nil
		}
		return s, router.Push(transcript.New(s.deps, e))
	case "d":
		if _, ok := s.browser.Selected(); ok {
			s.confirm = confirmDelete
		}
	case "c":
		if !s.browser.Loading && len(s.browser.Entries) > 0 {
			s.confirm = confirmClear
		}
	}
	return s, nil
}

func (s *HistoryScreen) runConfirmed() tea.Cmd {
	kind := s.confirm
	s.confirm = confirmNone
	s.browser.ActionErr = ""
	svc, owner := s.deps.API, s.id

	switch kind {
	case confirmDelete:
		e, ok := s.browser.Selected()
		if !ok {
			return nil
		}
		return func() tea.Msg {
			err := svc.DeleteHistoryItem(context.Background(), e.ID)
			return historyDeletedMsg{Owner: owner, ID: e.ID, Err: err}
		}
	case confirmClear:
		return func() tea.Msg {
			return historyClearedMsg{Owner: owner, Err: svc.DeleteAllHistory(context.Background())}
		}
	}
	return nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch s.confirm {
	case confirmDelete:
		return renderConfirm("Delete this conversation?", width, height)
	case confirmClear:
		return renderConfirm("Delete ALL history? This cannot be undone.", width, height)
	}

	cw := components.ContentWidth(width)
	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("Past Conversations"))

	if s.browser.ActionErr != "" {
		sections = append(sections, theme.Banner.Width(cw).Render(s.browser.ActionErr))
	}

	switch {
	case s.browser.Loading:
		sections = append(sections, theme.Hint.Render("Loading history..."))
	case s.browser.Err != nil:
		sections = append(sections, theme.Banner.Width(cw).Render(hist.LoadFailedText))
	case s.browser.Empty():
		sections = append(sections, theme.Notice.Width(cw).Render(hist.EmptyText))
	default:
		used := lipgloss.Height(strings.Join(sections, "\n\n")) + 2
		sections = append(sections, s.renderEntries(cw, height-used))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}

// renderEntries renders one line per entry, scrolled so the selection stays
// visible.
func (s *HistoryScreen) renderEntries(cw, height int) string {
	lines := make([]string, len(s.browser.Entries))
	for i, e := range s.browser.Entries {
		badges := []string{theme.Badge.Render(hist.LanguageBadge(e.PracticeLanguage))}
		if e.Model != "" {
			badges = append(badges, theme.Badge.Render(hist.ModelBadge(e.Model)))
		}
		badges = append(badges, theme.Hint.Render(hist.FormatTimestamp(e.Timestamp, s.loc)))
		rest := strings.Join(badges, "  ")

		// The title gives way so the row fits beside the selection marker.
		titleW := max(cw-3-lipgloss.Width(rest), 12)
		row := fmt.Sprintf("%-*s %s", titleW, layout.Truncate(hist.Title(e.ScenarioID), titleW), rest)
		if i == s.browser.Index() {
			lines[i] = theme.Selected.Render("▸ ") + row
		} else {
			lines[i] = "  " + row
		}
	}

	height = max(height, 1)
	start := 0
	if sel := s.browser.Index(); sel >= height {
		start = sel - height + 1
	}
	end := min(start+height, len(lines))
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines[start:end], "\n"))
}

func renderConfirm(question string, width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(question))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, delete"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep it"))
	return components.Modal("", b.String(), width, height)
}
