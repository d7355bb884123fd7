package transcript

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflow/internal/api"
	hist "github.com/abhisek/lingoflow/internal/history"
	"github.com/abhisek/lingoflow/internal/router"
	"github.com/abhisek/lingoflow/internal/screen"
	"github.com/abhisek/lingoflow/internal/ui/components"
	"github.com/abhisek/lingoflow/internal/ui/layout"
	"github.com/abhisek/lingoflow/internal/ui/theme"
)

const scrollStep = 3

type transcriptLoadedMsg struct {
	Owner    int64
	Messages []api.Message
	Err      error
}

type summaryLoadedMsg struct {
	Owner   int64
	Summary string
	Err     error
}

// TranscriptScreen shows one past conversation next to its breakdown.
type TranscriptScreen struct {
	deps   screen.Deps
	id     int64
	detail *hist.Detail

	// Lines scrolled down from the top of each region.
	logScroll     int
	summaryScroll int
	focusSummary  bool

	// Body size from the last ResizeMsg.
	width, height int
}

var _ screen.Screen = (*TranscriptScreen)(nil)
var _ screen.KeyHintProvider = (*TranscriptScreen)(nil)

// New creates a TranscriptScreen for entry.
func New(deps screen.Deps, entry api.HistoryEntry) *TranscriptScreen {
	return &TranscriptScreen{
		deps:   deps,
		id:     screen.NextID(),
		detail: hist.NewDetail(entry),
	}
}

// Init fetches the transcript and the summary in parallel.
func (s *TranscriptScreen) Init() tea.Cmd {
	svc, owner, id := s.deps.API, s.id, s.detail.Entry.ID
	return tea.Batch(
		func() tea.Msg {
			msgs, err := svc.GetHistoryDetail(context.Background(), id)
			return transcriptLoadedMsg{Owner: owner, Messages: msgs, Err: err}
		},
		func() tea.Msg {
			sum, err := svc.GetHistorySummary(context.Background(), id)
			return summaryLoadedMsg{Owner: owner, Summary: sum, Err: err}
		},
	)
}

func (s *TranscriptScreen) Title() string {
	return "Conversation"
}

func (s *TranscriptScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Tab", Description: "Switch Panel"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TranscriptScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case transcriptLoadedMsg:
		if msg.Owner != s.id {
			return s, nil
		}
		if msg.Err != nil {
			s.deps.Log().Warn("load transcript failed", "id", s.detail.Entry.ID, "error", msg.Err)
		}
		s.detail.FinishTranscript(msg.Messages, msg.Err)
		return s, nil

	case summaryLoadedMsg:
		if msg.Owner != s.id {
			return s, nil
		}
		if msg.Err != nil {
			s.deps.Log().Warn("load summary failed", "id", s.detail.Entry.ID, "error", msg.Err)
		}
		s.detail.FinishSummary(msg.Summary, msg.Err)
		return s, nil

	case screen.ResizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.logScroll = min(s.logScroll, s.maxScroll(false))
		s.summaryScroll = min(s.summaryScroll, s.maxScroll(true))
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *TranscriptScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	scroll := &s.logScroll
	if s.focusSummary {
		scroll = &s.summaryScroll
	}

	switch msg.String() {
	case "esc", "q", "backspace":
		if err := s.deps.Session.CloseHistoryDetail(); err != nil {
			s.deps.Log().Error("close history detail", "error", err)
			return s, nil
		}
		return s, router.Pop
	case "tab":
		s.focusSummary = !s.focusSummary
	case "up", "k":
		*scroll = max(*scroll-1, 0)
	case "down", "j":
		*scroll++
	case "pgup":
		*scroll = max(*scroll-scrollStep, 0)
	case "pgdown":
		*scroll += scrollStep
	case "home", "g":
		*scroll = 0
	}
	*scroll = min(*scroll, s.maxScroll(s.focusSummary))
	return s, nil
}

func (s *TranscriptScreen) View(width, height int) string {
	l := s.arrange(width, height)
	log := region("Transcript", s.transcriptContent(l.logW), s.logScroll, !s.focusSummary, l.logW, l.logH)
	sum := region("Breakdown", s.summaryContent(l.sumW), s.summaryScroll, s.focusSummary, l.sumW, l.sumH)

	var body string
	if l.stacked {
		body = lipgloss.JoinVertical(lipgloss.Left, log, sum)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, log, sum)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, l.heading+"\n"+body)
}

// regionLayout places the two regions: side by side, or stacked on
// compact terminals.
type regionLayout struct {
	heading    string
	stacked    bool
	logW, logH int
	sumW, sumH int
}

func (s *TranscriptScreen) arrange(width, height int) regionLayout {
	cw := width - 4
	l := regionLayout{heading: s.renderHeading(cw)}
	avail := height - lipgloss.Height(l.heading) - 1

	if layout.IsCompactWidth(width) {
		half := max(avail/2, 3)
		l.stacked = true
		l.logW, l.logH = cw, half
		l.sumW, l.sumH = cw, avail-half
		return l
	}
	left := cw * 3 / 5
	l.logW, l.logH = left, avail
	l.sumW, l.sumH = cw-left, avail
	return l
}

// maxScroll is the largest useful offset of one region at the last known
// size. Before the first resize nothing is clamped.
func (s *TranscriptScreen) maxScroll(summary bool) int {
	if s.height == 0 {
		if summary {
			return s.summaryScroll
		}
		return s.logScroll
	}
	l := s.arrange(s.width, s.height)
	if summary {
		return overflow(s.summaryContent(l.sumW), l.sumH)
	}
	return overflow(s.transcriptContent(l.logW), l.logH)
}

func (s *TranscriptScreen) renderHeading(cw int) string {
	e := s.detail.Entry
	parts := []string{theme.Title.Render(hist.Title(e.ScenarioID))}
	if b := hist.LanguageBadge(e.PracticeLanguage); b != "" {
		parts = append(parts, theme.Badge.Render(b))
	}
	if e.Model != "" {
		parts = append(parts, theme.Badge.Render(hist.ModelBadge(e.Model)))
	}
	if when := hist.FormatTimestamp(e.Timestamp, nil); when != "" {
		parts = append(parts, theme.Hint.Render(when))
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(parts, "  "))
}

func (s *TranscriptScreen) transcriptContent(w int) string {
	if notice := s.detail.TranscriptNotice(); notice != "" {
		return noticeStyle(s.detail.TranscriptErr != nil).Render(notice)
	}
	return components.Transcript(s.detail.Transcript, s.deps.Markup(), w-4)
}

func (s *TranscriptScreen) summaryContent(w int) string {
	if notice := s.detail.SummaryNotice(); notice != "" {
		return noticeStyle(s.detail.SummaryErr != nil).Render(notice)
	}
	return s.deps.Markup().Render(s.detail.Summary, w-4)
}

// regionLines is how many content lines fit in a region of height h
// (border and title take three).
func regionLines(h int) int { return max(h-3, 1) }

func overflow(content string, h int) int {
	return max(strings.Count(content, "\n")+1-regionLines(h), 0)
}

// region renders a titled, bordered box showing content from the top,
// scrolled by scroll lines.
func region(title, content string, scroll int, focused bool, w, h int) string {
	inner := regionLines(h)
	lines := strings.Split(content, "\n")
	start := min(scroll, max(len(lines)-inner, 0))
	end := min(start+inner, len(lines))
	visible := strings.Join(lines[start:end], "\n")

	border := theme.Border
	if focused {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(w).
		Height(h).
		Render(theme.Subtitle.Render(title) + "\n" + visible)
}

func noticeStyle(failed bool) lipgloss.Style {
	if failed {
		return theme.Banner
	}
	return theme.Notice
}
