package dashboard

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflow/internal/api"
	"github.com/abhisek/lingoflow/internal/router"
	"github.com/abhisek/lingoflow/internal/scenarios"
	"github.com/abhisek/lingoflow/internal/screen"
	"github.com/abhisek/lingoflow/internal/screens/chat"
	historyscreen "github.com/abhisek/lingoflow/internal/screens/history"
	settingsscreen "github.com/abhisek/lingoflow/internal/screens/settings"
	"github.com/abhisek/lingoflow/internal/ui/components"
	"github.com/abhisek/lingoflow/internal/ui/layout"
	"github.com/abhisek/lingoflow/internal/ui/theme"
)

const emptyText = "No scenarios yet. Press r to generate a fresh set."

// settingsLoadedMsg carries the result of the settings fetch that starts
// every refresh.
type settingsLoadedMsg struct {
	Settings *api.Settings
	Err      error
}

type scenariosLoadedMsg struct {
	Cycle     scenarios.Cycle
	Scenarios []api.Scenario
	Err       error
}

type scenariosGeneratedMsg struct {
	Cycle scenarios.Cycle
	Err   error
}

// DashboardScreen lists the practice scenarios and is the root of the
// screen stack.
type DashboardScreen struct {
	deps       screen.Deps
	list       *scenarios.List
	spinner    spinner.Model
	generating bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(deps screen.Deps) *DashboardScreen {
	return &DashboardScreen{
		deps:    deps,
		list:    scenarios.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return d.reload()
}

func (d *DashboardScreen) Title() string {
	return "Scenarios"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "R", Description: "Regenerate"},
		{Key: "S", Description: "Settings"},
		{Key: "H", Description: "History"},
		{Key: "Q", Description: "Quit"},
	}
}

// reload fetches settings first, then scenarios.
func (d *DashboardScreen) reload() tea.Cmd {
	c := d.list.BeginRefresh()
	d.generating = false
	return tea.Batch(d.spinner.Tick, tea.Sequence(d.loadSettings(), d.fetchScenarios(c)))
}

func (d *DashboardScreen) regenerate() tea.Cmd {
	c := d.list.BeginRegenerate()
	return tea.Batch(d.spinner.Tick, d.generate(c))
}

func (d *DashboardScreen) loadSettings() tea.Cmd {
	svc := d.deps.API
	return func() tea.Msg {
		s, err := svc.GetSettings(context.Background())
		return settingsLoadedMsg{Settings: s, Err: err}
	}
}

func (d *DashboardScreen) fetchScenarios(c scenarios.Cycle) tea.Cmd {
	svc := d.deps.API
	return func() tea.Msg {
		list, err := svc.ListScenarios(context.Background())
		return scenariosLoadedMsg{Cycle: c, Scenarios: list, Err: err}
	}
}

func (d *DashboardScreen) generate(c scenarios.Cycle) tea.Cmd {
	d.generating = true
	svc := d.deps.API
	return func() tea.Msg {
		return scenariosGeneratedMsg{Cycle: c, Err: svc.GenerateScenarios(context.Background())}
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		d.applySettings(msg)
		return d, nil

	case scenariosLoadedMsg:
		if !d.list.Current(msg.Cycle) {
			return d, nil
		}
		step := d.list.FinishRefresh(msg.Cycle, msg.Scenarios, msg.Err)
		if msg.Err != nil {
			d.deps.Log().Warn("list scenarios failed", "error", msg.Err)
		}
		if step == scenarios.StepRegenerate {
			d.deps.Log().Info("no scenarios, generating a fresh set")
			return d, d.generate(msg.Cycle)
		}
		d.generating = false
		return d, nil

	case scenariosGeneratedMsg:
		if !d.list.Current(msg.Cycle) {
			return d, nil
		}
		step := d.list.FinishRegenerate(msg.Cycle, msg.Err)
		if msg.Err != nil {
			d.deps.Log().Warn("generate scenarios failed", "error", msg.Err)
		}
		d.generating = false
		if step == scenarios.StepRefresh {
			return d, d.fetchScenarios(d.list.Refetch())
		}
		return d, nil

	case screen.ReloadMsg:
		return d, d.reload()

	case screen.RegenerateMsg:
		return d, d.regenerate()

	case spinner.TickMsg:
		if !d.list.Loading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *DashboardScreen) applySettings(msg settingsLoadedMsg) {
	var s api.Settings
	if msg.Err != nil || msg.Settings == nil {
		if msg.Err != nil {
			d.deps.Log().Warn("load settings failed", "error", msg.Err)
		}
		s = d.deps.Settings.Fallback()
	} else {
		s = d.deps.Settings.Apply(*msg.Settings)
	}
	theme.Use(theme.Preference(s.Theme))
}

func (d *DashboardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		d.list.Up()
	case "down", "j":
		d.list.Down()
	case "enter":
		s, ok := d.list.Selected()
		if !ok {
			return d, nil
		}
		if err := d.deps.Session.OpenScenario(s); err != nil {
			d.deps.Log().Error("open scenario", "scenario", s.ID, "error", err)
			return d, nil
		}
		return d, router.Push(chat.New(d.deps))
	case "r":
		if d.list.ControlsEnabled {
			return d, d.regenerate()
		}
	case "s":
		return d, router.Push(settingsscreen.New(d.deps))
	case "h":
		if err := d.deps.Session.OpenHistory(); err != nil {
			d.deps.Log().Error("open history", "error", err)
			return d, nil
		}
		return d, router.Push(historyscreen.New(d.deps))
	case "q":
		return d, tea.Quit
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	lang := d.deps.Settings.Current().PracticeLanguage
	sections = append(sections, theme.Title.Width(cw).Render("Practice "+lang))

	switch {
	case d.list.Banner != scenarios.BannerNone:
		sections = append(sections, theme.Banner.Width(cw).Render(d.list.Banner.Text()))
	case d.list.Loading:
		label := "Loading scenarios..."
		if d.generating {
			label = "Generating scenarios, this can take a while..."
		}
		sections = append(sections, theme.Hint.Render(d.spinner.View()+" "+label))
	case d.list.Empty():
		sections = append(sections, theme.Notice.Width(cw).Render(emptyText))
	default:
		avail := height - lipgloss.Height(strings.Join(sections, "\n\n")) - 2
		sections = append(sections, d.renderCards(cw, avail))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// renderCards renders as many scenario cards as fit in height, keeping the
// selected one visible.
func (d *DashboardScreen) renderCards(cw, height int) string {
	cards := make([]string, len(d.list.Scenarios))
	for i, s := range d.list.Scenarios {
		cards[i] = renderCard(s, cw, i == d.list.Index())
	}

	sel := d.list.Index()
	start, used := sel, lipgloss.Height(cards[sel])
	for start > 0 && used+lipgloss.Height(cards[start-1]) <= height {
		start--
		used += lipgloss.Height(cards[start])
	}
	end := sel + 1
	for end < len(cards) && used+lipgloss.Height(cards[end]) <= height {
		used += lipgloss.Height(cards[end])
		end++
	}
	return strings.Join(cards[start:end], "\n")
}

func renderCard(s api.Scenario, cw int, selected bool) string {
	title := theme.Subtitle.Render(s.Setting)
	if selected {
		title = theme.Selected.Render("▸ " + s.Setting)
	}
	var lines []string
	lines = append(lines, title)
	if s.Goal != "" {
		lines = append(lines, theme.Body.Render("Goal: "+s.Goal))
	}
	if s.Description != "" {
		lines = append(lines, theme.Hint.Render(s.Description))
	}
	return components.Card(strings.Join(lines, "\n"), cw, selected)
}
