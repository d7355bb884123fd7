package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflow/internal/history"
	"github.com/abhisek/lingoflow/internal/router"
	"github.com/abhisek/lingoflow/internal/screen"
	"github.com/abhisek/lingoflow/internal/screens/dashboard"
	"github.com/abhisek/lingoflow/internal/ui/layout"
	"github.com/abhisek/lingoflow/internal/ui/theme"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   screen.Deps
	width  int
	height int
}

// newAppModel creates a new AppModel with the dashboard screen.
func newAppModel(deps screen.Deps) AppModel {
	return AppModel{
		router: router.New(dashboard.New(deps)),
		deps:   deps,
	}
}

// Init asks the terminal for its background color so the "system" theme
// can be resolved, and starts the dashboard's first load.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(tea.RequestBackgroundColor, m.router.Active().Init())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		header, footer := m.chrome()
		body := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
		return m, m.router.Update(screen.ResizeMsg{Width: m.width, Height: body})

	case tea.BackgroundColorMsg:
		theme.SetSystemDark(msg.IsDark())
		mode := theme.Use(theme.Preference(m.deps.Settings.Current().Theme))
		m.deps.Log().Debug("terminal background", "dark", msg.IsDark(), "mode", mode.String())
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render composes the header, the active screen and the footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header, footer := m.chrome()
	return layout.RenderFrame(header, footer, m.width, m.height, m.router.View)
}

// chrome renders the header and footer bars for the active screen.
func (m AppModel) chrome() (header, footer string) {
	st := m.deps.Settings.Current()
	header = layout.RenderHeader(m.router.Trail(), st.Score, history.LanguageBadge(st.PracticeLanguage), m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = append(p.KeyHints(), hints...)
	}
	return header, layout.RenderFooter(hints, m.width)
}

// Run starts the Bubble Tea program.
func Run(deps screen.Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
