package app

import (
	"image/color"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/lingoflow/internal/api"
	"github.com/abhisek/lingoflow/internal/apitest"
	"github.com/abhisek/lingoflow/internal/screen/screentest"
	"github.com/abhisek/lingoflow/internal/ui/theme"
)

func TestBackgroundResolvesSystemTheme(t *testing.T) {
	defer func() {
		theme.SetSystemDark(true)
		theme.Use(theme.PreferDark)
	}()

	deps, _ := screentest.Deps(t, apitest.State{})
	m := newAppModel(deps)

	m.Update(tea.BackgroundColorMsg{Color: color.White})
	assert.Equal(t, theme.Light, theme.Current())

	m.Update(tea.BackgroundColorMsg{Color: color.Black})
	assert.Equal(t, theme.Dark, theme.Current())
}

func TestExplicitThemeIgnoresBackground(t *testing.T) {
	defer func() {
		theme.SetSystemDark(true)
		theme.Use(theme.PreferDark)
	}()

	deps, _ := screentest.Deps(t, apitest.State{})
	deps.Settings.Apply(api.Settings{Theme: "dark"})
	m := newAppModel(deps)

	m.Update(tea.BackgroundColorMsg{Color: color.White})
	assert.Equal(t, theme.Dark, theme.Current())
}

func TestCtrlCQuits(t *testing.T) {
	deps, _ := screentest.Deps(t, apitest.State{})
	m := newAppModel(deps)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsHeaderAndHints(t *testing.T) {
	deps, _ := screentest.Deps(t, apitest.State{})
	deps.Settings.Apply(api.Settings{PracticeLanguage: "Korean", Score: 12})
	m := newAppModel(deps)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := next.(AppModel).render()

	assert.Contains(t, view, "Scenarios")
	assert.Contains(t, view, "Score: 12")
	assert.Contains(t, view, "🇰🇷 Korean")
	assert.Contains(t, view, "Regenerate")
	assert.True(t, strings.Contains(view, "Ctrl+C"))
}

func TestTooSmall(t *testing.T) {
	deps, _ := screentest.Deps(t, apitest.State{})
	m := newAppModel(deps)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, next.(AppModel).render(), "Terminal too small")
}
