package settings

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflow/internal/api"
	"github.com/abhisek/lingoflow/internal/router"
	"github.com/abhisek/lingoflow/internal/screen"
	prefs "github.com/abhisek/lingoflow/internal/settings"
	"github.com/abhisek/lingoflow/internal/ui/components"
	"github.com/abhisek/lingoflow/internal/ui/layout"
	"github.com/abhisek/lingoflow/internal/ui/theme"
)

const saveFailedText = "Failed to save settings"

// Picker positions. The buttons follow the last picker.
const (
	fieldTheme = iota
	fieldModel
	fieldPractice
	fieldUI
	fieldCount
)

const (
	focusSave = fieldCount + iota
	focusCancel
	focusCount
)

type settingsFetchedMsg struct {
	Owner    int64
	Settings *api.Settings
	Err      error
}

type modelsFetchedMsg struct {
	Owner  int64
	Models []api.Model
	Err    error
}

type settingsSavedMsg struct {
	Owner    int64
	Settings api.Settings
	Err      error
}

// SettingsScreen edits the user's preferences.
type SettingsScreen struct {
	deps    screen.Deps
	id      int64
	base    api.Settings
	pickers [fieldCount]components.Picker
	buttons [2]components.Button
	focus   int

	loadingModels bool
	saving        bool
	alert         string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a SettingsScreen seeded with the mirrored settings.
func New(deps screen.Deps) *SettingsScreen {
	s := &SettingsScreen{
		deps:          deps,
		id:            screen.NextID(),
		base:          deps.Settings.Current(),
		loadingModels: true,
	}
	s.buttons[0] = components.NewButton("Save", s.save)
	s.buttons[1] = components.NewButton("Cancel", func() tea.Cmd { return router.Pop })
	s.reset(nil)
	s.setFocus(0)
	return s
}

// reset rebuilds every picker from s.base.
func (s *SettingsScreen) reset(models []api.Model) {
	b := s.base
	s.pickers[fieldTheme] = components.NewPicker("Theme",
		pickerOptions(withValue(prefs.StringOptions(prefs.Themes), b.Theme)), b.Theme)
	s.pickers[fieldModel] = components.NewPicker("Model",
		pickerOptions(prefs.ModelOptions(models, b.Model)), b.Model)
	s.pickers[fieldPractice] = components.NewPicker("Practice language",
		pickerOptions(withValue(prefs.LanguageOptions(prefs.PracticeLanguages), b.PracticeLanguage)), b.PracticeLanguage)
	s.pickers[fieldUI] = components.NewPicker("Explain in",
		pickerOptions(withValue(prefs.LanguageOptions(prefs.UILanguages), b.UILanguage)), b.UILanguage)
}

// Init fetches the settings, then the models so the saved model can be
// marked when the server no longer lists it.
func (s *SettingsScreen) Init() tea.Cmd {
	svc, owner := s.deps.API, s.id
	fetchSettings := func() tea.Msg {
		st, err := svc.GetSettings(context.Background())
		return settingsFetchedMsg{Owner: owner, Settings: st, Err: err}
	}
	fetchModels := func() tea.Msg {
		models, err := svc.ListModels(context.Background())
		return modelsFetchedMsg{Owner: owner, Models: models, Err: err}
	}
	return tea.Sequence(fetchSettings, fetchModels)
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.alert != "" {
		return []layout.KeyHint{{Key: "Enter", Description: "Close"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsFetchedMsg:
		if msg.Owner != s.id {
			return s, nil
		}
		if msg.Err != nil || msg.Settings == nil {
			if msg.Err != nil {
				s.deps.Log().Warn("load settings failed", "error", msg.Err)
			}
			return s, nil
		}
		s.base = s.deps.Settings.Apply(*msg.Settings)
		s.reset(nil)
		s.setFocus(s.focus)
		return s, nil

	case modelsFetchedMsg:
		if msg.Owner != s.id {
			return s, nil
		}
		s.loadingModels = false
		if msg.Err != nil {
			s.deps.Log().Warn("list models failed", "error", msg.Err)
		}
		current := s.pickers[fieldModel].Value()
		if current == "" {
			current = s.base.Model
		}
		s.pickers[fieldModel].Options = pickerOptions(prefs.ModelOptions(msg.Models, current))
		s.pickers[fieldModel].Select(current)
		return s, nil

	case settingsSavedMsg:
		if msg.Owner != s.id {
			return s, nil
		}
		s.setSaving(false)
		if msg.Err != nil {
			s.deps.Log().Warn("save settings failed", "error", msg.Err)
			s.alert = saveFailedText
			return s, nil
		}
		s.deps.Settings.Commit(msg.Settings)
		theme.Use(theme.Preference(msg.Settings.Theme))
		return s, tea.Sequence(router.Pop, func() tea.Msg { return screen.RegenerateMsg{} })

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SettingsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.alert != "" {
		switch msg.String() {
		case "enter", "esc", "space":
			s.alert = ""
		}
		return s, nil
	}
	if s.saving {
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, router.Pop
	case "ctrl+s":
		return s, s.save()
	case "up", "k", "shift+tab":
		s.setFocus((s.focus - 1 + focusCount) % focusCount)
		return s, nil
	case "down", "j", "tab":
		s.setFocus((s.focus + 1) % focusCount)
		return s, nil
	}

	var cmd tea.Cmd
	if s.focus < fieldCount {
		s.pickers[s.focus], cmd = s.pickers[s.focus].Update(msg)
		return s, cmd
	}
	i := s.focus - focusSave
	s.buttons[i], cmd = s.buttons[i].Update(msg)
	return s, cmd
}

func (s *SettingsScreen) setFocus(f int) {
	s.focus = f
	for i := range s.pickers {
		s.pickers[i].Focused = i == f
	}
	for i := range s.buttons {
		s.buttons[i].Focused = focusSave+i == f
	}
}

func (s *SettingsScreen) setSaving(on bool) {
	s.saving = on
	s.buttons[0].Disabled = on
	s.buttons[1].Disabled = on
	s.buttons[0].Label = "Save"
	if on {
		s.buttons[0].Label = "Saving..."
	}
}

// form returns the record the pickers describe. The score is not editable.
func (s *SettingsScreen) form() api.Settings {
	return api.Settings{
		Theme:            s.pickers[fieldTheme].Value(),
		Model:            s.pickers[fieldModel].Value(),
		PracticeLanguage: s.pickers[fieldPractice].Value(),
		UILanguage:       s.pickers[fieldUI].Value(),
		Score:            s.base.Score,
	}
}

func (s *SettingsScreen) save() tea.Cmd {
	if s.saving {
		return nil
	}
	s.setSaving(true)
	rec := s.form()
	svc, owner := s.deps.API, s.id
	return func() tea.Msg {
		err := svc.SaveSettings(context.Background(), rec)
		return settingsSavedMsg{Owner: owner, Settings: rec, Err: err}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	if s.alert != "" {
		return components.Modal("", theme.Banner.Render(s.alert)+"\n\n"+theme.Hint.Render("Press Enter to dismiss"), width, height)
	}

	cw := components.ContentWidth(width)
	var rows []string
	for i, p := range s.pickers {
		row := p.View(20)
		if i == fieldModel && s.loadingModels {
			row += theme.Hint.Render("  loading models...")
		}
		rows = append(rows, row)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, s.buttons[0].View(), "   ", s.buttons[1].View())

	body := strings.Join(rows, "\n\n") + "\n\n\n" + buttons
	card := theme.Card.Width(cw).Render(theme.Title.Render("Settings") + "\n\n" + body)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func pickerOptions(opts []prefs.Option) []components.PickerOption {
	out := make([]components.PickerOption, len(opts))
	for i, o := range opts {
		out[i] = components.PickerOption{Value: o.Value, Label: o.Label}
	}
	return out
}

// withValue appends v when the server holds a value the client does not
// list, so opening the screen never changes it silently.
func withValue(opts []prefs.Option, v string) []prefs.Option {
	if v == "" {
		return opts
	}
	for _, o := range opts {
		if o.Value == v {
			return opts
		}
	}
	return append(opts, prefs.Option{Value: v, Label: v})
}
