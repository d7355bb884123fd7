package components

import (
	"fmt"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflow/internal/ui/theme"
)

// TextInput is the chat composer: a single-line bubbles input that can be
// locked once a conversation ends. Near the length limit it shows how many
// characters remain.
type TextInput struct {
	model    textinput.Model
	limit    int
	disabled bool
}

// NewTextInput returns a focused input. limit <= 0 means unbounded.
func NewTextInput(placeholder string, limit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.Prompt = "› "
	if limit > 0 {
		m.CharLimit = limit
	}
	m.Focus()
	return TextInput{model: m, limit: limit}
}

func (t TextInput) Init() tea.Cmd {
	return t.model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.disabled {
		return t, nil
	}
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	if t.disabled {
		return theme.Disabled.Render(t.model.Prompt + t.model.Placeholder)
	}
	v := lipgloss.NewStyle().Foreground(theme.Text).Render(t.model.View())
	if c := t.counter(); c != "" {
		v += "  " + theme.Hint.Render(c)
	}
	return v
}

// counter is shown once 80% of the limit is used.
func (t TextInput) counter() string {
	if t.limit <= 0 {
		return ""
	}
	n := utf8.RuneCountInString(t.model.Value())
	if n*5 < t.limit*4 {
		return ""
	}
	return fmt.Sprintf("%d/%d", n, t.limit)
}

func (t TextInput) Value() string { return t.model.Value() }

func (t *TextInput) SetValue(v string) { t.model.SetValue(v) }

func (t *TextInput) Reset() { t.model.Reset() }

// SetWidth sets the visible width, leaving room for the counter.
func (t *TextInput) SetWidth(w int) {
	if t.limit > 0 {
		w -= len(fmt.Sprintf("  %d/%d", t.limit, t.limit))
	}
	t.model.SetWidth(max(w, 1))
}

// Disable locks the input and replaces the placeholder with notice.
func (t *TextInput) Disable(notice string) {
	t.disabled = true
	t.model.Placeholder = notice
	t.model.Blur()
}

func (t *TextInput) Enable() tea.Cmd {
	t.disabled = false
	return t.model.Focus()
}

func (t TextInput) Disabled() bool { return t.disabled }
