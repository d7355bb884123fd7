package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingoflow/internal/ui/theme"
)

// Button is a form action. A disabled button renders dimmed and ignores
// presses even while focused.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
	OnPress  func() tea.Cmd
}

func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{Label: label, OnPress: onPress}
}

// Update presses the button on enter or space.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Focused || b.Disabled || b.OnPress == nil {
		return b, nil
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}
	switch k.String() {
	case "enter", "space":
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	label := "[ " + b.Label + " ]"
	switch {
	case b.Disabled:
		return theme.Disabled.Render(label)
	case b.Focused:
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
