package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflow/internal/ui/theme"
)

// PickerOption is one value a Picker can hold.
type PickerOption struct {
	Value string
	Label string
}

// Picker is a single-line selector cycled with left/right.
type Picker struct {
	Label    string
	Options  []PickerOption
	Selected int
	Focused  bool
}

// NewPicker creates a picker with value preselected. An unknown value
// selects the first option.
func NewPicker(label string, options []PickerOption, value string) Picker {
	p := Picker{Label: label, Options: options}
	p.Select(value)
	return p
}

// Select moves the selection to value if present.
func (p *Picker) Select(value string) {
	for i, o := range p.Options {
		if o.Value == value {
			p.Selected = i
			return
		}
	}
	p.Selected = 0
}

// Value returns the selected value, or "" when there are no options.
func (p Picker) Value() string {
	if p.Selected < 0 || p.Selected >= len(p.Options) {
		return ""
	}
	return p.Options[p.Selected].Value
}

// Update cycles the selection while focused.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.Focused || len(p.Options) == 0 {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "left", "h":
		p.Selected = (p.Selected - 1 + len(p.Options)) % len(p.Options)
	case "right", "l", "space":
		p.Selected = (p.Selected + 1) % len(p.Options)
	}
	return p, nil
}

// View renders "Label  ‹ value ›".
func (p Picker) View(labelWidth int) string {
	label := lipgloss.NewStyle().
		Width(labelWidth).
		Foreground(theme.TextDim).
		Render(p.Label)

	value := "(none)"
	if p.Selected >= 0 && p.Selected < len(p.Options) {
		value = p.Options[p.Selected].Label
	}

	if p.Focused {
		return label + theme.Selected.Render(fmt.Sprintf("‹ %s ›", value))
	}
	return label + theme.Unselected.Render(fmt.Sprintf("  %s  ", value))
}
