package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestPickerCycles(t *testing.T) {
	p := NewPicker("Theme", []PickerOption{
		{Value: "system", Label: "System"},
		{Value: "light", Label: "Light"},
		{Value: "dark", Label: "Dark"},
	}, "light")
	p.Focused = true

	if p.Value() != "light" {
		t.Fatalf("expected light preselected, got %q", p.Value())
	}

	p, _ = p.Update(key(tea.KeyRight))
	if p.Value() != "dark" {
		t.Errorf("expected dark, got %q", p.Value())
	}
	p, _ = p.Update(key(tea.KeyRight))
	if p.Value() != "system" {
		t.Errorf("expected wraparound to system, got %q", p.Value())
	}
	p, _ = p.Update(key(tea.KeyLeft))
	if p.Value() != "dark" {
		t.Errorf("expected wraparound back to dark, got %q", p.Value())
	}
}

func TestPickerIgnoresKeysWhenBlurred(t *testing.T) {
	p := NewPicker("Theme", []PickerOption{{Value: "a"}, {Value: "b"}}, "a")

	p, _ = p.Update(key(tea.KeyRight))
	if p.Value() != "a" {
		t.Errorf("expected a, got %q", p.Value())
	}
}

func TestPickerUnknownValue(t *testing.T) {
	p := NewPicker("Model", []PickerOption{{Value: "x"}}, "missing")
	if p.Value() != "x" {
		t.Errorf("expected first option, got %q", p.Value())
	}

	empty := NewPicker("Model", nil, "x")
	if empty.Value() != "" {
		t.Errorf("expected empty value, got %q", empty.Value())
	}
	if !strings.Contains(empty.View(10), "(none)") {
		t.Error("expected (none) placeholder")
	}
}

func TestTextInputDisabled(t *testing.T) {
	ti := NewTextInput("Type...", 0)
	ti.SetValue("hola")

	ti.Disable("Conversation complete")
	ti, _ = ti.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})

	if ti.Value() != "hola" {
		t.Errorf("disabled input changed value to %q", ti.Value())
	}
	if !strings.Contains(ti.View(), "Conversation complete") {
		t.Error("expected disabled placeholder in view")
	}

	ti.Enable()
	ti.Reset()
	if ti.Value() != "" || ti.Disabled() {
		t.Error("expected enabled empty input")
	}
}

func TestButtonPress(t *testing.T) {
	pressed := false
	b := NewButton("Save", func() tea.Cmd {
		pressed = true
		return nil
	})

	b.Update(key(tea.KeyEnter))
	if pressed {
		t.Error("unfocused button should not press")
	}

	b.Focused = true
	b.Update(key(tea.KeyEnter))
	if !pressed {
		t.Error("expected press on enter")
	}
}

func TestButtonDisabled(t *testing.T) {
	pressed := false
	b := NewButton("Save", func() tea.Cmd {
		pressed = true
		return nil
	})
	b.Focused = true
	b.Disabled = true

	b.Update(key(tea.KeyEnter))
	if pressed {
		t.Error("disabled button should not press")
	}
	if !strings.Contains(b.View(), "[ Save ]") {
		t.Errorf("expected bracketed label, got %q", b.View())
	}
}

func TestButtonSpacePresses(t *testing.T) {
	pressed := false
	b := NewButton("Cancel", func() tea.Cmd {
		pressed = true
		return nil
	})
	b.Focused = true

	b.Update(key(tea.KeySpace))
	if !pressed {
		t.Error("expected press on space")
	}
}

func TestTextInputCounterNearLimit(t *testing.T) {
	ti := NewTextInput("Type...", 10)

	ti.SetValue("hola")
	if strings.Contains(ti.View(), "/10") {
		t.Error("counter should stay hidden well below the limit")
	}

	ti.SetValue("こんにちは世界です")
	if !strings.Contains(ti.View(), "9/10") {
		t.Errorf("expected rune counter, got %q", ti.View())
	}
}
