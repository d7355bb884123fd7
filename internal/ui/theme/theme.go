package theme

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
)

// Preference is the user's theme setting.
type Preference string

const (
	PreferLight  Preference = "light"
	PreferDark   Preference = "dark"
	PreferSystem Preference = "system"
)

// Mode is a resolved theme.
type Mode int

const (
	Dark Mode = iota
	Light
)

func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// Resolve maps a preference to a concrete mode. "system" and unknown values
// follow the terminal background.
func Resolve(pref Preference, systemDark bool) Mode {
	switch pref {
	case PreferLight:
		return Light
	case PreferDark:
		return Dark
	}
	if systemDark {
		return Dark
	}
	return Light
}

// Palette is one set of theme colors.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
}

var (
	DarkPalette = Palette{
		Primary:   lipgloss.Color("#38BDF8"), // Sky
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#F59E0B"), // Amber
		Success:   lipgloss.Color("#22C55E"), // Green
		Error:     lipgloss.Color("#F43F5E"), // Rose
		Text:      lipgloss.Color("#F8FAFC"),
		TextDim:   lipgloss.Color("#94A3B8"),
		BgDark:    lipgloss.Color("#0F172A"),
		BgCard:    lipgloss.Color("#1E293B"),
		Border:    lipgloss.Color("#334155"),
	}

	LightPalette = Palette{
		Primary:   lipgloss.Color("#0369A1"),
		Secondary: lipgloss.Color("#0F766E"),
		Accent:    lipgloss.Color("#B45309"),
		Success:   lipgloss.Color("#15803D"),
		Error:     lipgloss.Color("#BE123C"),
		Text:      lipgloss.Color("#0F172A"),
		TextDim:   lipgloss.Color("#475569"),
		BgDark:    lipgloss.Color("#F8FAFC"),
		BgCard:    lipgloss.Color("#E2E8F0"),
		Border:    lipgloss.Color("#CBD5E1"),
	}
)

// Color palette of the active mode.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
	Modal  lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Disabled   lipgloss.Style
	Banner     lipgloss.Style
	Notice     lipgloss.Style
)

// Chat
var (
	UserLabel lipgloss.Style
	BotLabel  lipgloss.Style
	Badge     lipgloss.Style
)

// Components
var (
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var (
	mu         sync.RWMutex
	mode       = Dark
	systemDark = true
)

func init() {
	apply(DarkPalette)
}

// SetSystemDark records the terminal background reported at startup.
func SetSystemDark(dark bool) {
	mu.Lock()
	systemDark = dark
	mu.Unlock()
}

// Use resolves pref against the recorded terminal background and applies
// the result. Later background changes are not tracked.
func Use(pref Preference) Mode {
	mu.RLock()
	m := Resolve(pref, systemDark)
	mu.RUnlock()
	Apply(m)
	return m
}

// Apply switches the palette and rebuilds every style.
func Apply(m Mode) {
	mu.Lock()
	mode = m
	mu.Unlock()
	if m == Light {
		apply(LightPalette)
		return
	}
	apply(DarkPalette)
}

// Current returns the active mode.
func Current() Mode {
	mu.RLock()
	defer mu.RUnlock()
	return mode
}

// IsDark reports whether the dark mode is active.
func IsDark() bool { return Current() == Dark }

func apply(p Palette) {
	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	BgDark = p.BgDark
	BgCard = p.BgCard
	Border = p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Modal = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Primary).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Disabled = lipgloss.NewStyle().
		Foreground(TextDim).
		Faint(true)

	Banner = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Error).
		PaddingLeft(1)

	Notice = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	UserLabel = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	BotLabel = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Badge = lipgloss.NewStyle().
		Foreground(Text).
		Background(BgCard).
		Padding(0, 1)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(BgDark).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
