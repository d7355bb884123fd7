// Package screen is the contract between the router and the views it
// stacks, plus the dependencies every view is built with.
package screen

import (
	"sync/atomic"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingoflow/internal/ui/layout"
)

// Screen is one view on the router stack.
type Screen interface {
	// Init starts the screen's first loads. It runs when the screen is
	// pushed.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the area between the header and footer bars.
	View(width, height int) string

	// Title is the screen's crumb in the header trail.
	Title() string
}

// KeyHintProvider is implemented by screens that list their keys in the
// footer.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ResizeMsg is the size of the area between the header and footer bars.
// Screens keep it so key handling can clamp scroll offsets.
type ResizeMsg struct {
	Width, Height int
}

// ReloadMsg asks the dashboard to re-fetch settings and scenarios.
type ReloadMsg struct{}

// RegenerateMsg asks the dashboard to regenerate scenarios and reload.
type RegenerateMsg struct{}

var lastID atomic.Int64

// NextID returns a process-unique id. Screens tag the results of their
// background requests with it so a newer instance of the same screen
// ignores them.
func NextID() int64 {
	return lastID.Add(1)
}
