// Package history holds the state of the history list and of the
// transcript/summary detail view.
package history

import "github.com/abhisek/lingoflow/internal/api"

// Notices shown by the history list.
const (
	EmptyText      = "No completed conversations yet."
	LoadFailedText = "Failed to load history"
)

// Browser is the history list state.
type Browser struct {
	Entries []api.HistoryEntry
	Loading bool
	Err     error

	// ActionErr describes the last failed delete, if any.
	ActionErr string

	selected int
	loaded   bool
}

// NewBrowser returns an empty browser.
func NewBrowser() *Browser {
	return &Browser{}
}

// BeginLoad clears the list and shows the loading indicator.
func (b *Browser) BeginLoad() {
	b.Entries = nil
	b.Err = nil
	b.ActionErr = ""
	b.Loading = true
	b.selected = 0
}

// FinishLoad applies a fetch result.
func (b *Browser) FinishLoad(entries []api.HistoryEntry, err error) {
	b.Loading = false
	b.loaded = true
	if err != nil {
		b.Err = err
		return
	}
	b.Entries = entries
	b.clamp()
}

// Empty reports whether the empty-state notice should show.
func (b *Browser) Empty() bool {
	return b.loaded && !b.Loading && b.Err == nil && len(b.Entries) == 0
}

// Remove drops the entry with id from the list without re-fetching.
func (b *Browser) Remove(id int64) bool {
	for i, e := range b.Entries {
		if e.ID == id {
			b.Entries = append(b.Entries[:i:i], b.Entries[i+1:]...)
			b.clamp()
			return true
		}
	}
	return false
}

// Up moves the selection up.
func (b *Browser) Up() {
	if b.selected > 0 {
		b.selected--
	}
}

// Down moves the selection down.
func (b *Browser) Down() {
	if b.selected < len(b.Entries)-1 {
		b.selected++
	}
}

// Index returns the selected position.
func (b *Browser) Index() int { return b.selected }

// Selected returns the selected entry.
func (b *Browser) Selected() (api.HistoryEntry, bool) {
	if b.Loading || b.selected >= len(b.Entries) {
		return api.HistoryEntry{}, false
	}
	return b.Entries[b.selected], true
}

func (b *Browser) clamp() {
	if b.selected >= len(b.Entries) {
		b.selected = len(b.Entries) - 1
	}
	if b.selected < 0 {
		b.selected = 0
	}
}
