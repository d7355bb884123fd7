// Package settings mirrors the user's preference record on the client.
package settings

import (
	"strings"

	"github.com/abhisek/lingoflow/internal/api"
)

// Defaults used when the server omits a field or cannot be reached.
const (
	DefaultTheme            = "system"
	DefaultPracticeLanguage = "Japanese"
	DefaultUILanguage       = "English"
	DefaultModel            = "gemma3:4b"
)

// Themes lists the accepted theme values.
var Themes = []string{"system", "light", "dark"}

// Defaults returns the record used before anything is fetched.
func Defaults() api.Settings {
	return api.Settings{
		Theme:            DefaultTheme,
		PracticeLanguage: DefaultPracticeLanguage,
		UILanguage:       DefaultUILanguage,
		Model:            DefaultModel,
	}
}

// Store holds the last known settings.
type Store struct {
	current api.Settings
	loaded  bool
}

// NewStore returns a store holding Defaults.
func NewStore() *Store {
	return &Store{current: Defaults()}
}

// Current returns the mirrored record.
func (s *Store) Current() api.Settings { return s.current }

// Loaded reports whether a fetch has ever succeeded.
func (s *Store) Loaded() bool { return s.loaded }

// Apply mirrors a fetched record, substituting defaults for blank fields,
// and returns what was stored.
func (s *Store) Apply(in api.Settings) api.Settings {
	d := Defaults()
	out := api.Settings{
		Theme:            orDefault(in.Theme, d.Theme),
		PracticeLanguage: orDefault(in.PracticeLanguage, d.PracticeLanguage),
		UILanguage:       orDefault(in.UILanguage, d.UILanguage),
		Model:            orDefault(in.Model, d.Model),
		Score:            max(in.Score, 0),
	}
	s.current = out
	s.loaded = true
	return out
}

// Fallback handles a failed fetch. Only the theme is resolved, to the
// system preference; every other field keeps its current value.
func (s *Store) Fallback() api.Settings {
	s.current.Theme = DefaultTheme
	return s.current
}

// Commit records a successfully saved record. The server owns the score,
// so the mirrored score is kept.
func (s *Store) Commit(in api.Settings) {
	score := s.current.Score
	s.current = in
	s.current.Score = score
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
