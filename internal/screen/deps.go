package screen

import (
	"log/slog"

	"github.com/abhisek/lingoflow/internal/api"
	"github.com/abhisek/lingoflow/internal/markup"
	"github.com/abhisek/lingoflow/internal/session"
	"github.com/abhisek/lingoflow/internal/settings"
)

// Deps are the collaborators shared by every screen.
type Deps struct {
	API      api.Service
	Session  *session.Controller
	Settings *settings.Store
	Renderer markup.Renderer
	Logger   *slog.Logger
}

// Log returns the logger, or a no-op logger when none is set.
func (d Deps) Log() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// Markup returns the message renderer, or plain text when none is set.
func (d Deps) Markup() markup.Renderer {
	if d.Renderer == nil {
		return markup.Plain{}
	}
	return d.Renderer
}
