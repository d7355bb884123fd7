package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lingoflow/internal/app"
	"github.com/abhisek/lingoflow/internal/markup"
	"github.com/abhisek/lingoflow/internal/screen"
	"github.com/abhisek/lingoflow/internal/session"
	"github.com/abhisek/lingoflow/internal/settings"
	"github.com/abhisek/lingoflow/internal/ui/theme"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	e.logger.Info("starting", "version", version, "server", e.cfg.Server.URL)

	return app.Run(screen.Deps{
		API:      e.client,
		Session:  session.New(),
		Settings: settings.NewStore(),
		Renderer: markup.NewGlamour(theme.IsDark),
		Logger:   e.logger,
	})
}
