package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoflow/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		fetched, err := e.client.GetSettings(cmd.Context())
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		s := settings.NewStore().Apply(*fetched)

		w := cmd.OutOrStdout()
		heading(w, "Settings")
		rule(w, 40)
		fmt.Fprintf(w, "%-20s %s\n", "Theme", s.Theme)
		fmt.Fprintf(w, "%-20s %s %s\n", "Practice language", settings.Flag(s.PracticeLanguage), s.PracticeLanguage)
		fmt.Fprintf(w, "%-20s %s %s\n", "Explain in", settings.Flag(s.UILanguage), s.UILanguage)
		fmt.Fprintf(w, "%-20s %s\n", "Model", s.Model)
		fmt.Fprintf(w, "%-20s %d\n", "Score", s.Score)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more preferences",
	Long: "Fetches the saved preferences, overlays the given flags and saves the\n" +
		"full record. Scenarios are regenerated the next time the dashboard loads.",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("theme") && !flags.Changed("model") &&
			!flags.Changed("practice-language") && !flags.Changed("ui-language") {
			return fmt.Errorf("nothing to change: pass --theme, --model, --practice-language or --ui-language")
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		fetched, err := e.client.GetSettings(cmd.Context())
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		s := settings.NewStore().Apply(*fetched)

		if flags.Changed("theme") {
			s.Theme, _ = flags.GetString("theme")
			if !slices.Contains(settings.Themes, s.Theme) {
				return fmt.Errorf("unknown theme %q (want one of %v)", s.Theme, settings.Themes)
			}
		}
		if flags.Changed("model") {
			s.Model, _ = flags.GetString("model")
		}
		if flags.Changed("practice-language") {
			s.PracticeLanguage, _ = flags.GetString("practice-language")
		}
		if flags.Changed("ui-language") {
			s.UILanguage, _ = flags.GetString("ui-language")
		}

		if err := e.client.SaveSettings(cmd.Context(), s); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		done(cmd.OutOrStdout(), "Settings saved.")
		return nil
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the server can use",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		models, err := e.client.ListModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("list models: %w", err)
		}
		current := ""
		if s, err := e.client.GetSettings(cmd.Context()); err == nil {
			current = settings.NewStore().Apply(*s).Model
		}

		w := cmd.OutOrStdout()
		for _, o := range settings.ModelOptions(models, current) {
			if o.Value == current {
				successColor.Fprintf(w, "* %s\n", o.Label)
				continue
			}
			fmt.Fprintf(w, "  %s\n", o.Label)
		}
		return nil
	},
}

func init() {
	settingsSetCmd.Flags().String("theme", "", "Theme: system, light or dark")
	settingsSetCmd.Flags().String("model", "", "Model name")
	settingsSetCmd.Flags().String("practice-language", "", "Language to practice")
	settingsSetCmd.Flags().String("ui-language", "", "Language for explanations and hints")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
