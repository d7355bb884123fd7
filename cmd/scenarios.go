package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoflow/internal/ui/layout"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List or regenerate practice scenarios",
}

var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		list, err := e.client.ListScenarios(cmd.Context())
		if err != nil {
			return fmt.Errorf("list scenarios: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(w, "No scenarios. Run `lingoflow scenarios generate` to create some.")
			return nil
		}

		heading(w, "%-24s  %-36s  %s", "ID", "Setting", "Goal")
		rule(w, 100)
		for _, s := range list {
			fmt.Fprintf(w, "%-24s  %-36s  %s\n",
				layout.Truncate(s.ID, 24), layout.Truncate(s.Setting, 36), s.Goal)
		}
		fmt.Fprintf(w, "\n%d scenarios\n", len(list))
		return nil
	},
}

var scenariosGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask the server to generate a fresh set of scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Generating scenarios, this can take a while...")
		if err := e.client.GenerateScenarios(cmd.Context()); err != nil {
			return fmt.Errorf("generate scenarios: %w", err)
		}

		list, err := e.client.ListScenarios(cmd.Context())
		if err != nil {
			return fmt.Errorf("list scenarios: %w", err)
		}
		done(w, "Generated %d scenarios.", len(list))
		return nil
	},
}

var scenariosClipartCmd = &cobra.Command{
	Use:   "clipart <name>",
	Short: "Download a scenario illustration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			return fmt.Errorf("--output is required")
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		data, err := e.client.Clipart(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch clipart: %w", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write clipart: %w", err)
		}
		done(cmd.OutOrStdout(), "Saved %s (%d bytes)", out, len(data))
		return nil
	},
}

func init() {
	scenariosClipartCmd.Flags().StringP("output", "o", "", "File to write the image to")

	scenariosCmd.AddCommand(scenariosListCmd)
	scenariosCmd.AddCommand(scenariosGenerateCmd)
	scenariosCmd.AddCommand(scenariosClipartCmd)
}
