package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoflow/internal/api"
	"github.com/abhisek/lingoflow/internal/history"
	"github.com/abhisek/lingoflow/internal/markup"
	"github.com/abhisek/lingoflow/internal/ui/layout"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and manage completed conversations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List completed conversations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		entries, err := e.client.ListHistory(cmd.Context())
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(w, history.EmptyText)
			return nil
		}

		heading(w, "%5s  %-22s  %-28s  %-14s  %s", "ID", "When", "Scenario", "Language", "Model")
		rule(w, 100)
		for _, h := range entries {
			fmt.Fprintf(w, "%5d  %-22s  %-28s  %-14s  %s\n",
				h.ID,
				history.FormatTimestamp(h.Timestamp, time.Local),
				layout.Truncate(history.Title(h.ScenarioID), 28),
				h.PracticeLanguage,
				history.ModelBadge(h.Model))
		}
		fmt.Fprintf(w, "\n%d conversations\n", len(entries))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a conversation transcript and its breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		w := cmd.OutOrStdout()
		plain := markup.Plain{}

		// The two fetches are independent; a failure in one still prints
		// the other.
		msgs, tErr := e.client.GetHistoryDetail(ctx, id)
		summary, sErr := e.client.GetHistorySummary(ctx, id)

		heading(w, "Transcript")
		rule(w, 60)
		switch {
		case tErr != nil:
			warnColor.Fprintln(w, history.TranscriptFailedText)
		case len(msgs) == 0:
			fmt.Fprintln(w, history.TranscriptEmptyText)
		default:
			for _, m := range msgs {
				label, c := "Partner", botColor
				if m.Speaker == api.SpeakerUser {
					label, c = "You", userColor
				}
				c.Fprintf(w, "%s: ", label)
				fmt.Fprintln(w, plain.Render(m.Content, 0))
			}
		}

		fmt.Fprintln(w)
		heading(w, "Breakdown")
		rule(w, 60)
		switch {
		case sErr != nil:
			warnColor.Fprintln(w, history.SummaryFailedText)
		case summary == "":
			fmt.Fprintln(w, history.SummaryMissingText)
		default:
			fmt.Fprintln(w, plain.Render(summary, 0))
		}

		if tErr != nil {
			return fmt.Errorf("load transcript: %w", tErr)
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ok, err := confirm(cmd, fmt.Sprintf("Delete conversation %d?", id))
		if err != nil || !ok {
			return err
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.client.DeleteHistoryItem(cmd.Context(), id); err != nil {
			return fmt.Errorf("delete conversation %d: %w", id, err)
		}
		done(cmd.OutOrStdout(), "Deleted conversation %d.", id)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm(cmd, "Delete ALL history? This cannot be undone.")
		if err != nil || !ok {
			return err
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.client.DeleteAllHistory(cmd.Context()); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		done(cmd.OutOrStdout(), "History cleared.")
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid conversation id %q", s)
	}
	return id, nil
}

func init() {
	historyDeleteCmd.Flags().BoolP("yes", "y", false, "Do not prompt for confirmation")
	historyClearCmd.Flags().BoolP("yes", "y", false, "Do not prompt for confirmation")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}
