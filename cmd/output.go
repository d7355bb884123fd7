package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.FgHiBlack)
	userColor    = color.New(color.FgBlue, color.Bold)
	botColor     = color.New(color.FgMagenta, color.Bold)
)

func heading(w io.Writer, format string, a ...any) {
	headingColor.Fprintf(w, format+"\n", a...)
}

func rule(w io.Writer, n int) {
	dimColor.Fprintln(w, strings.Repeat("─", n))
}

func done(w io.Writer, format string, a ...any) {
	successColor.Fprintf(w, format+"\n", a...)
}

// confirm asks a y/N question on the command's streams. --yes answers it.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}

	warnColor.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
	return false, nil
}
