// Package history implements the "ignitectl history" command, which lists
// recent entries from the local command-history audit log.
package history

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
	"github.com/marmos91/ignitego/internal/output"
)

var limit int

// Cmd lists recent ignitectl invocations from the local history store.
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent ignitectl command history",
	Long: `Show the most recent ignitectl invocations recorded in the local
history store (see the "history" section of the config file to enable it
and choose a SQLite or Postgres backend).`,
	RunE: runHistory,
}

func init() {
	Cmd.Flags().IntVar(&limit, "limit", 20, "Number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := cmdutil.OpenHistoryStore(cmdutil.Flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	if store == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "history recording is disabled (see history.enabled in the config file)")
		return nil
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	table := output.NewTableData("TIME", "COMMAND", "ARGS", "ADDRESS", "SUCCESS")
	for _, e := range entries {
		status := "yes"
		if !e.Success {
			status = "no (" + e.Error + ")"
		}
		table.AddRow(e.CreatedAt.Format("2006-01-02 15:04:05"), e.Command, e.Args, e.Address, status)
	}

	return cmdutil.PrintOutput(os.Stdout, entries, len(entries) == 0, "No command history recorded yet.", table)
}
