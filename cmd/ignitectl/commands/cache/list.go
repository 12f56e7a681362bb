package cache

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
	"github.com/marmos91/ignitego/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every cache on the server",
	Long: `List every cache currently known to the server.

Examples:
  # List as a table
  ignitectl cache list

  # List as JSON
  ignitectl cache list -o json`,
	RunE: runList,
}

// nameList renders a []string of cache names as a one-column table.
type nameList []string

func (n nameList) Headers() []string { return []string{"NAME"} }

func (n nameList) Rows() [][]string {
	rows := make([][]string, 0, len(n))
	for _, name := range n {
		rows = append(rows, []string{name})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	names, err := client.CacheNames()
	if err != nil {
		return fmt.Errorf("failed to list caches: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, names, len(names) == 0, "No caches found.", nameList(names))
}

var _ output.TableRenderer = nameList(nil)
