package cache

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
	"github.com/marmos91/ignitego/internal/output"
	"github.com/marmos91/ignitego/pkg/igniteclient"
)

var configCmd = &cobra.Command{
	Use:   "config <name>",
	Short: "Show a cache's configuration",
	Long: `Fetch and display the named cache's full configuration.

Examples:
  ignitectl cache config mycache
  ignitectl cache config mycache -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	cfg, err := client.Cache(name).GetConfiguration()
	if err != nil {
		return fmt.Errorf("failed to get configuration: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, cfg)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, cfg)
	default:
		return output.SimpleTable(os.Stdout, configPairs(cfg))
	}
}

func configPairs(cfg igniteclient.CacheConfiguration) [][2]string {
	return [][2]string{
		{"Name", cfg.Name},
		{"Mode", strconv.Itoa(int(cfg.Mode))},
		{"Atomicity", strconv.Itoa(int(cfg.AtomicityMode))},
		{"Backups", strconv.Itoa(int(cfg.Backups))},
		{"Write sync", strconv.Itoa(int(cfg.WriteSynchronizationMode))},
		{"Rebalance mode", strconv.Itoa(int(cfg.RebalanceMode))},
		{"On-heap cache", cmdutil.BoolToYesNo(cfg.OnHeapCacheEnabled)},
		{"Statistics enabled", cmdutil.BoolToYesNo(cfg.StatisticsEnabled)},
		{"Group name", cmdutil.EmptyOr(cfg.GroupName, "-")},
		{"SQL schema", cmdutil.EmptyOr(cfg.SQLSchema, "-")},
	}
}
