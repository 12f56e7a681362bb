package cache

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
	"github.com/marmos91/ignitego/pkg/igniteclient"
)

var sizeMode string

var sizeCmd = &cobra.Command{
	Use:   "size <name>",
	Short: "Count the entries in a cache",
	Long: `Report the number of entries in the named cache under the given
peek mode.

Examples:
  ignitectl cache size mycache
  ignitectl cache size mycache --mode primary`,
	Args: cobra.ExactArgs(1),
	RunE: runSize,
}

func init() {
	sizeCmd.Flags().StringVar(&sizeMode, "mode", "all", "Peek mode: all|near|primary|backup")
}

func runSize(cmd *cobra.Command, args []string) error {
	name := args[0]

	mode, err := parsePeekMode(sizeMode)
	if err != nil {
		return err
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	n, err := client.Cache(name).Size(mode)
	if err != nil {
		return fmt.Errorf("failed to get size: %w", err)
	}

	fmt.Println(n)
	return nil
}

func parsePeekMode(s string) (igniteclient.PeekMode, error) {
	switch s {
	case "", "all":
		return igniteclient.PeekAll, nil
	case "near":
		return igniteclient.PeekNear, nil
	case "primary":
		return igniteclient.PeekPrimary, nil
	case "backup":
		return igniteclient.PeekBackup, nil
	default:
		return 0, fmt.Errorf("invalid peek mode %q (valid: all, near, primary, backup)", s)
	}
}
