package cache

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
)

var (
	removeKey     string
	removeKeyType string
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove the entry stored under a key",
	Long: `Remove --key from the named cache, reporting whether it was
present.

Examples:
  ignitectl cache remove mycache --key hello
  ignitectl cache remove mycache --key 1 --key-type i32`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().StringVar(&removeKey, "key", "", "Key (required)")
	removeCmd.Flags().StringVar(&removeKeyType, "key-type", "string", "Key type: string|i32|i64|f64|bool|uuid")
	_ = removeCmd.MarkFlagRequired("key")
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	key, err := cmdutil.ParseValue(removeKeyType, removeKey)
	if err != nil {
		return err
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	removed, err := client.Cache(name).RemoveKey(key)
	if err != nil {
		return fmt.Errorf("failed to remove key: %w", err)
	}

	if removed {
		cmdutil.PrintSuccess("Key removed")
	} else {
		cmdutil.PrintSuccess("Key was not present")
	}
	return nil
}
