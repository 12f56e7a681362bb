package cache

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
)

var (
	putKey       string
	putKeyType   string
	putValue     string
	putValueType string
)

var putCmd = &cobra.Command{
	Use:   "put <name>",
	Short: "Store a value under a key",
	Long: `Store --value under --key in the named cache, overwriting any
existing value.

Examples:
  # Put a string value under a string key
  ignitectl cache put mycache --key hello --value world

  # Put an i32 value under an i32 key
  ignitectl cache put mycache --key 1 --key-type i32 --value 42 --value-type i32`,
	Args: cobra.ExactArgs(1),
	RunE: runPut,
}

func init() {
	putCmd.Flags().StringVar(&putKey, "key", "", "Key (required)")
	putCmd.Flags().StringVar(&putKeyType, "key-type", "string", "Key type: string|i32|i64|f64|bool|uuid")
	putCmd.Flags().StringVar(&putValue, "value", "", "Value (required)")
	putCmd.Flags().StringVar(&putValueType, "value-type", "string", "Value type: string|i32|i64|f64|bool|uuid")
	_ = putCmd.MarkFlagRequired("key")
	_ = putCmd.MarkFlagRequired("value")
}

func runPut(cmd *cobra.Command, args []string) error {
	name := args[0]

	key, err := cmdutil.ParseValue(putKeyType, putKey)
	if err != nil {
		return err
	}
	value, err := cmdutil.ParseValue(putValueType, putValue)
	if err != nil {
		return err
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Cache(name).Put(key, value); err != nil {
		return fmt.Errorf("failed to put value: %w", err)
	}

	cmdutil.PrintSuccess("Value stored successfully")
	return nil
}
