package typemeta

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
	"github.com/marmos91/ignitego/pkg/igniteclient"
)

var putFromFile string

var putCmd = &cobra.Command{
	Use:   "put",
	Short: "Register or replace a full type descriptor from a JSON file",
	Long: `Register or replace a full igniteclient.Type descriptor read from
--from-file, a JSON document matching Type's fields.

Examples:
  ignitectl type put --from-file person.json`,
	RunE: runPut,
}

func init() {
	putCmd.Flags().StringVar(&putFromFile, "from-file", "", "Path to a JSON file describing the type (required)")
	_ = putCmd.MarkFlagRequired("from-file")
	Cmd.AddCommand(putCmd)
}

func runPut(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(putFromFile)
	if err != nil {
		return fmt.Errorf("read type descriptor: %w", err)
	}

	var t igniteclient.Type
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("parse type descriptor: %w", err)
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.PutType(t); err != nil {
		return fmt.Errorf("failed to put type: %w", err)
	}

	cmdutil.PrintSuccess("Type registered successfully")
	return nil
}
