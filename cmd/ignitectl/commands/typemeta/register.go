package typemeta

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
)

var registerNameCmd = &cobra.Command{
	Use:   "register-name <typeId> <name>",
	Short: "Register a human-readable name for a type id",
	Args:  cobra.ExactArgs(2),
	RunE:  runRegisterName,
}

func runRegisterName(cmd *cobra.Command, args []string) error {
	typeID, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid type id %q: %w", args[0], err)
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.RegisterTypeName(int32(typeID), args[1]); err != nil {
		return fmt.Errorf("failed to register type name: %w", err)
	}

	cmdutil.PrintSuccess("Type name registered successfully")
	return nil
}
