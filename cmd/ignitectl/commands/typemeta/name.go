package typemeta

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
)

var nameCmd = &cobra.Command{
	Use:   "name <typeId>",
	Short: "Resolve the human-readable name registered for a type id",
	Args:  cobra.ExactArgs(1),
	RunE:  runName,
}

func runName(cmd *cobra.Command, args []string) error {
	typeID, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid type id %q: %w", args[0], err)
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	name, err := client.TypeName(int32(typeID))
	if err != nil {
		return fmt.Errorf("failed to resolve type name: %w", err)
	}

	fmt.Println(name)
	return nil
}
