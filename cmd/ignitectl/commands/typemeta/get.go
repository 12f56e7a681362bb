package typemeta

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
	"github.com/marmos91/ignitego/internal/output"
)

var getCmd = &cobra.Command{
	Use:   "get <typeId>",
	Short: "Fetch the full type descriptor registered for a type id",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	typeID, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid type id %q: %w", args[0], err)
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	t, err := client.GetType(int32(typeID))
	if err != nil {
		return fmt.Errorf("failed to get type: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, t)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, t)
	default:
		pairs := [][2]string{
			{"Type id", strconv.Itoa(int(t.TypeID))},
			{"Type name", t.TypeName},
			{"Affinity key field", cmdutil.EmptyOr(t.AffinityKeyField, "-")},
			{"Field count", strconv.Itoa(len(t.Fields))},
			{"Is enum", cmdutil.BoolToYesNo(t.IsEnum)},
			{"Schema count", strconv.Itoa(len(t.Schemas))},
		}
		return output.SimpleTable(os.Stdout, pairs)
	}
}
