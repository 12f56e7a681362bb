// Package typemeta implements binary type metadata commands for ignitectl.
package typemeta

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for binary type metadata operations.
var Cmd = &cobra.Command{
	Use:     "type",
	Aliases: []string{"typemeta"},
	Short:   "Binary type metadata operations",
	Long: `Inspect and register binary type metadata on an Ignite server.

Examples:
  ignitectl type name 12345
  ignitectl type register-name 12345 Person
  ignitectl type get 12345`,
}

func init() {
	Cmd.AddCommand(nameCmd)
	Cmd.AddCommand(registerNameCmd)
	Cmd.AddCommand(getCmd)
}
