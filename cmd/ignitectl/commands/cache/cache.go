// Package cache implements cache management commands for ignitectl.
package cache

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for cache operations.
var Cmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache operations",
	Long: `Inspect and manipulate caches on an Ignite server.

Examples:
  # List every cache
  ignitectl cache list

  # Create a cache with default configuration
  ignitectl cache create mycache

  # Put a value and read it back
  ignitectl cache put mycache --key 1 --key-type i32 --value hello
  ignitectl cache get mycache --key 1 --key-type i32

  # Destroy a cache
  ignitectl cache destroy mycache`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(destroyCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(putCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(sizeCmd)
	Cmd.AddCommand(configCmd)
}
