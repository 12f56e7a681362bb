package cache

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
	"github.com/marmos91/ignitego/pkg/igniteclient"
)

var (
	createIfAbsent bool
	createSet      []string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a cache with default or overridden configuration",
	Long: `Create a new cache on the server with default configuration.

By default this fails if a cache with the same name already exists; pass
--if-absent to make it a no-op in that case instead.

Individual configuration fields can be overridden with repeated --set
key=value flags, using CacheConfiguration's own field names.

Examples:
  # Create a cache, failing if it already exists
  ignitectl cache create mycache

  # Create a cache only if it doesn't already exist
  ignitectl cache create mycache --if-absent

  # Create a cache with two backups and on-heap caching disabled
  ignitectl cache create mycache --set Backups=2 --set OnHeapCacheEnabled=false`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().BoolVar(&createIfAbsent, "if-absent", false, "Do nothing if the cache already exists")
	createCmd.Flags().StringArrayVar(&createSet, "set", nil, "Override a configuration field (key=value, repeatable)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if len(createSet) == 0 {
		if createIfAbsent {
			err = client.GetOrCreateCache(name)
		} else {
			err = client.CreateCache(name)
		}
		if err != nil {
			return fmt.Errorf("failed to create cache: %w", err)
		}
		cmdutil.PrintSuccess(fmt.Sprintf("Cache '%s' created successfully", name))
		return nil
	}

	overrides, err := cmdutil.ParseConfigOverrides(createSet)
	if err != nil {
		return err
	}
	cfg, err := cmdutil.ApplyConfigOverrides(igniteclient.CacheConfiguration{Name: name}, overrides)
	if err != nil {
		return err
	}

	if createIfAbsent {
		err = client.GetOrCreateCacheWithConfiguration(cfg)
	} else {
		err = client.CreateCacheWithConfiguration(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Cache '%s' created successfully", name))
	return nil
}
