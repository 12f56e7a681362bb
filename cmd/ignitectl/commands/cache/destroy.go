package cache

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
	"github.com/marmos91/ignitego/internal/prompt"
)

var destroyForce bool

var destroyCmd = &cobra.Command{
	Use:   "destroy <name>",
	Short: "Destroy a cache and its data",
	Long: `Destroy a cache and every entry it holds.

This action is irreversible. You will be prompted for confirmation
unless --force is specified.

Examples:
  # Destroy with confirmation
  ignitectl cache destroy mycache

  # Destroy without confirmation
  ignitectl cache destroy mycache --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDestroy,
}

func init() {
	destroyCmd.Flags().BoolVarP(&destroyForce, "force", "f", false, "Skip confirmation prompt")
}

func runDestroy(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	cache := client.Cache(name)
	count, err := cache.Size()
	if err != nil {
		return fmt.Errorf("failed to size cache: %w", err)
	}

	confirmed, err := prompt.ConfirmDestroyCache(name, count, destroyForce)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	if err := client.DestroyCache(name); err != nil {
		return fmt.Errorf("failed to destroy cache: %w", err)
	}
	cmdutil.PrintSuccess(fmt.Sprintf("Cache '%s' destroyed successfully", name))
	return nil
}
