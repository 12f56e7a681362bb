// Package commands implements the CLI commands for ignitectl.
package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
	cachecmd "github.com/marmos91/ignitego/cmd/ignitectl/commands/cache"
	historycmd "github.com/marmos91/ignitego/cmd/ignitectl/commands/history"
	shellcmd "github.com/marmos91/ignitego/cmd/ignitectl/commands/shell"
	typemetacmd "github.com/marmos91/ignitego/cmd/ignitectl/commands/typemeta"
)

// Version information injected at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ignitectl",
	Short: "ignitectl - Apache Ignite thin-client command line tool",
	Long: `ignitectl is a command-line client for an Apache Ignite cluster,
speaking the thin-client binary protocol directly.

Use this tool to inspect and manipulate caches, manage binary type
metadata, and explore a cluster interactively.

Use "ignitectl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmdutil.Flags.Address, _ = cmd.Flags().GetString("addr")
		cmdutil.Flags.Username, _ = cmd.Flags().GetString("user")
		cmdutil.Flags.Password, _ = cmd.Flags().GetString("password")
		cmdutil.Flags.ConfigPath, _ = cmd.Flags().GetString("config")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")
		cmdutil.Flags.Timeout, _ = cmd.Flags().GetDuration("timeout")

		lastCommandPath = cmd.CommandPath()
		lastCommandArgs = args
	},
}

// lastCommandPath and lastCommandArgs record the leaf command actually
// invoked, captured in PersistentPreRun (which always runs, success or
// failure) so Execute can log it to the history store after RunE returns.
var (
	lastCommandPath string
	lastCommandArgs []string
)

// Execute runs the root command, recording the invocation to the local
// history store (if enabled) regardless of outcome. The "history" command
// itself is never recorded, so reading history doesn't pollute it.
func Execute() error {
	err := rootCmd.Execute()
	if lastCommandPath != "" && lastCommandPath != historycmd.Cmd.CommandPath() {
		cmdutil.RecordHistory(lastCommandPath, lastCommandArgs, err)
	}
	return err
}

// GetRootCmd returns the root command, for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("addr", "", "Server address host:port (overrides config file)")
	rootCmd.PersistentFlags().String("user", "", "Username (overrides config file)")
	rootCmd.PersistentFlags().String("password", "", "Password (overrides config file)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: "+"~/.config/ignitectl/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "Connection timeout")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cachecmd.Cmd)
	rootCmd.AddCommand(typemetacmd.Cmd)
	rootCmd.AddCommand(shellcmd.Cmd)
	rootCmd.AddCommand(historycmd.Cmd)
	rootCmd.AddCommand(completionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}
