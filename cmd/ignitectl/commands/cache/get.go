package cache

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/ignitego/cmd/ignitectl/cmdutil"
	"github.com/marmos91/ignitego/internal/localcache"
	"github.com/marmos91/ignitego/internal/output"
	"github.com/marmos91/ignitego/pkg/configfile"
)

var (
	getKey     string
	getKeyType string
	getOffline bool
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Get the value stored under a key",
	Long: `Fetch the value stored under --key in the named cache.

With --offline, a value served successfully is mirrored to a local disk
store; if the server is unreachable on a later call, the last mirrored
value for that cache/key is served instead (clearly labeled as stale).

Examples:
  # Fetch a string-keyed value
  ignitectl cache get mycache --key hello

  # Fetch an i32-keyed value
  ignitectl cache get mycache --key 42 --key-type i32

  # Fall back to the last known value if the server is unreachable
  ignitectl cache get mycache --key hello --offline`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVar(&getKey, "key", "", "Key (required)")
	getCmd.Flags().StringVar(&getKeyType, "key-type", "string", "Key type: string|i32|i64|f64|bool|uuid")
	getCmd.Flags().BoolVar(&getOffline, "offline", false, "Serve the last known value from a local mirror if the server is unreachable")
	_ = getCmd.MarkFlagRequired("key")
}

func runGet(cmd *cobra.Command, args []string) error {
	name := args[0]

	key, err := cmdutil.ParseValue(getKeyType, getKey)
	if err != nil {
		return err
	}
	mirrorKey := getKeyType + ":" + getKey

	var mirror *localcache.Mirror
	if getOffline {
		if m, err := localcache.Open(configfile.DefaultMirrorDir()); err == nil {
			mirror = m
			defer func() { _ = mirror.Close() }()
		}
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		if rendered, ok, served := tryOffline(mirror, name, mirrorKey); served {
			return printValue(rendered, ok)
		}
		return err
	}
	defer func() { _ = client.Close() }()

	value, err := client.Cache(name).Get(key)
	if err != nil {
		if rendered, ok, served := tryOffline(mirror, name, mirrorKey); served {
			return printValue(rendered, ok)
		}
		return fmt.Errorf("failed to get value: %w", err)
	}

	rendered := cmdutil.FormatValue(value)
	if mirror != nil {
		_ = mirror.Record(name, mirrorKey, rendered)
	}
	return printValue(rendered, false)
}

// tryOffline looks up a mirrored value when mirror is non-nil, reporting
// served=true only if a lookup was actually attempted (so callers can tell
// "no mirror configured" apart from "mirror has nothing for this key").
func tryOffline(mirror *localcache.Mirror, cacheName, key string) (rendered string, stale bool, served bool) {
	if mirror == nil {
		return "", false, false
	}
	value, ok, err := mirror.Lookup(cacheName, key)
	if err != nil || !ok {
		return "", false, false
	}
	return value, true, true
}

func printValue(rendered string, stale bool) error {
	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	printer := output.NewPrinter(os.Stdout, format, !cmdutil.IsColorDisabled())
	if stale {
		printer.Warning("server unreachable; showing last known value from local mirror")
	}
	return printer.PrintValue("value", rendered)
}
