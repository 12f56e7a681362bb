// Package cmdutil provides shared utilities for ignitectl commands: the
// global flag struct, client construction, and output helpers common
// across cache and binary-type subcommands.
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/marmos91/ignitego/internal/output"
	"github.com/marmos91/ignitego/internal/prompt"
	"github.com/marmos91/ignitego/pkg/configfile"
	"github.com/marmos91/ignitego/pkg/igniteclient"
)

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values synced from the root command's
// PersistentPreRun.
type GlobalFlags struct {
	Address    string
	Username   string
	Password   string
	ConfigPath string
	Output     string
	NoColor    bool
	Verbose    bool
	Timeout    time.Duration
}

// GetClient loads configuration (flags override config file override
// defaults) and opens a connection to the Ignite server.
func GetClient() (*igniteclient.Client, error) {
	cfg, err := configfile.Load(Flags.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if Flags.Address != "" {
		cfg.Address = Flags.Address
	}
	if Flags.Username != "" {
		cfg.Username = Flags.Username
	}
	if Flags.Password != "" {
		cfg.Password = Flags.Password
	}

	timeout := cfg.Timeout
	if Flags.Timeout > 0 {
		timeout = Flags.Timeout
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return igniteclient.Start(ctx, cfg.ToClientConfiguration())
}

// GetOutputFormatParsed returns the parsed --output format.
func GetOutputFormatParsed() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// IsColorDisabled returns whether color output is disabled.
func IsColorDisabled() bool { return Flags.NoColor }

// PrintOutput prints data in the configured format. For table format, it
// shows emptyMsg when isEmpty, otherwise renders tableRenderer.
func PrintOutput(w io.Writer, data any, isEmpty bool, emptyMsg string, tableRenderer output.TableRenderer) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		if isEmpty {
			_, _ = fmt.Fprintln(w, emptyMsg)
			return nil
		}
		return output.PrintTable(w, tableRenderer)
	}
}

// PrintResourceWithSuccess prints a success message in table format, or
// the resource itself in JSON/YAML.
func PrintResourceWithSuccess(w io.Writer, data any, successMsg string) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		PrintSuccess(successMsg)
		return nil
	}
}

// PrintSuccess prints a success message, only in table format.
func PrintSuccess(msg string) {
	format, err := GetOutputFormatParsed()
	if err != nil || format != output.FormatTable {
		return
	}
	output.NewPrinter(os.Stdout, format, !IsColorDisabled()).Success(msg)
}

// RunDeleteWithConfirmation prompts for confirmation (unless force is
// true) and runs deleteFn, reporting success afterward.
func RunDeleteWithConfirmation(resourceType, name string, force bool, deleteFn func() error) error {
	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Destroy %s '%s'?", resourceType, name), force)
	if err != nil {
		return HandleAbort(err)
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}
	if err := deleteFn(); err != nil {
		return err
	}
	PrintSuccess(fmt.Sprintf("%s '%s' destroyed successfully", resourceType, name))
	return nil
}

// HandleAbort turns a prompt abort (Ctrl+C) into a clean nil return,
// passing any other error through unchanged.
func HandleAbort(err error) error {
	if prompt.IsAborted(err) {
		fmt.Println("\nAborted.")
		return nil
	}
	return err
}

// ParseCommaSeparatedList splits a comma-separated string into trimmed,
// non-empty parts.
func ParseCommaSeparatedList(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// BoolToYesNo converts a boolean to "yes" or "no".
func BoolToYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// EmptyOr returns value, or fallback when value is empty.
func EmptyOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
