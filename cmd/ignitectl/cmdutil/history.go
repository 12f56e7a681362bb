package cmdutil

import (
	"strings"

	"github.com/marmos91/ignitego/internal/history"
	"github.com/marmos91/ignitego/pkg/configfile"
)

// OpenHistoryStore opens the history store configured for configPath, or
// (nil, nil) if history recording is disabled.
func OpenHistoryStore(configPath string) (*history.Store, error) {
	cfg, err := configfile.Load(configPath)
	if err != nil || !cfg.History.Enabled {
		return nil, err
	}

	if cfg.History.Driver == "postgres" {
		return history.OpenPostgres(cfg.History.DSN)
	}
	return history.OpenSQLite(cfg.History.DSN)
}

// RecordHistory persists one command invocation to the configured history
// store, if enabled. Failures to open or write the store are swallowed:
// history is a convenience, not something a command should fail over.
func RecordHistory(commandPath string, args []string, runErr error) {
	store, err := OpenHistoryStore(Flags.ConfigPath)
	if err != nil || store == nil {
		return
	}
	defer func() { _ = store.Close() }()

	entry := history.Entry{
		Command: commandPath,
		Args:    strings.Join(args, " "),
		Address: Flags.Address,
		Success: runErr == nil,
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	_ = store.Record(entry)
}
