package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/marmos91/ignitego/cmd/ignitectl/commands"
	"github.com/marmos91/ignitego/internal/adminserver"
	"github.com/marmos91/ignitego/internal/logger"
	"github.com/marmos91/ignitego/internal/metrics"
	"github.com/marmos91/ignitego/internal/protocol/wire"
	"github.com/marmos91/ignitego/internal/telemetry"
	"github.com/marmos91/ignitego/pkg/configfile"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	cfg, err := configfile.Load("")
	if err != nil {
		cfg = &configfile.Config{}
		*cfg = configfile.DefaultConfig()
	}
	_ = logger.Configure(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: cfg.Logging.Output})

	shutdown, err := telemetry.Init(context.Background(), cfg.Telemetry)
	if err != nil {
		fmt.Fprintln(os.Stderr, "telemetry init failed:", err)
	} else {
		defer func() { _ = shutdown(context.Background()) }()
	}

	reg := prometheus.NewRegistry()
	wire.SetMetrics(metrics.New(reg))

	if cfg.Metrics.Enabled {
		adminCtx, cancelAdmin := context.WithCancel(context.Background())
		defer cancelAdmin()
		admin := adminserver.New(fmt.Sprintf(":%d", cfg.Metrics.Port), reg)
		go func() {
			if err := admin.Start(adminCtx); err != nil {
				fmt.Fprintln(os.Stderr, "admin server error:", err)
			}
		}()
	}

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
