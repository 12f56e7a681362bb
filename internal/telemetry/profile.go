package telemetry

import (
	"fmt"

	"github.com/grafana/pyroscope-go"
)

var activeProfiler *pyroscope.Profiler

// startProfiling launches continuous CPU/heap profiling against a Pyroscope
// server when cfg.ProfilingEnabled is set, alongside (not instead of) the
// OTLP tracer configured by Init. Profiling is independent of tracing: a
// caller debugging a hot dispatch loop may want profiles without paying for
// a collector, or vice versa.
func startProfiling(cfg Config) (*pyroscope.Profiler, error) {
	if !cfg.ProfilingEnabled {
		return nil, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ServiceName,
		ServerAddress:   cfg.ProfilingServerAddress,
		Tags:            map[string]string{"version": cfg.ServiceVersion},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("start profiler: %w", err)
	}
	return profiler, nil
}
