// Package telemetry wires OpenTelemetry tracing into the wire dispatcher.
package telemetry

// Config controls whether and how traces are exported.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Insecure       bool
	SampleRate     float64

	// ProfilingEnabled and ProfilingServerAddress control continuous
	// CPU/heap profiling via Pyroscope, independent of trace export.
	ProfilingEnabled       bool
	ProfilingServerAddress string
}

// DefaultConfig returns a disabled configuration pointing at a local
// collector, suitable as a starting point for callers who only want to
// override a couple of fields.
func DefaultConfig() Config {
	return Config{
		Enabled:                false,
		ServiceName:            "ignitego",
		ServiceVersion:         "dev",
		Endpoint:               "localhost:4317",
		Insecure:               true,
		SampleRate:             1.0,
		ProfilingEnabled:       false,
		ProfilingServerAddress: "http://localhost:4040",
	}
}
