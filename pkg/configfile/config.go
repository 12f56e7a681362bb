// Package configfile loads process configuration for ignitectl and any other
// host binary embedding the client: CLI flags override environment
// variables, which override a config file, which override defaults.
package configfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/marmos91/ignitego/internal/telemetry"
	"github.com/marmos91/ignitego/pkg/igniteclient"
)

// Config is the full process configuration: connection settings plus the
// ambient stack (logging, telemetry, metrics).
type Config struct {
	Address  string `mapstructure:"address" validate:"required" yaml:"address"`
	Username string `mapstructure:"username" yaml:"username,omitempty"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`

	Logging   LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Telemetry telemetry.Config `mapstructure:"telemetry" yaml:"telemetry"`
	Metrics   MetricsConfig    `mapstructure:"metrics" yaml:"metrics"`
	History   HistoryConfig    `mapstructure:"history" yaml:"history"`
	Timeout   time.Duration    `mapstructure:"timeout" validate:"omitempty,gt=0" yaml:"timeout,omitempty"`
}

// HistoryConfig controls the local command-history audit log (see
// internal/history).
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Driver  string `mapstructure:"driver" validate:"omitempty,oneof=sqlite postgres" yaml:"driver,omitempty"`
	DSN     string `mapstructure:"dsn" yaml:"dsn,omitempty"`
}

// LoggingConfig controls the process-wide logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// MetricsConfig configures the Prometheus metrics HTTP endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// DefaultConfig returns a Config pre-populated with the defaults Load starts
// from before applying a config file and IGNITE_* environment variables.
func DefaultConfig() Config {
	return Config{
		Address: "127.0.0.1:10800",
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
			Output: "stderr",
		},
		Telemetry: telemetry.DefaultConfig(),
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
		History: HistoryConfig{
			Enabled: false,
			Driver:  "sqlite",
			DSN:     filepath.Join(configDir(), "history.db"),
		},
		Timeout: 10 * time.Second,
	}
}

// Load reads configuration from defaults, then configPath (or the default
// search path when empty), then environment variables prefixed IGNITE_, each
// layer overriding the one before, and validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if found {
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	applyEnvOverrides(&cfg, v)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks cfg's struct tags with go-playground/validator.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

// ToClientConfiguration converts the loaded Config into the programmatic
// igniteclient.Configuration builder used by Start.
func (c Config) ToClientConfiguration() igniteclient.Configuration {
	cfg := igniteclient.NewConfiguration().WithAddress(c.Address)
	if c.Username != "" {
		cfg = cfg.WithCredentials(c.Username, c.Password)
	}
	return cfg
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("IGNITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(configDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read config file: %w", err)
	}
	return true, nil
}

// applyEnvOverrides layers any IGNITE_* environment variables viper picked
// up on top of the file-or-default config, since v.Unmarshal only runs when
// a file was found.
func applyEnvOverrides(cfg *Config, v *viper.Viper) {
	if v.IsSet("address") {
		cfg.Address = v.GetString("address")
	}
	if v.IsSet("username") {
		cfg.Username = v.GetString("username")
	}
	if v.IsSet("password") {
		cfg.Password = v.GetString("password")
	}
	if v.IsSet("logging.level") {
		cfg.Logging.Level = v.GetString("logging.level")
	}
	if v.IsSet("logging.format") {
		cfg.Logging.Format = v.GetString("logging.format")
	}
	if v.IsSet("logging.output") {
		cfg.Logging.Output = v.GetString("logging.output")
	}
	if v.IsSet("telemetry.enabled") {
		cfg.Telemetry.Enabled = v.GetBool("telemetry.enabled")
	}
	if v.IsSet("telemetry.endpoint") {
		cfg.Telemetry.Endpoint = v.GetString("telemetry.endpoint")
	}
	if v.IsSet("telemetry.profilingenabled") {
		cfg.Telemetry.ProfilingEnabled = v.GetBool("telemetry.profilingenabled")
	}
	if v.IsSet("telemetry.profilingserveraddress") {
		cfg.Telemetry.ProfilingServerAddress = v.GetString("telemetry.profilingserveraddress")
	}
	if v.IsSet("metrics.enabled") {
		cfg.Metrics.Enabled = v.GetBool("metrics.enabled")
	}
	if v.IsSet("metrics.port") {
		cfg.Metrics.Port = v.GetInt("metrics.port")
	}
	if v.IsSet("history.enabled") {
		cfg.History.Enabled = v.GetBool("history.enabled")
	}
	if v.IsSet("history.driver") {
		cfg.History.Driver = v.GetString("history.driver")
	}
	if v.IsSet("history.dsn") {
		cfg.History.DSN = v.GetString("history.dsn")
	}
	if v.IsSet("timeout") {
		if d, err := time.ParseDuration(v.GetString("timeout")); err == nil {
			cfg.Timeout = d
		}
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ignitectl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "ignitectl")
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultMirrorDir returns the default directory for the local offline
// cache mirror (see internal/localcache).
func DefaultMirrorDir() string {
	return filepath.Join(configDir(), "mirror")
}
