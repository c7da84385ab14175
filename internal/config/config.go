// Package config loads learnlog configuration from a TOML file with the
// precedence chain defaults → config file → environment → CLI flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	defaultServerURL      = "http://localhost:5000"
	defaultLogLevel       = "info"
	defaultProbeInterval  = 30 * time.Second
	defaultRequestTimeout = 30 * time.Second
)

// Config is the on-disk configuration.
type Config struct {
	ServerURL      string   `toml:"server_url"`
	DataDir        string   `toml:"data_dir"`
	LogLevel       string   `toml:"log_level"`
	ProbeInterval  duration `toml:"probe_interval"`
	RequestTimeout duration `toml:"request_timeout"`
}

// duration wraps time.Duration with TOML string parsing ("30s", "2m").
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("config: parsing duration %q: %w", text, err)
	}

	d.Duration = parsed

	return nil
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:      defaultServerURL,
		DataDir:        DefaultDataDir(),
		LogLevel:       defaultLogLevel,
		ProbeInterval:  duration{defaultProbeInterval},
		RequestTimeout: duration{defaultRequestTimeout},
	}
}

// Load reads and parses a TOML config file, validates it, and returns the
// result. Unknown keys are fatal — silently ignoring a typo in a config
// file leads to hard-to-debug behavior.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: unknown key %q in %s", undecoded[0].String(), path)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault reads the config file if it exists, otherwise returns
// defaults. Supports the zero-config first-run experience.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// EnvOverrides holds environment-variable overrides.
type EnvOverrides struct {
	ConfigPath string
	ServerURL  string
	DataDir    string
}

// ReadEnvOverrides reads the LEARNLOG_* environment variables.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath: os.Getenv("LEARNLOG_CONFIG"),
		ServerURL:  os.Getenv("LEARNLOG_SERVER_URL"),
		DataDir:    os.Getenv("LEARNLOG_DATA_DIR"),
	}
}

// CLIOverrides holds flag-level overrides (highest priority).
type CLIOverrides struct {
	ConfigPath string
	ServerURL  string
	DataDir    string
}

// Resolve applies the full override chain and returns the effective
// configuration.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Config, error) {
	path := DefaultConfigPath()
	if env.ConfigPath != "" {
		path = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		path = cli.ConfigPath
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		return nil, err
	}

	if env.ServerURL != "" {
		cfg.ServerURL = env.ServerURL
	}

	if env.DataDir != "" {
		cfg.DataDir = env.DataDir
	}

	if cli.ServerURL != "" {
		cfg.ServerURL = cli.ServerURL
	}

	if cli.DataDir != "" {
		cfg.DataDir = cli.DataDir
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks field values after all overrides are applied.
func (c *Config) validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: server_url %q is not an absolute URL", c.ServerURL)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}

	if c.ProbeInterval.Duration <= 0 {
		return fmt.Errorf("config: probe_interval must be positive, got %s", c.ProbeInterval)
	}

	if c.RequestTimeout.Duration <= 0 {
		return fmt.Errorf("config: request_timeout must be positive, got %s", c.RequestTimeout)
	}

	return nil
}
