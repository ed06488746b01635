package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Fuabioo/zipaudit/internal/errors"
	"github.com/Fuabioo/zipaudit/internal/policy"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds global configuration for zipaudit.
type Config struct {
	Policy  policy.Policy `json:"policy" yaml:"policy"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

// OutputConfig controls how reports are printed.
type OutputConfig struct {
	Format string `json:"format" yaml:"format"`
	Color  string `json:"color" yaml:"color"`
}

// MetricsConfig controls the Prometheus endpoint of the MCP server.
// An empty Addr disables it.
type MetricsConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// DefaultConfig returns the configuration used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Policy: policy.Default(),
		Output: OutputConfig{
			Format: FormatJSON,
			Color:  ColorAuto,
		},
	}
}

// configFiles are tried in order; the first one present wins.
var configFiles = []struct {
	name      string
	unmarshal func([]byte, any) error
}{
	{name: "config.yaml", unmarshal: yaml.Unmarshal},
	{name: "config.yml", unmarshal: yaml.Unmarshal},
	{name: "config.json", unmarshal: json.Unmarshal},
}

// Load loads configuration from the first config file found in dir.
// Falls back to defaults when none exists. Environment variables override
// both file and default values.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()

	for _, f := range configFiles {
		path := filepath.Join(dir, f.name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.InvalidConfig(path, fmt.Errorf("failed to read: %w", err))
		}
		if err := f.unmarshal(data, cfg); err != nil {
			return nil, errors.InvalidConfig(path, err)
		}
		break
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, errors.InvalidConfig("environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.InvalidConfig(dir, err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) error {
	if val, ok := os.LookupEnv("ZIPAUDIT_MAX_RATIO"); ok {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid ZIPAUDIT_MAX_RATIO: %w", err)
		}
		cfg.Policy.MaxRatio = parsed
	}

	if val, ok := os.LookupEnv("ZIPAUDIT_MAX_DEPTH"); ok {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid ZIPAUDIT_MAX_DEPTH: %w", err)
		}
		cfg.Policy.MaxDepth = parsed
	}

	if val, ok := os.LookupEnv("ZIPAUDIT_REJECT_ENCRYPTED"); ok {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid ZIPAUDIT_REJECT_ENCRYPTED: %w", err)
		}
		cfg.Policy.RejectEncrypted = parsed
	}

	if val := os.Getenv("ZIPAUDIT_NO_COLOR"); val != "" {
		cfg.Output.Color = ColorNever
	}

	if val, ok := os.LookupEnv("ZIPAUDIT_METRICS_ADDR"); ok {
		cfg.Metrics.Addr = val
	}

	return nil
}

// Validate rejects values no command can act on.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatText:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}

	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q", c.Output.Color)
	}

	if c.Policy.MaxRatio < 0 {
		return fmt.Errorf("policy max_ratio must not be negative, got %g", c.Policy.MaxRatio)
	}
	if c.Policy.MaxDepth < 0 {
		return fmt.Errorf("policy max_depth must not be negative, got %d", c.Policy.MaxDepth)
	}

	return nil
}
