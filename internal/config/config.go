// Package config loads the lnkparse settings. Later sources override earlier
// ones: built-in defaults, an optional TOML file, the LNKPARSE_ENCODING
// environment variable and finally the command line flags that were set.
package config

import (
	"os"
	"runtime"
	"strings"

	"github.com/go-errors/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LNKPARSE_"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the settings of a run.
type Config struct {
	Strict   bool   `koanf:"strict"`
	Encoding string `koanf:"encoding"`
	Workers  int    `koanf:"workers"`
	Format   string `koanf:"format"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"strict":   true,
		"encoding": "",
		"workers":  runtime.NumCPU(),
		"format":   FormatText,
	}
}

// Load merges the configuration sources. path may be empty; flags holds only
// the flags explicitly given on the command line.
func Load(path string, flags map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// only the encoding may come from the environment
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if key != "encoding" {
			return ""
		}
		return key
	}), nil); err != nil {
		return nil, errors.Errorf("failed to load environment: %w", err)
	}

	if len(flags) > 0 {
		if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, errors.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no run can use.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return errors.Errorf("unknown output format %q, expected %q or %q", c.Format, FormatText, FormatJSON)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
