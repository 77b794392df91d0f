// Package config loads snipforge configuration from a YAML file with
// defaults for every field, so a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all snipforge settings.
type Config struct {
	// Logging
	Debug bool `yaml:"debug"`

	// Compile verification
	Verify VerifyConfig `yaml:"verify"`

	// Watch mode
	Watch WatchConfig `yaml:"watch"`
}

// VerifyConfig configures the compile verifier.
type VerifyConfig struct {
	// Sandbox run bound, in seconds.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Extra stdlib packages allowed in sandboxed code.
	AllowedPackages []string `yaml:"allowed_packages"`
}

// WatchConfig configures the file watcher used by watch mode.
type WatchConfig struct {
	// Debounce for rapid saves, in milliseconds.
	DebounceMs int `yaml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Verify: VerifyConfig{
			TimeoutSeconds: 30,
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
	}
}

// Load reads path over the defaults. A missing file returns the defaults;
// a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SNIPFORGE_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Debug = debug
		}
	}
	if v := os.Getenv("SNIPFORGE_VERIFY_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Verify.TimeoutSeconds = secs
		}
	}
}

// VerifyTimeout returns the configured sandbox bound as a duration.
func (c *Config) VerifyTimeout() time.Duration {
	return time.Duration(c.Verify.TimeoutSeconds) * time.Second
}

// WatchDebounce returns the configured watch debounce as a duration.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}
