// Package config loads the qrgen CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration. Rendering style is fixed and not part of
// it.
type Config struct {
	Services Services `yaml:"services"`
	Output   Output   `yaml:"output"`
	Log      Log      `yaml:"log"`
	Metrics  Metrics  `yaml:"metrics"`
}

// Services names the remote fallbacks, tried in order.
type Services struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
}

// Output configures where downloads are written.
type Output struct {
	Dir string `yaml:"dir"`
}

// Log configures the slog handler.
type Log struct {
	Level string `yaml:"level"`
}

// Metrics configures the Prometheus endpoint. An empty Addr disables it.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Services: Services{Primary: "googlecharts", Secondary: "qrserver"},
		Output:   Output{Dir: "."},
		Log:      Log{Level: "info"},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Services.Primary) == "" || strings.TrimSpace(c.Services.Secondary) == "" {
		return errors.New("services.primary and services.secondary are required")
	}
	if c.Services.Primary == c.Services.Secondary {
		return fmt.Errorf("services.primary and services.secondary must differ, both are %q", c.Services.Primary)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Log.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
