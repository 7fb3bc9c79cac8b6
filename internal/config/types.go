// Package config provides configuration management for sqlmark.
//
// Configuration is assembled from defaults, an optional sqlmark.yaml file,
// SQLMARK_-prefixed environment variables, and CLI flags, in increasing
// order of precedence.
package config

import (
	"github.com/leapstack-labs/sqlmark/pkg/annotate"
)

// Config holds all sqlmark configuration options.
type Config struct {
	// OutputFormat selects how results are rendered (auto|text|json).
	OutputFormat string `koanf:"output"`

	// Verbose enables debug-level logging.
	Verbose bool `koanf:"verbose"`

	// Diagnostics enables unmatched-reference reporting.
	Diagnostics bool `koanf:"diagnostics"`

	// Icons overrides or extends the built-in reference-type icon table.
	Icons map[string]string `koanf:"icons"`

	// UI configures the annotation HTTP service.
	UI *UIConfig `koanf:"ui"`
}

// UIConfig holds configuration for the annotation HTTP service.
type UIConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port: DefaultUIPort,
		Host: "localhost",
	}
}

// GetUIConfig returns the UI config with defaults applied for unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = DefaultUIPort
	}
	if ui.Host == "" {
		ui.Host = "localhost"
	}
	return ui
}

// IconSet returns the built-in icon table with any configured overrides
// applied on top.
func (c *Config) IconSet() annotate.IconSet {
	icons := annotate.DefaultIcons()
	for refType, icon := range c.Icons {
		icons[refType] = icon
	}
	return icons
}
