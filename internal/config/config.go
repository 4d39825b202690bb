// Package config defines the application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/invsys/invctl/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

// Config is the root configuration of the invctl binary.
type Config struct {
	Inventory InventoryConfig `koanf:"inventory"`
	Log       LogConfig       `koanf:"log"`
}

// InventoryConfig controls the inventory file and its lifecycle around a
// session.
type InventoryConfig struct {
	// File is the default path offered for save/load operations.
	File string `koanf:"file"`
	// AutoLoad loads File at startup when it exists.
	AutoLoad bool `koanf:"autoload"`
	// AutoSave writes File when the session ends.
	AutoSave bool `koanf:"autosave"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"inventory.file":     "inventory.json",
		"inventory.autoload": false,
		"inventory.autosave": false,
		"log.level":          "info",
		"log.format":         "text",
	}
}

// String returns a printable summary of the configuration.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("\n--- Inventory ---\n")
	b.WriteString(fmt.Sprintf("  file: %s\n", c.Inventory.File))
	b.WriteString(fmt.Sprintf("  autoload: %t\n", c.Inventory.AutoLoad))
	b.WriteString(fmt.Sprintf("  autosave: %t\n", c.Inventory.AutoSave))
	b.WriteString("--- Log ---\n")
	b.WriteString(fmt.Sprintf("  level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  format: %s\n", c.Log.Format))
	return b.String()
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Inventory.File == "" {
		return fmt.Errorf("inventory file is not configured")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
