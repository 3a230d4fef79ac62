package config

import (
	"fmt"
	"sort"
	"strings"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" json:"level,omitempty"`           // debug, info, warn, error
	Format     string          `yaml:"format" json:"format,omitempty"`         // json, console
	File       string          `yaml:"file" json:"file,omitempty"`             // extra output path, stderr is always used
	DebugMode  bool            `yaml:"debug_mode" json:"debug_mode,omitempty"` // false = category loggers are silent
	Categories map[string]bool `yaml:"categories" json:"categories,omitempty"` // per-category toggles
}

// LogCategories names the category loggers of the tool, in display order.
var LogCategories = []string{"boot", "generate", "verify", "eval", "quiz", "store", "export", "server"}

// DefaultLoggingConfig returns info-level console logging. When debug mode is
// switched on every category reports except verify, which logs one line per
// checked formula.
func DefaultLoggingConfig() LoggingConfig {
	cats := make(map[string]bool, len(LogCategories))
	for _, name := range LogCategories {
		cats[name] = name != "verify"
	}
	return LoggingConfig{
		Level:      "info",
		Format:     "console",
		Categories: cats,
	}
}

// IsCategoryEnabled reports whether a category logs below warn level.
// Nothing does outside debug mode; in debug mode a category is on unless
// switched off in Categories.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	enabled, exists := c.Categories[category]
	return !exists || enabled
}

// Validate checks the output format and rejects toggles for categories the
// tool does not have.
func (c *LoggingConfig) Validate() error {
	switch c.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %s (valid: json, console)", c.Format)
	}

	var unknown []string
	for name := range c.Categories {
		if !knownCategory(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown logging categories: %s (valid: %s)",
			strings.Join(unknown, ", "), strings.Join(LogCategories, ", "))
	}
	return nil
}

func knownCategory(name string) bool {
	for _, c := range LogCategories {
		if c == name {
			return true
		}
	}
	return false
}
