package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all kidsmath configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Problem generation defaults
	Worksheet WorksheetConfig `yaml:"worksheet"`

	// Spreadsheet export
	Export ExportConfig `yaml:"export"`

	// Quiz history database
	Store StoreConfig `yaml:"store"`

	// HTTP API
	Server ServerConfig `yaml:"server"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig configures the spreadsheet writer.
type ExportConfig struct {
	File string `yaml:"file"`
}

// StoreConfig configures the quiz history store.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	MaxTests        int    `yaml:"max_tests"` // upper bound on tests per request
}

// homeDir returns the user's home directory, or "." when it cannot be resolved.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return home
}

// DefaultConfigPath returns ~/.kidsmath/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), ".kidsmath", "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home := homeDir()
	return &Config{
		Name:    "kidsmath",
		Version: "1.0.0",

		Worksheet: DefaultWorksheetConfig(),

		Export: ExportConfig{
			File: filepath.Join(home, "kidsmath.xlsx"),
		},

		Store: StoreConfig{
			DatabasePath: filepath.Join(home, ".kidsmath", "history.db"),
		},

		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "10s",
			WriteTimeout:    "30s",
			ShutdownTimeout: "5s",
			MaxTests:        1000,
		},

		UI: *DefaultUIConfig(),

		Logging: DefaultLoggingConfig(),
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Missing file: defaults plus environment
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Malformed numbers are ignored and the file value is kept.
func (c *Config) applyEnvOverrides() {
	envInt := func(name string, dst *int) {
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}

	envInt("KIDSMATH_LOWER", &c.Worksheet.Lower)
	envInt("KIDSMATH_UPPER", &c.Worksheet.Upper)
	envInt("KIDSMATH_NUMBERS", &c.Worksheet.Numbers)
	envInt("KIDSMATH_TESTS", &c.Worksheet.Tests)

	if v := os.Getenv("KIDSMATH_OPERATORS"); v != "" {
		c.Worksheet.Operators = SplitOperators(v)
	}
	if path := os.Getenv("KIDSMATH_EXPORT_FILE"); path != "" {
		c.Export.File = path
	}
	if path := os.Getenv("KIDSMATH_DB"); path != "" {
		c.Store.DatabasePath = path
	}
	if addr := os.Getenv("KIDSMATH_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("KIDSMATH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// SplitOperators splits "+,-" or "+ -" into individual operator symbols.
func SplitOperators(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 10*time.Second)
}

// GetWriteTimeout returns the server write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 30*time.Second)
}

// GetShutdownTimeout returns how long the server may take to drain.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 5*time.Second)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Worksheet.Validate(); err != nil {
		return err
	}
	if c.Server.MaxTests < 1 {
		return fmt.Errorf("server.max_tests must be >= 1")
	}
	return c.Logging.Validate()
}
