package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Journal JournalConfig `yaml:"journal" json:"journal"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
	Output  OutputConfig  `yaml:"output" json:"output"`
}

// StorageConfig configures where the session is persisted
type StorageConfig struct {
	Path      string `yaml:"path" json:"path"`           // state file location
	Namespace string `yaml:"namespace" json:"namespace"` // key inside the state file
	Autosave  bool   `yaml:"autosave" json:"autosave"`   // save after every change
}

// JournalConfig configures the input journal
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"` // JSON lines file
}

// UIConfig configures the terminal builder
type UIConfig struct {
	Theme         string        `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	Columns       int           `yaml:"columns" json:"columns"`               // tiles per grid row
	ColorMode     string        `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	StatusTimeout time.Duration `yaml:"status_timeout" json:"status_timeout"` // how long status messages stay
}

// OutputConfig configures headless command output
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// Themes lists the accepted ui.theme values
var Themes = []string{"default", "high-contrast", "minimal"}

// Formats lists the accepted output.default_format values
var Formats = []string{"text", "json", "markdown", "csv"}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Storage: StorageConfig{
			Path:      "~/.local/share/calcbuilder/state.json",
			Namespace: "calculator-storage",
			Autosave:  true,
		},
		Journal: JournalConfig{
			Enabled: false,
			Path:    "~/.local/share/calcbuilder/journal.jsonl",
		},
		UI: UIConfig{
			Theme:         "default",
			Columns:       4,
			ColorMode:     "auto",
			StatusTimeout: 3 * time.Second,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			Verbose:       false,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateStorageConfig(); err != nil {
		return err
	}
	if err := c.validateJournalConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// ColorEnabled resolves color_mode against whether output is a terminal
func (c *Config) ColorEnabled(isTerminal bool) bool {
	switch c.UI.ColorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal
	}
}

func (c *Config) validateStorageConfig() error {
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("storage path must not be empty")
	}
	if strings.TrimSpace(c.Storage.Namespace) == "" {
		return fmt.Errorf("storage namespace must not be empty")
	}
	return nil
}

func (c *Config) validateJournalConfig() error {
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) == "" {
		return fmt.Errorf("journal path must be set when the journal is enabled")
	}
	return nil
}

// validateUIConfig validates terminal UI configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" && !contains(Themes, c.UI.Theme) {
		return fmt.Errorf("invalid theme: %s (must be one of: %s)", c.UI.Theme, strings.Join(Themes, ", "))
	}
	if c.UI.Columns < 1 || c.UI.Columns > 8 {
		return fmt.Errorf("columns must be between 1 and 8")
	}
	if c.UI.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.UI.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.UI.ColorMode)
		}
	}
	if c.UI.StatusTimeout < 0 {
		return fmt.Errorf("status_timeout must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" && !contains(Formats, c.Output.DefaultFormat) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.DefaultFormat, strings.Join(Formats, ", "))
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
