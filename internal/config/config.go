// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all phonebook configuration.
type Config struct {
	REPL   REPL   `yaml:"repl"`
	Export Export `yaml:"export"`
	TUI    TUI    `yaml:"tui"`
}

// REPL holds line-loop settings.
type REPL struct {
	Prompt string `yaml:"prompt"`
}

// Export holds snapshot output settings.
type Export struct {
	Indent bool `yaml:"indent"` // Pretty-print JSON exports
}

// TUI holds interactive terminal settings.
type TUI struct {
	History int `yaml:"history"` // Transcript lines kept on screen
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		REPL:   REPL{Prompt: "> "},
		Export: Export{Indent: true},
		TUI:    TUI{History: 200},
	}
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.REPL.Prompt == "" {
		return errors.New("config: repl.prompt cannot be empty")
	}
	if c.TUI.History <= 0 {
		return fmt.Errorf("config: tui.history must be positive, got %d", c.TUI.History)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: PHONEBOOK_PROMPT, PHONEBOOK_EXPORT_INDENT, PHONEBOOK_TUI_HISTORY.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PHONEBOOK_PROMPT"); v != "" {
		c.REPL.Prompt = v
	}
	if v := os.Getenv("PHONEBOOK_EXPORT_INDENT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid PHONEBOOK_EXPORT_INDENT %q: %w", v, err)
		}
		c.Export.Indent = b
	}
	if v := os.Getenv("PHONEBOOK_TUI_HISTORY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PHONEBOOK_TUI_HISTORY %q: %w", v, err)
		}
		c.TUI.History = n
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	REPL   *rawREPL   `yaml:"repl"`
	Export *rawExport `yaml:"export"`
	TUI    *rawTUI    `yaml:"tui"`
}

type rawREPL struct {
	Prompt *string `yaml:"prompt"`
}

type rawExport struct {
	Indent *bool `yaml:"indent"`
}

type rawTUI struct {
	History *int `yaml:"history"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.REPL != nil && layer.REPL.Prompt != nil {
		c.REPL.Prompt = *layer.REPL.Prompt
	}
	if layer.Export != nil && layer.Export.Indent != nil {
		c.Export.Indent = *layer.Export.Indent
	}
	if layer.TUI != nil && layer.TUI.History != nil {
		c.TUI.History = *layer.TUI.History
	}
}
