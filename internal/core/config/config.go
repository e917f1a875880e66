// Package config handles configuration loading and validation for tsk.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. The spec's open questions —
// the confirmation grammar, what counts as destructive, and how undo
// disambiguates — are configuration points, not hardcoded guesses.
type Config struct {
	Confirm     ConfirmConfig       `yaml:"confirm"`
	Destructive []string            `yaml:"destructive"`
	Synonyms    map[string][]string `yaml:"synonyms"`
	Undo        UndoConfig          `yaml:"undo"`
	List        ListConfig          `yaml:"list"`
	Filters     map[string]Filter   `yaml:"filters"`
	DataDir     string              `yaml:"-"` // set by caller, not from config file
}

// ConfirmConfig is the yes/no vocabulary for confirmation prompts.
type ConfirmConfig struct {
	Yes []string `yaml:"yes"`
	No  []string `yaml:"no"`
}

// UndoChoose values.
const (
	UndoChooseLatest = "latest"
	UndoChoosePrompt = "prompt"
)

// UndoConfig controls undo behavior.
type UndoConfig struct {
	// Choose selects the undo target when several candidates exist:
	// "latest" reverses the most recent mutation, "prompt" asks the user
	// to disambiguate.
	Choose string `yaml:"choose"`
	// Limit bounds the undo history. 0 means the default.
	Limit int `yaml:"limit"`
}

// ListConfig controls the default list view.
type ListConfig struct {
	// Default is the filter applied when `list` is run bare:
	// "pending" or "all".
	Default string `yaml:"default"`
}

// Filter is a named, user-defined list filter.
type Filter struct {
	// Tags are doublestar glob patterns matched against task tags.
	Tags []string `yaml:"tags"`
	// Done filters by completion state when set.
	Done *bool `yaml:"done"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Confirm: ConfirmConfig{
			Yes: []string{"y", "yes"},
			No:  []string{"n", "no"},
		},
		Destructive: []string{"delete"},
		Undo: UndoConfig{
			Choose: UndoChooseLatest,
			Limit:  50,
		},
		List: ListConfig{
			Default: "pending",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if len(c.Confirm.Yes) == 0 {
		c.Confirm.Yes = defaults.Confirm.Yes
	}
	if len(c.Confirm.No) == 0 {
		c.Confirm.No = defaults.Confirm.No
	}
	if c.Destructive == nil {
		c.Destructive = defaults.Destructive
	}
	if c.Undo.Choose == "" {
		c.Undo.Choose = defaults.Undo.Choose
	}
	if c.Undo.Limit == 0 {
		c.Undo.Limit = defaults.Undo.Limit
	}
	if c.List.Default == "" {
		c.List.Default = defaults.List.Default
	}
}
