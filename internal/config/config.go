// Package config loads ~/.kanbo/config.yaml. A missing file is not an
// error: defaults are written back so the user has something to edit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

type Config struct {
	// SavePath overrides where the board file lives. Empty means the
	// default under the config dir.
	SavePath string `yaml:"savePath,omitempty"`

	UndoDepth       int `yaml:"undoDepth"`
	AutosaveSeconds int `yaml:"autosaveSeconds"`
	SearchGramSize  int `yaml:"searchGramSize"`

	DisableUpdateCheck bool   `yaml:"disableUpdateCheck"`
	UpdateEndpoint     string `yaml:"updateEndpoint,omitempty"`

	LogLevel string `yaml:"logLevel"`

	// Keys maps action names to key chords ("ctrl+z", "shift+tab", "D").
	// Unset actions keep their default binding.
	Keys map[string]string `yaml:"keys,omitempty"`
}

func Default() Config {
	return Config{
		UndoDepth:       100,
		AutosaveSeconds: 60,
		SearchGramSize:  3,
		LogLevel:        "info",
	}
}

func Path(dir string) string {
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file at path. When the file is missing, defaults
// are written there and returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if werr := Write(path, cfg); werr != nil {
			return cfg, werr
		}
		return cfg, nil
	}
	if err != nil {
		return Default(), err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.UndoDepth <= 0 {
		cfg.UndoDepth = def.UndoDepth
	}
	if cfg.AutosaveSeconds < 0 {
		cfg.AutosaveSeconds = def.AutosaveSeconds
	}
	if cfg.SearchGramSize <= 0 {
		cfg.SearchGramSize = def.SearchGramSize
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = def.LogLevel
	}
}

// Validate rejects two actions bound to the same chord, which would make
// one of them unreachable.
func (c Config) Validate() error {
	byChord := map[string][]string{}
	for action, chord := range c.Keys {
		norm := strings.ToLower(strings.TrimSpace(chord))
		if norm == "" {
			continue
		}
		byChord[norm] = append(byChord[norm], action)
	}
	var overlapped []string
	for chord, actions := range byChord {
		if len(actions) > 1 {
			sort.Strings(actions)
			overlapped = append(overlapped, fmt.Sprintf("%q -> %s", chord, strings.Join(actions, ", ")))
		}
	}
	if len(overlapped) > 0 {
		sort.Strings(overlapped)
		return fmt.Errorf("overlapping keybindings: %s", strings.Join(overlapped, "; "))
	}
	return nil
}
