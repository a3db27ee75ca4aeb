// Package config handles loading and saving bwtree configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/bwtree/config.yaml
//   - State:   ~/.local/state/bwtree/ (tree-state.json)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "bwtree"

// StateFileName is the default name of the persisted tree state.
const StateFileName = "tree-state.json"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// TreeConfig holds the visual choices of the tree view.
type TreeConfig struct {
	IndentWidth     int    `yaml:"indent_width"`
	HighlightSymbol string `yaml:"highlight_symbol"`
	OpenSymbol      string `yaml:"open_symbol"`
	ClosedSymbol    string `yaml:"closed_symbol"`
	LeafSymbol      string `yaml:"leaf_symbol"`
	Height          int    `yaml:"height,omitempty"`          // 0 = terminal height
	HighlightColor  string `yaml:"highlight_color,omitempty"` // lipgloss color, e.g. "#7D56F4" or "62"
	Connectors      bool   `yaml:"connectors,omitempty"`      // ├── └── │ instead of symbols
}

// KeysConfig tunes input handling.
type KeysConfig struct {
	ScrollStep int `yaml:"scroll_step"` // Rows per ctrl+e / ctrl+y
}

// StateConfig controls tree state persistence by the host.
type StateConfig struct {
	Persist bool   `yaml:"persist"`
	File    string `yaml:"file,omitempty"` // Default: <StateDir>/tree-state.json
}

// Config is the top-level configuration for bwtree.
type Config struct {
	Tree  TreeConfig  `yaml:"tree"`
	Keys  KeysConfig  `yaml:"keys"`
	State StateConfig `yaml:"state"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Tree: TreeConfig{
			IndentWidth:     2,
			HighlightSymbol: ">> ",
			OpenSymbol:      "▼ ",
			ClosedSymbol:    "▶ ",
			LeafSymbol:      "  ",
			HighlightColor:  "62",
		},
		Keys: KeysConfig{
			ScrollStep: 1,
		},
		State: StateConfig{
			Persist: true,
		},
	}
}

// ConfigDir returns the XDG config directory for bwtree.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// StateDir returns the XDG state directory for bwtree.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// StatePath returns where the tree state is persisted: the configured file,
// or tree-state.json in the state directory.
func (c Config) StatePath() string {
	if c.State.File != "" {
		return expandHome(c.State.File)
	}
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, StateFileName)
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Keys missing from the file keep
// their defaults. Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	cfg.State.File = expandHome(cfg.State.File)
	return cfg, nil
}

// Validate rejects values the renderer cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Tree.IndentWidth < 0 {
		errs = append(errs, fmt.Errorf("tree.indent_width must be >= 0, got %d", c.Tree.IndentWidth))
	}
	if c.Tree.Height < 0 {
		errs = append(errs, fmt.Errorf("tree.height must be >= 0, got %d", c.Tree.Height))
	}
	if c.Keys.ScrollStep < 1 {
		errs = append(errs, fmt.Errorf("keys.scroll_step must be >= 1, got %d", c.Keys.ScrollStep))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
