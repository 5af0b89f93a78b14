// Package config handles loading and saving trellis configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/trellis/config.yaml
//   - Data:    ~/.local/share/trellis/ (themes, exports)
//   - State:   ~/.local/state/trellis/ (view state cache)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is a registered data source in the config. Path points at a JSONL
// outline file or a SQLite database.
type Source struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// UIConfig holds tree view preference settings.
type UIConfig struct {
	Indent      int    `yaml:"indent,omitempty"`       // Per-depth indent in cells (min 2)
	Grid        string `yaml:"grid,omitempty"`         // none, horizontal, vertical, both
	HideHeaders bool   `yaml:"hide_headers,omitempty"` // Suppress the column header row
	Table       bool   `yaml:"table,omitempty"`        // Flat table mode (no tree chrome)
	SortColumn  string `yaml:"sort_column,omitempty"`  // title, kind, status, size, updated
	SortDesc    bool   `yaml:"sort_desc,omitempty"`
}

// DiscoveryConfig controls auto-discovery of data sources.
type DiscoveryConfig struct {
	ScanPaths []string `yaml:"scan_paths,omitempty"` // Directories to scan for outline files
	MaxDepth  int      `yaml:"max_depth,omitempty"`  // How deep to scan (default 3)
}

// WatchConfig controls live reload of the active source.
type WatchConfig struct {
	Enabled    bool `yaml:"enabled,omitempty"`
	DebounceMS int  `yaml:"debounce_ms,omitempty"`
}

// Config is the top-level configuration for trellis.
type Config struct {
	Sources   []Source        `yaml:"sources,omitempty"`
	Favorites map[int]string  `yaml:"favorites,omitempty"` // Number key (1-9) -> source name
	UI        UIConfig        `yaml:"ui,omitempty"`
	Discovery DiscoveryConfig `yaml:"discovery,omitempty"`
	Watch     WatchConfig     `yaml:"watch,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Favorites: make(map[int]string),
		UI: UIConfig{
			Indent: 2,
			Grid:   "none",
		},
		Discovery: DiscoveryConfig{
			MaxDepth: 3,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMS: 250,
		},
	}
}

// ConfigDir returns the XDG config directory for trellis.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "trellis")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "trellis")
}

// DataDir returns the XDG data directory for trellis.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "trellis")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "trellis")
}

// StateDir returns the XDG state directory for trellis.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "trellis")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "trellis")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
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

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
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

	// Ensure favorites map is initialized
	if cfg.Favorites == nil {
		cfg.Favorites = make(map[int]string)
	}

	// Expand ~ in source and scan paths
	for i := range cfg.Sources {
		cfg.Sources[i].Path = expandHome(cfg.Sources[i].Path)
	}
	for i := range cfg.Discovery.ScanPaths {
		cfg.Discovery.ScanPaths[i] = expandHome(cfg.Discovery.ScanPaths[i])
	}

	return cfg, nil
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

// FindSource returns the source with the given name, or nil.
func (c Config) FindSource(name string) *Source {
	for i := range c.Sources {
		if strings.EqualFold(c.Sources[i].Name, name) {
			return &c.Sources[i]
		}
	}
	return nil
}

// FavoriteSource returns the source assigned to number key n (1-9), or nil.
func (c Config) FavoriteSource(n int) *Source {
	name, ok := c.Favorites[n]
	if !ok {
		return nil
	}
	return c.FindSource(name)
}

// SetFavorite assigns a source name to a number key (1-9).
func (c *Config) SetFavorite(n int, sourceName string) {
	if c.Favorites == nil {
		c.Favorites = make(map[int]string)
	}
	if sourceName == "" {
		delete(c.Favorites, n)
	} else {
		c.Favorites[n] = sourceName
	}
}

// SourceFavoriteNumber returns the favorite number (1-9) for a source name,
// or 0 if not favorited.
func (c Config) SourceFavoriteNumber(name string) int {
	for n, sname := range c.Favorites {
		if strings.EqualFold(sname, name) {
			return n
		}
	}
	return 0
}

// ResolvedPath returns the source path with ~ expanded.
func (s Source) ResolvedPath() string {
	return expandHome(s.Path)
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
