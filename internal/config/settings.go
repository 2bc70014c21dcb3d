// internal/config/settings.go
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Settings are the per-run knobs read from a TOML file.
type Settings struct {
	Grid             GridSettings `toml:"grid"`
	CatalogPath      string       `toml:"catalog_path"`      // relative paths resolve against the settings file
	MaxStackHeight   int          `toml:"max_stack_height"`  // blocks per cell
	LogLevel         string       `toml:"log_level"`         // debug, info, warn, error
	VerifyInvariants bool         `toml:"verify_invariants"` // check grouping invariants after every edit
}

// GridSettings is the starting grid size.
type GridSettings struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() *Settings {
	s := &Settings{}
	applyDefaults(s)
	return s
}

// LoadSettings reads and validates a TOML settings file.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{}
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("settings file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	applyDefaults(s)
	if s.CatalogPath != "" && !filepath.IsAbs(s.CatalogPath) {
		s.CatalogPath = filepath.Join(filepath.Dir(path), s.CatalogPath)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

func applyDefaults(s *Settings) {
	if s.Grid.Width == 0 {
		s.Grid.Width = DefaultGridWidth
	}
	if s.Grid.Height == 0 {
		s.Grid.Height = DefaultGridHeight
	}
	if s.CatalogPath == "" {
		s.CatalogPath = DefaultCatalogPath
	}
	if s.MaxStackHeight == 0 {
		s.MaxStackHeight = DefaultMaxStackHeight
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.Grid.Width < 0 || s.Grid.Height < 0 {
		return fmt.Errorf("grid size %dx%d cannot be negative", s.Grid.Width, s.Grid.Height)
	}
	if s.MaxStackHeight < 1 {
		return fmt.Errorf("max_stack_height must be at least 1, got %d", s.MaxStackHeight)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the parsed log level (info if unparsable).
func (s *Settings) Level() log.Level {
	lvl, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
