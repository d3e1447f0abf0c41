// Package config loads shelf.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/furry-shelf/catalog"
	"github.com/odvcencio/furry-shelf/catalog/pgprovider"
	"github.com/odvcencio/furry-shelf/theme"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "shelf.yaml"

// Source kinds.
const (
	SourceStatic   = "static"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

var (
	// ErrUnknownSource is returned for an unrecognized source kind.
	ErrUnknownSource = errors.New("config: unknown source kind")
	// ErrMissingSetting is returned when a source lacks a required setting.
	ErrMissingSetting = errors.New("config: missing setting")
)

// Config is the shelf.yaml document.
type Config struct {
	Source SourceConfig `yaml:"source"`
	View   ViewConfig   `yaml:"view"`
}

// SourceConfig selects where books come from.
type SourceConfig struct {
	Kind   string        `yaml:"kind"`
	Path   string        `yaml:"path,omitempty"`
	DSN    string        `yaml:"dsn,omitempty"`
	Driver string        `yaml:"driver,omitempty"`
	Table  string        `yaml:"table,omitempty"`
	Delay  time.Duration `yaml:"delay,omitempty"`
}

// ViewConfig tunes the list screen.
type ViewConfig struct {
	Title       string        `yaml:"title,omitempty"`
	Theme       string        `yaml:"theme,omitempty"`
	Markdown    bool          `yaml:"markdown"`
	Placeholder string        `yaml:"placeholder"`
	Async       bool          `yaml:"async"`
	DropStale   bool          `yaml:"drop_stale"`
	Tick        time.Duration `yaml:"tick,omitempty"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Source: SourceConfig{Kind: SourceStatic},
		View: ViewConfig{
			Title: "Books",
			Theme: theme.DefaultName,
			Async: true,
			Tick:  33 * time.Millisecond,
		},
	}
}

// Load reads path over the defaults. The file must exist.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOptional reads path if present and returns defaults otherwise.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes a shelf.yaml document over the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Source.Kind = strings.ToLower(strings.TrimSpace(cfg.Source.Kind))
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = SourceStatic
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the source has what it needs.
func (c Config) Validate() error {
	switch c.Source.Kind {
	case SourceStatic:
		return nil
	case SourceFile:
		if c.Source.Path == "" {
			return fmt.Errorf("%w: source.path", ErrMissingSetting)
		}
		return nil
	case SourcePostgres:
		if c.Source.DSN == "" {
			return fmt.Errorf("%w: source.dsn", ErrMissingSetting)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Source.Kind)
	}
}

// Open builds the provider the source describes. The returned close
// function releases any connection and is never nil.
func (s SourceConfig) Open(logger pgprovider.Logger) (catalog.Provider, func() error, error) {
	noop := func() error { return nil }
	var provider catalog.Provider
	closer := noop
	switch s.Kind {
	case SourceStatic, "":
		provider = catalog.Reference()
	case SourceFile:
		provider = catalog.NewFileProvider(s.Path)
	case SourcePostgres:
		var opts []pgprovider.Option
		if logger != nil {
			opts = append(opts, pgprovider.WithLogger(logger))
		}
		if s.Table != "" {
			opts = append(opts, pgprovider.WithTable(s.Table))
		}
		pg, err := pgprovider.Open(s.Driver, s.DSN, opts...)
		if err != nil {
			return nil, noop, err
		}
		provider, closer = pg, pg.Close
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownSource, s.Kind)
	}
	if s.Delay > 0 {
		provider = catalog.DelayedProvider{Provider: provider, Delay: s.Delay}
	}
	return provider, closer, nil
}
