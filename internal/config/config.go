// Package config holds the widget configuration with its documented
// defaults. Options may come from code or from a TOML file; file values
// are merged field-by-field over the defaults, later wins.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/localsearch/internal/searcher"
)

// Defaults mirror the original widget options. The search limits are
// owned by the searcher package; they are re-exported here so the config
// surface stays complete.
const (
	DefaultSearchPath     = "/search.json"
	DefaultInputID        = "local-search-input"
	DefaultResultID       = "local-search-result"
	DefaultCloseID        = "local-search-close"
	DefaultDebounceMS     = 300
	DefaultMaxResults     = searcher.DefaultMaxResults
	DefaultMinQueryLength = searcher.DefaultMinQueryLength
	DefaultCacheSize      = 1024
)

// Config contains the widget options.
type Config struct {
	// SearchPath is the URL serving the JSON document array.
	SearchPath string `toml:"search_path"`

	// InputID and ResultID name the host's input element and results
	// container. CloseID names the dismiss affordance. The widget itself
	// never touches a DOM; the IDs are carried for the host's bindings.
	InputID  string `toml:"input_id"`
	ResultID string `toml:"result_id"`
	CloseID  string `toml:"close_id"`

	// DebounceMS is the input settle time in milliseconds. Zero means the
	// default; a negative value disables debouncing entirely.
	DebounceMS int `toml:"debounce_ms"`

	// MaxResults caps the rendered result count. Scanning stops after
	// 2x this many documents have scored positive.
	MaxResults int `toml:"max_results"`

	// MinQueryLength is the minimum trimmed query length, in runes,
	// before a search runs.
	MinQueryLength int `toml:"min_query_length"`

	// CacheSize bounds the per-session query result cache.
	CacheSize int `toml:"cache_size"`

	// Preload eagerly starts the index load on construction.
	Preload bool `toml:"preload"`
}

// Default returns a Config with all options at their documented defaults.
func Default() *Config {
	return &Config{
		SearchPath:     DefaultSearchPath,
		InputID:        DefaultInputID,
		ResultID:       DefaultResultID,
		CloseID:        DefaultCloseID,
		DebounceMS:     DefaultDebounceMS,
		MaxResults:     DefaultMaxResults,
		MinQueryLength: DefaultMinQueryLength,
		CacheSize:      DefaultCacheSize,
		Preload:        true,
	}
}

// Load reads a TOML config file over the defaults. Keys absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// WithDefaults returns a copy with empty or zero fields normalized to
// their defaults. Preload is kept as set; DebounceMS keeps negative
// values, which mean "no debounce".
func (c *Config) WithDefaults() *Config {
	out := *c

	if out.SearchPath == "" {
		out.SearchPath = DefaultSearchPath
	}
	if out.InputID == "" {
		out.InputID = DefaultInputID
	}
	if out.ResultID == "" {
		out.ResultID = DefaultResultID
	}
	if out.CloseID == "" {
		out.CloseID = DefaultCloseID
	}
	if out.DebounceMS == 0 {
		out.DebounceMS = DefaultDebounceMS
	}
	if out.MaxResults <= 0 {
		out.MaxResults = DefaultMaxResults
	}
	if out.MinQueryLength <= 0 {
		out.MinQueryLength = DefaultMinQueryLength
	}
	if out.CacheSize <= 0 {
		out.CacheSize = DefaultCacheSize
	}

	return &out
}

// Debounce returns the configured settle time as a duration. Zero means
// debouncing is disabled.
func (c *Config) Debounce() time.Duration {
	if c.DebounceMS < 0 {
		return 0
	}
	if c.DebounceMS == 0 {
		return DefaultDebounceMS * time.Millisecond
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}
