// Package config provides configuration loading for Project Lexicon.
//
// Configuration lives in .lexicon/config.yml under a root directory,
// with environment variable overrides.
//
// Configuration hierarchy (highest to lowest priority):
//  1. Environment variables (LEXICON_*)
//  2. Config file (.lexicon/config.yml or .lexicon/config.yaml)
//  3. Built-in defaults
//
// Environment variable convention:
//   - Prefix: LEXICON_
//   - Nested fields: use underscores (LEXICON_CACHE_MAX_AGE_DAYS)
//   - Automatic mapping via Viper's SetEnvKeyReplacer
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the complete lexicon configuration.
// It can be loaded from .lexicon/config.yml with environment variable overrides.
type Config struct {
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Manifests ManifestsConfig `yaml:"manifests" mapstructure:"manifests"`
}

// CacheConfig defines where snapshots are stored and when they expire.
type CacheConfig struct {
	Location   string  `yaml:"location" mapstructure:"location"`         // Override default ~/.lexicon/cache
	MaxAgeDays int     `yaml:"max_age_days" mapstructure:"max_age_days"` // Evict snapshots older than this
	MaxSizeMB  float64 `yaml:"max_size_mb" mapstructure:"max_size_mb"`   // Max snapshot cache size
}

// ManifestsConfig defines where symbol manifests are discovered.
type ManifestsConfig struct {
	Root            string   `yaml:"root" mapstructure:"root"`                           // Directory to scan for manifests
	Paths           []string `yaml:"paths" mapstructure:"paths"`                         // Glob patterns for manifest files
	WatchDebounceMS int      `yaml:"watch_debounce_ms" mapstructure:"watch_debounce_ms"` // Debounce window for the file watcher
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Location:   "", // Empty means use default ~/.lexicon/cache
			MaxAgeDays: 30,
			MaxSizeMB:  500,
		},
		Manifests: ManifestsConfig{
			Root:            ".",
			Paths:           []string{"**/*.symbols.json"},
			WatchDebounceMS: 500,
		},
	}
}

// CacheDir resolves the snapshot cache directory. An empty location
// falls back to ~/.lexicon/cache; a leading ~/ expands to the user's
// home directory.
func (c *Config) CacheDir() (string, error) {
	location := c.Cache.Location
	if location == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, ".lexicon", "cache"), nil
	}
	if strings.HasPrefix(location, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, location[2:]), nil
	}
	return location, nil
}

// WatchDebounce returns the manifest watcher debounce window as a duration.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.Manifests.WatchDebounceMS) * time.Millisecond
}
