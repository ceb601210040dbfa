package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")

	// ErrEmptyManifestRoot indicates a missing manifest root directory
	ErrEmptyManifestRoot = errors.New("empty manifest root")

	// ErrNoManifestPatterns indicates missing manifest glob patterns
	ErrNoManifestPatterns = errors.New("no manifest patterns")

	// ErrInvalidPattern indicates a manifest glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid manifest pattern")

	// ErrInvalidDebounce indicates an invalid watcher debounce window
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	// Validate cache configuration
	if err := validateCache(&cfg.Cache); err != nil {
		errs = append(errs, err)
	}

	// Validate manifest configuration
	if err := validateManifests(&cfg.Manifests); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateCache(cfg *CacheConfig) error {
	var errs []error

	// Validate cache max age (negative is invalid, zero means no age-based eviction)
	if cfg.MaxAgeDays < 0 {
		errs = append(errs, fmt.Errorf("%w: max_age_days cannot be negative, got %d", ErrInvalidCacheSettings, cfg.MaxAgeDays))
	}

	// Validate cache max size (negative is invalid, zero means no size-based eviction)
	if cfg.MaxSizeMB < 0 {
		errs = append(errs, fmt.Errorf("%w: max_size_mb cannot be negative, got %.2f", ErrInvalidCacheSettings, cfg.MaxSizeMB))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateManifests(cfg *ManifestsConfig) error {
	var errs []error

	// Validate root
	if strings.TrimSpace(cfg.Root) == "" {
		errs = append(errs, fmt.Errorf("%w: root is required", ErrEmptyManifestRoot))
	}

	// Validate patterns
	if len(cfg.Paths) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one pattern required", ErrNoManifestPatterns))
	}

	// Each pattern must compile so that manifest discovery cannot fail later
	for _, pattern := range cfg.Paths {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	// Validate debounce (negative is invalid, zero means fire immediately)
	if cfg.WatchDebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: watch_debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.WatchDebounceMS))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
