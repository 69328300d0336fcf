package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyMarker indicates a missing block-start marker token
	ErrEmptyMarker = errors.New("empty annotation marker")

	// ErrInvalidProximity indicates an invalid proximity threshold
	ErrInvalidProximity = errors.New("invalid proximity threshold")

	// ErrInvalidResolver indicates an unknown resolver name in the order list
	ErrInvalidResolver = errors.New("invalid resolver")

	// ErrInvalidDebounce indicates an invalid watch debounce interval
	ErrInvalidDebounce = errors.New("invalid debounce interval")

	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateAnnotations(&cfg.Annotations); err != nil {
		errs = append(errs, err)
	}

	if err := validateResolver(&cfg.Resolver); err != nil {
		errs = append(errs, err)
	}

	if err := validateWatch(&cfg.Watch); err != nil {
		errs = append(errs, err)
	}

	if err := validateStorage(&cfg.Storage); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateAnnotations(cfg *AnnotationsConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Marker) == "" {
		errs = append(errs, fmt.Errorf("%w: marker is required", ErrEmptyMarker))
	}

	if cfg.ProximityThreshold <= 0 {
		errs = append(errs, fmt.Errorf("%w: proximity_threshold must be positive, got %d", ErrInvalidProximity, cfg.ProximityThreshold))
	}

	for ext, token := range cfg.CommentTokens {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("comment_tokens key must be an extension with leading dot, got '%s'", ext))
		}
		if strings.TrimSpace(token) == "" {
			errs = append(errs, fmt.Errorf("comment_tokens value for '%s' is empty", ext))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateResolver(cfg *ResolverConfig) error {
	var errs []error

	valid := map[string]bool{}
	for _, name := range ResolverNames {
		valid[name] = true
	}

	for _, name := range cfg.Order {
		if !valid[name] {
			errs = append(errs, fmt.Errorf("%w: %s (valid: %s)", ErrInvalidResolver, name, strings.Join(ResolverNames, ", ")))
		}
	}

	// An empty order is fine: the scan fallback is appended unconditionally.

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateWatch(cfg *WatchConfig) error {
	if cfg.DebounceMs <= 0 {
		return fmt.Errorf("%w: debounce_ms must be positive, got %d", ErrInvalidDebounce, cfg.DebounceMs)
	}
	return nil
}

func validateStorage(cfg *StorageConfig) error {
	if cfg.CacheEntries <= 0 {
		return fmt.Errorf("%w: cache_entries must be positive, got %d", ErrInvalidCacheSettings, cfg.CacheEntries)
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
