package pagination

import (
	"fmt"
	"sync/atomic"
)

// Built-in defaults, used until Configure is called.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 1000
)

// Config holds the process-wide pagination defaults.
type Config struct {
	DefaultPage  int `mapstructure:"default_page"`
	DefaultLimit int `mapstructure:"default_limit"`
	// MaxLimit caps Limit(). Zero disables the ceiling.
	MaxLimit int `mapstructure:"max_limit"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  DefaultPage,
		DefaultLimit: DefaultLimit,
		MaxLimit:     MaxLimit,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.DefaultPage < 1 {
		return fmt.Errorf("%w: default_page must be >= 1", ErrConfiguration)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("%w: default_limit must be >= 1", ErrConfiguration)
	}
	if c.MaxLimit < 0 {
		return fmt.Errorf("%w: max_limit must be >= 0", ErrConfiguration)
	}
	if c.MaxLimit > 0 && c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("%w: default_limit %d exceeds max_limit %d", ErrConfiguration, c.DefaultLimit, c.MaxLimit)
	}
	return nil
}

var current atomic.Pointer[Config]

// Configure installs cfg as the process-wide defaults. It is meant to be
// called once during startup.
func Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	current.Store(&cfg)
	return nil
}

// Current returns the installed defaults, or DefaultConfig if Configure has
// not been called.
func Current() Config {
	if cfg := current.Load(); cfg != nil {
		return *cfg
	}
	return DefaultConfig()
}
