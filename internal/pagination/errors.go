package pagination

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by the typed errors below.
var (
	ErrConfiguration = errors.New("pagination configuration error")
	ErrValidation    = errors.New("pagination validation error")
)

// ConfigurationError reports an entity definition that cannot be paginated.
// It is raised at generation time and is never recoverable at run time.
type ConfigurationError struct {
	Entity string
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("pagination: %s.%s: %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("pagination: %s: %s", e.Entity, e.Reason)
}

// Unwrap returns ErrConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// ValidationError reports a sort or order token that does not name a known
// variant. The caller decides whether to reject the request or fall back to
// the default.
type ValidationError struct {
	Param string
	Token string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Param, e.Token)
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
