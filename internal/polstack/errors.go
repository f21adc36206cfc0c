package polstack

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched (errors.Is) by every input/configuration
// rejection the engine reports.
var ErrConfiguration = errors.New("polstack: configuration error")

// ConfigError carries the offending field and value.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("polstack: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("polstack: %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

func configErr(field, value, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}
