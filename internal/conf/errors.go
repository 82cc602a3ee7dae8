package conf

import (
	"fmt"
)

// ConfigurationError is the only error type returned by this package.
//
// Message accumulates context as the error travels outward: a field
// conversion failure reads "Invalid float", the namespace adds the field key
// and the section name, so callers see "utils.iers: auto_max_age: Invalid float".
type ConfigurationError struct {
	Message string
	Err     error
}

func newError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// wrapError converts a lower level error (I/O, TOML syntax) into a ConfigurationError.
func wrapError(err error, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Message: fmt.Sprintf(format, args...) + ": " + err.Error(),
		Err:     err,
	}
}

// AddPrefix rewrites the message to "prefix: message".
func (e *ConfigurationError) AddPrefix(prefix string) {
	e.Message = prefix + ": " + e.Message
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
