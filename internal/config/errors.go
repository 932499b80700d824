package config

import (
	"errors"
	"fmt"
)

// ConfigError is returned when configuration is missing or unusable.
// Nothing has been sent over the network when a ConfigError is returned.
type ConfigError struct {
	Op  string // read, unmarshal, save, check
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s error: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// MissingKeyError names a required value that is empty.
type MissingKeyError struct {
	Key  string
	Hint string // how to set it, optional
}

func (e *MissingKeyError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("required configuration key '%s' is missing (%s)", e.Key, e.Hint)
	}
	return fmt.Sprintf("required configuration key '%s' is missing", e.Key)
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsMissingKeyError reports whether err is, or wraps, a MissingKeyError.
func IsMissingKeyError(err error) bool {
	var mk *MissingKeyError
	return errors.As(err, &mk)
}
