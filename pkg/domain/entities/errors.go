package entities

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is matched by every configuration validation failure.
// It signals a data-setup defect in the caller's configuration source and is
// never worth retrying.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigurationError describes which field of which component broke an invariant
type ConfigurationError struct {
	ComponentID ComponentID
	Field       string
	Reason      string
}

func (e *ConfigurationError) Error() string {
	if e.ComponentID == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidConfiguration, e.Reason)
	}
	return fmt.Sprintf("%s: component %s: %s", ErrInvalidConfiguration, e.ComponentID, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}
