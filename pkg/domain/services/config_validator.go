package services

import (
	"errors"
	"fmt"

	"github.com/vsinha/mrp-policy/pkg/domain/entities"
)

// ConfigValidator checks a set of component configs before a planning run
type ConfigValidator struct{}

// NewConfigValidator creates a new config validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidationResult contains the results of config set validation
type ValidationResult struct {
	DuplicateIDs   []entities.ComponentID
	InvalidConfigs map[entities.ComponentID]error
	Errors         []string
}

// IsValid reports whether no errors were found
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ValidateConfigs re-checks every config and detects duplicate component ids.
// Configs built through entities.ConfigBuilder always pass the per-config
// check; zero values and copies from other sources may not.
func (v *ConfigValidator) ValidateConfigs(configs []entities.ComponentPlanningConfig) *ValidationResult {
	result := &ValidationResult{
		DuplicateIDs:   make([]entities.ComponentID, 0),
		InvalidConfigs: make(map[entities.ComponentID]error),
		Errors:         make([]string, 0),
	}

	seen := make(map[entities.ComponentID]bool, len(configs))
	for _, config := range configs {
		if err := config.Validate(); err != nil {
			result.InvalidConfigs[config.ComponentID()] = err
			result.Errors = append(result.Errors, err.Error())
		}

		id := config.ComponentID()
		if seen[id] {
			result.DuplicateIDs = append(result.DuplicateIDs, id)
		} else {
			seen[id] = true
		}
	}

	if len(result.DuplicateIDs) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Duplicate component ids found: %v", result.DuplicateIDs))
	}

	return result
}

// Err folds the result into a single error, or nil when the set is valid.
// The returned error matches entities.ErrInvalidConfiguration.
func (r *ValidationResult) Err() error {
	if r.IsValid() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, msg := range r.Errors {
		errs = append(errs, errors.New(msg))
	}
	return fmt.Errorf("%w: %w", entities.ErrInvalidConfiguration, errors.Join(errs...))
}
