package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/stylefmt/pkg/config"
)

// ValidationError represents a configuration validation finding.
type ValidationError struct {
	// Field is the offending key, if known.
	Field string

	// Message describes the problem.
	Message string

	// FilePath is the config file containing the problem (if known).
	FilePath string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	switch {
	case e.Message != "":
		parts = append(parts, e.Message)
	case e.Err != nil:
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown keys).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks the merged keys and the decoded configuration.
// Unknown keys are warnings; invalid values are errors.
func Validate(cfg *config.Config, keys []string, filePath string) *ValidationResult {
	result := &ValidationResult{}

	for _, key := range keys {
		if key == "extends" || slices.Contains(RuleKeys, key) {
			continue
		}
		result.Warnings = append(result.Warnings, ValidationError{
			Field:    key,
			Message:  fmt.Sprintf("unknown key %q; it will be ignored", key),
			FilePath: filePath,
		})
	}

	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			FilePath: filePath,
			Err:      err,
		})
	}

	return result
}
