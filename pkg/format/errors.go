package format

import (
	"errors"
	"fmt"
)

// Error kinds, matched with errors.Is.
var (
	// ErrConfigResolution indicates the configuration or ignore file could
	// not be resolved.
	ErrConfigResolution = errors.New("config resolution failed")

	// ErrInputRead indicates a unit's text could not be read.
	ErrInputRead = errors.New("input read failed")

	// ErrTransform indicates parsing or rule application failed.
	ErrTransform = errors.New("transform failed")

	// ErrOutputWrite indicates the formatted text could not be emitted.
	ErrOutputWrite = errors.New("output write failed")
)

// StdinName is shown for units read from standard input without an identifier.
const StdinName = "<stdin>"

// DisplayName returns identifier, or StdinName when it is empty.
func DisplayName(identifier string) string {
	if identifier == "" {
		return StdinName
	}
	return identifier
}

// FormatError reports a parse or transform failure for one unit.
//
//nolint:revive // FormatError reads better than Error at call sites.
type FormatError struct {
	Identifier string
	Cause      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v", DisplayName(e.Identifier), e.Cause)
}

// Unwrap returns the cause.
func (e *FormatError) Unwrap() error {
	return e.Cause
}
