// Package source turns an invocation mode into pending units of work.
//
// A Pending unit knows where its text lives but does not read it until Load
// is called, so a failed read affects only that unit.
package source

import (
	"errors"
	"io"
)

// ErrConflictingModes indicates more than one input mode was selected.
var ErrConflictingModes = errors.New("conflicting input modes")

// Mode selects how input is discovered. The set of modes is closed.
type Mode interface {
	// Name returns a short label for logs.
	Name() string

	// Batch reports whether failures are isolated per unit.
	Batch() bool

	mode()
}

// SingleFile formats one file, writing to Output (default: Input).
type SingleFile struct {
	Input  string
	Output string
}

// FileList formats the listed paths in place.
type FileList struct {
	Paths []string
}

// RecursiveWalk formats every stylesheet below Root in place.
type RecursiveWalk struct {
	Root string
}

// StandardInput formats text read from Reader.
type StandardInput struct {
	Reader io.Reader

	// Identifier names the unit; empty means anonymous.
	Identifier string
}

func (SingleFile) mode()    {}
func (FileList) mode()      {}
func (RecursiveWalk) mode() {}
func (StandardInput) mode() {}

// Name implements Mode.
func (SingleFile) Name() string { return "single" }

// Name implements Mode.
func (FileList) Name() string { return "list" }

// Name implements Mode.
func (RecursiveWalk) Name() string { return "recursive" }

// Name implements Mode.
func (StandardInput) Name() string { return "stdin" }

// Batch implements Mode.
func (SingleFile) Batch() bool { return false }

// Batch implements Mode.
func (FileList) Batch() bool { return true }

// Batch implements Mode.
func (RecursiveWalk) Batch() bool { return true }

// Batch implements Mode.
func (StandardInput) Batch() bool { return false }
