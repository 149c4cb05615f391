package source

import (
	"errors"
	"fmt"
	"io"
)

// ErrTooManyArgs indicates more positional arguments than a mode accepts.
var ErrTooManyArgs = errors.New("too many arguments")

// Selection holds the command-line inputs that pick a Mode.
type Selection struct {
	// List is the --list value; empty when the flag was not given.
	List string

	// Recursive is the --recursive root; empty when the flag was not given.
	Recursive string

	// Args are the positional arguments.
	Args []string

	Stdin           io.Reader
	StdinIdentifier string
}

// Select picks exactly one Mode. Positional arguments extend --list;
// otherwise they name the single input and optional output file.
func Select(sel Selection) (Mode, error) {
	switch {
	case sel.List != "" && sel.Recursive != "":
		return nil, fmt.Errorf("%w: --list and --recursive", ErrConflictingModes)
	case sel.List != "":
		paths := append([]string{sel.List}, sel.Args...)
		return FileList{Paths: paths}, nil
	case sel.Recursive != "" && len(sel.Args) > 0:
		return nil, fmt.Errorf("%w: --recursive and input file %q", ErrConflictingModes, sel.Args[0])
	case sel.Recursive != "":
		return RecursiveWalk{Root: sel.Recursive}, nil
	case len(sel.Args) > 2:
		return nil, fmt.Errorf("%w: expected [input-file [output-file]], got %d", ErrTooManyArgs, len(sel.Args))
	case len(sel.Args) == 2:
		return SingleFile{Input: sel.Args[0], Output: sel.Args[1]}, nil
	case len(sel.Args) == 1:
		return SingleFile{Input: sel.Args[0]}, nil
	default:
		return StandardInput{Reader: sel.Stdin, Identifier: sel.StdinIdentifier}, nil
	}
}
