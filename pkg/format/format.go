// Package format invokes the style transform on one unit of text.
//
// The parser front-end and the rule engine are collaborators behind the
// Syntax and Transform interfaces; Formatter only sequences them and turns
// their failures into *FormatError values.
package format

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/stylefmt/pkg/syntax"
)

// Syntax parses stylesheet text into a tree and prints it back.
type Syntax interface {
	Parse(identifier, text string) (*syntax.Root, error)
	Stringify(root *syntax.Root) string
}

// Transform rewrites a parsed stylesheet.
type Transform interface {
	Apply(ctx context.Context, root *syntax.Root, opts *Options) (*syntax.Root, error)
}

// TransformFunc adapts a plain function to Transform.
type TransformFunc func(ctx context.Context, root *syntax.Root, opts *Options) (*syntax.Root, error)

// Apply calls f.
func (f TransformFunc) Apply(ctx context.Context, root *syntax.Root, opts *Options) (*syntax.Root, error) {
	return f(ctx, root, opts)
}

// Result is the outcome of formatting one unit.
type Result struct {
	Identifier string
	Original   string
	Formatted  string

	// Changed is Original != Formatted.
	Changed bool
}

// Formatter runs Syntax and Transform over text. It holds no per-call state
// and may be shared between goroutines.
type Formatter struct {
	Syntax    Syntax
	Transform Transform
}

// New creates a Formatter.
func New(syn Syntax, transform Transform) *Formatter {
	return &Formatter{Syntax: syn, Transform: transform}
}

var (
	errNoCollaborator = errors.New("formatter has no syntax or transform")
	errNilTree        = errors.New("transform returned no tree")
)

// Format parses text, applies the transform and prints the result.
func (f *Formatter) Format(ctx context.Context, text, identifier string, opts *Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("format %s: %w", DisplayName(identifier), err)
	}
	if f.Syntax == nil || f.Transform == nil {
		return nil, &FormatError{Identifier: identifier, Cause: fmt.Errorf("%w: %w", ErrTransform, errNoCollaborator)}
	}

	root, err := f.Syntax.Parse(identifier, text)
	if err != nil {
		return nil, &FormatError{Identifier: identifier, Cause: fmt.Errorf("%w: %w", ErrTransform, err)}
	}

	root, err = f.Transform.Apply(ctx, root, opts)
	if err == nil && root == nil {
		err = errNilTree
	}
	if err != nil {
		return nil, &FormatError{Identifier: identifier, Cause: fmt.Errorf("%w: %w", ErrTransform, err)}
	}

	formatted := f.Syntax.Stringify(root)
	return &Result{
		Identifier: identifier,
		Original:   text,
		Formatted:  formatted,
		Changed:    formatted != text,
	}, nil
}
