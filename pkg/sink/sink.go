// Package sink decides what happens to a formatted unit: write it back,
// print a diff against the original, or stream it to an output writer.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yaklabco/stylefmt/internal/logging"
	"github.com/yaklabco/stylefmt/pkg/diff"
	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/fsutil"
	"github.com/yaklabco/stylefmt/pkg/source"
)

// ErrConcurrentModification indicates the input file changed between read
// and write-back.
var ErrConcurrentModification = errors.New("file modified during formatting")

// Sink consumes formatted results. Emit reports whether it produced a side
// effect (a write or printed output). Implementations are safe for
// concurrent use.
type Sink interface {
	Name() string
	Emit(ctx context.Context, unit source.WorkUnit, res *format.Result) (bool, error)
}

// WriteIfChanged writes changed results to the unit's output path.
// Unchanged results cause no filesystem access at all.
type WriteIfChanged struct{}

// Name implements Sink.
func (WriteIfChanged) Name() string { return "write" }

// Emit implements Sink.
func (WriteIfChanged) Emit(ctx context.Context, unit source.WorkUnit, res *format.Result) (bool, error) {
	if res == nil || !res.Changed {
		return false, nil
	}
	if unit.OutputPath == "" {
		return false, fmt.Errorf("%w: %s: no output path", format.ErrOutputWrite, unit.Name())
	}

	// Zero keeps the mode of an existing output file.
	var mode os.FileMode
	if unit.Info != nil && unit.OutputPath == unit.Path {
		mode = unit.Info.Mode.Perm()
		modified, err := fsutil.CheckModified(ctx, unit.Info)
		if err != nil {
			return false, fmt.Errorf("%w: %s: %w", format.ErrOutputWrite, unit.Name(), err)
		}
		if modified {
			return false, fmt.Errorf("%w: %s: %w", format.ErrOutputWrite, unit.Name(), ErrConcurrentModification)
		}
	}

	if err := fsutil.WriteAtomic(ctx, unit.OutputPath, []byte(res.Formatted), mode); err != nil {
		return false, fmt.Errorf("%w: %s: %w", format.ErrOutputWrite, unit.Name(), err)
	}

	logging.FromContext(ctx).Debug("wrote formatted file", logging.FieldPath, unit.OutputPath)
	return true, nil
}

// Renderer styles diff text before it is written.
type Renderer interface {
	RenderDiff(text string) string
}

type plainRenderer struct{}

func (plainRenderer) RenderDiff(text string) string { return text }

// DiffPreview prints a unified diff between the original and the formatted
// text. The formatted text is always materialized and diffed, so an
// unchanged result yields an empty diff and no output. The original file is
// never modified.
type DiffPreview struct {
	Differ   diff.Differ
	Out      io.Writer
	Renderer Renderer

	// Cwd shortens diff labels; absolute identifiers are kept when empty.
	Cwd string

	mu sync.Mutex
}

// NewDiffPreview creates a DiffPreview writing to out.
// A nil renderer writes the diff unstyled.
func NewDiffPreview(differ diff.Differ, out io.Writer, renderer Renderer, cwd string) *DiffPreview {
	if differ == nil {
		differ = diff.Builtin{}
	}
	if renderer == nil {
		renderer = plainRenderer{}
	}
	return &DiffPreview{Differ: differ, Out: out, Renderer: renderer, Cwd: cwd}
}

// Name implements Sink.
func (*DiffPreview) Name() string { return "diff" }

// Emit implements Sink.
func (d *DiffPreview) Emit(ctx context.Context, unit source.WorkUnit, res *format.Result) (bool, error) {
	if res == nil {
		return false, nil
	}

	label := d.label(unit)
	suffix := filepath.Ext(unit.Identifier)

	var text string
	err := fsutil.WithTempFile(ctx, []byte(res.Formatted), suffix, func(formattedPath string) error {
		formatted := diff.File{Path: formattedPath, Label: label}

		if unit.Path != "" {
			var derr error
			text, derr = d.Differ.Diff(ctx, diff.File{Path: unit.Path, Label: label}, formatted)
			return derr
		}

		// Standard input has no file to compare against.
		return fsutil.WithTempFile(ctx, []byte(res.Original), suffix, func(originalPath string) error {
			var derr error
			text, derr = d.Differ.Diff(ctx, diff.File{Path: originalPath, Label: label}, formatted)
			return derr
		})
	})
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", format.ErrOutputWrite, unit.Name(), err)
	}
	if text == "" {
		return false, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := io.WriteString(d.Out, d.Renderer.RenderDiff(text)); err != nil {
		return false, fmt.Errorf("%w: %s: %w", format.ErrOutputWrite, unit.Name(), err)
	}
	return true, nil
}

func (d *DiffPreview) label(unit source.WorkUnit) string {
	name := unit.Name()
	if d.Cwd == "" || !filepath.IsAbs(name) {
		return filepath.ToSlash(name)
	}
	rel, err := filepath.Rel(d.Cwd, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(name)
	}
	return filepath.ToSlash(rel)
}

// StreamToStdout writes every formatted result to Out, changed or not.
// It never touches the filesystem.
type StreamToStdout struct {
	Out io.Writer

	mu sync.Mutex
}

// NewStreamToStdout creates a StreamToStdout writing to out.
func NewStreamToStdout(out io.Writer) *StreamToStdout {
	return &StreamToStdout{Out: out}
}

// Name implements Sink.
func (*StreamToStdout) Name() string { return "stdout" }

// Emit implements Sink.
func (s *StreamToStdout) Emit(_ context.Context, unit source.WorkUnit, res *format.Result) (bool, error) {
	if res == nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.Out, res.Formatted); err != nil {
		return false, fmt.Errorf("%w: %s: %w", format.ErrOutputWrite, unit.Name(), err)
	}
	return true, nil
}
