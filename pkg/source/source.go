package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/stylefmt/internal/logging"
	"github.com/yaklabco/stylefmt/pkg/fsutil"
)

// Extensions returns the stylesheet extensions accepted in batch modes.
func Extensions() []string {
	return []string{".css", ".scss"}
}

// Filter decides whether a path is excluded from batch processing.
type Filter interface {
	ShouldSkip(absPath string) bool
}

type acceptAll struct{}

func (acceptAll) ShouldSkip(string) bool { return false }

// Source expands modes into pending units.
type Source struct {
	// Cwd resolves relative paths.
	Cwd string

	// Filter gates batch paths; nil accepts everything.
	Filter Filter
}

// New creates a Source rooted at cwd.
func New(cwd string, filter Filter) *Source {
	if filter == nil {
		filter = acceptAll{}
	}
	return &Source{Cwd: cwd, Filter: filter}
}

// Collect returns the pending units for mode, in processing order.
func (s *Source) Collect(ctx context.Context, mode Mode) ([]Pending, error) {
	switch m := mode.(type) {
	case SingleFile:
		return s.single(m), nil
	case FileList:
		return s.list(ctx, m.Paths)
	case RecursiveWalk:
		candidates, err := s.walk(ctx, fsutil.Resolve(m.Root, s.Cwd))
		if err != nil {
			return nil, err
		}
		return s.list(ctx, candidates)
	case StandardInput:
		return []Pending{stdinPending(m)}, nil
	default:
		return nil, fmt.Errorf("unsupported input mode %T", mode)
	}
}

func (s *Source) single(m SingleFile) []Pending {
	input := fsutil.Resolve(m.Input, s.Cwd)
	output := input
	if m.Output != "" {
		output = fsutil.Resolve(m.Output, s.Cwd)
	}
	return []Pending{filePending(input, output)}
}

// list resolves, filters and dedupes paths, keeping first occurrences.
func (s *Source) list(ctx context.Context, paths []string) ([]Pending, error) {
	logger := logging.FromContext(ctx)

	seen := make(map[string]struct{}, len(paths))
	pending := make([]Pending, 0, len(paths))
	for _, raw := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := fsutil.Resolve(raw, s.Cwd)
		if !IsStylesheet(abs) {
			logger.Debug("skipping non-stylesheet", logging.FieldPath, abs)
			continue
		}
		if s.Filter.ShouldSkip(abs) {
			logger.Debug("skipping ignored path", logging.FieldPath, abs)
			continue
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		pending = append(pending, filePending(abs, abs))
	}
	return pending, nil
}

// IsStylesheet reports whether path has a stylesheet extension, ignoring case.
func IsStylesheet(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions() {
		if e == ext {
			return true
		}
	}
	return false
}

// walk lists every regular file below root. Unreadable entries are logged
// and skipped; hidden directories and node_modules are not entered.
func (s *Source) walk(ctx context.Context, root string) ([]string, error) {
	logger := logging.FromContext(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			logger.Warn("skipping unreadable entry", logging.FieldPath, path, logging.FieldError, walkErr)
			if entry != nil && entry.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path != root && skipDir(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, statErr := os.Stat(path)
			if statErr != nil || target.IsDir() {
				return nil //nolint:nilerr // broken links and directory links are skipped
			}
		} else if !entry.Type().IsRegular() {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}
	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

func stdinPending(m StandardInput) Pending {
	reader := m.Reader
	if reader == nil {
		reader = os.Stdin
	}
	return NewPending(m.Identifier, func(ctx context.Context) (string, error) {
		return fsutil.ReadAllText(ctx, reader)
	})
}
