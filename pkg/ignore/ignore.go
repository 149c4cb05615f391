// Package ignore decides which paths are excluded from batch runs.
//
// Patterns come from a gitignore-style file and from extra glob patterns.
// The file is read lazily, at most once, and a missing or unreadable file
// disables only the file-based part of the filter.
package ignore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/yaklabco/stylefmt/internal/logging"
	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/fsutil"
)

// Filter answers ShouldSkip for absolute paths. It is safe for concurrent use.
type Filter struct {
	base     string
	path     string
	patterns []string
	logger   *log.Logger

	once    sync.Once
	matcher *gitignore.GitIgnore
	loadErr error
}

// New creates a Filter. Relative ignore paths and all patterns are resolved
// against cwd. Invalid patterns are dropped with a warning.
func New(ctx context.Context, cwd string, opts *format.Options) *Filter {
	f := &Filter{
		base:   cwd,
		logger: logging.FromContext(ctx),
	}
	if opts == nil {
		return f
	}

	if opts.IgnorePath != "" {
		f.path = fsutil.Resolve(opts.IgnorePath, cwd)
	}
	for _, pattern := range opts.IgnorePatterns {
		pattern = filepath.ToSlash(strings.TrimPrefix(pattern, "./"))
		if !doublestar.ValidatePattern(pattern) {
			f.logger.Warn("dropping invalid ignore pattern", logging.FieldPattern, pattern)
			continue
		}
		f.patterns = append(f.patterns, pattern)
	}
	return f
}

// Enabled reports whether the filter can skip anything at all.
func (f *Filter) Enabled() bool {
	return f.path != "" || len(f.patterns) > 0
}

// LoadErr returns the ignore-file load failure, if any. It forces the load.
// A filter whose file failed to load skips nothing from that file; callers
// decide how to report it.
func (f *Filter) LoadErr() error {
	f.load()
	return f.loadErr
}

func (f *Filter) load() *gitignore.GitIgnore {
	f.once.Do(func() {
		if f.path == "" {
			return
		}
		matcher, err := gitignore.CompileIgnoreFile(f.path)
		if err != nil {
			f.loadErr = fmt.Errorf("%w: ignore file %s: %w", format.ErrConfigResolution, f.path, err)
			return
		}
		f.matcher = matcher
	})
	return f.matcher
}

// ShouldSkip reports whether absPath is excluded. Paths outside the base
// directory are never excluded.
func (f *Filter) ShouldSkip(absPath string) bool {
	if f == nil || !f.Enabled() {
		return false
	}

	rel, err := filepath.Rel(f.base, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	rel = filepath.ToSlash(rel)

	if matcher := f.load(); matcher != nil && matcher.MatchesPath(rel) {
		return true
	}

	for _, pattern := range f.patterns {
		if matchPattern(pattern, rel) {
			return true
		}
	}
	return false
}

// matchPattern matches the whole relative path, or the base name for
// patterns without a slash.
func matchPattern(pattern, rel string) bool {
	if ok, _ := doublestar.Match(pattern, rel); ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, _ := doublestar.Match(pattern, filepath.Base(filepath.FromSlash(rel)))
		return ok
	}
	return false
}
