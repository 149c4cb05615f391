package diff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var (
	// ErrDiff is wrapped by every differ failure.
	ErrDiff = errors.New("diff failed")

	// ErrUnknownTool indicates an unsupported --diff-tool value.
	ErrUnknownTool = errors.New("unknown diff tool")
)

// Tool names accepted by New.
const (
	ToolBuiltin = "builtin"
	ToolGit     = "git"
)

// File is one side of a diff.
type File struct {
	// Path is the file on disk.
	Path string

	// Label names the file in diff headers; Path is used when empty.
	Label string
}

func (f File) name() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Path
}

// Differ renders a unified diff between two files. An empty result means
// the files are identical.
type Differ interface {
	Diff(ctx context.Context, oldFile, newFile File) (string, error)
}

// New returns the differ for tool.
func New(tool string) (Differ, error) {
	switch strings.ToLower(tool) {
	case "", ToolBuiltin:
		return Builtin{}, nil
	case ToolGit:
		return Git{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownTool, tool, ToolBuiltin, ToolGit)
	}
}

// Builtin diffs files in process.
type Builtin struct{}

// Diff implements Differ.
func (Builtin) Diff(ctx context.Context, oldFile, newFile File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDiff, err)
	}

	original, err := os.ReadFile(oldFile.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDiff, err)
	}
	modified, err := os.ReadFile(newFile.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDiff, err)
	}

	return Compute("a/"+strings.TrimPrefix(oldFile.name(), "/"), "b/"+strings.TrimPrefix(newFile.name(), "/"),
		original, modified).String(), nil
}

// Git shells out to "git diff --no-index".
type Git struct {
	// Binary is the git executable; "git" when empty.
	Binary string
}

// Diff implements Differ.
func (g Git) Diff(ctx context.Context, oldFile, newFile File) (string, error) {
	binary := g.Binary
	if binary == "" {
		binary = "git"
	}

	//nolint:gosec // arguments are file paths, not shell text
	cmd := exec.CommandContext(ctx, binary,
		"diff", "--no-color", "--ignore-space-at-eol", "--no-index", "--",
		oldFile.Path, newFile.Path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	// Exit status 1 means the files differ.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		err = nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: git diff: %w: %s", ErrDiff, err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
