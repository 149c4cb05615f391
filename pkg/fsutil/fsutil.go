// Package fsutil provides file system utilities and safety primitives for stylefmt.
// It handles path resolution, text decoding, atomic writes, modification detection,
// and scoped temporary files.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilFileInfo is returned when a nil FileInfo is passed.
	ErrNilFileInfo = errors.New("nil FileInfo")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileInfo captures the state of a file at the time it was read.
type FileInfo struct {
	// Path is the absolute path to the file.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the raw file content.
	Hash [32]byte
}

// Resolve turns a user-supplied path into an absolute path.
// Absolute paths are returned unchanged; relative paths are joined with cwd.
func Resolve(rawPath, cwd string) string {
	if filepath.IsAbs(rawPath) {
		return rawPath
	}
	return filepath.Join(cwd, rawPath)
}

// newDecoder returns a UTF-8 decoder that strips a leading byte order mark
// and honours UTF-16 BOMs when present.
func newDecoder() transform.Transformer {
	return unicode.BOMOverride(unicode.UTF8.NewDecoder())
}

// DecodeText converts raw file bytes into UTF-8 text.
func DecodeText(raw []byte) (string, error) {
	out, _, err := transform.Bytes(newDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(out), nil
}

// ReadAllText drains r to end of input and returns its content as UTF-8 text.
// It checks ctx once before reading; the read itself is not interruptible.
func ReadAllText(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	out, err := io.ReadAll(transform.NewReader(r, newDecoder()))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(out), nil
}

// ReadText reads a file as UTF-8 text and returns its content along with metadata.
// The returned FileInfo can be used for modification detection before writing.
func ReadText(ctx context.Context, path string) (string, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return "", nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return "", nil, categorize(path, err)
	}

	if stat.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	raw, err := os.ReadFile(path) // #nosec G304 -- path is user-selected input
	if err != nil {
		return "", nil, categorize(path, err)
	}

	text, err := DecodeText(raw)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}

	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(raw),
	}

	return text, info, nil
}

func categorize(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// CheckModified returns true if the file has changed since info was captured.
//
// The check uses a two-tier approach:
//  1. Quick check: compare mod time and size.
//  2. Hash check: re-read and hash content.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if os.IsNotExist(err) {
			// Deleted counts as modified.
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	if !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size {
		return true, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}

	return sha256.Sum256(content) != info.Hash, nil
}
