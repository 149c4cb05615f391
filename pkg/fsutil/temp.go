package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WithTempFile materializes content into a temporary file, calls fn with its
// path, and removes the file on every exit path, including a failing fn.
// The suffix (for example ".css") is appended to the generated name.
func WithTempFile(ctx context.Context, content []byte, suffix string, fn func(path string) error) (err error) {
	select {
	case <-ctx.Done():
		return fmt.Errorf("temp file: %w", ctx.Err())
	default:
	}

	tmp, err := os.CreateTemp("", "stylefmt-*"+filepath.Ext(suffix))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, fmt.Errorf("remove temp file: %w", rmErr))
		}
	}()

	if _, werr := tmp.Write(content); werr != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", werr)
	}
	if cerr := tmp.Close(); cerr != nil {
		return fmt.Errorf("close temp file: %w", cerr)
	}

	return fn(tmpPath)
}
