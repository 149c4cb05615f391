package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/stylefmt/pkg/config"
	"github.com/yaklabco/stylefmt/pkg/fsutil"
)

// writeInitConfig creates the commented default config in dir.
// An existing file is never overwritten.
func writeInitConfig(dir string) (string, error) {
	path := filepath.Join(dir, config.DefaultFileName)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fsutil.DefaultFileMode)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("file %q already exists", path)
		}
		return "", fmt.Errorf("create config: %w", err)
	}

	if _, err := file.WriteString(config.Template); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write config: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close config: %w", err)
	}
	return path, nil
}
