package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/stylefmt/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 files, 4 changed, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{fmt.Sprintf("%d %s", stats.FilesDiscovered, plural(stats.FilesDiscovered))}

	if stats.FilesChanged > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d changed", stats.FilesChanged)))
	} else {
		parts = append(parts, s.Dim.Render("none changed"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.FilesCancelled > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d not processed", stats.FilesCancelled)))
	}

	return strings.Join(parts, ", ") + "\n"
}
