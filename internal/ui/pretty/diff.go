package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderDiff styles unified diff text line by line. It accepts the output of
// both the builtin differ and git. Without color the text is returned as is.
func (s *Styles) RenderDiff(text string) string {
	if !s.colored || text == "" {
		return text
	}

	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		body, nl := strings.CutSuffix(line, "\n")
		b.WriteString(s.diffStyle(body).Render(body))
		if nl {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (s *Styles) diffStyle(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "diff "), strings.HasPrefix(line, "index "),
		strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
		return s.DiffHeader
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove
	default:
		return s.DiffContext
	}
}
