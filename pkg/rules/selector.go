package rules

import (
	"strings"
	"unicode"

	"github.com/yaklabco/stylefmt/pkg/syntax"
)

// SelectorListRule puts each selector of a list on its own line and
// normalizes whitespace around combinators.
type SelectorListRule struct {
	BaseRule
}

// NewSelectorListRule creates a new selector-list rule.
func NewSelectorListRule() *SelectorListRule {
	return &SelectorListRule{
		BaseRule: NewBaseRule("selector-list", "One selector per line, single spaces around combinators"),
	}
}

// Apply rewrites rule selectors.
func (r *SelectorListRule) Apply(ctx *Context) error {
	indent := ctx.Config.IndentUnit()
	ctx.Each(func(v Visit) {
		rule, ok := v.Node.(*syntax.Rule)
		if !ok {
			return
		}
		rule.Selector = formatSelector(rule.Selector, strings.Repeat(indent, v.Depth))
	})
	return nil
}

func formatSelector(sel, indent string) string {
	sel = strings.TrimSpace(sel)
	if strings.Contains(sel, "/*") || strings.Contains(sel, "//") {
		return sel
	}

	parts := splitTopLevel(sel, ',')
	for i, part := range parts {
		parts[i] = compactSelector(part)
	}
	return strings.Join(parts, ",\n"+indent)
}

// splitTopLevel splits s on sep outside strings and (), [] or {} groups.
func splitTopLevel(s string, sep rune) []string {
	var (
		parts []string
		start int
		depth int
		quote rune
		esc   bool
	)
	for i, ch := range s {
		switch {
		case esc:
			esc = false
		case ch == '\\':
			esc = true
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(' || ch == '[' || ch == '{':
			depth++
		case ch == ')' || ch == ']' || ch == '}':
			if depth > 0 {
				depth--
			}
		case ch == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + len(string(sep))
		}
	}
	return append(parts, s[start:])
}

func isCombinator(ch rune) bool {
	return ch == '>' || ch == '+' || ch == '~'
}

// compactSelector collapses whitespace runs to one space and surrounds
// top-level combinators with single spaces.
func compactSelector(s string) string {
	var (
		b     strings.Builder
		depth int
		quote rune
		esc   bool
		space bool
	)
	for _, ch := range strings.TrimSpace(s) {
		switch {
		case esc:
			esc = false
		case ch == '\\':
			esc = true
		case quote != 0:
			if ch == quote {
				quote = 0
			}
			b.WriteRune(ch)
			continue
		case ch == '"' || ch == '\'':
			quote = ch
		case unicode.IsSpace(ch):
			space = true
			continue
		case ch == '(' || ch == '[' || ch == '{':
			depth++
		case ch == ')' || ch == ']' || ch == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0 && isCombinator(ch):
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(ch)
			b.WriteByte(' ')
			space = false
			continue
		}

		if space && b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(ch)
	}
	return b.String()
}
