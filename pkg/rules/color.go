package rules

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"

	"github.com/yaklabco/stylefmt/pkg/config"
)

// ColorHexRule applies the configured case and length to hex colors.
type ColorHexRule struct {
	BaseRule
}

// NewColorHexRule creates a new color-hex rule.
func NewColorHexRule() *ColorHexRule {
	return &ColorHexRule{
		BaseRule: NewBaseRule("color-hex", "Hex colors follow color-hex-case and color-hex-length"),
	}
}

// Apply rewrites hash tokens in declaration values.
func (r *ColorHexRule) Apply(ctx *Context) error {
	cfg := ctx.Config
	if cfg.ColorHexCase == "" && cfg.ColorHexLength == "" {
		return nil
	}
	eachValue(ctx, func(value string) string {
		return mapTokens(value, css.HashToken, func(tok string) string {
			return formatHex(tok, cfg.ColorHexCase, cfg.ColorHexLength)
		})
	})
	return nil
}

func isHex(s string) bool {
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}

// formatHex rewrites a "#rgb"-style token; anything else is returned as is.
func formatHex(tok, hexCase, hexLength string) string {
	digits := strings.TrimPrefix(tok, "#")
	if !isHex(digits) {
		return tok
	}
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return tok
	}

	switch hexLength {
	case config.LengthShort:
		digits = shortHex(digits)
	case config.LengthLong:
		digits = longHex(digits)
	}

	switch hexCase {
	case config.CaseLower:
		digits = strings.ToLower(digits)
	case config.CaseUpper:
		digits = strings.ToUpper(digits)
	}
	return "#" + digits
}

func shortHex(digits string) string {
	if len(digits) != 6 && len(digits) != 8 {
		return digits
	}
	var b strings.Builder
	for i := 0; i < len(digits); i += 2 {
		if !strings.EqualFold(digits[i:i+1], digits[i+1:i+2]) {
			return digits
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

func longHex(digits string) string {
	if len(digits) != 3 && len(digits) != 4 {
		return digits
	}
	var b strings.Builder
	for i := range len(digits) {
		b.WriteByte(digits[i])
		b.WriteByte(digits[i])
	}
	return b.String()
}
