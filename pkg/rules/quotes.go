package rules

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"

	"github.com/yaklabco/stylefmt/pkg/config"
	"github.com/yaklabco/stylefmt/pkg/syntax"
)

// StringQuotesRule applies the configured quote style to strings.
type StringQuotesRule struct {
	BaseRule
}

// NewStringQuotesRule creates a new string-quotes rule.
func NewStringQuotesRule() *StringQuotesRule {
	return &StringQuotesRule{
		BaseRule: NewBaseRule("string-quotes", "Strings use the quote character set by string-quotes"),
	}
}

// Apply rewrites strings in values, at-rule preludes and selectors.
func (r *StringQuotesRule) Apply(ctx *Context) error {
	var target byte
	switch ctx.Config.StringQuotes {
	case config.QuotesDouble:
		target = '"'
	case config.QuotesSingle:
		target = '\''
	default:
		return nil
	}

	requote := func(s string) string {
		return mapTokens(s, css.StringToken, func(tok string) string {
			return swapQuotes(tok, target)
		})
	}

	ctx.Each(func(v Visit) {
		switch n := v.Node.(type) {
		case *syntax.Decl:
			if !isCustomProperty(n) {
				n.Value = requote(n.Value)
			}
		case *syntax.AtRule:
			// @charset only accepts double quotes.
			if !strings.EqualFold(n.Name, "charset") {
				n.Params = requote(n.Params)
			}
		case *syntax.Rule:
			if !strings.Contains(n.Selector, "/*") {
				n.Selector = requote(n.Selector)
			}
		}
	})
	return nil
}

// swapQuotes re-quotes a string token with target when its content holds
// neither the target quote nor an escape.
func swapQuotes(tok string, target byte) string {
	if len(tok) < 2 {
		return tok
	}
	quote := tok[0]
	if quote == target || (quote != '"' && quote != '\'') || tok[len(tok)-1] != quote {
		return tok
	}
	inner := tok[1 : len(tok)-1]
	if strings.IndexByte(inner, target) >= 0 || strings.IndexByte(inner, '\\') >= 0 {
		return tok
	}
	return string(target) + inner + string(target)
}
