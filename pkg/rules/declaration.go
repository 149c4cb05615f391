package rules

import (
	"strings"

	"github.com/yaklabco/stylefmt/pkg/syntax"
)

// DeclarationRule prints declarations as "prop: value;".
type DeclarationRule struct {
	BaseRule
}

// NewDeclarationRule creates a new declaration rule.
func NewDeclarationRule() *DeclarationRule {
	return &DeclarationRule{
		BaseRule: NewBaseRule("declaration", "No space before the colon, one after, always terminated by a semicolon"),
	}
}

// Apply rewrites declaration raws.
func (r *DeclarationRule) Apply(ctx *Context) error {
	ctx.Each(func(v Visit) {
		decl, ok := v.Node.(*syntax.Decl)
		if !ok {
			return
		}
		decl.Prop = strings.TrimSpace(decl.Prop)
		decl.Value = strings.TrimSpace(decl.Value)
		decl.Raws.Between = ":"
		if decl.Value != "" {
			decl.Raws.Between = ": "
		}
		decl.Raws.After = ""
		decl.Raws.Semicolon = true
	})
	return nil
}

// isCustomProperty reports whether the declaration's value is opaque text.
func isCustomProperty(decl *syntax.Decl) bool {
	return strings.HasPrefix(decl.Prop, "--")
}

// eachValue calls fn with every declaration value the value rules may
// rewrite, storing the result back.
func eachValue(ctx *Context, fn func(string) string) {
	ctx.Each(func(v Visit) {
		decl, ok := v.Node.(*syntax.Decl)
		if !ok || isCustomProperty(decl) {
			return
		}
		decl.Value = fn(decl.Value)
	})
}

// ValueWhitespaceRule collapses whitespace inside declaration values.
type ValueWhitespaceRule struct {
	BaseRule
}

// NewValueWhitespaceRule creates a new value-whitespace rule.
func NewValueWhitespaceRule() *ValueWhitespaceRule {
	return &ValueWhitespaceRule{
		BaseRule: NewBaseRule("value-whitespace", "Single spaces between value parts, one space after commas"),
	}
}

// Apply rewrites declaration values.
func (r *ValueWhitespaceRule) Apply(ctx *Context) error {
	eachValue(ctx, collapseWhitespace)
	return nil
}

// FlagsRule normalizes "!important" and the SCSS "!default"-style flags.
type FlagsRule struct {
	BaseRule
}

// NewFlagsRule creates a new flags rule.
func NewFlagsRule() *FlagsRule {
	return &FlagsRule{
		BaseRule: NewBaseRule("value-flags", "Lowercase !important and friends, preceded by one space"),
	}
}

// Apply rewrites declaration values.
func (r *FlagsRule) Apply(ctx *Context) error {
	eachValue(ctx, normalizeFlags)
	return nil
}

// AtRuleParamsRule collapses whitespace in at-rule preludes.
type AtRuleParamsRule struct {
	BaseRule
}

// NewAtRuleParamsRule creates a new at-rule-params rule.
func NewAtRuleParamsRule() *AtRuleParamsRule {
	return &AtRuleParamsRule{
		BaseRule: NewBaseRule("at-rule-params", "Single spaces in at-rule preludes"),
	}
}

// Apply rewrites at-rule names and params.
func (r *AtRuleParamsRule) Apply(ctx *Context) error {
	ctx.Each(func(v Visit) {
		at, ok := v.Node.(*syntax.AtRule)
		if !ok {
			return
		}
		at.Params = collapseWhitespace(strings.TrimSpace(at.Params))
	})
	return nil
}
