package rules

import (
	"strings"

	"github.com/yaklabco/stylefmt/pkg/config"
	"github.com/yaklabco/stylefmt/pkg/syntax"
)

// IndentationRule places every node on its own line at its nesting depth and
// controls blank lines and block braces.
type IndentationRule struct {
	BaseRule
}

// NewIndentationRule creates a new indentation rule.
func NewIndentationRule() *IndentationRule {
	return &IndentationRule{
		BaseRule: NewBaseRule("indentation", "One node per line, indented by depth, with blank lines before rules"),
	}
}

// Apply rewrites the raws around every node.
func (r *IndentationRule) Apply(ctx *Context) error {
	unit := ctx.Config.IndentUnit()
	ctx.Each(func(v Visit) {
		indent := strings.Repeat(unit, v.Depth)
		raws := rawsOf(v.Node)
		raws.Before = leading(v, ctx.Config, indent)

		switch n := v.Node.(type) {
		case *syntax.Rule:
			raws.Between = " "
			raws.After = closing(n.Nodes, indent)
		case *syntax.AtRule:
			raws.AfterName = ""
			if n.Params != "" {
				raws.AfterName = " "
			}
			if n.Block {
				raws.Between = " "
				raws.After = closing(n.Nodes, indent)
			} else {
				raws.Between = ""
				raws.Semicolon = true
			}
		}
	})
	return nil
}

func rawsOf(n syntax.Node) *syntax.Raws {
	switch n := n.(type) {
	case *syntax.Rule:
		return &n.Raws
	case *syntax.AtRule:
		return &n.Raws
	case *syntax.Decl:
		return &n.Raws
	case *syntax.Comment:
		return &n.Raws
	}
	return &syntax.Raws{}
}

func hasBlock(n syntax.Node) bool {
	switch n := n.(type) {
	case *syntax.Rule:
		return true
	case *syntax.AtRule:
		return n.Block
	}
	return false
}

func isComment(n syntax.Node) bool {
	_, ok := n.(*syntax.Comment)
	return ok
}

// isElse reports an @else that continues an @if/@else chain.
func isElse(v Visit) bool {
	at, ok := v.Node.(*syntax.AtRule)
	if !ok || !strings.EqualFold(at.Name, "else") {
		return false
	}
	prev, ok := v.Prev().(*syntax.AtRule)
	return ok && prev.Block
}

func leading(v Visit, cfg *config.Config, indent string) string {
	if v.Depth == 0 && v.Index == 0 {
		return ""
	}
	if isElse(v) {
		return " "
	}

	before := rawsOf(v.Node).Before
	if isComment(v.Node) && v.Index > 0 && !strings.ContainsAny(before, "\r\n") {
		return " "
	}

	blank := 0
	switch {
	case v.Index == 0:
	case cfg.BlankLineBeforeRule && hasBlock(v.Node) && !isComment(v.Prev()):
		blank = 1
	default:
		blank = min(max(strings.Count(before, "\n")-1, 0), cfg.MaxEmptyLines)
	}
	return strings.Repeat("\n", blank+1) + indent
}

func closing(children []syntax.Node, indent string) string {
	if len(children) == 0 {
		return ""
	}
	return "\n" + indent
}

// FinalNewlineRule ends non-empty output with exactly one newline.
type FinalNewlineRule struct {
	BaseRule
}

// NewFinalNewlineRule creates a new final-newline rule.
func NewFinalNewlineRule() *FinalNewlineRule {
	return &FinalNewlineRule{
		BaseRule: NewBaseRule("final-newline", "Files end with exactly one newline"),
	}
}

// Apply rewrites the text after the last top-level node.
func (r *FinalNewlineRule) Apply(ctx *Context) error {
	ctx.Root.After = ""
	if ctx.Config.FinalNewline && len(ctx.Root.Nodes) > 0 {
		ctx.Root.After = "\n"
	}
	return nil
}
