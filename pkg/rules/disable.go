package rules

import (
	"strings"

	"github.com/yaklabco/stylefmt/pkg/syntax"
)

// Directive comments controlling formatting of the following siblings.
const (
	DisableDirective = "stylefmt-disable"
	EnableDirective  = "stylefmt-enable"
)

// markDisabled records every node that follows a disable directive, up to
// the matching enable directive or the end of its block.
func markDisabled(c *Context) {
	markDisabledIn(c, c.Root.Nodes)
}

func markDisabledIn(c *Context, nodes []syntax.Node) {
	off := false
	for _, n := range nodes {
		if comment, ok := n.(*syntax.Comment); ok {
			switch directive(comment) {
			case DisableDirective:
				off = true
				continue
			case EnableDirective:
				off = false
				continue
			}
		}
		if off {
			c.disabled[n] = true
			continue
		}
		if container, ok := n.(syntax.Container); ok {
			markDisabledIn(c, container.Children())
		}
	}
}

func directive(comment *syntax.Comment) string {
	switch strings.TrimSpace(comment.Text) {
	case DisableDirective:
		return DisableDirective
	case EnableDirective:
		return EnableDirective
	default:
		return ""
	}
}
