package rules

import (
	"context"

	"github.com/yaklabco/stylefmt/pkg/config"
	"github.com/yaklabco/stylefmt/pkg/syntax"
)

// Context is handed to every rule during one transform.
//
// Context stores context.Context as a field (Ctx) because it is a
// short-lived parameter object created per transform.
type Context struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// Root is the tree being formatted.
	Root *syntax.Root

	// Config is the rule configuration.
	Config *config.Config

	// disabled holds the top nodes of regions excluded from formatting.
	disabled map[syntax.Node]bool
}

// NewContext creates a Context. A nil cfg selects the built-in defaults.
func NewContext(ctx context.Context, root *syntax.Root, cfg *config.Config) *Context {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Context{
		Ctx:      ctx,
		Root:     root,
		Config:   cfg,
		disabled: map[syntax.Node]bool{},
	}
}

// Cancelled reports whether the transform was cancelled.
func (c *Context) Cancelled() bool {
	if c.Ctx == nil {
		return false
	}
	return c.Ctx.Err() != nil
}

// Disabled reports whether n sits at the top of a disabled region.
func (c *Context) Disabled(n syntax.Node) bool {
	return c.disabled[n]
}

// Visit describes one node handed to a rule.
type Visit struct {
	Node syntax.Node

	// Depth is the nesting level; top-level nodes have depth 0.
	Depth int

	// Index is the node's position among Siblings.
	Index int

	// Siblings are the children of the node's parent, the node included.
	Siblings []syntax.Node
}

// Prev returns the preceding sibling, or nil for the first node.
func (v Visit) Prev() syntax.Node {
	if v.Index == 0 {
		return nil
	}
	return v.Siblings[v.Index-1]
}

// Each calls fn for every formattable node in document order.
// Disabled nodes and their subtrees are skipped.
func (c *Context) Each(fn func(v Visit)) {
	c.each(c.Root.Nodes, 0, fn)
}

func (c *Context) each(nodes []syntax.Node, depth int, fn func(v Visit)) {
	for i, n := range nodes {
		if c.disabled[n] {
			continue
		}
		fn(Visit{Node: n, Depth: depth, Index: i, Siblings: nodes})
		if container, ok := n.(syntax.Container); ok {
			c.each(container.Children(), depth+1, fn)
		}
	}
}
