// Package syntax provides an SCSS-tolerant stylesheet syntax tree together with
// a parser and a stringifier.
//
// The tree keeps every byte of the source in node raws, so printing a freshly
// parsed tree reproduces the input exactly. Formatting rules rewrite raws and
// values; they never need to re-tokenize the whole document.
package syntax

// Node is a stylesheet syntax tree node.
type Node interface {
	node()
}

// Container is a node that holds child nodes.
type Container interface {
	Node
	Children() []Node
}

// Raws holds the formatting-only text around a node.
type Raws struct {
	// Before is the text preceding the node (whitespace, stray semicolons).
	Before string

	// Between is the text between a rule's selector or an at-rule's params
	// and the "{" (or ";"), or between a declaration's property and value,
	// including the colon.
	Between string

	// After is the text before a block's "}" or before a declaration's ";".
	After string

	// AfterName is the text between an at-rule's name and its params.
	AfterName string

	// Semicolon reports whether a declaration or block-less at-rule was
	// terminated by ";".
	Semicolon bool
}

// Root is the top-level node of a parsed stylesheet.
type Root struct {
	Nodes []Node

	// After is the trailing text after the last node.
	After string
}

// Rule is a qualified rule: a selector followed by a block.
type Rule struct {
	Selector string
	Nodes    []Node
	Raws     Raws
}

// AtRule is an at-rule such as @media or @import, with or without a block.
type AtRule struct {
	// Name is the at-keyword without the leading "@".
	Name   string
	Params string
	Nodes  []Node
	Block  bool
	Raws   Raws
}

// Decl is a declaration, including SCSS variable assignments.
type Decl struct {
	Prop  string
	Value string
	Raws  Raws
}

// Comment is a block comment, or an SCSS line comment when Inline is set.
type Comment struct {
	Text   string
	Inline bool
	Raws   Raws
}

func (*Root) node()    {}
func (*Rule) node()    {}
func (*AtRule) node()  {}
func (*Decl) node()    {}
func (*Comment) node() {}

// Children returns the root's top-level nodes.
func (r *Root) Children() []Node { return r.Nodes }

// Children returns the rule's block nodes.
func (r *Rule) Children() []Node { return r.Nodes }

// Children returns the at-rule's block nodes.
func (a *AtRule) Children() []Node { return a.Nodes }

// Walk calls fn for every node below c in document order, with the nesting
// depth of the node (top-level nodes have depth 0). Returning false from fn
// skips the node's children.
func Walk(c Container, fn func(n Node, depth int) bool) {
	walk(c.Children(), 0, fn)
}

func walk(nodes []Node, depth int, fn func(n Node, depth int) bool) {
	for _, n := range nodes {
		if !fn(n, depth) {
			continue
		}
		if c, ok := n.(Container); ok {
			walk(c.Children(), depth+1, fn)
		}
	}
}
