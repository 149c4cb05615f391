package syntax

import "strings"

// String prints the tree back to stylesheet text.
func (r *Root) String() string {
	var b strings.Builder
	writeNodes(&b, r.Nodes)
	b.WriteString(r.After)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		writeNode(b, n)
	}
}

func writeNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Rule:
		b.WriteString(n.Raws.Before)
		b.WriteString(n.Selector)
		b.WriteString(n.Raws.Between)
		b.WriteByte('{')
		writeNodes(b, n.Nodes)
		b.WriteString(n.Raws.After)
		b.WriteByte('}')
	case *AtRule:
		b.WriteString(n.Raws.Before)
		b.WriteByte('@')
		b.WriteString(n.Name)
		b.WriteString(n.Raws.AfterName)
		b.WriteString(n.Params)
		b.WriteString(n.Raws.Between)
		if n.Block {
			b.WriteByte('{')
			writeNodes(b, n.Nodes)
			b.WriteString(n.Raws.After)
			b.WriteByte('}')
		} else if n.Raws.Semicolon {
			b.WriteByte(';')
		}
	case *Decl:
		b.WriteString(n.Raws.Before)
		b.WriteString(n.Prop)
		b.WriteString(n.Raws.Between)
		b.WriteString(n.Value)
		b.WriteString(n.Raws.After)
		if n.Raws.Semicolon {
			b.WriteByte(';')
		}
	case *Comment:
		b.WriteString(n.Raws.Before)
		if n.Inline {
			b.WriteString("//")
			b.WriteString(n.Text)
		} else {
			b.WriteString("/*")
			b.WriteString(n.Text)
			b.WriteString("*/")
		}
	}
}
