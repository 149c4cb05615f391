package syntax

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrSyntax is matched by every *ParseError via errors.Is.
var ErrSyntax = errors.New("syntax error")

// ParseError reports malformed stylesheet input with a 1-based position.
type ParseError struct {
	Line   int
	Column int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Reason)
}

// Unwrap allows errors.Is(err, ErrSyntax).
func (e *ParseError) Unwrap() error { return ErrSyntax }

// SCSS is the default syntax front-end. It accepts plain CSS and the parts of
// the SCSS superset that matter for formatting: nesting, variables, line
// comments and #{} interpolation.
type SCSS struct{}

// Parse parses text; the identifier is accepted for interface symmetry.
func (SCSS) Parse(_ string, text string) (*Root, error) {
	return Parse(text)
}

// Stringify prints root back to text.
func (SCSS) Stringify(root *Root) string {
	return root.String()
}

type token struct {
	tt   css.TokenType
	text string
	line int
	col  int
}

// Parse parses stylesheet text into a tree whose String() reproduces text.
func Parse(text string) (*Root, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}

	root := &Root{}
	p := &parser{
		toks:  toks,
		root:  root,
		stack: []openBlock{{node: root}},
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return root, nil
}

func tokenize(text string) ([]token, error) {
	return tokenizeAt(text, 1, 1)
}

func tokenizeAt(text string, line, col int) ([]token, error) {
	lexer := css.NewLexer(parse.NewInputString(text))

	var toks []token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, &ParseError{Line: line, Column: col, Reason: err.Error()}
			}
			return toks, nil
		}

		s := string(data)
		toks = append(toks, token{tt: tt, text: s, line: line, col: col})
		line, col = advance(line, col, s)
	}
}

func advance(line, col int, s string) (int, int) {
	for _, r := range s {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

type openBlock struct {
	node Node
	at   token
}

type parser struct {
	toks  []token
	pos   int
	root  *Root
	stack []openBlock

	// before collects whitespace seen while no statement is pending.
	before strings.Builder
	// buf holds the tokens of the statement being read.
	buf []token
	// depth counts open parentheses and brackets inside buf.
	depth int
}

func (p *parser) run() error {
	for p.pos < len(p.toks) {
		tok := p.toks[p.pos]
		p.pos++

		var err error
		switch {
		case tok.tt == css.WhitespaceToken:
			p.space(tok)
		case tok.tt == css.CommentToken:
			err = p.comment(tok)
		case p.isLineComment(tok):
			p.lineComment()
		case p.isInterpolation(tok):
			p.interpolation(tok)
		case tok.tt == css.LeftParenthesisToken || tok.tt == css.FunctionToken || tok.tt == css.LeftBracketToken:
			p.depth++
			p.buf = append(p.buf, tok)
		case tok.tt == css.RightParenthesisToken || tok.tt == css.RightBracketToken:
			if p.depth > 0 {
				p.depth--
			}
			p.buf = append(p.buf, tok)
		case p.depth > 0:
			p.buf = append(p.buf, tok)
		case tok.tt == css.LeftBraceToken:
			p.open(tok)
		case tok.tt == css.SemicolonToken:
			err = p.endStatement(true)
		case tok.tt == css.RightBraceToken:
			err = p.close(tok)
		default:
			p.buf = append(p.buf, tok)
		}
		if err != nil {
			return err
		}
	}
	return p.finish()
}

func (p *parser) space(tok token) {
	if len(p.buf) == 0 {
		p.before.WriteString(tok.text)
		return
	}
	p.buf = append(p.buf, tok)
}

func (p *parser) comment(tok token) error {
	if len(tok.text) < 4 || !strings.HasSuffix(tok.text, "*/") {
		return &ParseError{Line: tok.line, Column: tok.col, Reason: "unclosed comment"}
	}
	if len(p.buf) > 0 {
		p.buf = append(p.buf, tok)
		return nil
	}
	p.emit(&Comment{
		Text: tok.text[2 : len(tok.text)-2],
		Raws: Raws{Before: p.takeBefore()},
	})
	return nil
}

func (p *parser) isLineComment(tok token) bool {
	return len(p.buf) == 0 &&
		tok.tt == css.DelimToken && tok.text == "/" &&
		p.pos < len(p.toks) &&
		p.toks[p.pos].tt == css.DelimToken && p.toks[p.pos].text == "/"
}

// lineComment consumes an SCSS "//" comment up to, not including, the line break.
func (p *parser) lineComment() {
	p.pos++ // second slash

	before := p.takeBefore()
	var text strings.Builder
	for p.pos < len(p.toks) {
		tok := p.toks[p.pos]
		p.pos++

		idx := strings.IndexAny(tok.text, "\r\n")
		if idx < 0 {
			text.WriteString(tok.text)
			continue
		}

		text.WriteString(tok.text[:idx])
		p.emit(&Comment{Text: text.String(), Inline: true, Raws: Raws{Before: before}})
		p.resume(tok, idx)
		return
	}
	p.emit(&Comment{Text: text.String(), Inline: true, Raws: Raws{Before: before}})
}

// resume re-queues the part of tok starting at idx. Tokens such as bad
// strings can swallow the line break that ends a line comment.
func (p *parser) resume(tok token, idx int) {
	rest := tok.text[idx:]
	if strings.TrimLeft(rest, spaceChars) == "" {
		p.before.WriteString(rest)
		return
	}

	line, col := advance(tok.line, tok.col, tok.text[:idx])
	more, err := tokenizeAt(rest, line, col)
	if err != nil {
		p.before.WriteString(rest)
		return
	}
	tail := append(more, p.toks[p.pos:]...)
	p.toks = append(p.toks[:p.pos], tail...)
}

func (p *parser) isInterpolation(tok token) bool {
	return tok.tt == css.DelimToken && tok.text == "#" &&
		p.pos < len(p.toks) && p.toks[p.pos].tt == css.LeftBraceToken
}

// interpolation appends a balanced #{...} group to the pending statement.
func (p *parser) interpolation(hash token) {
	p.buf = append(p.buf, hash)
	braces := 0
	for p.pos < len(p.toks) {
		tok := p.toks[p.pos]
		p.pos++
		p.buf = append(p.buf, tok)
		switch tok.tt {
		case css.LeftBraceToken:
			braces++
		case css.RightBraceToken:
			braces--
			if braces == 0 {
				return
			}
		}
	}
}

func (p *parser) open(brace token) {
	var n Node
	if p.pendingAtRule() {
		at := p.atRule()
		at.Block = true
		n = at
	} else {
		selector, between := splitTrailingSpace(joinTokens(p.buf))
		n = &Rule{
			Selector: selector,
			Raws:     Raws{Before: p.takeBefore(), Between: between},
		}
	}
	p.emit(n)
	p.stack = append(p.stack, openBlock{node: n, at: brace})
	p.reset()
}

func (p *parser) close(brace token) error {
	if len(p.stack) == 1 {
		return &ParseError{Line: brace.line, Column: brace.col, Reason: "unexpected }"}
	}
	if err := p.endStatement(false); err != nil {
		return err
	}

	after := p.takeBefore()
	switch n := p.stack[len(p.stack)-1].node.(type) {
	case *Rule:
		n.Raws.After = after
	case *AtRule:
		n.Raws.After = after
	}
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

func (p *parser) endStatement(semicolon bool) error {
	if len(p.buf) == 0 {
		if semicolon {
			p.before.WriteByte(';')
		}
		return nil
	}

	if p.pendingAtRule() {
		at := p.atRule()
		at.Raws.Semicolon = semicolon
		p.emit(at)
		p.reset()
		return nil
	}

	decl, err := p.decl()
	if err != nil {
		return err
	}
	decl.Raws.Semicolon = semicolon
	p.emit(decl)
	p.reset()
	return nil
}

func (p *parser) finish() error {
	if err := p.endStatement(false); err != nil {
		return err
	}
	if len(p.stack) > 1 {
		open := p.stack[len(p.stack)-1].at
		return &ParseError{Line: open.line, Column: open.col, Reason: "unclosed block"}
	}
	p.root.After = p.takeBefore()
	return nil
}

func (p *parser) pendingAtRule() bool {
	return len(p.buf) > 0 && p.buf[0].tt == css.AtKeywordToken
}

func (p *parser) atRule() *AtRule {
	rest := joinTokens(p.buf[1:])
	params := strings.TrimLeft(rest, spaceChars)
	params, between := splitTrailingSpace(params)

	return &AtRule{
		Name:   strings.TrimPrefix(p.buf[0].text, "@"),
		Params: params,
		Raws: Raws{
			Before:    p.takeBefore(),
			AfterName: rest[:len(rest)-len(strings.TrimLeft(rest, spaceChars))],
			Between:   between,
		},
	}
}

func (p *parser) decl() (*Decl, error) {
	colon := -1
	depth := 0
	for i, tok := range p.buf {
		switch tok.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.ColonToken:
			if depth == 0 && colon < 0 {
				colon = i
			}
		}
	}
	if colon < 0 {
		first := p.buf[0]
		return nil, &ParseError{Line: first.line, Column: first.col, Reason: fmt.Sprintf("unknown word %q", first.text)}
	}

	prop, propTrail := splitTrailingSpace(joinTokens(p.buf[:colon]))
	rest := joinTokens(p.buf[colon+1:])
	value := strings.TrimLeft(rest, spaceChars)
	lead := rest[:len(rest)-len(value)]
	value, after := splitTrailingSpace(value)

	return &Decl{
		Prop:  prop,
		Value: value,
		Raws: Raws{
			Before:  p.takeBefore(),
			Between: propTrail + ":" + lead,
			After:   after,
		},
	}, nil
}

func (p *parser) emit(n Node) {
	switch parent := p.stack[len(p.stack)-1].node.(type) {
	case *Root:
		parent.Nodes = append(parent.Nodes, n)
	case *Rule:
		parent.Nodes = append(parent.Nodes, n)
	case *AtRule:
		parent.Nodes = append(parent.Nodes, n)
	}
}

func (p *parser) takeBefore() string {
	s := p.before.String()
	p.before.Reset()
	return s
}

func (p *parser) reset() {
	p.buf = p.buf[:0]
	p.depth = 0
}

const spaceChars = " \t\n\r\f"

func joinTokens(toks []token) string {
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.text)
	}
	return b.String()
}

func splitTrailingSpace(s string) (string, string) {
	trimmed := strings.TrimRight(s, spaceChars)
	return trimmed, s[len(trimmed):]
}
