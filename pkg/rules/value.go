package rules

import (
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type valueToken struct {
	tt   css.TokenType
	text string
}

// lexValue splits a declaration value, at-rule prelude or selector into CSS
// tokens. The second result is false when the lexer rejects the text.
func lexValue(s string) ([]valueToken, bool) {
	lexer := css.NewLexer(parse.NewInputString(s))

	var toks []valueToken
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, false
			}
			return toks, true
		}
		toks = append(toks, valueToken{tt: tt, text: string(data)})
	}
}

func joinValue(toks []valueToken) string {
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.text)
	}
	return b.String()
}

// mapTokens rewrites every token of kind tt with fn.
func mapTokens(s string, tt css.TokenType, fn func(string) string) string {
	toks, ok := lexValue(s)
	if !ok {
		return s
	}
	for i := range toks {
		if toks[i].tt == tt {
			toks[i].text = fn(toks[i].text)
		}
	}
	return joinValue(toks)
}

func opens(tt css.TokenType) bool {
	return tt == css.LeftParenthesisToken || tt == css.FunctionToken || tt == css.LeftBracketToken
}

// collapseWhitespace reduces every whitespace run outside strings to one
// space, removes it inside parentheses and brackets next to the delimiters,
// drops it before commas and puts exactly one space after them.
func collapseWhitespace(s string) string {
	toks, ok := lexValue(s)
	if !ok {
		return s
	}

	var b strings.Builder
	space, open := false, false
	for _, tok := range toks {
		switch tok.tt {
		case css.WhitespaceToken:
			space = true
			continue
		case css.CommaToken:
			b.WriteByte(',')
			space, open = true, false
			continue
		case css.RightParenthesisToken, css.RightBracketToken:
			space = false
		}

		if space && !open && b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.text)
		space = false
		open = opens(tok.tt)
	}
	return b.String()
}

// knownFlags are the "!" annotations normalized to " !flag".
var knownFlags = map[string]bool{
	"important": true,
	"default":   true,
	"global":    true,
	"optional":  true,
}

func normalizeFlags(s string) string {
	toks, ok := lexValue(s)
	if !ok {
		return s
	}

	out := make([]valueToken, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.tt != css.DelimToken || tok.text != "!" {
			out = append(out, tok)
			continue
		}

		j := i + 1
		for j < len(toks) && toks[j].tt == css.WhitespaceToken {
			j++
		}
		if j == len(toks) || toks[j].tt != css.IdentToken || !knownFlags[strings.ToLower(toks[j].text)] {
			out = append(out, tok)
			continue
		}

		for len(out) > 0 && out[len(out)-1].tt == css.WhitespaceToken {
			out = out[:len(out)-1]
		}
		if len(out) > 0 {
			out = append(out, valueToken{tt: css.WhitespaceToken, text: " "})
		}
		out = append(out,
			valueToken{tt: css.DelimToken, text: "!"},
			valueToken{tt: css.IdentToken, text: strings.ToLower(toks[j].text)},
		)
		i = j
	}
	return joinValue(out)
}
