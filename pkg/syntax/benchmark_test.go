package syntax_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/stylefmt/pkg/syntax"
)

const benchSheet = `.card{display:grid;gap:8px}
.card>.title{font:bold 1.2em/1.4 "Inter",sans-serif;color:#333}
@media (min-width:40em){.card{grid-template-columns:1fr 2fr}}
// scss line comment
.icon-#{$name}{width:#{$size}px}
`

func BenchmarkParse(b *testing.B) {
	text := strings.Repeat(benchSheet, 100)
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for range b.N {
		if _, err := syntax.Parse(text); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRoundTrip(b *testing.B) {
	text := strings.Repeat(benchSheet, 100)
	syn := syntax.SCSS{}
	b.ResetTimer()
	for range b.N {
		root, err := syn.Parse("bench.scss", text)
		if err != nil {
			b.Fatal(err)
		}
		_ = syn.Stringify(root)
	}
}
