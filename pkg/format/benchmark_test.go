package format_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/stylefmt/pkg/config"
	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/rules"
	"github.com/yaklabco/stylefmt/pkg/syntax"
)

const benchSheet = `@import url(base.css);
$accent:#FFAA00;
.nav,.nav-item{display:flex;color:#FFFFFF;background:$accent}
.nav{
  &:hover{color:RED;border:1px solid #ABCDEF}
  .item>.link{content:"x";margin:0 auto!important}
}
@media screen and (max-width:600px){.nav{display:none}}
/* footer */
footer{padding:0;font-family:"Helvetica Neue",sans-serif}
`

func benchOptions() *format.Options {
	cfg := config.NewConfig()
	cfg.ColorHexLength = "short"
	cfg.StringQuotes = "single"
	return &format.Options{Config: cfg}
}

func BenchmarkFormatSmall(b *testing.B) {
	f := format.New(syntax.SCSS{}, rules.NewEngine(nil))
	opts := benchOptions()
	ctx := context.Background()
	b.ResetTimer()
	for range b.N {
		if _, err := f.Format(ctx, benchSheet, "bench.scss", opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormatLarge(b *testing.B) {
	f := format.New(syntax.SCSS{}, rules.NewEngine(nil))
	opts := benchOptions()
	ctx := context.Background()
	text := strings.Repeat(benchSheet, 200)
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for range b.N {
		if _, err := f.Format(ctx, text, "bench.scss", opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormatAlreadyFormatted(b *testing.B) {
	f := format.New(syntax.SCSS{}, rules.NewEngine(nil))
	opts := benchOptions()
	ctx := context.Background()
	res, err := f.Format(ctx, benchSheet, "bench.scss", opts)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for range b.N {
		if _, err := f.Format(ctx, res.Formatted, "bench.scss", opts); err != nil {
			b.Fatal(err)
		}
	}
}
