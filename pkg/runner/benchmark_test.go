package runner_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/runner"
	"github.com/yaklabco/stylefmt/pkg/source"
)

func benchPending(n int) []source.Pending {
	pending := make([]source.Pending, n)
	for i := range n {
		pending[i] = textPending(fmt.Sprintf("f%03d.css", i), "a{color:#FFFFFF;margin:0}\nb,c{top:0}")
	}
	return pending
}

func benchmarkRun(b *testing.B, jobs int) {
	pending := benchPending(64)
	opts := runner.Options{Jobs: jobs, Format: &format.Options{}}
	r := runner.New(newFormatter(), newRecordingSink())
	ctx := context.Background()
	b.ResetTimer()
	for range b.N {
		result, err := r.Run(ctx, pending, opts)
		if err != nil {
			b.Fatal(err)
		}
		if result.HasErrors() {
			b.Fatal(result.Err())
		}
	}
}

func BenchmarkRunSerial(b *testing.B)   { benchmarkRun(b, 1) }
func BenchmarkRunParallel(b *testing.B) { benchmarkRun(b, 0) }
