package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/rules"
	"github.com/yaklabco/stylefmt/pkg/runner"
	"github.com/yaklabco/stylefmt/pkg/sink"
	"github.com/yaklabco/stylefmt/pkg/source"
	"github.com/yaklabco/stylefmt/pkg/syntax"
)

// recordingSink remembers every emitted result.
type recordingSink struct {
	mu      sync.Mutex
	results map[string]*format.Result
	fail    string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{results: make(map[string]*format.Result)}
}

func (*recordingSink) Name() string { return "recording" }

func (s *recordingSink) Emit(_ context.Context, unit source.WorkUnit, res *format.Result) (bool, error) {
	if unit.Identifier == s.fail {
		return false, errors.New("sink failed")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[unit.Identifier] = res
	return res.Changed, nil
}

// countingFormatter counts Format calls and delegates to a real formatter.
type countingFormatter struct {
	calls atomic.Int32
	inner runner.Formatter
}

func (f *countingFormatter) Format(ctx context.Context, text, identifier string, opts *format.Options) (*format.Result, error) {
	f.calls.Add(1)
	return f.inner.Format(ctx, text, identifier, opts)
}

func newFormatter() *format.Formatter {
	return format.New(syntax.SCSS{}, rules.NewEngine(nil))
}

func textPending(identifier, text string) source.Pending {
	return source.NewPending(identifier, func(context.Context) (string, error) {
		return text, nil
	})
}

var _ sink.Sink = (*recordingSink)(nil)

func TestRunner_Run_NoUnits(t *testing.T) {
	t.Parallel()

	r := runner.New(newFormatter(), newRecordingSink())
	result, err := r.Run(context.Background(), nil, runner.Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, runner.Stats{}, result.Stats)
	assert.False(t, result.HasErrors())
	assert.NoError(t, result.Err())
}

func TestRunner_Run_OrderAndStats(t *testing.T) {
	t.Parallel()

	pending := []source.Pending{
		textPending("a.css", "a{color:red}"),
		textPending("b.css", "b {\n  color: blue;\n}\n"),
		textPending("c.scss", "c{d{e:f}}"),
	}
	out := newRecordingSink()

	result, err := runner.New(newFormatter(), out).Run(context.Background(), pending, runner.Options{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	for idx, p := range pending {
		assert.Equal(t, p.Identifier, result.Files[idx].Identifier)
		assert.NoError(t, result.Files[idx].Error)
	}

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 3,
		FilesProcessed:  3,
		FilesChanged:    2,
		FilesEmitted:    2,
	}, result.Stats)
	assert.Equal(t, "b {\n  color: blue;\n}\n", out.results["b.css"].Formatted)
	assert.False(t, out.results["b.css"].Changed)
}

func TestRunner_Run_FailureIsIsolated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.css")
	require.NoError(t, os.WriteFile(good, []byte("a{b:c}"), 0o644))

	src := source.New(dir, nil)
	pending, err := src.Collect(context.Background(), source.FileList{
		Paths: []string{good, filepath.Join(dir, "missing.css")},
	})
	require.NoError(t, err)
	pending = append(pending,
		textPending("broken.css", "a{"),
		textPending("sinkfail.css", "a{b:c}"),
	)

	out := newRecordingSink()
	out.fail = "sinkfail.css"

	result, err := runner.New(newFormatter(), out).Run(context.Background(), pending, runner.Options{Jobs: 4})
	require.NoError(t, err)
	require.Len(t, result.Files, 4)

	assert.NoError(t, result.Files[0].Error)
	require.NotNil(t, result.Files[0].Result)
	assert.Equal(t, "a {\n  b: c;\n}\n", result.Files[0].Result.Formatted)

	assert.ErrorIs(t, result.Files[1].Error, format.ErrInputRead)
	assert.ErrorIs(t, result.Files[2].Error, format.ErrTransform)
	assert.EqualError(t, result.Files[3].Error, "sink failed")
	assert.NotNil(t, result.Files[3].Result)

	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Equal(t, 3, result.Stats.FilesErrored)
	assert.True(t, result.HasErrors())
	assert.ErrorIs(t, result.Err(), format.ErrTransform)
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	var pending []source.Pending
	for idx := range 20 {
		name := filepath.Join("dir", string(rune('a'+idx))+".css")
		pending = append(pending, textPending(name, "x{y:z;;}\n\n\n\nq{r:s}"))
	}

	serial, err := runner.New(newFormatter(), newRecordingSink()).
		Run(context.Background(), pending, runner.Options{Jobs: 1})
	require.NoError(t, err)
	parallel, err := runner.New(newFormatter(), newRecordingSink()).
		Run(context.Background(), pending, runner.Options{Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for idx := range serial.Files {
		assert.Equal(t, serial.Files[idx].Identifier, parallel.Files[idx].Identifier)
		assert.Equal(t, serial.Files[idx].Result.Formatted, parallel.Files[idx].Result.Formatted)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	counting := &countingFormatter{inner: newFormatter()}
	pending := []source.Pending{
		textPending("a.css", "a{}"),
		textPending("b.css", "b{}"),
	}

	result, err := runner.New(counting, newRecordingSink()).Run(ctx, pending, runner.Options{Jobs: 1})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)

	assert.Zero(t, counting.calls.Load())
	for _, f := range result.Files {
		assert.True(t, f.Cancelled(), f.Identifier)
	}
	assert.Equal(t, 2, result.Stats.FilesCancelled)
	assert.Zero(t, result.Stats.FilesErrored)
	assert.True(t, result.HasErrors())
}

func TestRunner_Run_CancelMidway(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var pending []source.Pending
	for idx := range 5 {
		name := string(rune('a'+idx)) + ".css"
		pending = append(pending, source.NewPending(name, func(context.Context) (string, error) {
			if idx == 0 {
				cancel()
			}
			return "a{b:c}", nil
		}))
	}

	result, err := runner.New(newFormatter(), newRecordingSink()).Run(ctx, pending, runner.Options{Jobs: 1})
	require.ErrorIs(t, err, context.Canceled)

	// The first unit was started before cancellation; the rest never were.
	assert.False(t, result.Files[0].Cancelled())
	for _, f := range result.Files[1:] {
		assert.True(t, f.Cancelled(), f.Identifier)
	}
	assert.Equal(t, 4, result.Stats.FilesCancelled)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasErrors())
	assert.NoError(t, result.Err())
}

func TestFileOutcome_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, format.StdinName, runner.FileOutcome{}.Name())
	assert.Equal(t, "a.css", runner.FileOutcome{Identifier: "a.css"}.Name())
}
