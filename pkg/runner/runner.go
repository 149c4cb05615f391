package runner

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/stylefmt/internal/logging"
	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/sink"
	"github.com/yaklabco/stylefmt/pkg/source"
)

// Formatter formats one unit of text.
type Formatter interface {
	Format(ctx context.Context, text, identifier string, opts *format.Options) (*format.Result, error)
}

// Runner sends pending units through a Formatter and a Sink.
type Runner struct {
	Formatter Formatter
	Sink      sink.Sink
}

// New creates a new Runner.
func New(formatter Formatter, out sink.Sink) *Runner {
	return &Runner{Formatter: formatter, Sink: out}
}

// Run processes pending concurrently and returns one outcome per unit, in
// input order.
//
// The runner:
//   - Bounds concurrency with opts.Jobs
//   - Records a failure in that unit's outcome only
//   - Checks cancellation before each unit starts; units not started are
//     reported as cancelled
func (r *Runner) Run(ctx context.Context, pending []source.Pending, opts Options) (*Result, error) {
	started := time.Now()
	logger := logging.FromContext(ctx)

	result := &Result{
		Files: make([]FileOutcome, len(pending)),
	}
	result.Stats.FilesDiscovered = len(pending)

	if len(pending) == 0 {
		return result, nil
	}

	jobs := opts.effectiveJobs(len(pending))
	logger.Debug("starting run",
		logging.FieldFilesDiscovered, len(pending),
		logging.FieldJobs, jobs,
		logging.FieldSink, r.Sink.Name())

	var group errgroup.Group
	group.SetLimit(jobs)

	for idx, unit := range pending {
		// Each index is written by exactly one goroutine.
		group.Go(func() error {
			result.Files[idx] = r.process(ctx, unit, opts.Format)
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range result.Files {
		result.accumulate(outcome)
	}
	result.Duration = time.Since(started)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// process runs one unit: Load, Format, Emit.
func (r *Runner) process(ctx context.Context, unit source.Pending, opts *format.Options) FileOutcome {
	outcome := FileOutcome{Identifier: unit.Identifier}

	if err := ctx.Err(); err != nil {
		outcome.Error = fmt.Errorf("%s: %w: %w", unit.Name(), ErrCancelled, err)
		return outcome
	}

	work, err := unit.Load(ctx)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	res, err := r.Formatter.Format(ctx, work.Text, work.Identifier, opts)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = res

	emitted, err := r.Sink.Emit(ctx, work, res)
	outcome.Emitted = emitted
	if err != nil {
		outcome.Error = err
		return outcome
	}

	logging.FromContext(ctx).Debug("formatted",
		logging.FieldPath, unit.Name(),
		"changed", res.Changed,
		"emitted", emitted)
	return outcome
}
