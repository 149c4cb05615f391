package runner

import (
	"errors"
	"time"

	"github.com/yaklabco/stylefmt/pkg/format"
)

// ErrCancelled marks units that never started because the run was cancelled.
var ErrCancelled = errors.New("not processed: run cancelled")

// FileOutcome is what happened to one unit.
type FileOutcome struct {
	// Identifier names the unit; empty for anonymous stdin.
	Identifier string

	// Result is the formatting result; nil if loading or formatting failed.
	Result *format.Result

	// Emitted reports whether the sink produced a side effect.
	Emitted bool

	// Error is set if the unit failed at any stage.
	Error error
}

// Name returns the identifier for messages.
func (o FileOutcome) Name() string {
	return format.DisplayName(o.Identifier)
}

// Cancelled reports whether the unit was skipped due to cancellation.
func (o FileOutcome) Cancelled() bool {
	return errors.Is(o.Error, ErrCancelled)
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of pending units handed to the run.
	FilesDiscovered int

	// FilesProcessed is the number of units formatted and emitted without error.
	FilesProcessed int

	// FilesChanged is the number of units whose formatting differs from the input.
	FilesChanged int

	// FilesEmitted is the number of units for which the sink wrote or printed.
	FilesEmitted int

	// FilesErrored is the number of units that failed.
	FilesErrored int

	// FilesCancelled is the number of units never started.
	FilesCancelled int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per pending unit, in input order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Duration is the wall time of the run.
	Duration time.Duration
}

// HasErrors reports whether any unit failed, cancellations included.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.FilesCancelled > 0
}

// Err joins every unit error, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errors.Join(errs...)
}

// accumulate updates the statistics with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	switch {
	case outcome.Cancelled():
		r.Stats.FilesCancelled++
		return
	case outcome.Error != nil:
		r.Stats.FilesErrored++
	default:
		r.Stats.FilesProcessed++
	}

	if outcome.Result != nil && outcome.Result.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Emitted {
		r.Stats.FilesEmitted++
	}
}
