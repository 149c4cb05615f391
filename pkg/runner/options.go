// Package runner processes pending units concurrently with per-unit failure
// isolation.
package runner

import (
	"runtime"

	"github.com/yaklabco/stylefmt/pkg/format"
)

// Options controls a batch run.
type Options struct {
	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Format is handed unchanged to every Format call.
	Format *format.Options
}

// effectiveJobs returns the worker limit for n units.
func (o Options) effectiveJobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than units.
	return max(min(jobs, n), 1)
}
