// Package batch runs independent builds concurrently. Builds share the
// catalog and child library read-only and own everything else.
package batch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/IObundle/versat-ai/internal/assembler"
	"github.com/IObundle/versat-ai/internal/output"
)

// Job is one build request.
type Job struct {
	Target assembler.Target
	Params assembler.BuildParams

	// Label identifies the job in results and logs. Defaults to the
	// target name.
	Label string
}

// Result is the outcome of one Job.
type Result struct {
	Label    string
	Build    *assembler.Build
	Err      error
	Duration time.Duration
}

// Failed reports whether any result carries an error.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run executes jobs with at most limit builds in flight (limit <= 0 means
// unbounded). Results are in job order. A failing build does not stop the
// others; only ctx cancellation does, in which case the remaining jobs
// report the context error.
func Run(ctx context.Context, a *assembler.Assembler, jobs []Job, limit int) []Result {
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, job := range jobs {
		label := job.Label
		if label == "" {
			label = job.Target.Name
		}
		g.Go(func() error {
			results[i] = runJob(ctx, a, job, label)
			return nil
		})
	}
	// Workers never return errors; failures live in results.
	_ = g.Wait()

	return results
}

func runJob(ctx context.Context, a *assembler.Assembler, job Job, label string) Result {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return Result{Label: label, Err: fmt.Errorf("build %s not started: %w", label, err)}
	}

	b, err := a.Assemble(job.Target, job.Params.Clone())
	r := Result{Label: label, Build: b, Err: err, Duration: time.Since(start)}
	if err != nil {
		output.Debug("batch job failed", "job", label, "duration", r.Duration)
	} else {
		output.Debug("batch job done", "job", label, "duration", r.Duration)
	}
	return r
}
