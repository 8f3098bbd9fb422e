package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdtmpl/internal/logging"
)

// Runner compiles a content tree through a Pipeline.
type Runner struct {
	Pipeline *Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the sources under opts.SourceRoot and compiles them with at
// most opts.Jobs workers. Per-file failures are reported in the result; the
// returned error is reserved for discovery failures and cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	logging.FromContext(ctx).Debug("building",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
	)

	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				outcomes[i] = FileOutcome{Path: path, Status: StatusFailed, Error: err}
				return err
			}
			outcomes[i] = r.Pipeline.Process(groupCtx, path)
			return nil
		})
	}

	waitErr := group.Wait()
	result := newResult(outcomes)

	if ctx.Err() != nil {
		return result, fmt.Errorf("build cancelled: %w", ctx.Err())
	}
	if waitErr != nil {
		return result, fmt.Errorf("build: %w", waitErr)
	}

	return result, nil
}
