package sim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/integrators"
	"github.com/san-kum/powertrain/internal/logger"
)

// Job is one independent run of a sweep.
type Job struct {
	Name       string
	Params     dynamo.Params
	Config     dynamo.RunConfig
	Integrator string
}

type JobResult struct {
	Job   Job
	Table *dynamo.Table
}

// Sweep runs jobs concurrently, each on its own simulator and stepper.
// Results keep the order of jobs. The first failure cancels the rest.
func Sweep(ctx context.Context, jobs []Job, workers int, log logger.Logger) ([]JobResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logger.Nop
	}

	results := make([]JobResult, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			integ, err := integrators.New(job.Integrator)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			table, err := New(Options{Integrator: integ, Logger: log}).Run(job.Params, job.Config)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			results[i] = JobResult{Job: job, Table: table}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
