package mock

import (
	"context"

	"github.com/pproszowski/tagstrip"
)

var _ tagstrip.Runner = (*Runner)(nil)

// Runner is a mock implementation of tagstrip.Runner.
type Runner struct {
	RunFn func(ctx context.Context, req *tagstrip.BatchRequest, progress tagstrip.ProgressFunc) ([]*tagstrip.FileTask, error)
}

func (r *Runner) Run(ctx context.Context, req *tagstrip.BatchRequest, progress tagstrip.ProgressFunc) ([]*tagstrip.FileTask, error) {
	return r.RunFn(ctx, req, progress)
}
