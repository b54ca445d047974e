package batch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/pproszowski/tagstrip"
	"golang.org/x/sync/errgroup"
)

// Ensure Runner implements tagstrip.Runner at compile time.
var _ tagstrip.Runner = (*Runner)(nil)

// Runner applies a Stripper to every file in a batch request.
// Each file is processed independently with no shared mutable state, so
// Concurrency > 1 is safe without locking beyond progress delivery.
type Runner struct {
	// Stripper transforms HTML file contents. Required.
	Stripper tagstrip.Stripper

	// Concurrency is the number of files processed in parallel.
	// Values <= 1 select sequential processing.
	Concurrency int

	// Logger receives enumeration counts, per-file failures, and the
	// final summary. Defaults to slog.Default.
	Logger *slog.Logger
}

// Run enumerates the request's files and processes each one: read,
// strip (HTML) or pass through (text), write. Per-file errors are
// recorded on the task and never abort the batch. The progress callback
// fires after every file in completion order. The returned tasks are in
// enumeration order. Cancellation is checked between files only.
func (r *Runner) Run(ctx context.Context, req *tagstrip.BatchRequest, progress tagstrip.ProgressFunc) ([]*tagstrip.FileTask, error) {
	if req == nil {
		return nil, tagstrip.Errorf(tagstrip.EINVALID, "batch request required")
	}
	if r.Stripper == nil {
		return nil, tagstrip.Errorf(tagstrip.EINVALID, "stripper required")
	}
	if err := req.Options.Validate(); err != nil {
		return nil, err
	}

	logger := r.logger().With("request", req.ID)

	tasks := Enumerate(req)
	total := len(tasks)
	logger.Info("enumerated files", "total", total, "recursive", req.Recursive)

	var err error
	if r.Concurrency > 1 {
		err = r.runConcurrent(ctx, req, tasks, progress, logger)
	} else {
		err = r.runSequential(ctx, req, tasks, progress, logger)
	}
	if err != nil {
		return tasks, err
	}

	summary := tagstrip.Summarize(tasks)
	logger.Info("batch finished",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"unchanged", summary.Unchanged,
	)
	return tasks, nil
}

func (r *Runner) runSequential(ctx context.Context, req *tagstrip.BatchRequest, tasks []*tagstrip.FileTask, progress tagstrip.ProgressFunc, logger *slog.Logger) error {
	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.processTask(task, req, logger)
		if progress != nil {
			progress(tagstrip.Progress{Completed: i + 1, Total: len(tasks), Task: task})
		}
	}
	return nil
}

func (r *Runner) runConcurrent(ctx context.Context, req *tagstrip.BatchRequest, tasks []*tagstrip.FileTask, progress tagstrip.ProgressFunc, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)

	var mu sync.Mutex
	completed := 0

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.processTask(task, req, logger)

			mu.Lock()
			defer mu.Unlock()
			completed++
			if progress != nil {
				progress(tagstrip.Progress{Completed: completed, Total: len(tasks), Task: task})
			}
			return nil
		})
	}

	return g.Wait()
}

// processTask runs the read-strip-write pipeline for one file, recording
// the outcome on the task.
func (r *Runner) processTask(task *tagstrip.FileTask, req *tagstrip.BatchRequest, logger *slog.Logger) {
	if task.State == tagstrip.StateFailed {
		// Enumeration already failed this task.
		logger.Warn("file failed", "path", task.Path, "reason", task.Reason)
		return
	}

	raw, err := os.ReadFile(task.AbsPath)
	if err != nil {
		task.Fail(tagstrip.Errorf(tagstrip.EREAD, "cannot read %s: %v", task.Path, err))
		logger.Warn("file failed", "path", task.Path, "reason", task.Reason)
		return
	}
	if !utf8.Valid(raw) {
		task.Fail(tagstrip.Errorf(tagstrip.EREAD, "%s is not valid UTF-8", task.Path))
		logger.Warn("file failed", "path", task.Path, "reason", task.Reason)
		return
	}

	input := string(raw)
	output := input
	if task.Kind == tagstrip.KindHTML {
		output, err = r.Stripper.Strip(input, req.Options)
		if err != nil {
			task.Fail(err)
			logger.Warn("file failed", "path", task.Path, "reason", task.Reason)
			return
		}
	}

	// In-place writes are skipped when the content did not change, so
	// untouched files keep their modification time.
	unchanged := xxhash.Sum64String(input) == xxhash.Sum64String(output)
	if unchanged && req.OutDir == "" {
		task.Unchanged = true
		task.Succeed()
		return
	}

	dest := task.AbsPath
	if req.OutDir != "" {
		dest = filepath.Join(req.OutDir, task.RelPath)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			task.Fail(tagstrip.Errorf(tagstrip.EWRITE, "cannot create output directory for %s: %v", task.Path, err))
			logger.Warn("file failed", "path", task.Path, "reason", task.Reason)
			return
		}
	}

	if err := os.WriteFile(dest, []byte(output), 0644); err != nil {
		task.Fail(tagstrip.Errorf(tagstrip.EWRITE, "cannot write %s: %v", dest, err))
		logger.Warn("file failed", "path", task.Path, "reason", task.Reason)
		return
	}

	task.Unchanged = unchanged
	task.Succeed()
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
