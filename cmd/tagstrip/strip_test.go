package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/pproszowski/tagstrip"
	main "github.com/pproszowski/tagstrip/cmd/tagstrip"
	"github.com/pproszowski/tagstrip/mock"
	"github.com/pproszowski/tagstrip/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(runner tagstrip.Runner) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Config: &yaml.Config{},
		Runner: runner,
	}, stdout, stderr
}

func TestStripCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("builds the request from flags", func(t *testing.T) {
		t.Parallel()

		var captured *tagstrip.BatchRequest
		runner := &mock.Runner{
			RunFn: func(_ context.Context, req *tagstrip.BatchRequest, _ tagstrip.ProgressFunc) ([]*tagstrip.FileTask, error) {
				captured = req
				return []*tagstrip.FileTask{{Path: "a.html", State: tagstrip.StateSuccess}}, nil
			},
		}
		deps, _, _ := newDeps(runner)

		cmd := &main.StripCmd{
			Paths:     []string{"dir"},
			Tags:      []string{"script", "style"},
			AddTags:   []string{"iframe"},
			Recursive: true,
			Unwrap:    true,
			Out:       "outdir",
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.NotEmpty(t, captured.ID)
		assert.Equal(t, []string{"dir"}, captured.Roots)
		assert.True(t, captured.Recursive)
		assert.Equal(t, "outdir", captured.OutDir)
		assert.Equal(t, []string{"iframe", "script", "style"}, captured.Options.Tags.Names())
		assert.Equal(t, tagstrip.UnwrapOnly, captured.Options.Mode)
	})

	t.Run("uses configured tags when no flags given", func(t *testing.T) {
		t.Parallel()

		var captured *tagstrip.BatchRequest
		runner := &mock.Runner{
			RunFn: func(_ context.Context, req *tagstrip.BatchRequest, _ tagstrip.ProgressFunc) ([]*tagstrip.FileTask, error) {
				captured = req
				return []*tagstrip.FileTask{{State: tagstrip.StateSuccess}}, nil
			},
		}
		deps, _, _ := newDeps(runner)
		deps.Config = &yaml.Config{Tags: []string{"blink"}}

		cmd := &main.StripCmd{Paths: []string{"dir"}}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.Equal(t, []string{"blink"}, captured.Options.Tags.Names())
	})

	t.Run("prints summary and per-file progress", func(t *testing.T) {
		t.Parallel()

		runner := &mock.Runner{
			RunFn: func(_ context.Context, _ *tagstrip.BatchRequest, progress tagstrip.ProgressFunc) ([]*tagstrip.FileTask, error) {
				tasks := []*tagstrip.FileTask{
					{Path: "a.html", State: tagstrip.StateSuccess},
					{Path: "b.html", State: tagstrip.StateSuccess, Unchanged: true},
				}
				progress(tagstrip.Progress{Completed: 1, Total: 2, Task: tasks[0]})
				progress(tagstrip.Progress{Completed: 2, Total: 2, Task: tasks[1]})
				return tasks, nil
			},
		}
		deps, stdout, stderr := newDeps(runner)

		cmd := &main.StripCmd{Paths: []string{"dir"}}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "[1/2] a.html")
		assert.Contains(t, stdout.String(), "[2/2] b.html (unchanged)")
		assert.Contains(t, stdout.String(), "2 processed, 2 succeeded, 0 failed")
		assert.Empty(t, stderr.String())
	})

	t.Run("quiet suppresses progress but not failures", func(t *testing.T) {
		t.Parallel()

		runner := &mock.Runner{
			RunFn: func(_ context.Context, _ *tagstrip.BatchRequest, progress tagstrip.ProgressFunc) ([]*tagstrip.FileTask, error) {
				ok := &tagstrip.FileTask{Path: "a.html", State: tagstrip.StateSuccess}
				bad := &tagstrip.FileTask{Path: "b.html", State: tagstrip.StateFailed, Reason: "cannot read b.html"}
				progress(tagstrip.Progress{Completed: 1, Total: 2, Task: ok})
				progress(tagstrip.Progress{Completed: 2, Total: 2, Task: bad})
				return []*tagstrip.FileTask{ok, bad}, nil
			},
		}
		deps, stdout, stderr := newDeps(runner)

		cmd := &main.StripCmd{Paths: []string{"dir"}, Quiet: true}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 files failed")
		assert.NotContains(t, stdout.String(), "a.html")
		assert.Contains(t, stderr.String(), "fail b.html: cannot read b.html")
	})

	t.Run("reports when no files were found", func(t *testing.T) {
		t.Parallel()

		runner := &mock.Runner{
			RunFn: func(_ context.Context, _ *tagstrip.BatchRequest, _ tagstrip.ProgressFunc) ([]*tagstrip.FileTask, error) {
				return nil, nil
			},
		}
		deps, stdout, _ := newDeps(runner)

		cmd := &main.StripCmd{Paths: []string{"dir"}}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No supported files found")
	})

	t.Run("rejects invalid tag names before running", func(t *testing.T) {
		t.Parallel()

		runner := &mock.Runner{
			RunFn: func(_ context.Context, _ *tagstrip.BatchRequest, _ tagstrip.ProgressFunc) ([]*tagstrip.FileTask, error) {
				t.Fatal("runner must not be called for invalid configuration")
				return nil, nil
			},
		}
		deps, _, stderr := newDeps(runner)

		cmd := &main.StripCmd{Paths: []string{"dir"}, Tags: []string{"<bad>"}}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, tagstrip.EINVALID, tagstrip.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
