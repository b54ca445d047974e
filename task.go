package tagstrip

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileKind classifies a file by how it is processed.
type FileKind string

// File kinds.
const (
	// KindHTML files are parsed and stripped.
	KindHTML FileKind = "html"

	// KindText files pass through unchanged.
	KindText FileKind = "text"
)

// KindForPath returns the FileKind for a path based on its extension
// (case-insensitive), or false if the extension is unsupported.
func KindForPath(path string) (FileKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return KindHTML, true
	case ".txt":
		return KindText, true
	}
	return "", false
}

// TaskState is the processing state of a FileTask.
type TaskState string

// Task states. A task moves from StatePending to exactly one of
// StateSuccess or StateFailed.
const (
	StatePending TaskState = "pending"
	StateSuccess TaskState = "success"
	StateFailed  TaskState = "failed"
)

// FileTask is one file's processing unit and its outcome.
type FileTask struct {
	// Path is the path as enumerated.
	Path string

	// AbsPath is the resolved absolute path.
	AbsPath string

	// RelPath locates the file under an output directory, preserving
	// the enumerated root's structure.
	RelPath string

	// Kind determines whether the file is stripped or passed through.
	Kind FileKind

	// State is the outcome. Pending until processed.
	State TaskState

	// Code is the error code when State is StateFailed.
	Code string

	// Reason holds the failure reason when State is StateFailed.
	Reason string

	// Unchanged is set when stripping produced output identical to the
	// input and the write was skipped.
	Unchanged bool
}

// Fail marks the task failed with the given error's code and message.
func (t *FileTask) Fail(err error) {
	t.State = StateFailed
	t.Code = ErrorCode(err)
	t.Reason = ErrorMessage(err)
}

// Succeed marks the task successful.
func (t *FileTask) Succeed() {
	t.State = StateSuccess
}

// BatchRequest describes one submitted job: scope (roots, recursion,
// destination) and configuration (strip options). Immutable once built.
type BatchRequest struct {
	// ID identifies the request in logs and progress output.
	ID string

	// Roots are the file and directory paths to process, in order.
	Roots []string

	// Recursive descends into subdirectories of directory roots.
	Recursive bool

	// OutDir, when non-empty, receives output files preserving each
	// root's relative structure. Empty means in-place overwrite.
	OutDir string

	// Options configure the strip operation applied to every file.
	Options StripOptions
}

// NewBatchRequest builds a validated BatchRequest. Configuration errors
// (EINVALID) surface here, before any file is touched.
func NewBatchRequest(roots []string, recursive bool, outDir string, opts StripOptions) (*BatchRequest, error) {
	if len(roots) == 0 {
		return nil, Errorf(EINVALID, "at least one path required")
	}
	if opts.Tags.Len() == 0 {
		return nil, Errorf(EINVALID, "at least one tag required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &BatchRequest{
		ID:        uuid.NewString(),
		Roots:     append([]string(nil), roots...),
		Recursive: recursive,
		OutDir:    outDir,
		Options:   opts,
	}, nil
}

// Progress reports the batch position after a file completes.
type Progress struct {
	// Completed counts files finished so far, success or failure.
	Completed int

	// Total is the number of enumerated files.
	Total int

	// Task is the file that just completed.
	Task *FileTask
}

// ProgressFunc is called as files complete. When the runner processes
// files concurrently, calls arrive in completion order, not enumeration
// order, but never concurrently with each other.
type ProgressFunc func(Progress)

// Summary aggregates batch outcomes.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Unchanged int
}

// Summarize tallies task outcomes.
func Summarize(tasks []*FileTask) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.State {
		case StateSuccess:
			s.Succeeded++
			if t.Unchanged {
				s.Unchanged++
			}
		case StateFailed:
			s.Failed++
		}
	}
	return s
}

// String formats the summary for display.
func (s Summary) String() string {
	out := fmt.Sprintf("%d processed, %d succeeded, %d failed", s.Total, s.Succeeded, s.Failed)
	if s.Unchanged > 0 {
		out += fmt.Sprintf(" (%d unchanged)", s.Unchanged)
	}
	return out
}

// Runner processes a batch request, producing one FileTask per
// enumerated file in enumeration order. One file's failure never aborts
// the batch.
type Runner interface {
	Run(ctx context.Context, req *BatchRequest, progress ProgressFunc) ([]*FileTask, error)
}
