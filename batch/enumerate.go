// Package batch runs tag stripping over sets of files and directories,
// reporting per-file outcomes and incremental progress.
package batch

import (
	"os"
	"path/filepath"

	"github.com/pproszowski/tagstrip"
)

// Enumerate resolves a request's roots into file tasks. Directories are
// listed in lexicographic order and descended depth-first when the
// request is recursive, so the output is deterministic for a given tree.
// Files with unsupported extensions are skipped silently. Directory
// symlink cycles are detected and skipped. A root that cannot be
// stat'ed produces a failed task rather than aborting enumeration.
func Enumerate(req *tagstrip.BatchRequest) []*tagstrip.FileTask {
	var tasks []*tagstrip.FileTask
	visited := make(map[string]struct{})

	for _, root := range req.Roots {
		info, err := os.Stat(root)
		if err != nil {
			task := newTask(root, filepath.Base(root), tagstrip.KindText)
			task.Fail(tagstrip.Errorf(tagstrip.EREAD, "cannot access %s: %v", root, err))
			tasks = append(tasks, task)
			continue
		}

		if !info.IsDir() {
			kind, ok := tagstrip.KindForPath(root)
			if !ok {
				continue
			}
			tasks = append(tasks, newTask(root, filepath.Base(root), kind))
			continue
		}

		tasks = append(tasks, walkDir(root, filepath.Base(root), req.Recursive, visited)...)
	}

	return tasks
}

// walkDir lists dir in lexicographic order, collecting supported files
// and recursing into subdirectories when recursive is set. relBase is
// the path prefix recorded on each task for output-directory mode.
func walkDir(dir, relBase string, recursive bool, visited map[string]struct{}) []*tagstrip.FileTask {
	// Resolve symlinks so cycles terminate.
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil
	}
	if _, seen := visited[resolved]; seen {
		return nil
	}
	visited[resolved] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var tasks []*tagstrip.FileTask
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		rel := filepath.Join(relBase, entry.Name())

		isDir := entry.IsDir()
		if !isDir && entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				isDir = true
			}
		}

		if isDir {
			if recursive {
				tasks = append(tasks, walkDir(path, rel, recursive, visited)...)
			}
			continue
		}

		kind, ok := tagstrip.KindForPath(entry.Name())
		if !ok {
			continue
		}
		tasks = append(tasks, newTask(path, rel, kind))
	}

	return tasks
}

func newTask(path, rel string, kind tagstrip.FileKind) *tagstrip.FileTask {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &tagstrip.FileTask{
		Path:    path,
		AbsPath: abs,
		RelPath: rel,
		Kind:    kind,
		State:   tagstrip.StatePending,
	}
}
