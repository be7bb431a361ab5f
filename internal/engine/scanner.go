package engine

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// Enumerate walks root and returns one FileTask per regular file, with
// destination paths mirrored under dstRoot. The walk does not follow
// symbolic links; symlinks and special files are skipped. The same policy
// drives the post-copy recount, so the two walks stay comparable.
//
// Traversal order is filesystem-dependent, but the result is exhaustive:
// every reachable regular file appears exactly once. Unreadable
// directories are skipped rather than aborting the enumeration. onFile,
// if non-nil, observes the running count for progress reporting.
func Enumerate(root, dstRoot string, onFile func(count int)) ([]FileTask, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve source root: %w", err)
	}

	var tasks []FileTask
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return fmt.Errorf("rel path for %s: %w", path, err)
		}

		info, err := d.Info()
		if err != nil {
			return nil // vanished between readdir and stat
		}

		tasks = append(tasks, FileTask{
			SrcPath: path,
			RelPath: rel,
			DstPath: filepath.Join(dstRoot, rel),
			ModTime: info.ModTime(),
			Size:    info.Size(),
			Mode:    info.Mode(),
		})
		if onFile != nil {
			onFile(len(tasks))
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("enumerate %s: %w", root, walkErr)
	}
	return tasks, nil
}
