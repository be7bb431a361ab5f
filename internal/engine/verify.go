package engine

import (
	"io/fs"
	"path/filepath"
)

// CountFiles re-walks root and returns the number of regular files under
// it, using the same traversal policy as Enumerate (symlinks not
// followed, unreadable directories skipped). This is a cardinality check
// only: it cannot detect content corruption or attribute loss. onFile,
// if non-nil, observes the running count.
func CountFiles(root string, onFile func(count int64)) int64 {
	var count int64
	_ = filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		count++
		if onFile != nil {
			onFile(count)
		}
		return nil
	})
	return count
}
