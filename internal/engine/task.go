package engine

import (
	"io/fs"
	"time"
)

// FileTask describes a single file copy: one enumerated regular file and
// its mirrored destination path. Tasks are consumed exactly once, in
// enumeration order.
type FileTask struct {
	SrcPath string // absolute source path
	RelPath string // path relative to the source root
	DstPath string // absolute destination path
	ModTime time.Time
	Size    int64
	Mode    fs.FileMode
}
