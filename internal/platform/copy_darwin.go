//go:build darwin

package platform

import (
	"golang.org/x/sys/unix"
)

// CopyFile tries clonefile first (whole-file CoW copies), then falls back
// to read/write on macOS. A bandwidth limiter forces the buffered path.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	if params.Limiter == nil {
		err := unix.Clonefile(params.SrcPath, params.DstFd.Name(), 0)
		if err == nil {
			return CopyResult{BytesWritten: params.SrcSize, Method: Clonefile}, nil
		}
		if !isFallbackCloneErr(err) {
			return CopyResult{}, err
		}
	}

	preallocate(params.DstFd, params.SrcSize)
	return copyReadWrite(params)
}

func isFallbackCloneErr(err error) bool {
	switch err {
	case unix.ENOTSUP, unix.EXDEV, unix.EEXIST:
		return true
	}
	return false
}
