package platform

import (
	"context"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

const bufferSize = 1 << 20 // 1 MiB

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, bufferSize)
		return &b
	},
}

// copyReadWrite copies data using pread/pwrite with a pooled buffer,
// honoring the optional bandwidth limiter.
func copyReadWrite(params CopyFileParams) (CopyResult, error) {
	srcFd, err := os.Open(params.SrcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer srcFd.Close()

	bufp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufp)
	buf := *bufp

	var offset, totalWritten int64
	remaining := params.SrcSize
	srcRawFd := int(srcFd.Fd())
	dstRawFd := int(params.DstFd.Fd())

	for remaining > 0 {
		toRead := int(remaining)
		if toRead > bufferSize {
			toRead = bufferSize
		}

		n, err := unix.Pread(srcRawFd, buf[:toRead], offset)
		if err != nil {
			return CopyResult{BytesWritten: totalWritten, Method: ReadWrite}, err
		}
		if n == 0 {
			break
		}

		if params.Limiter != nil {
			// The run has no cancellation primitive, so the wait is unbounded.
			if err := params.Limiter.WaitN(context.Background(), n); err != nil {
				return CopyResult{BytesWritten: totalWritten, Method: ReadWrite}, err
			}
		}

		written := 0
		for written < n {
			w, err := unix.Pwrite(dstRawFd, buf[written:n], offset+int64(written))
			if err != nil {
				return CopyResult{BytesWritten: totalWritten + int64(written), Method: ReadWrite}, err
			}
			written += w
		}

		offset += int64(n)
		remaining -= int64(n)
		totalWritten += int64(n)
	}

	return CopyResult{BytesWritten: totalWritten, Method: ReadWrite}, nil
}

// CopyReadWrite is the exported version for use by other packages during testing.
func CopyReadWrite(params CopyFileParams) (CopyResult, error) {
	return copyReadWrite(params)
}

// isFallbackErr returns true if err should trigger a fallback to the next copy strategy.
func isFallbackErr(err error) bool {
	switch err {
	case unix.ENOSYS, unix.EXDEV, unix.EINVAL, unix.ENOTSUP:
		return true
	}
	// Also handle wrapped errors.
	if e, ok := err.(*os.PathError); ok {
		return isFallbackErr(e.Err)
	}
	return false
}
