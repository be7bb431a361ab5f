package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bamsammich/ntfscp/internal/platform"
)

// copyFile copies one regular file to its destination path, preserving
// mode and mtime. Data lands in a uuid-named temp file first and is
// renamed into place, so an interrupted run never leaves a half-written
// file under the destination name. Returns bytes written.
func copyFile(task FileTask, limiter *rate.Limiter) (int64, error) {
	dir := filepath.Dir(task.DstPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create parent dir %s: %w", dir, err)
	}

	base := filepath.Base(task.DstPath)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.ntfscp-tmp", base, uuid.New().String()[:8]))

	RegisterTmp(tmpPath)
	defer func() {
		DeregisterTmp(tmpPath)
		_ = os.Remove(tmpPath) // no-op if rename succeeded
	}()

	tmpFd, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, task.Mode.Perm())
	if err != nil {
		return 0, fmt.Errorf("create tmp %s: %w", tmpPath, err)
	}

	var written int64
	if task.Size > 0 {
		result, err := platform.CopyFile(platform.CopyFileParams{
			SrcPath: task.SrcPath,
			DstFd:   tmpFd,
			SrcSize: task.Size,
			Limiter: limiter,
		})
		if err != nil {
			tmpFd.Close()
			return result.BytesWritten, fmt.Errorf("copy data %s: %w", task.SrcPath, err)
		}
		written = result.BytesWritten
	}

	if err := tmpFd.Chmod(task.Mode.Perm()); err != nil {
		tmpFd.Close()
		return written, fmt.Errorf("chmod %s: %w", task.DstPath, err)
	}

	if err := tmpFd.Close(); err != nil {
		return written, fmt.Errorf("close tmp %s: %w", tmpPath, err)
	}

	if err := os.Chtimes(tmpPath, task.ModTime, task.ModTime); err != nil {
		return written, fmt.Errorf("chtimes %s: %w", task.DstPath, err)
	}

	if err := os.Rename(tmpPath, task.DstPath); err != nil {
		return written, fmt.Errorf("rename %s -> %s: %w", tmpPath, task.DstPath, err)
	}

	return written, nil
}
