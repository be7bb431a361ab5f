package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// DefaultJournalPath is where the narrative journal is appended unless
// overridden.
const DefaultJournalPath = "ntfscp.INFO.log"

// Journal is the narrative log of a run: an explicit handle rather than
// process-global logger state, so the orchestrator and verifier receive it
// as a dependency. A disabled journal carries a discard handler and every
// entry is a no-op.
type Journal struct {
	log     *slog.Logger
	file    *os.File
	enabled bool
}

// NewJournal opens (appending) the journal file and writes the two run
// header entries: the invoked command line and the start time. When
// enabled is false no file is touched.
func NewJournal(path string, enabled bool, argv []string) (*Journal, error) {
	if !enabled {
		return &Journal{log: slog.New(slog.NewTextHandler(io.Discard, nil))}, nil
	}
	if path == "" {
		path = DefaultJournalPath
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	j := &Journal{
		log:     slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})),
		file:    f,
		enabled: true,
	}

	now := time.Now()
	j.log.Info("command", "argv", strings.Join(argv, " "))
	j.log.Info("run started",
		"time", now.Format("15:04:05"),
		"date", now.Format("2006/01/02"),
	)
	return j, nil
}

// Enabled reports whether entries reach a file.
func (j *Journal) Enabled() bool { return j.enabled }

// FileListed records the enumeration total.
func (j *Journal) FileListed(total int, src string) {
	j.log.Info("files found in source", "count", total, "src", src)
}

// FileCopied records one successful copy with its timestamp rendering.
func (j *Journal) FileCopied(src, dst, rawTS, readableTS string) {
	j.log.Info("copied", "src", src, "dst", dst, "timestamp", rawTS, "readable", readableTS)
}

// CopyFailed records a failed copy.
func (j *Journal) CopyFailed(src string, err error) {
	j.log.Error("copy failed", "src", src, "error", err)
}

// XattrFailed records an attribute-write failure; the copy itself stands.
func (j *Journal) XattrFailed(dst string, err error) {
	j.log.Warn("failed to set xattr", "dst", dst, "error", err)
}

// VerifyResult records the verifier's cardinality check.
func (j *Journal) VerifyResult(counted, expected int64) {
	if counted == expected {
		j.log.Info("verified target directory file count", "count", counted)
		return
	}
	j.log.Warn("target directory file count mismatch",
		"count", counted, "expected", expected)
}

// Close releases the underlying file, if any.
func (j *Journal) Close() error {
	if j.file == nil {
		return nil
	}
	return j.file.Close()
}
