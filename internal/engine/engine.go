// Package engine drives the copy pipeline: enumerate the source tree,
// copy each file with its creation-time attributes, verify the
// destination count, and flush the result table.
package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/bamsammich/ntfscp/internal/event"
	"github.com/bamsammich/ntfscp/internal/filetime"
	"github.com/bamsammich/ntfscp/internal/report"
	"github.com/bamsammich/ntfscp/internal/stats"
	"github.com/bamsammich/ntfscp/internal/xattr"
)

// TableName is the result table written into the destination root.
const TableName = "timestamps.csv"

// Precondition errors abort a run before any I/O on the destination.
var (
	ErrSourceInvalid     = errors.New("source is not a directory")
	ErrDestinationExists = errors.New("destination already exists")
)

// CheckPreconditions validates that src is an existing directory and that
// dst does not exist yet. It performs no writes, so callers can run it
// before opening any output file (the CLI checks it before the journal).
func CheckPreconditions(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceInvalid, src)
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	}
	return nil
}

// Config describes a copy run.
type Config struct {
	Src     string
	Dst     string
	Verify  bool
	DryRun  bool
	BWLimit int64 // bytes/sec, 0 = unlimited

	Events  chan<- event.Event
	Stats   *stats.Collector
	Journal *report.Journal
	Table   *report.Table

	// copyOverride replaces the copy step in tests to simulate I/O failures.
	copyOverride func(FileTask) error
}

// RunSummary is the aggregate outcome of a run.
type RunSummary struct {
	FilesEnumerated int64
	FilesCopied     int64
	FilesFailed     int64
	XattrFailed     int64
	DestCounted     int64
	Verified        bool // verification pass ran
	CountMatches    bool
}

// Result is the outcome of a copy run. Err is set only for precondition
// and run-level failures; per-file errors are reported through the table,
// the journal, and events, and never abort the run.
type Result struct {
	Summary RunSummary
	Err     error
}

// Run executes a copy run, blocking until complete. Files are processed
// strictly one at a time in enumeration order; a failure on one file is
// recorded and processing continues with the next.
func Run(cfg Config) Result {
	src, err := filepath.Abs(cfg.Src)
	if err != nil {
		return Result{Err: fmt.Errorf("source: %w", err)}
	}
	dst, err := filepath.Abs(cfg.Dst)
	if err != nil {
		return Result{Err: fmt.Errorf("destination: %w", err)}
	}

	// Preconditions, checked before any I/O on the destination.
	if err := CheckPreconditions(src, dst); err != nil {
		return Result{Err: err}
	}

	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}
	if cfg.Table == nil {
		cfg.Table = report.NewTable()
	}
	if cfg.Journal == nil {
		cfg.Journal, _ = report.NewJournal("", false, nil)
	}

	var limiter *rate.Limiter
	if cfg.BWLimit > 0 {
		limiter = NewBWLimiter(cfg.BWLimit)
	}

	// Enumerate the source tree.
	emit(cfg.Events, event.Event{Type: event.ScanStarted})
	tasks, err := Enumerate(src, dst, func(count int) {
		cfg.Stats.AddFilesEnumerated(1)
		emit(cfg.Events, event.Event{Type: event.ScanProgress, Count: int64(count)})
	})
	if err != nil {
		return Result{Err: err}
	}
	total := int64(len(tasks))
	cfg.Journal.FileListed(len(tasks), src)
	emit(cfg.Events, event.Event{Type: event.ScanComplete, Total: total})

	summary := RunSummary{FilesEnumerated: total}

	if cfg.DryRun {
		return Result{Summary: summary}
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return Result{Err: fmt.Errorf("create destination: %w", err)}
	}

	for i, task := range tasks {
		outcome := processTask(&cfg, task, limiter)
		cfg.Table.Append(outcome.row)
		if outcome.copyErr != nil {
			summary.FilesFailed++
		} else {
			summary.FilesCopied++
		}
		if outcome.xattrErr != nil {
			summary.XattrFailed++
		}
		emitTaskEvents(cfg.Events, task, outcome, i, total)
	}

	if cfg.Verify {
		summary.Verified = true
		emit(cfg.Events, event.Event{Type: event.VerifyStarted})
		counted := CountFiles(dst, func(count int64) {
			emit(cfg.Events, event.Event{Type: event.VerifyProgress, Count: count})
		})
		cfg.Stats.AddDestCounted(counted)
		summary.DestCounted = counted
		summary.CountMatches = counted == total
		cfg.Journal.VerifyResult(counted, total)
		emit(cfg.Events, event.Event{
			Type:    event.VerifyDone,
			Count:   counted,
			Total:   total,
			Matched: summary.CountMatches,
		})
	}

	// Flush the table into the destination last, after the recount, so the
	// report file itself never skews the cardinality check.
	if err := cfg.Table.Finalize(filepath.Join(dst, TableName)); err != nil {
		return Result{Summary: summary, Err: err}
	}

	return Result{Summary: summary}
}

// taskOutcome is the per-file result of processTask.
type taskOutcome struct {
	row      report.Row
	display  string // formatted timestamp or "N/A"
	copyErr  error
	xattrErr error
}

// processTask runs the per-file sequence: read and decode the creation
// time, copy content and metadata, attach the destination attributes.
// Every error is captured in the outcome; nothing propagates.
func processTask(cfg *Config, task FileTask, limiter *rate.Limiter) taskOutcome {
	out := taskOutcome{display: "N/A", row: report.Row{File: task.RelPath}}

	var rec filetime.Record
	decoded := false
	if raw, ok := xattr.ReadCreationTime(task.SrcPath); ok {
		rec, decoded = filetime.Decode(raw)
	}

	rawTS := "N/A"
	if decoded {
		rawTS = rec.Ticks.Hex()
		out.display = rec.Readable
		out.row.Timestamp = rec.Ticks.Hex()
		out.row.TimestampStr = rec.Readable
	}

	var written int64
	if cfg.copyOverride != nil {
		out.copyErr = cfg.copyOverride(task)
	} else {
		written, out.copyErr = copyFile(task, limiter)
	}
	if out.copyErr != nil {
		cfg.Stats.AddFilesFailed(1)
		cfg.Journal.CopyFailed(task.SrcPath, out.copyErr)
		out.display = "N/A"
		return out
	}

	out.row.CopySuccessful = true
	cfg.Stats.AddFilesCopied(1)
	cfg.Stats.AddBytesCopied(written)

	if decoded {
		if err := xattr.WriteCreationTime(task.DstPath, rec); err != nil {
			out.xattrErr = err
			cfg.Stats.AddXattrFailed(1)
			cfg.Journal.XattrFailed(task.DstPath, err)
		} else {
			out.row.XattrSuccessful = true
			cfg.Stats.AddXattrWritten(1)
		}
	}

	cfg.Journal.FileCopied(task.SrcPath, task.DstPath, rawTS, out.display)
	return out
}

func emitTaskEvents(ch chan<- event.Event, task FileTask, out taskOutcome, index int, total int64) {
	if out.copyErr != nil {
		emit(ch, event.Event{
			Type:    event.FileFailed,
			Path:    task.RelPath,
			Display: "N/A",
			Index:   index,
			Total:   total,
			Error:   out.copyErr,
		})
		return
	}
	if out.xattrErr != nil {
		emit(ch, event.Event{
			Type:    event.XattrFailed,
			Path:    task.RelPath,
			Display: out.display,
			Index:   index,
			Total:   total,
			Error:   out.xattrErr,
		})
	}
	emit(ch, event.Event{
		Type:    event.FileCopied,
		Path:    task.RelPath,
		Display: out.display,
		Index:   index,
		Total:   total,
	})
}

// emit sends an event without ever blocking the pipeline.
func emit(ch chan<- event.Event, e event.Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}
