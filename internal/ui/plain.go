package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/ntfscp/internal/event"
	"github.com/bamsammich/ntfscp/internal/stats"
)

// plainPresenter outputs one line per processed file to stdout,
// and periodic progress to stderr when not a TTY.
type plainPresenter struct {
	w       io.Writer
	errW    io.Writer
	stats   *stats.Collector
	verbose bool
	total   int64
}

func (p *plainPresenter) Run(events <-chan event.Event) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			p.printProgress()
		}
	}
}

func (p *plainPresenter) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.ScanComplete:
		p.total = ev.Total
		fmt.Fprintf(p.errW, "found %s files\n", FormatCount(ev.Total))
	case event.FileCopied:
		fmt.Fprintf(p.w, "%s  %s\n", ev.Path, ev.Display)
	case event.FileFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "%s  FAILED: %s\n", ev.Path, errMsg)
	case event.XattrFailed:
		if p.verbose {
			fmt.Fprintf(p.errW, "attribute write failed: %s\n", ev.Path)
		}
	case event.VerifyStarted:
		fmt.Fprintln(p.errW, "verifying...")
	case event.VerifyDone:
		if ev.Matched {
			fmt.Fprintf(p.errW, "verified: %s files\n", FormatCount(ev.Count))
		} else {
			fmt.Fprintf(p.errW, "MISMATCH: destination has %s files, expected %s\n",
				FormatCount(ev.Count), FormatCount(ev.Total))
		}
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	if p.total > 0 {
		fmt.Fprintf(p.errW, "progress: %s/%s files %s\n",
			FormatCount(snap.FilesCopied), FormatCount(p.total),
			stats.FormatBytes(snap.BytesCopied))
	} else {
		fmt.Fprintf(p.errW, "progress: %s files %s\n",
			FormatCount(snap.FilesCopied),
			stats.FormatBytes(snap.BytesCopied))
	}
}

func (p *plainPresenter) Summary() string {
	return completionSummary(p.stats.Snapshot())
}
