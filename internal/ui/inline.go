package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/ntfscp/internal/event"
	"github.com/bamsammich/ntfscp/internal/stats"
)

// Catppuccin Mocha palette.
var (
	colorGreen = lipgloss.Color("#a6e3a1")
	colorRed   = lipgloss.Color("#f38ba8")
	colorTeal  = lipgloss.Color("#94e2d5")
	colorMuted = lipgloss.Color("#5a6278")
	colorDim   = lipgloss.Color("#3a4055")
)

var (
	styleIconDone       = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconFailed     = lipgloss.NewStyle().Foreground(colorRed)
	styleFileDir        = lipgloss.NewStyle().Foreground(colorMuted)
	styleTimestamp      = lipgloss.NewStyle().Foreground(colorTeal)
	styleProgressFilled = lipgloss.NewStyle().Foreground(colorGreen)
	styleProgressEmpty  = lipgloss.NewStyle().Foreground(colorDim)
	styleStatus         = lipgloss.NewStyle().Foreground(colorMuted)
)

const (
	progressBarWidth = 20
	barMinInterval   = 50 * time.Millisecond // don't redraw faster than this
)

// inlinePresenter provides a TTY display with a scrolling feed of processed
// files and a one-line status bar that redraws in place.
type inlinePresenter struct {
	w       io.Writer // status bar (stderr, the TTY)
	feedW   io.Writer // per-file feed (stdout)
	stats   *stats.Collector
	width   int
	verbose bool

	total       int64
	barDrawn    bool
	lastBarDraw time.Time
}

func (p *inlinePresenter) Run(events <-chan event.Event) error {
	if p.width <= 0 {
		p.width = 80
	}

	secTicker := time.NewTicker(1 * time.Second)
	defer secTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clearBar()
				return nil
			}
			p.handleEvent(ev)
			p.maybeDrawBar()

		case <-secTicker.C:
			p.stats.Tick()
			p.drawBar()
		}
	}
}

func (p *inlinePresenter) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.ScanComplete:
		p.total = ev.Total

	case event.FileCopied:
		p.clearBar()
		p.printFileCopied(ev)
		p.drawBar()

	case event.FileFailed:
		p.clearBar()
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.feedW, "%s  %s  %s\n",
			styleIconFailed.Render("✗"), p.styledPath(ev.Path), errMsg)
		p.drawBar()

	case event.XattrFailed:
		if p.verbose {
			p.clearBar()
			fmt.Fprintf(p.feedW, "%s  %s  attribute write failed\n",
				styleIconFailed.Render("!"), p.styledPath(ev.Path))
			p.drawBar()
		}

	case event.VerifyStarted:
		p.clearBar()
		fmt.Fprintln(p.w, styleStatus.Render("verifying file count..."))

	case event.VerifyDone:
		p.clearBar()
		if ev.Matched {
			fmt.Fprintf(p.w, "%s  verified %s files\n",
				styleIconDone.Render("✓"), FormatCount(ev.Count))
		} else {
			fmt.Fprintf(p.w, "%s  destination has %s files, expected %s\n",
				styleIconFailed.Render("✗"), FormatCount(ev.Count), FormatCount(ev.Total))
		}
	}
}

func (p *inlinePresenter) printFileCopied(ev event.Event) {
	name := TruncateName(ev.Path, len(ev.Display), p.width)
	fmt.Fprintf(p.feedW, "%s  %s  %s\n",
		styleIconDone.Render("✓"),
		p.styledPath(name),
		styleTimestamp.Render(ev.Display))
}

// maybeDrawBar redraws the status bar if enough time has passed.
func (p *inlinePresenter) maybeDrawBar() {
	if time.Since(p.lastBarDraw) < barMinInterval {
		return
	}
	p.drawBar()
}

func (p *inlinePresenter) drawBar() {
	snap := p.stats.Snapshot()
	p.clearBar()

	var pct float64
	if p.total > 0 {
		pct = float64(snap.FilesCopied+snap.FilesFailed) / float64(p.total)
	}

	bar := styledBar(pct, progressBarWidth)
	fmt.Fprintf(p.w, " %3.0f%%  %s   %s / %s files   %s\n",
		pct*100, bar,
		FormatCount(snap.FilesCopied), FormatCount(p.total),
		FormatDuration(snap.Elapsed))

	p.barDrawn = true
	p.lastBarDraw = time.Now()
}

func (p *inlinePresenter) clearBar() {
	if !p.barDrawn {
		return
	}
	// Move cursor up one line and clear to end of screen.
	fmt.Fprint(p.w, "\033[1A\033[J")
	p.barDrawn = false
}

func (p *inlinePresenter) Summary() string {
	return completionSummary(p.stats.Snapshot())
}

// styledPath dims the directory portion so the filename stands out.
func (p *inlinePresenter) styledPath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == "." || dir == "" {
		return base
	}
	return styleFileDir.Render(dir+string(filepath.Separator)) + base
}

// styledBar renders a two-tone progress bar.
func styledBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return styleProgressFilled.Render(repeatRune('▪', filled)) +
		styleProgressEmpty.Render(repeatRune('□', width-filled))
}
