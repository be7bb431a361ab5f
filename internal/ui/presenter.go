// Package ui renders pipeline progress. Three presenters cover the output
// modes: quiet (nothing), plain (line-per-file, pipe-safe), and inline
// (TTY status bar redrawn in place).
package ui

import (
	"io"

	"github.com/bamsammich/ntfscp/internal/event"
	"github.com/bamsammich/ntfscp/internal/stats"
)

// Presenter consumes events and displays progress.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan event.Event) error
	// Summary returns the final summary line.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer     io.Writer
	ErrWriter  io.Writer
	Stats      *stats.Collector
	IsTTY      bool
	TermWidth  int
	Quiet      bool
	Verbose    bool
	NoProgress bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		return &quietPresenter{stats: cfg.Stats}
	}
	if !cfg.IsTTY || cfg.NoProgress {
		return &plainPresenter{
			w:       cfg.Writer,
			errW:    cfg.ErrWriter,
			stats:   cfg.Stats,
			verbose: cfg.Verbose,
		}
	}
	return &inlinePresenter{
		w:       cfg.ErrWriter, // status bar renders to stderr (the TTY)
		feedW:   cfg.Writer,
		stats:   cfg.Stats,
		width:   cfg.TermWidth,
		verbose: cfg.Verbose,
	}
}
