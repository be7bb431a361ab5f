package ui

import (
	"github.com/bamsammich/ntfscp/internal/event"
	"github.com/bamsammich/ntfscp/internal/stats"
)

// quietPresenter consumes events but produces no output.
type quietPresenter struct {
	stats *stats.Collector
}

func (p *quietPresenter) Run(events <-chan event.Event) error {
	// Counters are written by the engine; presenters only read them.
	for range events {
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	return ""
}
