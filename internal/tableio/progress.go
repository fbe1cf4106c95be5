package tableio

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress reports simulator tick advancement to a terminal. It satisfies
// the narrow callback shape internal/simulator.Simulator accepts
// (func(tick, total int64)), so the simulator never refers to the progress
// bar itself (spec.md §1: progress reporting is an external collaborator).
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress creates a Progress bar over total ticks, writing to w.
func NewProgress(w io.Writer, total int64, description string) *Progress {
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(0),
	)
	return &Progress{bar: bar}
}

// Advance reports the current tick out of the configured total. Matches
// the func(tick, total int64) shape the simulator invokes per tick.
func (p *Progress) Advance(tick, _ int64) {
	_ = p.bar.Set64(tick)
}

// Finish completes and clears the bar.
func (p *Progress) Finish() {
	_ = p.bar.Finish()
}
