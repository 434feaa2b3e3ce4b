// Package progress provides progress reporting for file transfers.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives transfer progress. The bar implementation renders to
// the terminal; Noop is used in tests and quiet mode.
type Reporter interface {
	Start(total int64, description string)
	Update(current int64)
	Finish()
}

// Bar renders a terminal progress bar.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBar creates a terminal progress reporter.
func NewBar() *Bar {
	return &Bar{}
}

// Start initializes the bar with the total size and a description.
// A total of -1 renders a spinner for unknown-length transfers.
func (b *Bar) Start(total int64, description string) {
	b.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Update moves the bar to the current byte position.
func (b *Bar) Update(current int64) {
	if b.bar != nil {
		_ = b.bar.Set64(current)
	}
}

// Finish completes the bar.
func (b *Bar) Finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
}

// Noop discards all progress updates.
type Noop struct{}

func (Noop) Start(int64, string) {}
func (Noop) Update(int64)        {}
func (Noop) Finish()             {}
