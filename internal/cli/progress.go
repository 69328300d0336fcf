package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/unfaiyted/godoc-swagger/internal/scanner"
)

// scanProgressReporter renders a progress bar while a project scan runs.
type scanProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
	done  int
}

func newScanProgressReporter(quiet bool) *scanProgressReporter {
	return &scanProgressReporter{quiet: quiet}
}

// Func adapts the reporter to the scanner's progress callback.
func (r *scanProgressReporter) Func() scanner.ProgressFunc {
	return func(done, total int) {
		if r.quiet {
			return
		}
		if r.bar == nil {
			r.bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Scanning files"),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionShowIts(),
				progressbar.OptionSetItsString("files/s"),
				progressbar.OptionThrottle(65*time.Millisecond),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		if delta := done - r.done; delta > 0 {
			r.bar.Add(delta)
			r.done = done
		}
	}
}

// Finish closes out the bar if the scan ended before it completed.
func (r *scanProgressReporter) Finish() {
	if r.bar != nil {
		r.bar.Finish()
		r.bar = nil
	}
}
