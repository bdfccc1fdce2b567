package main

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"vadset/internal/dataset"
)

// progressReporter draws a progress bar on interactive terminals. A nil
// reporter is valid and draws nothing. Pipelines with a reporter installed
// drop their periodic progress log lines so the bar is not broken up.
type progressReporter struct {
	w     io.Writer
	class dataset.Class
	bar   *progressbar.ProgressBar
}

func newProgressReporter(w io.Writer, class dataset.Class, enabled bool) *progressReporter {
	if !enabled || !shouldColorize(w) {
		return nil
	}
	return &progressReporter{w: w, class: class}
}

func (p *progressReporter) update(done, total int, _ dataset.Artifact) {
	if p == nil {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription(string(p.class)),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(done)
}

func (p *progressReporter) finish() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
