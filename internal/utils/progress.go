package utils

import (
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

const labelWidth = 24

// Progress renders an extraction progress bar with mpb. It is disabled
// automatically when stderr is not a terminal, so piped output stays
// clean.
type Progress struct {
	container *mpb.Progress
	bar       *mpb.Bar
	label     string
}

// NewProgress creates a progress bar for total entries. A disabled
// progress is still safe to use; every method is a no-op.
func NewProgress(total int, enabled bool) *Progress {
	p := &Progress{}

	if !enabled || !term.IsTerminal(int(os.Stderr.Fd())) {
		return p
	}

	p.container = mpb.New(
		mpb.WithOutput(os.Stderr),
		mpb.WithWidth(64),
		mpb.WithRefreshRate(100*time.Millisecond),
	)
	p.bar = p.container.New(int64(total),
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding(" ").Rbound("]"),
		mpb.PrependDecorators(
			decor.Any(func(decor.Statistics) string {
				if len(p.label) > labelWidth {
					return p.label[:labelWidth-2] + ".."
				}
				return p.label
			}, decor.WC{W: labelWidth, C: decor.DindentRight}),
			decor.Name("  "),
			decor.CountersNoUnit("%d/%d", decor.WC{C: decor.DindentRight}),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	return p
}

// Update advances the bar to current and shows label next to it. The
// signature matches the pack's progress callback.
func (p *Progress) Update(label string, current, total int) {
	if p.bar == nil {
		return
	}
	p.label = label
	p.bar.SetCurrent(int64(current))
}

// Finish waits for the bar to render its final state.
func (p *Progress) Finish() {
	if p.container == nil {
		return
	}
	p.container.Wait()
}
