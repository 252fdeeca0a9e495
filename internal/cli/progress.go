package cli

import (
	"context"
	"time"

	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// progressContainer owns the terminal progress rendering for a command.
// In quiet mode it hands out nil bars, which every method tolerates.
type progressContainer struct {
	pc    *mpb.Progress
	quiet bool
}

func newProgressContainer(ctx context.Context, quiet bool) *progressContainer {
	c := &progressContainer{quiet: quiet}
	if !quiet {
		c.pc = mpb.NewWithContext(
			ctx,
			mpb.WithWidth(64),
			mpb.ContainerOptOnCond(
				mpb.WithOutput(nil),
				func() bool {
					return quiet
				},
			))
	}
	return c
}

// NewBar creates a download bar. The total is a placeholder until the
// first Update reports the real content length.
func (c *progressContainer) NewBar(name string) *progressBar {
	if c.quiet || c.pc == nil {
		return nil
	}
	b := &progressBar{}
	b.bar = c.pc.AddBar(100*1024*1024*1024,
		mpb.BarWidth(12),
		mpb.AppendDecorators(
			decor.AverageSpeed(decor.UnitKB, " %.1f", decor.WC{W: 15, C: decor.DidentRight}),
			decor.Name(name),
		),
		mpb.BarRemoveOnComplete(),
	)
	return b
}

func (c *progressContainer) Wait() {
	if c.pc != nil {
		c.pc.Wait()
	}
}

type progressBar struct {
	lastSize int64
	start    time.Time
	bar      *mpb.Bar
}

func (p *progressBar) Init(size int64) {
	if p != nil {
		p.start = time.Now()
	}
}

func (p *progressBar) Update(count int64, size int64) {
	if p != nil && p.bar != nil {
		p.bar.SetTotal(size, count >= size)
		p.bar.IncrInt64(count-p.lastSize, time.Since(p.start))
		p.lastSize = count
	}
}

// finish marks the bar complete so the container's Wait does not block
// on downloads that ended early or reported no content length.
func (p *progressBar) finish() {
	if p != nil && p.bar != nil {
		p.bar.SetTotal(1, true)
	}
}
