// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package parallel

import (
	"context"
	"sync/atomic"
)

// minBandRows keeps bands large enough that scheduling overhead stays
// small next to the per-pixel work.
const minBandRows = 16

// Band is a half-open range of image rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows divides height rows into at most parts contiguous bands of
// near-equal size. Bands never overlap and together cover [0, height).
func SplitRows(height, parts int) []Band {
	if height <= 0 {
		return nil
	}
	parts = max(1, min(parts, (height+minBandRows-1)/minBandRows))

	bands := make([]Band, 0, parts)
	base, extra := height/parts, height%parts
	y := 0
	for i := range parts {
		n := base
		if i < extra {
			n++
		}
		bands = append(bands, Band{Y0: y, Y1: y + n})
		y += n
	}
	return bands
}

// RunBands splits height rows into bands and runs fn for each band on the
// pool. fn must only write rows inside its band. Bands that have not
// started when ctx is cancelled are skipped and ctx.Err() is returned.
// A cancellation that arrives after every band has run is ignored, so a
// nil error always means every row was produced.
// A nil pool runs the bands sequentially on the caller's goroutine.
func RunBands(ctx context.Context, p *WorkerPool, height int, fn func(Band)) error {
	workers := 1
	if p != nil {
		workers = p.Workers()
	}
	// Over-split so work stealing can even out uneven bands.
	bands := SplitRows(height, workers*4)

	var skipped atomic.Bool
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() {
			if ctx.Err() != nil {
				skipped.Store(true)
				return
			}
			fn(b)
		}
	}

	if p == nil {
		for _, w := range work {
			w()
		}
	} else {
		p.ExecuteAll(work)
	}
	if skipped.Load() {
		return ctx.Err()
	}
	return nil
}
