// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package docscan

import (
	"context"
	"fmt"
	"image/color"

	"github.com/gogpu/docscan/internal/parallel"
	"github.com/gogpu/docscan/raster"
)

// Warp resamples the pixel-space quad of src into a new width x height
// image. Destination corners (0,0), (w,0), (w,h), (0,h) correspond to the
// quad's TL, TR, BR and BL corners.
//
// The output starts filled with the background color. Every destination
// pixel centre is mapped into the source; samples that land inside the
// source are composited over the background, the rest keep it. With the
// default opaque white background the result is fully opaque.
//
// Rows are processed in parallel bands. The result does not depend on the
// number of workers.
func Warp(ctx context.Context, src *raster.Image, quad Quad, width, height int, opts ...Option) (*raster.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrDecodeFailure)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: output %dx%d", ErrInvalidRatio, width, height)
	}

	h, err := QuadToRect(quad, width, height)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	dst, err := raster.NewRGBA(width, height)
	if err != nil {
		return nil, err
	}
	bg := o.background
	dst.Fill(bg.R, bg.G, bg.B, bg.A)

	pool := o.pool
	if pool == nil && o.workers != 1 {
		pool = parallel.NewWorkerPool(o.workers)
		defer pool.Close()
	}

	err = parallel.RunBands(ctx, pool, height, func(b parallel.Band) {
		warpRows(dst, src, h, b, o.interp, bg)
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// warpRows fills rows [b.Y0, b.Y1) of dst. It only writes inside the band.
func warpRows(dst, src *raster.Image, h Homography, b parallel.Band, mode raster.InterpolationMode, bg color.NRGBA) {
	width := dst.Width()
	for y := b.Y0; y < b.Y1; y++ {
		row := dst.RowBytes(y)
		for x := range width {
			p, ok := h.Apply(Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			if !ok || !src.Contains(p.X, p.Y) {
				continue
			}
			r, g, bl, a := raster.SampleAt(src, p.X, p.Y, mode)
			r, g, bl, a = compositeOver(r, g, bl, a, bg)
			i := x * 4
			row[i] = r
			row[i+1] = g
			row[i+2] = bl
			row[i+3] = a
		}
	}
}

// compositeOver blends a straight-alpha sample over bg (Porter-Duff source over).
func compositeOver(r, g, b, a uint8, bg color.NRGBA) (uint8, uint8, uint8, uint8) {
	if a == 255 {
		return r, g, b, 255
	}
	if bg.A == 0 {
		return r, g, b, a
	}

	srcA := float64(a) / 255
	dstA := float64(bg.A) / 255
	outA := srcA + dstA*(1-srcA)
	if outA == 0 {
		return 0, 0, 0, 0
	}

	mix := func(s, d uint8) uint8 {
		v := (float64(s)*srcA + float64(d)*dstA*(1-srcA)) / outA
		return uint8(min(v+0.5, 255))
	}
	return mix(r, bg.R), mix(g, bg.G), mix(b, bg.B), uint8(outA*255 + 0.5)
}
