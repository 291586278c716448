// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package docscan

import (
	"context"
	"fmt"

	"github.com/gogpu/docscan/internal/parallel"
	"github.com/gogpu/docscan/raster"
)

// Rectifier turns a fractional crop quad on a source image into an
// upright, axis-aligned document image.
type Rectifier interface {
	Rectify(ctx context.Context, src *raster.Image, quad Quad) (*raster.Image, error)
}

// Plan describes the geometry of a rectification before any pixels are
// produced.
type Plan struct {
	// Pixels is the crop quad in source pixel coordinates.
	Pixels Quad
	// Ratio is the selected output aspect ratio.
	Ratio AspectRatio
	// Width and Height are the output dimensions in pixels.
	Width, Height int
}

// QuadRectifier is the default Rectifier. It selects an output aspect ratio
// from the quad's edge lengths and resamples the quad with a perspective
// warp.
//
// A QuadRectifier is safe for concurrent use. It owns a worker pool that
// Close releases.
type QuadRectifier struct {
	opts    options
	pool    *parallel.WorkerPool
	ownPool bool
}

var _ Rectifier = (*QuadRectifier)(nil)

// NewRectifier creates a QuadRectifier configured by opts.
func NewRectifier(opts ...Option) *QuadRectifier {
	o := applyOptions(opts)
	r := &QuadRectifier{opts: o, pool: o.pool}
	if r.pool == nil && o.workers != 1 {
		r.pool = parallel.NewWorkerPool(o.workers)
		r.ownPool = true
	}
	return r
}

// Plan validates quad against src and computes the output geometry.
func (r *QuadRectifier) Plan(src *raster.Image, quad Quad) (Plan, error) {
	if src == nil {
		return Plan{}, fmt.Errorf("%w: nil source", ErrDecodeFailure)
	}
	if err := quad.Validate(); err != nil {
		return Plan{}, err
	}

	pixels := quad.ToPixels(src.Width(), src.Height())
	if err := checkNonDegenerate(pixels); err != nil {
		return Plan{}, err
	}

	ratio := SelectAspectRatio(pixels)
	w, h := OutputSize(ratio, r.opts.maxDimension)
	if w == 0 || h == 0 {
		return Plan{}, fmt.Errorf("%w: %s", ErrInvalidRatio, ratio)
	}
	return Plan{Pixels: pixels, Ratio: ratio, Width: w, Height: h}, nil
}

// Rectify crops quad (fractional coordinates, TL TR BR BL) out of src and
// maps it onto a portrait rectangle whose longer side is the configured
// maximum dimension. src is never modified.
//
// Errors wrap ErrInvalidPoint, ErrDegenerateQuadrilateral or
// ErrInvalidRatio, or are the context's error when ctx is cancelled.
func (r *QuadRectifier) Rectify(ctx context.Context, src *raster.Image, quad Quad) (*raster.Image, error) {
	plan, err := r.Plan(src, quad)
	if err != nil {
		Logger().Warn("docscan: rectify rejected", "err", err)
		return nil, err
	}

	Logger().Debug("docscan: rectify",
		"src_width", src.Width(), "src_height", src.Height(),
		"out_width", plan.Width, "out_height", plan.Height)

	return Warp(ctx, src, plan.Pixels, plan.Width, plan.Height,
		WithBackground(r.opts.background),
		WithInterpolation(r.opts.interp),
		WithWorkers(r.opts.workers),
		withPool(r.pool),
	)
}

// Close releases the worker pool owned by the rectifier. It must not be
// called while Rectify is running. Calling Close more than once is safe.
func (r *QuadRectifier) Close() {
	if r.ownPool && r.pool != nil {
		r.pool.Close()
	}
}
