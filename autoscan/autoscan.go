// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package autoscan defines extension points for automatic document
// detection and enhancement. No detector ships with docscan; Unimplemented
// reports docscan.ErrNotImplemented so callers fall back to manual cropping.
package autoscan

import (
	"context"
	"fmt"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/raster"
)

// Detector finds the document outline in a photo.
type Detector interface {
	// Detect returns the document corners as a fractional quad
	// (TL, TR, BR, BL).
	Detect(ctx context.Context, img *raster.Image) (docscan.Quad, error)
}

// Enhancer turns a rectified crop into a clean "scanned" look.
type Enhancer interface {
	Enhance(ctx context.Context, img *raster.Image) (*raster.Image, error)
}

// Unimplemented is a Detector and Enhancer that always fails with
// docscan.ErrNotImplemented. It never returns its input unchanged, so a
// caller cannot mistake it for a successful enhancement.
type Unimplemented struct{}

var (
	_ Detector = Unimplemented{}
	_ Enhancer = Unimplemented{}
)

// Detect always returns docscan.ErrNotImplemented.
func (Unimplemented) Detect(context.Context, *raster.Image) (docscan.Quad, error) {
	return docscan.Quad{}, fmt.Errorf("autoscan: detect: %w", docscan.ErrNotImplemented)
}

// Enhance always returns docscan.ErrNotImplemented.
func (Unimplemented) Enhance(context.Context, *raster.Image) (*raster.Image, error) {
	return nil, fmt.Errorf("autoscan: enhance: %w", docscan.ErrNotImplemented)
}

// FullFrame returns the quad covering the whole image, the initial handle
// placement of the crop screen.
func FullFrame() docscan.Quad {
	return docscan.FullFrame
}

// InitialQuad asks d for the document outline and falls back to the full
// frame when detection is unavailable or fails. The second result reports
// whether the quad came from the detector.
func InitialQuad(ctx context.Context, d Detector, img *raster.Image) (docscan.Quad, bool) {
	if d == nil {
		return FullFrame(), false
	}
	q, err := d.Detect(ctx, img)
	if err != nil {
		docscan.Logger().Debug("autoscan: detection unavailable, using full frame", "err", err)
		return FullFrame(), false
	}
	if err := q.Validate(); err != nil {
		docscan.Logger().Warn("autoscan: detector returned invalid quad", "err", err)
		return FullFrame(), false
	}
	return q, true
}
