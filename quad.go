// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package docscan

import "fmt"

// Corner indexes the points of a Quad.
type Corner int

// Corner order used by every Quad.
const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// String returns the short label of the corner ("TL", "TR", "BR", "BL").
func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "TL"
	case TopRight:
		return "TR"
	case BottomRight:
		return "BR"
	case BottomLeft:
		return "BL"
	default:
		return "?"
	}
}

// Quad is an ordered quadrilateral: top-left, top-right, bottom-right,
// bottom-left. Rectify takes it in fractional coordinates; Warp and
// SelectAspectRatio take it in pixel coordinates.
//
// The points are expected to form a simple polygon. Self-intersecting
// input is not rejected and yields a distorted output.
type Quad [4]Point

// FullFrame is the fractional quad covering the whole image.
var FullFrame = Quad{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1)}

// Validate checks that q is a usable fractional quad: every coordinate is
// finite and within [0, 1].
func (q Quad) Validate() error {
	for i, p := range q {
		if !p.IsFinite() || p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			return fmt.Errorf("%w: %s corner (%g, %g) outside [0,1]", ErrInvalidPoint, Corner(i), p.X, p.Y)
		}
	}
	return nil
}

// ToPixels converts a fractional quad to source pixel space by scaling x by
// width and y by height.
func (q Quad) ToPixels(width, height int) Quad {
	var out Quad
	for i, p := range q {
		out[i] = Point{X: p.X * float64(width), Y: p.Y * float64(height)}
	}
	return out
}

// ToFractional is the inverse of ToPixels.
func (q Quad) ToFractional(width, height int) Quad {
	var out Quad
	for i, p := range q {
		out[i] = Point{X: p.X / float64(width), Y: p.Y / float64(height)}
	}
	return out
}

// Edges returns the lengths of the top (TL→TR), right (TR→BR),
// bottom (BL→BR) and left (TL→BL) edges.
func (q Quad) Edges() (top, right, bottom, left float64) {
	top = q[TopLeft].Distance(q[TopRight])
	right = q[TopRight].Distance(q[BottomRight])
	bottom = q[BottomLeft].Distance(q[BottomRight])
	left = q[TopLeft].Distance(q[BottomLeft])
	return top, right, bottom, left
}

// Clamp returns q with every coordinate clamped to [lo, hi]. The crop UI
// keeps handles within [0.01, 0.99] this way.
func (q Quad) Clamp(lo, hi float64) Quad {
	var out Quad
	for i, p := range q {
		out[i] = Point{X: min(max(p.X, lo), hi), Y: min(max(p.Y, lo), hi)}
	}
	return out
}

// Area returns the signed shoelace area. Positive for clockwise order in
// image coordinates (y down).
func (q Quad) Area() float64 {
	var a float64
	for i := range 4 {
		a += q[i].Cross(q[(i+1)%4])
	}
	return a / 2
}
