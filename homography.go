// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package docscan

import (
	"fmt"
	"math"
)

// Homography is a 2D projective transform stored as a row-major 3x3 matrix:
//
//	| h0 h1 h2 |
//	| h3 h4 h5 |
//	| h6 h7 h8 |
//
// A point (x, y) maps to ((h0 x + h1 y + h2) / w, (h3 x + h4 y + h5) / w)
// with w = h6 x + h7 y + h8.
type Homography [9]float64

// IdentityHomography returns the transform that leaves points unchanged.
func IdentityHomography() Homography {
	return Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Multiply returns h * o, the transform that applies o first and then h.
func (h Homography) Multiply(o Homography) Homography {
	var r Homography
	for row := range 3 {
		for col := range 3 {
			r[row*3+col] = h[row*3]*o[col] + h[row*3+1]*o[3+col] + h[row*3+2]*o[6+col]
		}
	}
	return r
}

// Apply maps p through the transform. It returns false when p lands on the
// line at infinity.
func (h Homography) Apply(p Point) (Point, bool) {
	w := h[6]*p.X + h[7]*p.Y + h[8]
	if math.Abs(w) < 1e-12 {
		return Point{}, false
	}
	return Point{
		X: (h[0]*p.X + h[1]*p.Y + h[2]) / w,
		Y: (h[3]*p.X + h[4]*p.Y + h[5]) / w,
	}, true
}

// Invert returns the inverse transform. Returns false if h is singular.
func (h Homography) Invert() (Homography, bool) {
	a, b, c := h[0], h[1], h[2]
	d, e, f := h[3], h[4], h[5]
	g, k, l := h[6], h[7], h[8]

	co0 := e*l - f*k
	co1 := f*g - d*l
	co2 := d*k - e*g
	det := a*co0 + b*co1 + c*co2

	scale := 0.0
	for _, v := range h {
		scale = max(scale, math.Abs(v))
	}
	if scale == 0 || math.Abs(det) < 1e-12*scale*scale*scale {
		return Homography{}, false
	}

	inv := 1 / det
	return Homography{
		co0 * inv, (c*k - b*l) * inv, (b*f - c*e) * inv,
		co1 * inv, (a*l - c*g) * inv, (c*d - a*f) * inv,
		co2 * inv, (b*g - a*k) * inv, (a*e - b*d) * inv,
	}.normalized(), true
}

// IsAffine reports whether the bottom row is (0, 0, 1) up to rounding.
func (h Homography) IsAffine() bool {
	n := h.normalized()
	return math.Abs(n[6]) < 1e-12 && math.Abs(n[7]) < 1e-12
}

// normalized scales h so that h8 == 1 when h8 is not ~0.
func (h Homography) normalized() Homography {
	if math.Abs(h[8]) < 1e-15 {
		return h
	}
	s := 1 / h[8]
	for i := range h {
		h[i] *= s
	}
	return h
}

// NewHomography solves for the transform mapping from[i] to to[i] for all
// four corners. It returns ErrDegenerateQuadrilateral when either quad has
// coincident or collinear corners, or when the correspondence does not
// determine an invertible transform.
func NewHomography(from, to Quad) (Homography, error) {
	if err := checkNonDegenerate(from); err != nil {
		return Homography{}, err
	}
	if err := checkNonDegenerate(to); err != nil {
		return Homography{}, err
	}

	// Solve in normalized coordinates for conditioning, then undo it.
	tFrom := normalizingTransform(from)
	tTo := normalizingTransform(to)
	tToInv, _ := tTo.Invert()

	var nFrom, nTo Quad
	for i := range 4 {
		nFrom[i], _ = tFrom.Apply(from[i])
		nTo[i], _ = tTo.Apply(to[i])
	}

	var a [8][8]float64
	var b [8]float64
	for i := range 4 {
		X, Y := nFrom[i].X, nFrom[i].Y
		x, y := nTo[i].X, nTo[i].Y
		r := 2 * i
		a[r] = [8]float64{X, Y, 1, 0, 0, 0, -X * x, -Y * x}
		b[r] = x
		a[r+1] = [8]float64{0, 0, 0, X, Y, 1, -X * y, -Y * y}
		b[r+1] = y
	}

	sol, ok := solve8(a, b)
	if !ok {
		return Homography{}, fmt.Errorf("%w: singular point correspondence", ErrDegenerateQuadrilateral)
	}

	hn := Homography{sol[0], sol[1], sol[2], sol[3], sol[4], sol[5], sol[6], sol[7], 1}
	h := tToInv.Multiply(hn).Multiply(tFrom).normalized()

	if _, ok := h.Invert(); !ok {
		return Homography{}, fmt.Errorf("%w: transform not invertible", ErrDegenerateQuadrilateral)
	}
	return h, nil
}

// QuadToRect returns the transform mapping the axis-aligned rectangle
// (0,0)-(width,height) onto q, corner for corner. This is the inverse
// sampling transform used by Warp.
func QuadToRect(q Quad, width, height int) (Homography, error) {
	w, h := float64(width), float64(height)
	rect := Quad{Pt(0, 0), Pt(w, 0), Pt(w, h), Pt(0, h)}
	return NewHomography(rect, q)
}

// checkNonDegenerate rejects quads with coincident corners or any three
// collinear corners. Tolerances scale with the quad's extent.
func checkNonDegenerate(q Quad) error {
	for _, p := range q {
		if !p.IsFinite() {
			return fmt.Errorf("%w: non-finite corner", ErrDegenerateQuadrilateral)
		}
	}

	minX, minY := q[0].X, q[0].Y
	maxX, maxY := minX, minY
	for _, p := range q[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	extent := max(maxX-minX, maxY-minY)
	if extent == 0 {
		return fmt.Errorf("%w: all corners coincide", ErrDegenerateQuadrilateral)
	}

	distTol := 1e-6 * extent
	for i := range 4 {
		for j := i + 1; j < 4; j++ {
			if q[i].Distance(q[j]) <= distTol {
				return fmt.Errorf("%w: %s and %s coincide", ErrDegenerateQuadrilateral, Corner(i), Corner(j))
			}
		}
	}

	areaTol := 1e-6 * extent * extent
	for skip := range 4 {
		var tri [3]Point
		n := 0
		for i := range 4 {
			if i != skip {
				tri[n] = q[i]
				n++
			}
		}
		if math.Abs(tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))) <= areaTol {
			return fmt.Errorf("%w: three corners are collinear", ErrDegenerateQuadrilateral)
		}
	}
	return nil
}

// normalizingTransform moves the centroid of q to the origin and scales
// so the mean distance from it is sqrt(2).
func normalizingTransform(q Quad) Homography {
	var c Point
	for _, p := range q {
		c = c.Add(p)
	}
	c = c.Mul(0.25)

	var mean float64
	for _, p := range q {
		mean += p.Distance(c)
	}
	mean /= 4

	s := math.Sqrt2 / mean
	return Homography{
		s, 0, -s * c.X,
		0, s, -s * c.Y,
		0, 0, 1,
	}
}

// solve8 solves a*x = b by Gauss-Jordan elimination with partial pivoting.
func solve8(a [8][8]float64, b [8]float64) ([8]float64, bool) {
	for col := range 8 {
		pivot := col
		for r := col + 1; r < 8; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-10 {
			return [8]float64{}, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		div := a[col][col]
		for c := col; c < 8; c++ {
			a[col][c] /= div
		}
		b[col] /= div

		for r := range 8 {
			if r == col || a[r][col] == 0 {
				continue
			}
			factor := a[r][col]
			for c := col; c < 8; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}
	return b, true
}
