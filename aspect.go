// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package docscan

import (
	"fmt"
	"math"
)

// DefaultMaxDimension bounds the longer side of rectified output.
const DefaultMaxDimension = 1200

// AspectRatio is a width:height ratio, not an absolute size.
type AspectRatio struct {
	W, H int
}

// String formats the ratio as "W:H".
func (r AspectRatio) String() string {
	return fmt.Sprintf("%d:%d", r.W, r.H)
}

// Float returns W/H.
func (r AspectRatio) Float() float64 {
	return float64(r.W) / float64(r.H)
}

// Valid reports whether both components are positive.
func (r AspectRatio) Valid() bool {
	return r.W > 0 && r.H > 0
}

// Ratio3x4 is the fallback output ratio.
var Ratio3x4 = AspectRatio{W: 3, H: 4}

// CandidateRatios lists the portrait document ratios SelectAspectRatio
// chooses from, in tie-break order: 3:4, A4 (21:29), 9:16 and 2:3.
var CandidateRatios = []AspectRatio{
	{W: 3, H: 4},
	{W: 21, H: 29},
	{W: 9, H: 16},
	{W: 2, H: 3},
}

// SelectAspectRatio estimates the output ratio from a pixel-space quad.
//
// Edge lengths are averaged into a width (top, bottom) and a height (left,
// right). A portrait-shaped quad gets the closest candidate ratio, first
// match winning ties. Anything else, landscape or square, gets 3:4: wide
// quads are treated as documents photographed sideways and are still
// rendered portrait.
func SelectAspectRatio(q Quad) AspectRatio {
	top, right, bottom, left := q.Edges()
	avgWidth := (top + bottom) / 2
	avgHeight := (left + right) / 2

	ratio := Ratio3x4
	if avgHeight > avgWidth {
		ratio = closestRatio(avgWidth/avgHeight, CandidateRatios)
	}

	Logger().Debug("docscan: aspect ratio selected",
		"avg_width", avgWidth, "avg_height", avgHeight, "ratio", ratio.String())
	return ratio
}

func closestRatio(current float64, candidates []AspectRatio) AspectRatio {
	if len(candidates) == 0 {
		return Ratio3x4
	}
	best := candidates[0]
	bestDist := math.Abs(best.Float() - current)
	for _, c := range candidates[1:] {
		if d := math.Abs(c.Float() - current); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// OutputSize turns a ratio into pixel dimensions whose longer side is
// maxDimension. The shorter side is rounded and never below 1.
// An invalid ratio or maxDimension yields (0, 0).
func OutputSize(r AspectRatio, maxDimension int) (width, height int) {
	if !r.Valid() || maxDimension <= 0 {
		return 0, 0
	}
	if r.W >= r.H {
		width = maxDimension
		height = int(math.Round(float64(maxDimension) * float64(r.H) / float64(r.W)))
	} else {
		height = maxDimension
		width = int(math.Round(float64(maxDimension) * float64(r.W) / float64(r.H)))
	}
	return max(width, 1), max(height, 1)
}
