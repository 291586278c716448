// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package overlay draws the crop screen preview: the photo dimmed outside
// the crop quad, the quad outline, corner handles and corner labels.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rclancey/earcut"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/raster"
)

// ErrTriangulation is returned when the quad cannot be triangulated.
var ErrTriangulation = errors.New("overlay: cannot triangulate quad")

// Style controls the look of the overlay.
type Style struct {
	// Dim is the opacity of the black veil outside the quad.
	Dim float64
	// Accent colors handle centres and labels.
	Accent colorful.Color
	// LineWidth is the width of the inner outline in pixels.
	LineWidth float64
	// HandleSize is half the side of a square corner handle.
	HandleSize float64
	// Labels enables the TL/TR/BR/BL corner labels.
	Labels bool
	// FontSize is the label size in pixels.
	FontSize float64
}

// Material blue.
var accentBlue, _ = colorful.Hex("#2196f3")

// DefaultStyle matches the crop screen.
func DefaultStyle() Style {
	return Style{
		Dim:        0.6,
		Accent:     accentBlue,
		LineWidth:  3,
		HandleSize: 14,
		Labels:     true,
		FontSize:   16,
	}
}

var (
	black = colorful.Color{}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

// Draw returns a copy of src with the crop overlay for quad, given in
// source pixel coordinates. src is not modified.
func Draw(src *raster.Image, quad docscan.Quad, style Style) (*raster.Image, error) {
	if src == nil {
		return nil, errors.New("overlay: nil image")
	}
	out := src.ToRGBA().Clone()

	tris, err := triangulate(quad)
	if err != nil {
		return nil, err
	}

	if style.Dim > 0 {
		inside := insideMask(out.Width(), out.Height(), tris)
		for y := range out.Height() {
			for x := range out.Width() {
				if !inside[y*out.Width()+x] {
					blendPixel(out, x, y, black, style.Dim)
				}
			}
		}
	}

	for i := range 4 {
		a, b := quad[i], quad[(i+1)%4]
		strokeSegment(out, a, b, style.LineWidth+2, black, 0.5)
		strokeSegment(out, a, b, style.LineWidth, white, 0.8)
	}

	h := style.HandleSize
	for _, p := range quad {
		fillSquare(out, p, h+2, black, 0.4)
		fillSquare(out, p, h, white, 1)
		fillSquare(out, p, 4, style.Accent, 1)
	}

	if style.Labels {
		return drawLabels(out, quad, style)
	}
	return out, nil
}

// triangulate splits the quad into triangles with earcut. A concave quad
// still yields a correct fill.
func triangulate(q docscan.Quad) ([][3]docscan.Point, error) {
	coords := make([]float64, 0, 8)
	for _, p := range q {
		coords = append(coords, p.X, p.Y)
	}
	idx, err := earcut.Earcut(coords, nil, 2)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTriangulation, err)
	}
	if len(idx) == 0 || len(idx)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrTriangulation, len(idx))
	}

	tris := make([][3]docscan.Point, len(idx)/3)
	for i := range tris {
		for k := range 3 {
			v := idx[i*3+k]
			tris[i][k] = docscan.Pt(coords[v*2], coords[v*2+1])
		}
	}
	return tris, nil
}

// insideMask marks pixels whose centre lies in any triangle.
func insideMask(w, h int, tris [][3]docscan.Point) []bool {
	mask := make([]bool, w*h)
	for _, t := range tris {
		minX := max(0, int(math.Floor(min(t[0].X, t[1].X, t[2].X))))
		maxX := min(w-1, int(math.Ceil(max(t[0].X, t[1].X, t[2].X))))
		minY := max(0, int(math.Floor(min(t[0].Y, t[1].Y, t[2].Y))))
		maxY := min(h-1, int(math.Ceil(max(t[0].Y, t[1].Y, t[2].Y))))
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if inTriangle(docscan.Pt(float64(x)+0.5, float64(y)+0.5), t) {
					mask[y*w+x] = true
				}
			}
		}
	}
	return mask
}

func inTriangle(p docscan.Point, t [3]docscan.Point) bool {
	d0 := t[1].Sub(t[0]).Cross(p.Sub(t[0]))
	d1 := t[2].Sub(t[1]).Cross(p.Sub(t[1]))
	d2 := t[0].Sub(t[2]).Cross(p.Sub(t[2]))
	hasNeg := d0 < 0 || d1 < 0 || d2 < 0
	hasPos := d0 > 0 || d1 > 0 || d2 > 0
	return !(hasNeg && hasPos)
}

// strokeSegment paints every pixel whose centre is within width/2 of ab.
func strokeSegment(img *raster.Image, a, b docscan.Point, width float64, c colorful.Color, alpha float64) {
	r := width / 2
	minX := max(0, int(math.Floor(min(a.X, b.X)-r)))
	maxX := min(img.Width()-1, int(math.Ceil(max(a.X, b.X)+r)))
	minY := max(0, int(math.Floor(min(a.Y, b.Y)-r)))
	maxY := min(img.Height()-1, int(math.Ceil(max(a.Y, b.Y)+r)))

	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := docscan.Pt(float64(x)+0.5, float64(y)+0.5)
			t := 0.0
			if lenSq > 0 {
				ap := p.Sub(a)
				t = min(max((ap.X*ab.X+ap.Y*ab.Y)/lenSq, 0), 1)
			}
			if p.Distance(a.Lerp(b, t)) <= r {
				blendPixel(img, x, y, c, alpha)
			}
		}
	}
}

// fillSquare paints the axis-aligned square of half side h centred on p.
func fillSquare(img *raster.Image, p docscan.Point, h float64, c colorful.Color, alpha float64) {
	x0 := max(0, int(math.Floor(p.X-h)))
	x1 := min(img.Width(), int(math.Ceil(p.X+h)))
	y0 := max(0, int(math.Floor(p.Y-h)))
	y1 := min(img.Height(), int(math.Ceil(p.Y+h)))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			blendPixel(img, x, y, c, alpha)
		}
	}
}

// blendPixel mixes c over the pixel at (x, y) with the given opacity.
func blendPixel(img *raster.Image, x, y int, c colorful.Color, alpha float64) {
	r, g, b, a := img.RGBA(x, y)
	dst := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	nr, ng, nb := dst.BlendRgb(c, alpha).Clamped().RGB255()
	_ = img.SetRGBA(x, y, nr, ng, nb, a)
}

var loadFace = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// drawLabels writes each corner's label just outside the quad.
func drawLabels(img *raster.Image, quad docscan.Quad, style Style) (*raster.Image, error) {
	f, err := loadFace()
	if err != nil {
		return nil, fmt.Errorf("overlay: load font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    style.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("overlay: font face: %w", err)
	}
	defer face.Close()

	dst, ok := img.ToStdImage().(*image.NRGBA)
	if !ok {
		return img, nil
	}

	var centre docscan.Point
	for _, p := range quad {
		centre = centre.Add(p)
	}
	centre = centre.Mul(0.25)

	r, g, b := style.Accent.Clamped().RGB255()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{R: r, G: g, B: b, A: 255}),
		Face: face,
	}

	bounds := dst.Bounds()
	for i, p := range quad {
		label := docscan.Corner(i).String()
		adv := d.MeasureString(label).Ceil()
		ascent := face.Metrics().Ascent.Ceil()

		dir := p.Sub(centre)
		if l := dir.Length(); l > 0 {
			dir = dir.Mul(1 / l)
		}
		off := style.HandleSize + 6
		x := p.X + dir.X*off - float64(adv)/2
		y := p.Y + dir.Y*off + float64(ascent)/2

		xi := min(max(int(x), 0), max(bounds.Dx()-adv, 0))
		yi := min(max(int(y), ascent), bounds.Dy())
		d.Dot = fixed.P(xi, yi)
		d.DrawString(label)
	}
	return raster.FromStdImage(dst)
}
