// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Rotate90 returns a copy of img rotated clockwise by quarterTurns * 90
// degrees. Negative values rotate counter-clockwise. The rotation is lossless.
func Rotate90(img *Image, quarterTurns int) *Image {
	turns := ((quarterTurns % 4) + 4) % 4
	if turns == 0 {
		return img.Clone()
	}

	w, h := img.Bounds()
	outW, outH := w, h
	if turns%2 == 1 {
		outW, outH = h, w
	}

	out, _ := NewImage(outW, outH, img.format)
	bpp := img.format.BytesPerPixel()

	for y := range h {
		row := img.RowBytes(y)
		for x := range w {
			var dx, dy int
			switch turns {
			case 1:
				dx, dy = h-1-y, x
			case 2:
				dx, dy = w-1-x, h-1-y
			case 3:
				dx, dy = y, w-1-x
			}
			off := out.PixelOffset(dx, dy)
			copy(out.data[off:off+bpp], row[x*bpp:(x+1)*bpp])
		}
	}
	return out
}

// Resize scales img to width x height with bilinear filtering.
// The rectifier does its own sampling.
func Resize(img *Image, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	src := img.ToRGBA().ToStdImage()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromStdImage(dst)
}

// Fit returns the largest (w, h) with the aspect ratio of (srcW, srcH) that
// fits inside (maxW, maxH). Images already inside the box are kept as is.
func Fit(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= maxW && srcH <= maxH {
		return srcW, srcH
	}
	sw := float64(maxW) / float64(srcW)
	sh := float64(maxH) / float64(srcH)
	s := min(sw, sh)
	return max(1, int(float64(srcW)*s+0.5)), max(1, int(float64(srcH)*s+0.5))
}

// Thumbnail scales img down so neither side exceeds maxSide, keeping the
// aspect ratio. Images already small enough are returned as a copy.
func Thumbnail(img *Image, maxSide int) (*Image, error) {
	if maxSide <= 0 {
		return nil, ErrInvalidDimensions
	}
	w, h := Fit(img.width, img.height, maxSide, maxSide)
	if w == img.width && h == img.height {
		return img.Clone(), nil
	}
	return Resize(img, w, h)
}
