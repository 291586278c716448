package raster

import (
	"fmt"
	"math"
	"strings"
)

// InterpolationMode defines how pixel sampling is performed.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest pixel (no interpolation).
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between 4 neighboring pixels.
	// This is the default used by the rectifier.
	InterpBilinear

	// InterpBicubic performs cubic interpolation using a 4x4 pixel neighborhood.
	InterpBicubic
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "nearest"
	case InterpBilinear:
		return "bilinear"
	case InterpBicubic:
		return "bicubic"
	default:
		return "unknown"
	}
}

// ParseInterpolation parses a mode name as produced by String.
func ParseInterpolation(s string) (InterpolationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest":
		return InterpNearest, nil
	case "", "bilinear":
		return InterpBilinear, nil
	case "bicubic":
		return InterpBicubic, nil
	default:
		return InterpBilinear, fmt.Errorf("raster: unknown interpolation %q", s)
	}
}

// Contains reports whether the continuous pixel coordinate (x, y) lies
// inside the image area [0, width] x [0, height].
func (m *Image) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= float64(m.width) && y <= float64(m.height)
}

// SampleAt samples img at continuous pixel coordinates (x, y). Pixel (i, j)
// covers [i, i+1) x [j, j+1), so its centre is (i+0.5, j+0.5).
// Coordinates outside the image are clamped to the edge; callers that need
// a background for those points check Contains first.
func SampleAt(img *Image, x, y float64, mode InterpolationMode) (r, g, b, a uint8) {
	switch mode {
	case InterpNearest:
		return SampleNearest(img, x, y)
	case InterpBicubic:
		return SampleBicubic(img, x, y)
	default:
		return SampleBilinear(img, x, y)
	}
}

// SampleNearest returns the pixel containing (x, y).
func SampleNearest(img *Image, x, y float64) (r, g, b, a uint8) {
	w, h := img.Bounds()
	px := clamp(int(math.Floor(x)), 0, w-1)
	py := clamp(int(math.Floor(y)), 0, h-1)
	return img.RGBA(px, py)
}

// SampleBilinear interpolates between the 4 pixels whose centres surround (x, y).
func SampleBilinear(img *Image, x, y float64) (r, g, b, a uint8) {
	w, h := img.Bounds()

	fx := x - 0.5
	fy := y - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clamp(x0+1, 0, w-1)
	y1 := clamp(y0+1, 0, h-1)
	x0 = clamp(x0, 0, w-1)
	y0 = clamp(y0, 0, h-1)

	r00, g00, b00, a00 := img.RGBA(x0, y0)
	r10, g10, b10, a10 := img.RGBA(x1, y0)
	r01, g01, b01, a01 := img.RGBA(x0, y1)
	r11, g11, b11, a11 := img.RGBA(x1, y1)

	r = round8(lerp2D(float64(r00), float64(r10), float64(r01), float64(r11), tx, ty))
	g = round8(lerp2D(float64(g00), float64(g10), float64(g01), float64(g11), tx, ty))
	b = round8(lerp2D(float64(b00), float64(b10), float64(b01), float64(b11), tx, ty))
	a = round8(lerp2D(float64(a00), float64(a10), float64(a01), float64(a11), tx, ty))
	return r, g, b, a
}

// SampleBicubic uses Catmull-Rom splines over a 4x4 neighbourhood.
func SampleBicubic(img *Image, x, y float64) (r, g, b, a uint8) {
	w, h := img.Bounds()

	fx := x - 0.5
	fy := y - 0.5
	ix := int(math.Floor(fx))
	iy := int(math.Floor(fy))
	tx := fx - float64(ix)
	ty := fy - float64(iy)

	var rVals, gVals, bVals, aVals [4][4]float64
	for dy := -1; dy <= 2; dy++ {
		for dx := -1; dx <= 2; dx++ {
			pr, pg, pb, pa := img.RGBA(clamp(ix+dx, 0, w-1), clamp(iy+dy, 0, h-1))
			rVals[dy+1][dx+1] = float64(pr)
			gVals[dy+1][dx+1] = float64(pg)
			bVals[dy+1][dx+1] = float64(pb)
			aVals[dy+1][dx+1] = float64(pa)
		}
	}

	r = round8(bicubicInterp(rVals, tx, ty))
	g = round8(bicubicInterp(gVals, tx, ty))
	b = round8(bicubicInterp(bVals, tx, ty))
	a = round8(bicubicInterp(aVals, tx, ty))
	return r, g, b, a
}

func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// round8 rounds to the nearest byte, saturating at 0 and 255.
func round8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), ty)
}

// cubicWeight computes the Catmull-Rom weight for distance t.
func cubicWeight(t float64) float64 {
	absT := math.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}

func bicubicInterp(vals [4][4]float64, tx, ty float64) float64 {
	wx := [4]float64{cubicWeight(tx + 1), cubicWeight(tx), cubicWeight(tx - 1), cubicWeight(tx - 2)}
	wy := [4]float64{cubicWeight(ty + 1), cubicWeight(ty), cubicWeight(ty - 1), cubicWeight(ty - 2)}

	var result float64
	for i := range 4 {
		for j := range 4 {
			//nolint:gosec // G602: fixed-size arrays, bounded loop
			result += vals[i][j] * wx[j] * wy[i]
		}
	}
	return result
}
