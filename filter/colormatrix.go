package filter

import (
	"context"
	"math"

	"github.com/gogpu/docscan/internal/parallel"
	"github.com/gogpu/docscan/raster"
)

// ColorMatrix applies a 4x5 color transformation matrix to an image.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column provides bias/offset values.
// Color values are in [0, 255] range during transformation,
// then clamped back to valid range.
type ColorMatrix struct {
	// Matrix is the 4x5 transformation matrix in row-major order.
	// [0-4] = row 0 (R), [5-9] = row 1 (G), [10-14] = row 2 (B), [15-19] = row 3 (A)
	Matrix [20]float32
}

// NewColorMatrix creates a color matrix with the given coefficients.
func NewColorMatrix(matrix [20]float32) *ColorMatrix {
	return &ColorMatrix{Matrix: matrix}
}

// NewIdentityColorMatrix creates a color matrix that passes through unchanged.
func NewIdentityColorMatrix() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			1, 0, 0, 0, 0, // R
			0, 1, 0, 0, 0, // G
			0, 0, 1, 0, 0, // B
			0, 0, 0, 1, 0, // A
		},
	}
}

// NewBrightnessMatrix scales the color channels.
// factor: 0.0 = black, 1.0 = unchanged, 2.0 = twice as bright
func NewBrightnessMatrix(factor float32) *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			factor, 0, 0, 0, 0,
			0, factor, 0, 0, 0,
			0, 0, factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewContrastMatrix adjusts contrast around mid-gray.
// factor: 0.0 = gray, 1.0 = unchanged, 2.0 = high contrast
func NewContrastMatrix(factor float32) *ColorMatrix {
	// (color - 128) * factor + 128
	offset := 128 * (1 - factor)
	return &ColorMatrix{
		Matrix: [20]float32{
			factor, 0, 0, 0, offset,
			0, factor, 0, 0, offset,
			0, 0, factor, 0, offset,
			0, 0, 0, 1, 0,
		},
	}
}

// NewSaturationMatrix adjusts color saturation.
// factor: 0.0 = grayscale, 1.0 = unchanged, 2.0 = oversaturated
func NewSaturationMatrix(factor float32) *ColorMatrix {
	// Luminance weights (Rec. 709)
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)

	invFactor := 1 - factor

	return &ColorMatrix{
		Matrix: [20]float32{
			lumR*invFactor + factor, lumG * invFactor, lumB * invFactor, 0, 0,
			lumR * invFactor, lumG*invFactor + factor, lumB * invFactor, 0, 0,
			lumR * invFactor, lumG * invFactor, lumB*invFactor + factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewGrayscaleMatrix desaturates completely.
func NewGrayscaleMatrix() *ColorMatrix {
	return NewSaturationMatrix(0)
}

// NewHighContrastMatrix is the scan "high contrast" look: a 1.5 gain with
// a -50 bias on every color channel. Light paper clips to white and ink
// gets darker.
func NewHighContrastMatrix() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			1.5, 0, 0, 0, -50,
			0, 1.5, 0, 0, -50,
			0, 0, 1.5, 0, -50,
			0, 0, 0, 1, 0,
		},
	}
}

// NewInvertMatrix inverts the color channels.
func NewInvertMatrix() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			-1, 0, 0, 0, 255,
			0, -1, 0, 0, 255,
			0, 0, -1, 0, 255,
			0, 0, 0, 1, 0,
		},
	}
}

// Apply returns a new RGBA8 image with the matrix applied to every pixel
// of src. Gray8 sources are expanded first. Rows are processed in parallel
// bands; a cancelled ctx stops the work and returns ctx.Err().
func (f *ColorMatrix) Apply(ctx context.Context, src *raster.Image) (*raster.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	src = src.ToRGBA()
	dst, err := raster.NewRGBA(src.Width(), src.Height())
	if err != nil {
		return nil, err
	}

	pool := parallel.NewWorkerPool(0)
	defer pool.Close()

	err = parallel.RunBands(ctx, pool, src.Height(), func(b parallel.Band) {
		f.applyRows(dst, src, b)
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// applyRows transforms rows [b.Y0, b.Y1). Both images are straight-alpha
// RGBA8 of the same size.
func (f *ColorMatrix) applyRows(dst, src *raster.Image, b parallel.Band) {
	m := &f.Matrix
	width := src.Width()

	for y := b.Y0; y < b.Y1; y++ {
		in := src.RowBytes(y)
		out := dst.RowBytes(y)
		for x := range width {
			i := x * 4
			r := float32(in[i])
			g := float32(in[i+1])
			bl := float32(in[i+2])
			a := float32(in[i+3])

			out[i] = clampUint8(m[0]*r + m[1]*g + m[2]*bl + m[3]*a + m[4])
			out[i+1] = clampUint8(m[5]*r + m[6]*g + m[7]*bl + m[8]*a + m[9])
			out[i+2] = clampUint8(m[10]*r + m[11]*g + m[12]*bl + m[13]*a + m[14])
			out[i+3] = clampUint8(m[15]*r + m[16]*g + m[17]*bl + m[18]*a + m[19])
		}
	}
}

// Multiply returns a new matrix that is the product of this matrix and another.
// The result applies this matrix first, then the other.
func (f *ColorMatrix) Multiply(other *ColorMatrix) *ColorMatrix {
	a := &other.Matrix
	b := &f.Matrix

	result := &ColorMatrix{}
	r := &result.Matrix

	// 4x5 * 4x5, treating the 5th column as a constant term
	for row := range 4 {
		for col := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[row*5+k] * b[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = a[row*5+0]*b[4] + a[row*5+1]*b[9] +
			a[row*5+2]*b[14] + a[row*5+3]*b[19] + a[row*5+4]
	}

	return result
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 || math.IsNaN(float64(v)) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
