// Package raster provides the pixel buffers that flow through docscan.
//
// An Image owns a contiguous byte slice with an optional row stride. Sources
// handed to the rectifier are treated as read-only; every operation that
// produces a new picture allocates a fresh Image.
package raster

import (
	"errors"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("raster: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("raster: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("raster: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("raster: coordinates out of bounds")
)

// Image is a pixel buffer with a fixed format.
//
// Thread safety: Image is safe for concurrent read access. Concurrent writers
// must touch disjoint rows; Fill and SetRGBA need external synchronization
// otherwise.
type Image struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
}

// NewImage creates a zeroed image with the given dimensions and format.
func NewImage(width, height int, format Format) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	stride := format.RowBytes(width)
	return &Image{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// NewRGBA is shorthand for NewImage(width, height, FormatRGBA8).
func NewRGBA(width, height int) (*Image, error) {
	return NewImage(width, height, FormatRGBA8)
}

// FromRaw creates an Image from existing data without copying.
// The caller must ensure data remains valid for the lifetime of the Image.
// Stride must be at least format.RowBytes(width).
func FromRaw(data []byte, width, height int, format Format, stride int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	minStride := format.RowBytes(width)
	if stride < minStride {
		return nil, ErrInvalidStride
	}

	requiredSize := stride * height
	if len(data) < requiredSize {
		return nil, ErrDataTooSmall
	}

	return &Image{
		data:   data[:requiredSize],
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Clone creates a deep copy of the image.
func (m *Image) Clone() *Image {
	data := make([]byte, len(m.data))
	copy(data, m.data)

	return &Image{
		data:   data,
		width:  m.width,
		height: m.height,
		stride: m.stride,
		format: m.format,
	}
}

// Width returns the image width in pixels.
func (m *Image) Width() int {
	return m.width
}

// Height returns the image height in pixels.
func (m *Image) Height() int {
	return m.height
}

// Stride returns the number of bytes per row (including padding).
func (m *Image) Stride() int {
	return m.stride
}

// Format returns the pixel format.
func (m *Image) Format() Format {
	return m.format
}

// Bounds returns the image dimensions as (width, height).
func (m *Image) Bounds() (int, int) {
	return m.width, m.height
}

// Data returns the raw pixel data slice.
func (m *Image) Data() []byte {
	return m.data
}

// RowBytes returns the pixel bytes of row y, without stride padding.
// Returns nil if y is out of bounds.
func (m *Image) RowBytes(y int) []byte {
	if y < 0 || y >= m.height {
		return nil
	}
	start := y * m.stride
	return m.data[start : start+m.format.RowBytes(m.width)]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (m *Image) PixelOffset(x, y int) int {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return -1
	}
	return y*m.stride + x*m.format.BytesPerPixel()
}

// RGBA returns the color at (x, y) in 0-255 range.
// Gray pixels expand to r=g=b with a=255. Out-of-bounds reads return zeros.
func (m *Image) RGBA(x, y int) (r, g, b, a uint8) {
	off := m.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}

	switch m.format {
	case FormatGray8:
		v := m.data[off]
		return v, v, v, 255
	case FormatRGBA8:
		return m.data[off], m.data[off+1], m.data[off+2], m.data[off+3]
	default:
		return 0, 0, 0, 0
	}
}

// SetRGBA sets the color at (x, y).
// Gray images store Rec. 601 luminance and drop alpha.
func (m *Image) SetRGBA(x, y int, r, g, b, a uint8) error {
	off := m.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}

	switch m.format {
	case FormatGray8:
		m.data[off] = luma(r, g, b)
	case FormatRGBA8:
		m.data[off] = r
		m.data[off+1] = g
		m.data[off+2] = b
		m.data[off+3] = a
	}
	return nil
}

// Fill sets every pixel to the given color.
func (m *Image) Fill(r, g, b, a uint8) {
	bpp := m.format.BytesPerPixel()
	var px [4]byte
	switch m.format {
	case FormatGray8:
		px[0] = luma(r, g, b)
	case FormatRGBA8:
		px = [4]byte{r, g, b, a}
	}

	for y := range m.height {
		row := m.RowBytes(y)
		for i := 0; i < len(row); i += bpp {
			copy(row[i:i+bpp], px[:bpp])
		}
	}
}

// SubImage returns a view into a rectangular region of the image.
// The view shares pixel memory with m. Returns nil for invalid bounds.
func (m *Image) SubImage(x, y, width, height int) *Image {
	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return nil
	}
	if x+width > m.width || y+height > m.height {
		return nil
	}

	bpp := m.format.BytesPerPixel()
	offset := y*m.stride + x*bpp
	end := (y+height-1)*m.stride + (x+width)*bpp

	return &Image{
		data:   m.data[offset:end],
		width:  width,
		height: height,
		stride: m.stride,
		format: m.format,
	}
}

// ToRGBA returns m if it is already RGBA8, otherwise an RGBA8 copy.
func (m *Image) ToRGBA() *Image {
	if m.format == FormatRGBA8 {
		return m
	}
	out, _ := NewRGBA(m.width, m.height)
	for y := range m.height {
		for x := range m.width {
			r, g, b, a := m.RGBA(x, y)
			_ = out.SetRGBA(x, y, r, g, b, a)
		}
	}
	return out
}

// ByteSize returns the total size of the image data in bytes.
func (m *Image) ByteSize() int {
	return len(m.data)
}

// luma computes Rec. 601 luminance: 0.299*R + 0.587*G + 0.114*B.
func luma(r, g, b uint8) uint8 {
	return uint8((int(r)*299 + int(g)*587 + int(b)*114) / 1000)
}
