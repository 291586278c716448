package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DefaultJPEGQuality is the quality used for persisted scan output.
const DefaultJPEGQuality = 95

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the encoding is not supported.
	ErrUnsupportedFormat = errors.New("raster: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("raster: empty data")
)

// Encoding names a compressed file format.
type Encoding uint8

const (
	// EncodingJPEG is lossy JPEG; the default for scan output.
	EncodingJPEG Encoding = iota
	// EncodingPNG is lossless PNG.
	EncodingPNG
)

// Ext returns the canonical file extension including the dot.
func (e Encoding) Ext() string {
	if e == EncodingPNG {
		return ".png"
	}
	return ".jpg"
}

// ParseEncoding maps a file name or extension to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = "." + strings.ToLower(strings.TrimPrefix(name, "."))
	}
	switch ext {
	case ".jpg", ".jpeg":
		return EncodingJPEG, nil
	case ".png":
		return EncodingPNG, nil
	default:
		return EncodingJPEG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Decode decodes an image from r, auto-detecting PNG, JPEG, GIF, BMP, TIFF
// and WebP. The result is always RGBA8. The second return value is the
// detected format name.
func Decode(r io.Reader) (*Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("raster: decode: %w", err)
	}
	out, err := FromStdImage(img)
	if err != nil {
		return nil, format, fmt.Errorf("raster: decode %s: %w", format, err)
	}
	return out, format, nil
}

// DecodeBytes decodes an in-memory encoded image.
func DecodeBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, _, err := Decode(bytes.NewReader(data))
	return img, err
}

// Encode writes m to w using the given encoding. quality applies to JPEG only.
func (m *Image) Encode(w io.Writer, enc Encoding, quality int) error {
	switch enc {
	case EncodingPNG:
		return m.EncodePNG(w)
	case EncodingJPEG:
		return m.EncodeJPEG(w, quality)
	default:
		return ErrUnsupportedFormat
	}
}

// EncodePNG encodes the image as PNG to the given writer.
func (m *Image) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, m.ToStdImage()); err != nil {
		return fmt.Errorf("raster: encode PNG: %w", err)
	}
	return nil
}

// EncodeJPEG encodes the image as JPEG with the given quality (1-100).
// JPEG has no alpha channel, so translucent pixels are flattened onto white.
func (m *Image) EncodeJPEG(w io.Writer, quality int) error {
	quality = clamp(quality, 1, 100)

	if err := jpeg.Encode(w, m.flattened(), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("raster: encode JPEG: %w", err)
	}
	return nil
}

// flattened returns an opaque std image suitable for JPEG.
func (m *Image) flattened() image.Image {
	if m.format == FormatGray8 {
		return m.ToStdImage()
	}

	rect := image.Rect(0, 0, m.width, m.height)
	out := image.NewRGBA(rect)
	for y := range m.height {
		row := m.RowBytes(y)
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < len(row); x += 4 {
			a := uint16(row[x+3])
			inv := 255 - a
			dst[x] = uint8((uint16(row[x])*a + 255*inv + 127) / 255)
			dst[x+1] = uint8((uint16(row[x+1])*a + 255*inv + 127) / 255)
			dst[x+2] = uint8((uint16(row[x+2])*a + 255*inv + 127) / 255)
			dst[x+3] = 255
		}
	}
	return out
}

// FromStdImage creates an RGBA8 Image from a standard library image.Image.
// Images with empty bounds return ErrInvalidDimensions.
func FromStdImage(img image.Image) (*Image, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out, err := NewRGBA(width, height)
	if err != nil {
		return nil, err
	}

	// NRGBA layout matches FormatRGBA8 byte for byte.
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			start := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.RowBytes(y), nrgba.Pix[start:start+width*4])
		}
		return out, nil
	}

	for y := range height {
		row := out.RowBytes(y)
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			row[x*4] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = c.A
		}
	}
	return out, nil
}

// ToStdImage converts the Image to a standard library image.Image.
// Returns *image.NRGBA for RGBA8 and *image.Gray for Gray8.
func (m *Image) ToStdImage() image.Image {
	rect := image.Rect(0, 0, m.width, m.height)

	switch m.format {
	case FormatGray8:
		gray := image.NewGray(rect)
		for y := range m.height {
			copy(gray.Pix[y*gray.Stride:], m.RowBytes(y))
		}
		return gray

	default:
		nrgba := image.NewNRGBA(rect)
		if m.stride == nrgba.Stride {
			copy(nrgba.Pix, m.data)
		} else {
			for y := range m.height {
				copy(nrgba.Pix[y*nrgba.Stride:], m.RowBytes(y))
			}
		}
		return nrgba
	}
}

// EncodeToJPEGBytes encodes the image as JPEG and returns the bytes.
func (m *Image) EncodeToJPEGBytes(quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.EncodeJPEG(&buf, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
