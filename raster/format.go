package raster

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatRGBA8 is 32-bit straight-alpha RGBA (4 bytes per pixel).
	// Every buffer the rectifier produces uses this format.
	FormatRGBA8 Format = iota

	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	BytesPerPixel int
	Channels      int
	IsGrayscale   bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatRGBA8: {
		BytesPerPixel: 4,
		Channels:      4,
	},
	FormatGray8: {
		BytesPerPixel: 1,
		Channels:      1,
		IsGrayscale:   true,
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatGray8:
		return "Gray8"
	default:
		return "Unknown"
	}
}
