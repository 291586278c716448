package commands

import (
	"errors"
	"io/fs"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/filter"
	"github.com/gogpu/docscan/pdf"
)

// Hint returns a one-line suggestion for a known failure, or "".
func Hint(err error) string {
	switch {
	case errors.Is(err, docscan.ErrDegenerateQuadrilateral):
		return "the corners are collinear or coincide; drag them apart and try again"
	case errors.Is(err, docscan.ErrInvalidPoint):
		return `give four corners as fractional x,y pairs, e.g. --quad "0,0 1,0 1,1 0,1"`
	case errors.Is(err, docscan.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return "check the file path"
	case errors.Is(err, docscan.ErrDecodeFailure):
		return "the file is not a supported image (PNG, JPEG, GIF, BMP, TIFF, WebP)"
	case errors.Is(err, docscan.ErrEncodeFailure):
		return "check that the output directory is writable"
	case errors.Is(err, filter.ErrUnknownPreset):
		return "use one of: original, grayscale, high-contrast"
	case errors.Is(err, pdf.ErrPageSize):
		return "use one of: A3, A4, A5, Letter, Legal"
	case errors.Is(err, pdf.ErrPageRange):
		return "pages are numbered from 1"
	case errors.Is(err, docscan.ErrNotImplemented):
		return "place the corners by hand with --quad"
	default:
		return ""
	}
}
