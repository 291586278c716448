// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pdf

import (
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/raster"
)

// ErrPageRange is returned when a page index is outside the document.
var ErrPageRange = errors.New("pdf: page out of range")

// DefaultPreviewDPI is the resolution RenderPage uses when dpi <= 0.
const DefaultPreviewDPI = 144

// Preview renders pages of an existing PDF for display.
type Preview struct {
	doc *fitz.Document
}

// OpenPreview opens the PDF at path.
func OpenPreview(path string) (*Preview, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", docscan.ErrDecodeFailure, path, err)
	}
	return &Preview{doc: doc}, nil
}

// OpenPreviewBytes opens an in-memory PDF.
func OpenPreviewBytes(data []byte) (*Preview, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", docscan.ErrDecodeFailure, err)
	}
	return &Preview{doc: doc}, nil
}

// PageCount returns the number of pages.
func (p *Preview) PageCount() int {
	return p.doc.NumPage()
}

// RenderPage rasterizes page n (0-based) at dpi.
func (p *Preview) RenderPage(n int, dpi float64) (*raster.Image, error) {
	if n < 0 || n >= p.doc.NumPage() {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageRange, n, p.doc.NumPage())
	}
	if dpi <= 0 {
		dpi = DefaultPreviewDPI
	}
	img, err := p.doc.ImageDPI(n, dpi)
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %w", docscan.ErrDecodeFailure, n, err)
	}
	out, err := raster.FromStdImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %w", docscan.ErrDecodeFailure, n, err)
	}
	return out, nil
}

// Close releases the document.
func (p *Preview) Close() error {
	return p.doc.Close()
}

// PageCount opens path and returns its page count.
func PageCount(path string) (int, error) {
	p, err := OpenPreview(path)
	if err != nil {
		return 0, err
	}
	defer p.Close()
	return p.PageCount(), nil
}
