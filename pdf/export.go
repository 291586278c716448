// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/raster"
	"github.com/gogpu/docscan/storage"
)

var (
	// ErrNoPages is returned when exporting an empty page list.
	ErrNoPages = errors.New("pdf: no pages")

	// ErrPageSize is returned for an unknown page size name.
	ErrPageSize = errors.New("pdf: unknown page size")
)

// PageSizes lists the page size names accepted by WithPageSize.
var PageSizes = []string{"A3", "A4", "A5", "Letter", "Legal"}

// Page is one scanned page.
type Page struct {
	Image *raster.Image
}

// Exporter writes scanned pages into a PDF document, one image per page.
// Each image is scaled to fit the page inside the margin, keeping its
// aspect ratio, and centred. Landscape images get landscape pages.
type Exporter struct {
	pageSize string
	marginMM float64
	quality  int
	title    string
	author   string
	progress func(done, total int)
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithPageSize selects the paper size by name (see PageSizes).
// Defaults to A4.
func WithPageSize(name string) Option {
	return func(e *Exporter) {
		e.pageSize = name
	}
}

// WithMargin sets the page margin in millimetres. Defaults to 0.
func WithMargin(mm float64) Option {
	return func(e *Exporter) {
		if mm >= 0 {
			e.marginMM = mm
		}
	}
}

// WithJPEGQuality sets the quality of the embedded page images.
func WithJPEGQuality(q int) Option {
	return func(e *Exporter) {
		if q >= 1 && q <= 100 {
			e.quality = q
		}
	}
}

// WithTitle sets the document title metadata.
func WithTitle(title string) Option {
	return func(e *Exporter) {
		e.title = title
	}
}

// WithAuthor sets the document author metadata.
func WithAuthor(author string) Option {
	return func(e *Exporter) {
		e.author = author
	}
}

// WithProgress registers a callback invoked after each page is added.
func WithProgress(fn func(done, total int)) Option {
	return func(e *Exporter) {
		e.progress = fn
	}
}

// NewExporter creates an Exporter. It returns ErrPageSize if the page size
// option names an unknown size.
func NewExporter(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		pageSize: "A4",
		quality:  raster.DefaultJPEGQuality,
	}
	for _, opt := range opts {
		opt(e)
	}
	name, err := ParsePageSize(e.pageSize)
	if err != nil {
		return nil, err
	}
	e.pageSize = name
	return e, nil
}

// ParsePageSize returns the canonical page size name, matching case
// insensitively.
func ParsePageSize(name string) (string, error) {
	for _, s := range PageSizes {
		if strings.EqualFold(s, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrPageSize, name)
}

// Export writes pages as a PDF to w. ctx is checked between pages.
func (e *Exporter) Export(ctx context.Context, w io.Writer, pages []Page) error {
	if len(pages) == 0 {
		return ErrNoPages
	}

	doc := fpdf.New("P", "mm", e.pageSize, "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("docscan", true)
	if e.title != "" {
		doc.SetTitle(e.title, true)
	}
	if e.author != "" {
		doc.SetAuthor(e.author, true)
	}
	size := doc.GetPageSizeStr(e.pageSize)

	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.Image == nil {
			return fmt.Errorf("%w: page %d has no image", docscan.ErrEncodeFailure, i+1)
		}
		if err := e.addPage(doc, size, p.Image, i); err != nil {
			return fmt.Errorf("%w: page %d: %w", docscan.ErrEncodeFailure, i+1, err)
		}
		if e.progress != nil {
			e.progress(i+1, len(pages))
		}
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("%w: %w", docscan.ErrEncodeFailure, err)
	}
	docscan.Logger().Debug("pdf: exported", "pages", len(pages), "size", e.pageSize)
	return nil
}

func (e *Exporter) addPage(doc *fpdf.Fpdf, size fpdf.SizeType, img *raster.Image, index int) error {
	orientation := "P"
	if img.Width() > img.Height() {
		orientation = "L"
	}
	doc.AddPageFormat(orientation, size)
	pw, ph := doc.GetPageSize()

	x, y, w, h := Placement(pw, ph, e.marginMM, img.Width(), img.Height())

	data, err := img.EncodeToJPEGBytes(e.quality)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("page-%d", index)
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return doc.Error()
}

// Placement fits an imgW x imgH image inside a pageW x pageH page minus
// margin on every side, preserving aspect ratio, and centres it.
func Placement(pageW, pageH, margin float64, imgW, imgH int) (x, y, w, h float64) {
	availW := max(pageW-2*margin, 1)
	availH := max(pageH-2*margin, 1)
	scale := min(availW/float64(imgW), availH/float64(imgH))
	w = float64(imgW) * scale
	h = float64(imgH) * scale
	return (pageW - w) / 2, (pageH - h) / 2, w, h
}

// ExportFile writes the PDF to path through a temporary file. A failed
// export leaves no file behind.
func (e *Exporter) ExportFile(ctx context.Context, path string, pages []Page) error {
	return storage.WriteFileAtomic(path, func(f *os.File) error {
		return e.Export(ctx, f, pages)
	})
}
