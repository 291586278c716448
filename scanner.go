// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package docscan

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/docscan/filter"
	"github.com/gogpu/docscan/raster"
)

// Output name prefixes. The document ID follows the prefix.
const (
	CroppedPrefix  = "cropped_"
	FilteredPrefix = "filtered_"
	RotatedPrefix  = "rotated_"
)

// CropJob is one entry of a CropBatch call.
type CropJob struct {
	Handle string
	Quad   Quad
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithQuality sets the quality recorded on produced documents.
// Defaults to QualityHigh.
func WithQuality(q ScanQuality) ScannerOption {
	return func(s *Scanner) {
		s.quality = q
	}
}

// WithConcurrency bounds how many crops CropBatch runs at once.
// Non-positive values use GOMAXPROCS.
func WithConcurrency(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// Scanner loads images from a source, transforms them and writes the
// result to a sink. The source image is never modified.
type Scanner struct {
	src         ImageSource
	sink        ImageSink
	rect        Rectifier
	ownRect     *QuadRectifier
	quality     ScanQuality
	concurrency int
	now         func() time.Time
}

// NewScanner creates a Scanner. A nil rectifier uses NewRectifier() with
// default options, which Close releases.
func NewScanner(src ImageSource, sink ImageSink, rect Rectifier, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		src:         src,
		sink:        sink,
		rect:        rect,
		quality:     QualityHigh,
		concurrency: runtime.GOMAXPROCS(0),
		now:         time.Now,
	}
	if s.rect == nil {
		s.ownRect = NewRectifier()
		s.rect = s.ownRect
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases resources owned by the scanner.
func (s *Scanner) Close() {
	if s.ownRect != nil {
		s.ownRect.Close()
	}
}

// Crop rectifies quad (fractional coordinates) out of the image at handle
// and saves it as "cropped_<id>". Nothing is written when the quad is
// rejected.
func (s *Scanner) Crop(ctx context.Context, handle string, quad Quad) (Document, error) {
	img, err := s.load(ctx, handle)
	if err != nil {
		return Document{}, err
	}
	out, err := s.rect.Rectify(ctx, img, quad)
	if err != nil {
		return Document{}, fmt.Errorf("docscan: crop %s: %w", handle, err)
	}
	return s.save(ctx, out, CroppedPrefix)
}

// Filter applies a color preset to the image at handle and saves it as
// "filtered_<id>".
func (s *Scanner) Filter(ctx context.Context, handle string, preset filter.Preset) (Document, error) {
	img, err := s.load(ctx, handle)
	if err != nil {
		return Document{}, err
	}
	out, err := filter.Apply(ctx, img, preset)
	if err != nil {
		return Document{}, fmt.Errorf("docscan: filter %s: %w", handle, err)
	}
	return s.save(ctx, out, FilteredPrefix)
}

// Rotate turns the image at handle clockwise by quarterTurns * 90 degrees
// and saves it as "rotated_<id>".
func (s *Scanner) Rotate(ctx context.Context, handle string, quarterTurns int) (Document, error) {
	img, err := s.load(ctx, handle)
	if err != nil {
		return Document{}, err
	}
	return s.save(ctx, raster.Rotate90(img, quarterTurns), RotatedPrefix)
}

// CropBatch runs independent crops concurrently. Results are returned in
// job order. The first failure cancels the remaining jobs and is returned;
// documents already saved stay in the sink.
func (s *Scanner) CropBatch(ctx context.Context, jobs []CropJob) ([]Document, error) {
	docs := make([]Document, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			doc, err := s.Crop(ctx, job.Handle, job.Quad)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Scanner) load(ctx context.Context, handle string) (*raster.Image, error) {
	img, err := s.src.Load(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("docscan: load %s: %w", handle, err)
	}
	if img == nil {
		return nil, fmt.Errorf("docscan: load %s: %w: no image", handle, ErrDecodeFailure)
	}
	return img, nil
}

func (s *Scanner) save(ctx context.Context, img *raster.Image, prefix string) (Document, error) {
	id := uuid.NewString()
	name := prefix + id
	handle, err := s.sink.Save(ctx, img, name)
	if err != nil {
		Logger().Warn("docscan: save failed", "name", name, "err", err)
		return Document{}, fmt.Errorf("docscan: save %s: %w", name, err)
	}
	Logger().Info("docscan: saved", "name", name, "handle", handle,
		"width", img.Width(), "height", img.Height())
	return Document{
		ID:        id,
		Name:      name,
		Handle:    handle,
		Width:     img.Width(),
		Height:    img.Height(),
		Quality:   s.quality,
		CreatedAt: s.now(),
	}, nil
}
