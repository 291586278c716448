// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/raster"
)

// FileSource loads images from the local file system.
// Handles are plain paths or file:// URIs.
type FileSource struct{}

var _ docscan.ImageSource = FileSource{}

// Load opens and decodes the image at handle.
func (FileSource) Load(ctx context.Context, handle string) (*raster.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := PathFromHandle(handle)
	if path == "" {
		return nil, fmt.Errorf("%w: empty handle", docscan.ErrNotFound)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", docscan.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", docscan.ErrDecodeFailure, path, err)
	}
	defer f.Close()

	img, format, err := raster.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", docscan.ErrDecodeFailure, path, err)
	}
	docscan.Logger().Debug("storage: loaded", "path", path, "format", format,
		"width", img.Width(), "height", img.Height())
	return img, nil
}

// PathFromHandle strips a file:// scheme from handle.
func PathFromHandle(handle string) string {
	if rest, ok := strings.CutPrefix(handle, "file://"); ok {
		return filepath.FromSlash(rest)
	}
	return handle
}

// FileSink writes images into a directory.
type FileSink struct {
	dir      string
	encoding raster.Encoding
	quality  int
}

var _ docscan.ImageSink = (*FileSink)(nil)

// SinkOption configures a FileSink.
type SinkOption func(*FileSink)

// WithEncoding selects the output format. Defaults to JPEG.
func WithEncoding(enc raster.Encoding) SinkOption {
	return func(s *FileSink) {
		s.encoding = enc
	}
}

// WithJPEGQuality sets the JPEG quality (1-100). Out-of-range values keep
// the default of 95.
func WithJPEGQuality(q int) SinkOption {
	return func(s *FileSink) {
		if q >= 1 && q <= 100 {
			s.quality = q
		}
	}
}

// NewFileSink creates a sink writing into dir. The directory is created on
// first Save if missing.
func NewFileSink(dir string, opts ...SinkOption) *FileSink {
	s := &FileSink{
		dir:      dir,
		encoding: raster.EncodingJPEG,
		quality:  raster.DefaultJPEGQuality,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the output directory.
func (s *FileSink) Dir() string {
	return s.dir
}

// Save encodes img to <dir>/<name>.<ext> and returns the path.
// The file is written under a temporary name and renamed into place, so a
// failed Save never leaves a partial file.
func (s *FileSink) Save(ctx context.Context, img *raster.Image, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if img == nil {
		return "", fmt.Errorf("%w: nil image", docscan.ErrEncodeFailure)
	}
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: invalid name %q", docscan.ErrEncodeFailure, name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", docscan.ErrEncodeFailure, err)
	}

	path := filepath.Join(s.dir, name+s.encoding.Ext())
	err := writeAtomic(path, func(f *os.File) error {
		return img.Encode(f, s.encoding, s.quality)
	})
	if err != nil {
		docscan.Logger().Warn("storage: save failed", "path", path, "err", err)
		return "", fmt.Errorf("%w: %s: %w", docscan.ErrEncodeFailure, path, err)
	}
	return path, nil
}

// writeAtomic writes path through a temp file in the same directory.
func writeAtomic(path string, write func(*os.File) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// WriteFileAtomic writes data produced by write to path with the same
// temp-file-and-rename guarantee as FileSink.Save.
func WriteFileAtomic(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return writeAtomic(path, write)
}
