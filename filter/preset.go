// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/docscan/raster"
)

var (
	// ErrNilImage is returned when a filter is given no image.
	ErrNilImage = errors.New("filter: nil image")

	// ErrUnknownPreset is returned by ParsePreset for unrecognized names.
	ErrUnknownPreset = errors.New("filter: unknown preset")
)

// Preset is one of the looks offered on the scan preview.
type Preset int

const (
	// Original leaves the image unchanged.
	Original Preset = iota
	// Grayscale removes all color.
	Grayscale
	// HighContrast whitens the paper and darkens the ink.
	HighContrast
)

// Presets lists every preset in display order.
var Presets = []Preset{Original, Grayscale, HighContrast}

// String returns the preset's command-line name.
func (p Preset) String() string {
	switch p {
	case Original:
		return "original"
	case Grayscale:
		return "grayscale"
	case HighContrast:
		return "high-contrast"
	default:
		return fmt.Sprintf("Preset(%d)", int(p))
	}
}

// Matrix returns the color matrix behind the preset.
func (p Preset) Matrix() *ColorMatrix {
	switch p {
	case Grayscale:
		return NewGrayscaleMatrix()
	case HighContrast:
		return NewHighContrastMatrix()
	default:
		return NewIdentityColorMatrix()
	}
}

// ParsePreset maps a name to a Preset. Matching ignores case, and
// "_" or " " may stand in for "-".
func ParsePreset(name string) (Preset, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("_", "-", " ", "-").Replace(n)
	switch n {
	case "original", "none", "":
		return Original, nil
	case "grayscale", "greyscale", "gray", "grey":
		return Grayscale, nil
	case "high-contrast", "highcontrast", "contrast":
		return HighContrast, nil
	default:
		return Original, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// Apply returns a new image with preset applied to img. The input is not
// modified. Original returns a copy.
func Apply(ctx context.Context, img *raster.Image, preset Preset) (*raster.Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if preset == Original {
		return img.Clone(), nil
	}
	return preset.Matrix().Apply(ctx, img)
}
