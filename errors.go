// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package docscan

import "errors"

// Errors reported by docscan and its collaborators. They are wrapped with
// context; test for them with errors.Is.
var (
	// ErrDecodeFailure means the source image could not be read or decoded.
	ErrDecodeFailure = errors.New("docscan: cannot decode image")

	// ErrNotFound means the image handle does not refer to an existing image.
	ErrNotFound = errors.New("docscan: image not found")

	// ErrDegenerateQuadrilateral means the four corners do not define a
	// unique invertible projective transform (coincident or collinear points).
	ErrDegenerateQuadrilateral = errors.New("docscan: degenerate quadrilateral")

	// ErrEncodeFailure means the output could not be encoded or persisted.
	ErrEncodeFailure = errors.New("docscan: cannot write image")

	// ErrInvalidPoint means a crop point is not a finite fractional coordinate.
	ErrInvalidPoint = errors.New("docscan: invalid crop point")

	// ErrInvalidRatio means an aspect ratio has a non-positive component.
	ErrInvalidRatio = errors.New("docscan: invalid aspect ratio")

	// ErrNotImplemented is returned by extension points that have no
	// implementation yet (automatic detection, enhancement).
	ErrNotImplemented = errors.New("docscan: not implemented")
)
