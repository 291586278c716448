// Package docscan rectifies photographed paper documents into upright pages.
//
// # Overview
//
// A user marks the four corners of a page in a photo. docscan measures the
// marked quadrilateral, picks the closest standard paper ratio (3:4, 21:29
// for A-series, 9:16, 2:3) and maps the quad onto an output rectangle of
// that ratio with a perspective transform. Everything outside the source
// photo is filled with an opaque background (white by default).
//
// # Quick Start
//
//	import "github.com/gogpu/docscan"
//
//	r := docscan.NewRectifier()
//	defer r.Close()
//
//	quad := docscan.Quad{
//	    docscan.Pt(0.21, 0.14), // top-left
//	    docscan.Pt(0.73, 0.19), // top-right
//	    docscan.Pt(0.77, 0.88), // bottom-right
//	    docscan.Pt(0.18, 0.85), // bottom-left
//	}
//	page, err := r.Rectify(ctx, photo, quad)
//
// For file based workflows a [Scanner] ties a rectifier to an [ImageSource]
// and an [ImageSink] and records every result as a [Document].
//
// # Coordinate System
//
// Crop corners are fractional: (0,0) is the top-left of the photo and
// (1,1) the bottom-right. Pixel coordinates put the origin at the top-left
// corner of the top-left pixel, so the centre of pixel (x, y) is at
// (x+0.5, y+0.5).
//
//   - X increases right
//   - Y increases down
//   - Corners are always ordered TL, TR, BR, BL
//
// # Packages
//
//   - raster: pixel buffers, sampling, codecs
//   - filter: color matrix presets (grayscale, high contrast)
//   - storage: file and in-memory image stores
//   - pdf: PDF export and page preview
//   - autoscan: extension points for automatic detection
//
// # Performance
//
// Rows of the output are warped in parallel bands on a work-stealing pool.
// Results do not depend on the number of workers.
package docscan

// Version is the current version of the library.
const Version = "0.1.0"
