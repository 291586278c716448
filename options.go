package docscan

import (
	"image/color"

	"github.com/gogpu/docscan/internal/parallel"
	"github.com/gogpu/docscan/raster"
)

// Option configures a QuadRectifier or a single Warp call.
//
// Example:
//
//	r := docscan.NewRectifier(
//	    docscan.WithMaxDimension(2000),
//	    docscan.WithInterpolation(raster.InterpBicubic),
//	)
//	defer r.Close()
type Option func(*options)

type options struct {
	maxDimension int
	background   color.NRGBA
	interp       raster.InterpolationMode
	workers      int
	pool         *parallel.WorkerPool
}

// White is the default background for areas outside the source image.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func defaultOptions() options {
	return options{
		maxDimension: DefaultMaxDimension,
		background:   White,
		interp:       raster.InterpBilinear,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithMaxDimension sets the length of the longer output side.
// Non-positive values keep DefaultMaxDimension.
func WithMaxDimension(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDimension = n
		}
	}
}

// WithBackground sets the color written where the quad extends past the
// source image. Defaults to opaque white.
func WithBackground(c color.NRGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithInterpolation selects the sampling filter. Defaults to bilinear.
func WithInterpolation(m raster.InterpolationMode) Option {
	return func(o *options) {
		o.interp = m
	}
}

// WithWorkers sets how many goroutines resample the output.
// 0 uses GOMAXPROCS; 1 resamples on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// withPool shares an existing worker pool instead of creating one.
func withPool(p *parallel.WorkerPool) Option {
	return func(o *options) {
		o.pool = p
	}
}
