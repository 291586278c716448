package docscan

import (
	"context"
	"time"

	"github.com/gogpu/docscan/raster"
)

// ImageSource loads images by opaque handle (a path, URI or key).
// Errors wrap ErrNotFound or ErrDecodeFailure.
type ImageSource interface {
	Load(ctx context.Context, handle string) (*raster.Image, error)
}

// ImageSink persists an image under name and returns its handle.
// Errors wrap ErrEncodeFailure; a failed Save leaves nothing behind.
type ImageSink interface {
	Save(ctx context.Context, img *raster.Image, name string) (string, error)
}

// ScanQuality labels how a document was captured.
type ScanQuality int

const (
	QualityLow ScanQuality = iota
	QualityMedium
	QualityHigh
)

func (q ScanQuality) String() string {
	switch q {
	case QualityLow:
		return "LOW"
	case QualityMedium:
		return "MEDIUM"
	case QualityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Document is an image produced by the Scanner.
type Document struct {
	ID        string
	Name      string
	Handle    string
	Width     int
	Height    int
	Quality   ScanQuality
	CreatedAt time.Time
}
