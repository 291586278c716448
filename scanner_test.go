package docscan_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/filter"
	"github.com/gogpu/docscan/raster"
	"github.com/gogpu/docscan/storage"
)

func newStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	img, err := raster.NewRGBA(300, 400)
	if err != nil {
		t.Fatal(err)
	}
	img.Fill(200, 120, 40, 255)
	m := storage.NewMemoryStore()
	m.Put("photo", img)
	return m
}

func TestScannerCrop(t *testing.T) {
	store := newStore(t)
	s := docscan.NewScanner(store, store, nil)
	defer s.Close()

	doc, err := s.Crop(context.Background(), "photo", docscan.FullFrame)
	if err != nil {
		t.Fatalf("Crop() error = %v", err)
	}
	if _, err := uuid.Parse(doc.ID); err != nil {
		t.Errorf("document ID %q is not a UUID: %v", doc.ID, err)
	}
	if doc.Name != docscan.CroppedPrefix+doc.ID {
		t.Errorf("Name = %q, want cropped_<id>", doc.Name)
	}
	if doc.Width != 900 || doc.Height != 1200 {
		t.Errorf("size = %dx%d, want 900x1200", doc.Width, doc.Height)
	}
	if doc.Quality != docscan.QualityHigh {
		t.Errorf("Quality = %v, want HIGH", doc.Quality)
	}
	if doc.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	out, err := store.Load(context.Background(), doc.Handle)
	if err != nil {
		t.Fatalf("saved document not loadable: %v", err)
	}
	if r, g, b, _ := out.RGBA(450, 600); r != 200 || g != 120 || b != 40 {
		t.Errorf("cropped pixel = (%d,%d,%d), want (200,120,40)", r, g, b)
	}
}

func TestScannerCropDegenerateWritesNothing(t *testing.T) {
	store := newStore(t)
	s := docscan.NewScanner(store, store, nil)
	defer s.Close()

	collinear := docscan.Quad{docscan.Pt(0, 0), docscan.Pt(0.5, 0.5), docscan.Pt(1, 1), docscan.Pt(0, 1)}
	_, err := s.Crop(context.Background(), "photo", collinear)
	if !errors.Is(err, docscan.ErrDegenerateQuadrilateral) {
		t.Fatalf("Crop() error = %v, want ErrDegenerateQuadrilateral", err)
	}
	if n := store.Len(); n != 1 {
		t.Errorf("store has %d images, want only the source", n)
	}
}

func TestScannerCropMissingSource(t *testing.T) {
	store := newStore(t)
	s := docscan.NewScanner(store, store, nil)
	defer s.Close()

	if _, err := s.Crop(context.Background(), "nope", docscan.FullFrame); !errors.Is(err, docscan.ErrNotFound) {
		t.Errorf("Crop() error = %v, want ErrNotFound", err)
	}
}

type failingSink struct{}

func (failingSink) Save(context.Context, *raster.Image, string) (string, error) {
	return "", docscan.ErrEncodeFailure
}

func TestScannerSaveFailure(t *testing.T) {
	store := newStore(t)
	s := docscan.NewScanner(store, failingSink{}, nil)
	defer s.Close()

	if _, err := s.Rotate(context.Background(), "photo", 1); !errors.Is(err, docscan.ErrEncodeFailure) {
		t.Errorf("Rotate() error = %v, want ErrEncodeFailure", err)
	}
}

// emptySource reports success without an image.
type emptySource struct{}

func (emptySource) Load(context.Context, string) (*raster.Image, error) {
	return nil, nil
}

func TestScannerNilImageFromSource(t *testing.T) {
	store := storage.NewMemoryStore()
	s := docscan.NewScanner(emptySource{}, store, nil)
	defer s.Close()

	ctx := context.Background()
	if _, err := s.Rotate(ctx, "x", 1); !errors.Is(err, docscan.ErrDecodeFailure) {
		t.Errorf("Rotate() error = %v, want ErrDecodeFailure", err)
	}
	if _, err := s.Crop(ctx, "x", docscan.FullFrame); !errors.Is(err, docscan.ErrDecodeFailure) {
		t.Errorf("Crop() error = %v, want ErrDecodeFailure", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d images, want 0", store.Len())
	}
}

func TestScannerFilter(t *testing.T) {
	store := newStore(t)
	s := docscan.NewScanner(store, store, nil, docscan.WithQuality(docscan.QualityMedium))
	defer s.Close()

	doc, err := s.Filter(context.Background(), "photo", filter.Grayscale)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(doc.Name, docscan.FilteredPrefix) {
		t.Errorf("Name = %q, want filtered_ prefix", doc.Name)
	}
	if doc.Quality != docscan.QualityMedium {
		t.Errorf("Quality = %v, want MEDIUM", doc.Quality)
	}
	out, _ := store.Load(context.Background(), doc.Handle)
	if r, g, b, _ := out.RGBA(0, 0); r != g || g != b {
		t.Errorf("filtered pixel = (%d,%d,%d), want gray", r, g, b)
	}

	src, _ := store.Load(context.Background(), "photo")
	if r, _, _, _ := src.RGBA(0, 0); r != 200 {
		t.Error("Filter() modified the source image")
	}
}

func TestScannerRotate(t *testing.T) {
	store := newStore(t)
	s := docscan.NewScanner(store, store, nil)
	defer s.Close()

	doc, err := s.Rotate(context.Background(), "photo", 1)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Width != 400 || doc.Height != 300 {
		t.Errorf("rotated size = %dx%d, want 400x300", doc.Width, doc.Height)
	}
	if !strings.HasPrefix(doc.Name, docscan.RotatedPrefix) {
		t.Errorf("Name = %q, want rotated_ prefix", doc.Name)
	}
}

func TestScannerCropBatch(t *testing.T) {
	store := newStore(t)
	s := docscan.NewScanner(store, store, nil, docscan.WithConcurrency(2))
	defer s.Close()

	half := docscan.Quad{docscan.Pt(0, 0), docscan.Pt(0.5, 0), docscan.Pt(0.5, 1), docscan.Pt(0, 1)}
	jobs := []docscan.CropJob{
		{Handle: "photo", Quad: docscan.FullFrame},
		{Handle: "photo", Quad: half},
		{Handle: "photo", Quad: docscan.FullFrame},
	}
	docs, err := s.CropBatch(context.Background(), jobs)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3", len(docs))
	}
	// 150x400 -> 0.375 -> 9:16
	if docs[1].Width != 675 || docs[1].Height != 1200 {
		t.Errorf("job 1 size = %dx%d, want 675x1200", docs[1].Width, docs[1].Height)
	}
	seen := map[string]bool{}
	for _, d := range docs {
		if seen[d.ID] {
			t.Errorf("duplicate document ID %s", d.ID)
		}
		seen[d.ID] = true
	}
	if n := len(store.Handles("mem://" + docscan.CroppedPrefix)); n != 3 {
		t.Errorf("store has %d crops, want 3", n)
	}
}

// countingRectifier fails every call after the first.
type countingRectifier struct {
	calls atomic.Int32
}

func (c *countingRectifier) Rectify(_ context.Context, src *raster.Image, _ docscan.Quad) (*raster.Image, error) {
	if c.calls.Add(1) > 1 {
		return nil, docscan.ErrDegenerateQuadrilateral
	}
	return src.Clone(), nil
}

func TestScannerCropBatchFirstError(t *testing.T) {
	store := newStore(t)
	s := docscan.NewScanner(store, store, &countingRectifier{}, docscan.WithConcurrency(1))
	defer s.Close()

	jobs := make([]docscan.CropJob, 4)
	for i := range jobs {
		jobs[i] = docscan.CropJob{Handle: "photo", Quad: docscan.FullFrame}
	}
	docs, err := s.CropBatch(context.Background(), jobs)
	if !errors.Is(err, docscan.ErrDegenerateQuadrilateral) {
		t.Errorf("CropBatch() error = %v, want ErrDegenerateQuadrilateral", err)
	}
	if docs != nil {
		t.Error("CropBatch() returned documents with an error")
	}
}

func TestScanQualityString(t *testing.T) {
	tests := map[docscan.ScanQuality]string{
		docscan.QualityLow:     "LOW",
		docscan.QualityMedium:  "MEDIUM",
		docscan.QualityHigh:    "HIGH",
		docscan.ScanQuality(7): "UNKNOWN",
	}
	for q, want := range tests {
		if got := q.String(); got != want {
			t.Errorf("ScanQuality(%d).String() = %q, want %q", int(q), got, want)
		}
	}
}
