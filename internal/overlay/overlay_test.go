package overlay

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/raster"
)

func grayImage(t *testing.T, w, h int) *raster.Image {
	t.Helper()
	img, err := raster.NewRGBA(w, h)
	if err != nil {
		t.Fatal(err)
	}
	img.Fill(128, 128, 128, 255)
	return img
}

var square = docscan.Quad{
	docscan.Pt(40, 40), docscan.Pt(160, 40), docscan.Pt(160, 160), docscan.Pt(40, 160),
}

func TestDrawRegions(t *testing.T) {
	src := grayImage(t, 200, 200)
	style := DefaultStyle()
	style.Labels = false

	out, err := Draw(src, square, style)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	tests := []struct {
		name    string
		x, y    int
		r, g, b uint8
		tol     int
	}{
		{"inside untouched", 100, 100, 128, 128, 128, 0},
		{"outside dimmed", 5, 100, 51, 51, 51, 1},
		{"handle white", 30, 30, 255, 255, 255, 0},
		{"handle accent", 40, 40, 0x21, 0x96, 0xf3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := out.RGBA(tt.x, tt.y)
			if !near(r, tt.r, tt.tol) || !near(g, tt.g, tt.tol) || !near(b, tt.b, tt.tol) {
				t.Errorf("pixel (%d,%d) = (%d,%d,%d), want (%d,%d,%d)", tt.x, tt.y, r, g, b, tt.r, tt.g, tt.b)
			}
			if a != 255 {
				t.Errorf("alpha = %d, want 255", a)
			}
		})
	}

	// The outline is lighter than the gray interior.
	if r, _, _, _ := out.RGBA(100, 40); r <= 128 {
		t.Errorf("edge pixel R = %d, want lighter than 128", r)
	}
}

func TestDrawDoesNotModifySource(t *testing.T) {
	src := grayImage(t, 120, 90)
	orig := src.Clone()
	q := docscan.FullFrame.ToPixels(120, 90)
	if _, err := Draw(src, q, DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(src.Data(), orig.Data()) {
		t.Error("Draw() modified its input")
	}
}

func TestDrawLabels(t *testing.T) {
	src := grayImage(t, 200, 200)
	plain := DefaultStyle()
	plain.Labels = false

	without, err := Draw(src, square, plain)
	if err != nil {
		t.Fatal(err)
	}
	with, err := Draw(src, square, DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(without.Data(), with.Data()) {
		t.Error("labels did not change any pixel")
	}
	if with.Width() != 200 || with.Height() != 200 {
		t.Errorf("size = %dx%d, want 200x200", with.Width(), with.Height())
	}
}

func TestDrawNoDim(t *testing.T) {
	src := grayImage(t, 200, 200)
	style := DefaultStyle()
	style.Dim = 0
	style.Labels = false
	out, err := Draw(src, square, style)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, _, _ := out.RGBA(5, 100); r != 128 {
		t.Errorf("outside pixel R = %d, want 128 with Dim 0", r)
	}
}

func TestDrawConcaveQuad(t *testing.T) {
	src := grayImage(t, 200, 200)
	// Bottom-right corner pulled inward past the diagonal.
	concave := docscan.Quad{
		docscan.Pt(20, 20), docscan.Pt(180, 20), docscan.Pt(60, 60), docscan.Pt(20, 180),
	}
	style := DefaultStyle()
	style.Labels = false
	out, err := Draw(src, concave, style)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	// Inside the notch, outside the polygon.
	if r, _, _, _ := out.RGBA(120, 120); r != 51 {
		t.Errorf("notch pixel R = %d, want dimmed 51", r)
	}
	// Inside the polygon, away from edges.
	if r, _, _, _ := out.RGBA(35, 100); r != 128 {
		t.Errorf("interior pixel R = %d, want 128", r)
	}
}

func TestDrawNil(t *testing.T) {
	if _, err := Draw(nil, square, DefaultStyle()); err == nil {
		t.Error("Draw(nil) returned no error")
	}
}

func TestTriangulate(t *testing.T) {
	tris, err := triangulate(square)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	var area float64
	for _, tr := range tris {
		a := tr[1].Sub(tr[0]).Cross(tr[2].Sub(tr[0])) / 2
		if a < 0 {
			a = -a
		}
		area += a
	}
	if area != 120*120 {
		t.Errorf("triangle area = %v, want %v", area, 120*120)
	}

	line := docscan.Quad{docscan.Pt(0, 0), docscan.Pt(1, 1), docscan.Pt(2, 2), docscan.Pt(3, 3)}
	if _, err := triangulate(line); !errors.Is(err, ErrTriangulation) {
		t.Errorf("collinear triangulate() error = %v, want ErrTriangulation", err)
	}
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}
