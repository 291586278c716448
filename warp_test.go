package docscan

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/docscan/raster"
)

func gradientImage(t *testing.T, w, h int) *raster.Image {
	t.Helper()
	img, err := raster.NewRGBA(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for y := range h {
		for x := range w {
			r := uint8(x * 255 / (w - 1))
			g := uint8(y * 255 / (h - 1))
			_ = img.SetRGBA(x, y, r, g, 128, 255)
		}
	}
	return img
}

func solidImage(t *testing.T, w, h int, c color.NRGBA) *raster.Image {
	t.Helper()
	img, err := raster.NewRGBA(w, h)
	if err != nil {
		t.Fatal(err)
	}
	img.Fill(c.R, c.G, c.B, c.A)
	return img
}

// meanAbsDiff compares two same-sized images channel by channel.
func meanAbsDiff(t *testing.T, a, b *raster.Image) float64 {
	t.Helper()
	if a.Width() != b.Width() || a.Height() != b.Height() {
		t.Fatalf("size mismatch: %dx%d vs %dx%d", a.Width(), a.Height(), b.Width(), b.Height())
	}
	var sum float64
	for y := range a.Height() {
		for x := range a.Width() {
			r1, g1, b1, _ := a.RGBA(x, y)
			r2, g2, b2, _ := b.RGBA(x, y)
			sum += absDiff(r1, r2) + absDiff(g1, g2) + absDiff(b1, b2)
		}
	}
	return sum / float64(a.Width()*a.Height()*3)
}

func absDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

func TestWarpIdentityMatchesResize(t *testing.T) {
	src := gradientImage(t, 300, 400)
	w, h := 900, 1200

	got, err := Warp(context.Background(), src, rectQuad(300, 400), w, h)
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	want, err := raster.Resize(src, w, h)
	if err != nil {
		t.Fatal(err)
	}
	if d := meanAbsDiff(t, got, want); d > 2 {
		t.Errorf("mean abs diff vs bilinear resize = %.3f, want <= 2", d)
	}
}

func TestWarpSameSizeIsCopy(t *testing.T) {
	src := gradientImage(t, 64, 48)
	got, err := Warp(context.Background(), src, rectQuad(64, 48), 64, 48)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Data(), src.Data()) {
		t.Error("warp onto the same rectangle should reproduce the source")
	}
}

func TestWarpOutOfBoundsIsBackground(t *testing.T) {
	src := solidImage(t, 100, 100, color.NRGBA{A: 255})
	quad := Quad{Pt(-50, -50), Pt(150, -50), Pt(150, 150), Pt(-50, 150)}

	got, err := Warp(context.Background(), src, quad, 200, 200)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"top left outside", 5, 5, White},
		{"bottom right outside", 195, 195, White},
		{"left margin", 10, 100, White},
		{"centre inside", 100, 100, color.NRGBA{A: 255}},
		{"inside near corner", 60, 60, color.NRGBA{A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := got.RGBA(tt.x, tt.y)
			if (color.NRGBA{R: r, G: g, B: b, A: a}) != tt.want {
				t.Errorf("pixel (%d,%d) = (%d,%d,%d,%d), want %v", tt.x, tt.y, r, g, b, a, tt.want)
			}
		})
	}
}

func TestWarpCustomBackground(t *testing.T) {
	src := solidImage(t, 10, 10, color.NRGBA{R: 255, A: 255})
	bg := color.NRGBA{G: 255, A: 255}
	quad := Quad{Pt(-10, -10), Pt(20, -10), Pt(20, 20), Pt(-10, 20)}

	got, err := Warp(context.Background(), src, quad, 30, 30, WithBackground(bg))
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, a := got.RGBA(1, 1); (color.NRGBA{R: r, G: g, B: b, A: a}) != bg {
		t.Errorf("outside pixel = (%d,%d,%d,%d), want %v", r, g, b, a, bg)
	}
}

func TestWarpOutputOpaque(t *testing.T) {
	src := solidImage(t, 20, 20, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
	got, err := Warp(context.Background(), src, rectQuad(20, 20), 40, 40)
	if err != nil {
		t.Fatal(err)
	}
	for y := range got.Height() {
		for x := range got.Width() {
			r, g, b, a := got.RGBA(x, y)
			if a != 255 || r != 255 || g != 255 || b != 255 {
				t.Fatalf("transparent source over white at (%d,%d) = (%d,%d,%d,%d), want opaque white",
					x, y, r, g, b, a)
			}
		}
	}
}

func TestWarpWorkersAgree(t *testing.T) {
	src := gradientImage(t, 257, 311)
	quad := Quad{Pt(20, 15), Pt(240, 30), Pt(230, 300), Pt(10, 280)}

	serial, err := Warp(context.Background(), src, quad, 300, 400, WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	for _, workers := range []int{0, 2, 7} {
		got, err := Warp(context.Background(), src, quad, 300, 400, WithWorkers(workers))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got.Data(), serial.Data()) {
			t.Errorf("workers=%d output differs from serial output", workers)
		}
	}
}

func TestWarpInterpolationModes(t *testing.T) {
	src := gradientImage(t, 50, 50)
	for _, mode := range []raster.InterpolationMode{raster.InterpNearest, raster.InterpBilinear, raster.InterpBicubic} {
		t.Run(mode.String(), func(t *testing.T) {
			got, err := Warp(context.Background(), src, rectQuad(50, 50), 100, 100, WithInterpolation(mode))
			if err != nil {
				t.Fatal(err)
			}
			want, _ := raster.Resize(src, 100, 100)
			if d := meanAbsDiff(t, got, want); d > 4 {
				t.Errorf("mean abs diff = %.3f, want <= 4", d)
			}
		})
	}
}

func TestWarpCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := gradientImage(t, 100, 100)
	img, err := Warp(ctx, src, rectQuad(100, 100), 100, 100)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Warp() error = %v, want context.Canceled", err)
	}
	if img != nil {
		t.Error("Warp() returned an image after cancellation")
	}
}

func TestWarpInvalidArgs(t *testing.T) {
	src := gradientImage(t, 10, 10)
	ctx := context.Background()

	if _, err := Warp(ctx, nil, rectQuad(10, 10), 10, 10); !errors.Is(err, ErrDecodeFailure) {
		t.Errorf("nil source error = %v, want ErrDecodeFailure", err)
	}
	if _, err := Warp(ctx, src, rectQuad(10, 10), 0, 10); !errors.Is(err, ErrInvalidRatio) {
		t.Errorf("zero width error = %v, want ErrInvalidRatio", err)
	}
	collinear := Quad{Pt(0, 0), Pt(5, 5), Pt(10, 10), Pt(0, 10)}
	if _, err := Warp(ctx, src, collinear, 10, 10); !errors.Is(err, ErrDegenerateQuadrilateral) {
		t.Errorf("collinear quad error = %v, want ErrDegenerateQuadrilateral", err)
	}
}

func TestCompositeOver(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b, a uint8
		bg         color.NRGBA
		want       [4]uint8
	}{
		{"opaque sample", 10, 20, 30, 255, White, [4]uint8{10, 20, 30, 255}},
		{"transparent sample", 10, 20, 30, 0, White, [4]uint8{255, 255, 255, 255}},
		{"half black on white", 0, 0, 0, 128, White, [4]uint8{127, 127, 127, 255}},
		{"transparent background", 10, 20, 30, 100, color.NRGBA{}, [4]uint8{10, 20, 30, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := compositeOver(tt.r, tt.g, tt.b, tt.a, tt.bg)
			if got := [4]uint8{r, g, b, a}; got != tt.want {
				t.Errorf("compositeOver() = %v, want %v", got, tt.want)
			}
		})
	}
}
