package raster

import "testing"

func gradientImage(t *testing.T) *Image {
	t.Helper()
	img, err := NewRGBA(4, 4)
	if err != nil {
		t.Fatalf("NewRGBA failed: %v", err)
	}
	for y := range 4 {
		for x := range 4 {
			_ = img.SetRGBA(x, y, byte(x*64), byte(y*64), 128, 255)
		}
	}
	return img
}

func TestSampleNearest(t *testing.T) {
	img := gradientImage(t)

	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY int
	}{
		{"top-left centre", 0.5, 0.5, 0, 0},
		{"inside pixel 1,2", 1.9, 2.1, 1, 2},
		{"right edge", 4.0, 0.2, 3, 0},
		{"clamped negative", -3, -3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := SampleNearest(img, tt.x, tt.y)
			wr, wg, wb, wa := img.RGBA(tt.wantX, tt.wantY)
			if r != wr || g != wg || b != wb || a != wa {
				t.Errorf("SampleNearest(%v, %v) = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					tt.x, tt.y, r, g, b, a, wr, wg, wb, wa)
			}
		})
	}
}

func TestSampleBilinearAtCentres(t *testing.T) {
	img := gradientImage(t)
	for y := range 4 {
		for x := range 4 {
			r, g, _, _ := SampleBilinear(img, float64(x)+0.5, float64(y)+0.5)
			if r != byte(x*64) || g != byte(y*64) {
				t.Errorf("centre (%d,%d) = (%d,%d), want (%d,%d)", x, y, r, g, x*64, y*64)
			}
		}
	}
}

func TestSampleBilinearMidpoint(t *testing.T) {
	img := gradientImage(t)
	// Halfway between centres of pixel 0 and 1 on row 0.
	r, _, _, _ := SampleBilinear(img, 1.0, 0.5)
	if r != 32 {
		t.Errorf("midpoint r = %d, want 32", r)
	}
}

func TestSampleBicubicFlat(t *testing.T) {
	img, _ := NewRGBA(5, 5)
	img.Fill(100, 150, 200, 255)
	r, g, b, a := SampleBicubic(img, 2.3, 1.7)
	if r != 100 || g != 150 || b != 200 || a != 255 {
		t.Errorf("flat bicubic = (%d,%d,%d,%d), want (100,150,200,255)", r, g, b, a)
	}
}

func TestContains(t *testing.T) {
	img, _ := NewRGBA(10, 20)
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{10, 20, true},
		{5, 5, true},
		{-0.01, 5, false},
		{5, 20.01, false},
	}
	for _, tt := range tests {
		if got := img.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestParseInterpolation(t *testing.T) {
	for _, m := range []InterpolationMode{InterpNearest, InterpBilinear, InterpBicubic} {
		got, err := ParseInterpolation(m.String())
		if err != nil || got != m {
			t.Errorf("ParseInterpolation(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseInterpolation("lanczos"); err == nil {
		t.Error("ParseInterpolation(lanczos) should fail")
	}
}
