package docscan

import "testing"

func rectQuad(w, h float64) Quad {
	return Quad{Pt(0, 0), Pt(w, 0), Pt(w, h), Pt(0, h)}
}

func TestSelectAspectRatio(t *testing.T) {
	tests := []struct {
		name string
		q    Quad
		want AspectRatio
	}{
		{"300x400 rectangle", rectQuad(300, 400), AspectRatio{3, 4}},
		{"A4 sheet", rectQuad(210, 297), AspectRatio{21, 29}},
		{"phone screen", rectQuad(900, 1600), AspectRatio{9, 16}},
		{"2:3 photo", rectQuad(400, 600), AspectRatio{2, 3}},
		{"very tall strip", rectQuad(100, 1000), AspectRatio{9, 16}},
		{"nearly square portrait", rectQuad(990, 1000), AspectRatio{3, 4}},
		{"square", rectQuad(500, 500), AspectRatio{3, 4}},
		{"landscape forced portrait", rectQuad(800, 600), AspectRatio{3, 4}},
		{"wide landscape", rectQuad(1600, 900), AspectRatio{3, 4}},
		{
			"perspective trapezoid",
			Quad{Pt(100, 50), Pt(400, 50), Pt(450, 450), Pt(50, 450)},
			// avg width 350, avg height ~403 -> 0.868, closest is 3:4
			AspectRatio{3, 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectAspectRatio(tt.q)
			if got != tt.want {
				t.Errorf("SelectAspectRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectAspectRatioDeterministic(t *testing.T) {
	q := Quad{Pt(12.5, 30), Pt(610, 44), Pt(640, 900), Pt(8, 870)}
	first := SelectAspectRatio(q)
	for range 10 {
		if got := SelectAspectRatio(q); got != first {
			t.Fatalf("SelectAspectRatio() = %v, then %v", first, got)
		}
	}
}

func TestClosestRatioTieBreak(t *testing.T) {
	candidates := []AspectRatio{{1, 2}, {2, 4}, {3, 6}}
	if got := closestRatio(0.5, candidates); got != (AspectRatio{1, 2}) {
		t.Errorf("closestRatio() = %v, want first candidate 1:2", got)
	}
	if got := closestRatio(0.5, nil); got != Ratio3x4 {
		t.Errorf("closestRatio(empty) = %v, want 3:4", got)
	}
}

func TestOutputSize(t *testing.T) {
	tests := []struct {
		ratio AspectRatio
		max   int
		wantW int
		wantH int
	}{
		{AspectRatio{3, 4}, 1200, 900, 1200},
		{AspectRatio{21, 29}, 1200, 869, 1200},
		{AspectRatio{9, 16}, 1200, 675, 1200},
		{AspectRatio{2, 3}, 1200, 800, 1200},
		{AspectRatio{4, 3}, 1200, 1200, 900},
		{AspectRatio{1, 1}, 500, 500, 500},
		{AspectRatio{1, 5000}, 1200, 1, 1200},
		{AspectRatio{0, 4}, 1200, 0, 0},
		{AspectRatio{3, -4}, 1200, 0, 0},
		{AspectRatio{3, 4}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.ratio.String(), func(t *testing.T) {
			w, h := OutputSize(tt.ratio, tt.max)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("OutputSize(%v, %d) = (%d, %d), want (%d, %d)",
					tt.ratio, tt.max, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestOutputSizeInvariant(t *testing.T) {
	for _, r := range CandidateRatios {
		for _, maxDim := range []int{1, 7, 100, 1200, 4096} {
			w, h := OutputSize(r, maxDim)
			if max(w, h) != maxDim {
				t.Errorf("OutputSize(%v, %d) = (%d, %d): longer side != max", r, maxDim, w, h)
			}
			if w < 1 || h < 1 {
				t.Errorf("OutputSize(%v, %d) = (%d, %d): side below 1", r, maxDim, w, h)
			}
		}
	}
}
