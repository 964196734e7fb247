package fluid

import (
	"math"
	"testing"
)

func TestClampCoordRange(t *testing.T) {
	cases := []struct {
		in   float32
		n    int
		want float32
	}{
		{-10, 16, -0.5},
		{-0.5, 16, -0.5},
		{0, 16, 0},
		{7.25, 16, 7.25},
		{15.5, 16, 15.5},
		{100, 16, 15.5},
	}
	for _, c := range cases {
		if got := clampCoord(c.in, c.n); got != c.want {
			t.Errorf("clampCoord(%f, %d) = %f, want %f", c.in, c.n, got, c.want)
		}
	}
}

func TestNeighbors4EdgeClamp(t *testing.T) {
	w, h := 8, 8

	// Interior cell
	l, r, u, d := neighbors4(3, 3, w, h)
	if l != 3*w+2 || r != 3*w+4 || u != 2*w+3 || d != 4*w+3 {
		t.Errorf("interior neighbors wrong: l=%d r=%d u=%d d=%d", l, r, u, d)
	}

	// Corner cell duplicates itself on the clamped sides
	l, r, u, d = neighbors4(0, 0, w, h)
	if l != 0 {
		t.Errorf("left neighbor of (0,0) should clamp to self, got %d", l)
	}
	if u != 0 {
		t.Errorf("up neighbor of (0,0) should clamp to self, got %d", u)
	}
	if r != 1 || d != w {
		t.Errorf("open-side neighbors of (0,0) wrong: r=%d d=%d", r, d)
	}

	// Opposite corner
	l, r, u, d = neighbors4(w-1, h-1, w, h)
	self := (h-1)*w + (w - 1)
	if r != self || d != self {
		t.Errorf("right/down of far corner should clamp to self, got r=%d d=%d", r, d)
	}
}

func TestIsBorderCellMargin(t *testing.T) {
	w, h := 16, 16
	border := []struct{ x, y int }{
		{0, 8}, {1, 8}, {14, 8}, {15, 8},
		{8, 0}, {8, 1}, {8, 14}, {8, 15},
		{0, 0}, {15, 15},
	}
	for _, c := range border {
		if !isBorderCell(c.x, c.y, w, h) {
			t.Errorf("(%d,%d) should be a border cell", c.x, c.y)
		}
	}

	interior := []struct{ x, y int }{
		{2, 2}, {8, 8}, {13, 13}, {2, 13},
	}
	for _, c := range interior {
		if isBorderCell(c.x, c.y, w, h) {
			t.Errorf("(%d,%d) should not be a border cell", c.x, c.y)
		}
	}
}

func TestBilinearSampleExactCell(t *testing.T) {
	g := NewScalarGrid(8, 8)
	g.Set(3, 4, 2.5)

	if got := BilinearSample(&g, 3, 4); got != 2.5 {
		t.Errorf("sample at exact cell center = %f, want 2.5", got)
	}
}

func TestBilinearSampleMidpoint(t *testing.T) {
	g := NewScalarGrid(8, 8)
	g.Set(2, 2, 1.0)
	g.Set(3, 2, 3.0)

	got := BilinearSample(&g, 2.5, 2)
	if math.Abs(float64(got)-2.0) > 1e-6 {
		t.Errorf("midpoint sample = %f, want 2.0", got)
	}
}

func TestBilinearSampleClampsOutside(t *testing.T) {
	g := NewScalarGrid(8, 8)
	for i := range g.Data {
		g.Data[i] = 7
	}

	// Far outside coordinates must still read in-range data.
	if got := BilinearSample(&g, -100, -100); math.Abs(float64(got)-7) > 1e-6 {
		t.Errorf("out-of-range sample = %f, want 7", got)
	}
	if got := BilinearSample(&g, 100, 100); math.Abs(float64(got)-7) > 1e-6 {
		t.Errorf("out-of-range sample = %f, want 7", got)
	}
}

func TestBilinearSampleVecComponents(t *testing.T) {
	g := NewVectorGrid(8, 8)
	g.Set(2, 2, 1, -2)
	g.Set(3, 2, 3, -4)

	vx, vy := BilinearSampleVec(&g, 2.5, 2)
	if math.Abs(float64(vx)-2) > 1e-6 || math.Abs(float64(vy)+3) > 1e-6 {
		t.Errorf("midpoint vector sample = (%f,%f), want (2,-3)", vx, vy)
	}
}
