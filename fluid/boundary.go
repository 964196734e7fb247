package fluid

import "math"

// clampIndex clamps a cell index into [0, n-1].
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// clampCoord clamps a continuous grid coordinate into [-0.5, n-0.5] so a
// backtraced sample never reads outside the backing storage.
func clampCoord(x float32, n int) float32 {
	lo := float32(-0.5)
	hi := float32(n) - 0.5
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// neighbors4 returns the indices of the four axis-aligned neighbors of
// (x, y), clamped at the domain edge. Boundary cells duplicate themselves,
// which gives the interior stencils a Neumann-like boundary for free.
func neighbors4(x, y, w, h int) (left, right, up, down int) {
	left = y*w + clampIndex(x-1, w)
	right = y*w + clampIndex(x+1, w)
	up = clampIndex(y-1, h)*w + x
	down = clampIndex(y+1, h)*w + x
	return
}

// isBorderCell reports whether (x, y) lies in the wall margin at the domain
// edge. With the no-slip boundary enabled, velocity in this margin is forced
// to zero after advection.
func isBorderCell(x, y, w, h int) bool {
	return x <= 1 || x >= w-2 || y <= 1 || y >= h-2
}

// bilinearWeights resolves a continuous coordinate into the two bracketing
// indices and the interpolation fraction, with indices clamped to the grid.
func bilinearWeights(c float32, n int) (i0, i1 int, t float32) {
	c = clampCoord(c, n)
	f := float32(math.Floor(float64(c)))
	t = c - f
	i0 = clampIndex(int(f), n)
	i1 = clampIndex(int(f)+1, n)
	return
}

// BilinearSample resamples the scalar field at a continuous grid coordinate.
func BilinearSample(g *ScalarGrid, x, y float32) float32 {
	x0, x1, tx := bilinearWeights(x, g.W)
	y0, y1, ty := bilinearWeights(y, g.H)

	a := g.Data[y0*g.W+x0] + (g.Data[y0*g.W+x1]-g.Data[y0*g.W+x0])*tx
	b := g.Data[y1*g.W+x0] + (g.Data[y1*g.W+x1]-g.Data[y1*g.W+x0])*tx
	return a + (b-a)*ty
}

// BilinearSampleVec resamples the vector field at a continuous grid coordinate.
func BilinearSampleVec(g *VectorGrid, x, y float32) (float32, float32) {
	x0, x1, tx := bilinearWeights(x, g.W)
	y0, y1, ty := bilinearWeights(y, g.H)

	i00 := y0*g.W + x0
	i10 := y0*g.W + x1
	i01 := y1*g.W + x0
	i11 := y1*g.W + x1

	ax := g.X[i00] + (g.X[i10]-g.X[i00])*tx
	bx := g.X[i01] + (g.X[i11]-g.X[i01])*tx
	ay := g.Y[i00] + (g.Y[i10]-g.Y[i00])*tx
	by := g.Y[i01] + (g.Y[i11]-g.Y[i01])*tx

	return ax + (bx-ax)*ty, ay + (by-ay)*ty
}
