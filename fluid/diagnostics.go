package fluid

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// DivergenceNorm computes the L2 norm of the discrete divergence of the
// velocity field, writing the per-cell divergence into scratch. It is the
// residual the pressure projection is meant to shrink.
func DivergenceNorm(vel *VectorGrid, scratch *ScalarGrid) float64 {
	for y := 0; y < vel.H; y++ {
		divergenceRow(vel, scratch, y)
	}
	vals := make([]float64, len(scratch.Data))
	for i, v := range scratch.Data {
		vals[i] = float64(v)
	}
	return floats.Norm(vals, 2)
}

// TotalInk returns the summed dye density over the whole grid.
func TotalInk(ink *ScalarGrid) float64 {
	vals := make([]float64, len(ink.Data))
	for i, v := range ink.Data {
		vals[i] = float64(v)
	}
	return floats.Sum(vals)
}

// MaxSpeed returns the largest velocity magnitude on the grid.
func MaxSpeed(vel *VectorGrid) float64 {
	maxSq := 0.0
	for i := range vel.X {
		sq := float64(vel.X[i])*float64(vel.X[i]) + float64(vel.Y[i])*float64(vel.Y[i])
		if sq > maxSq {
			maxSq = sq
		}
	}
	return math.Sqrt(maxSq)
}

// NearZero reports whether v is within a small absolute tolerance of zero.
func NearZero(v float64) bool {
	return scalar.EqualWithinAbs(v, 0, 1e-12)
}
