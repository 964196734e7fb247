package main

import (
	"math"

	"github.com/pthm-cable/riptide/config"
	"github.com/pthm-cable/riptide/fluid"
)

// divergedPenalty is returned when a run blows up (NaN or runaway speed).
const divergedPenalty = 1e9

// maxStableSpeed is the speed above which a run is considered diverged,
// in cells per step.
const maxStableSpeed = 1e3

// Evaluator scores a (dt, viscosity) pair by running a scripted stirring
// session and measuring the divergence residual the projection leaves
// behind, plus how much injected ink survives.
type Evaluator struct {
	cfg       *config.Config
	frames    int
	warmup    int
	lastSpeed float64
}

func NewEvaluator(cfg *config.Config, frames int) *Evaluator {
	return &Evaluator{
		cfg:    cfg,
		frames: frames,
		warmup: frames / 4,
	}
}

// Evaluate runs one scripted session. raw is [dt, viscosity].
func (e *Evaluator) Evaluate(raw []float64) float64 {
	dt := clamp(raw[0], 0.05, 1.5)
	visc := clamp(raw[1], 0, 0.01)

	w, h := e.cfg.Derived.GridW, e.cfg.Derived.GridH
	solver, err := fluid.NewSolver(w, h, fluid.Params{
		DT:               float32(dt),
		Viscosity:        float32(visc),
		JacobiIterations: e.cfg.Solver.JacobiIterations,
		EnableBoundary:   e.cfg.Solver.EnableBoundary,
	})
	if err != nil {
		return divergedPenalty
	}
	defer solver.Close()

	solver.Brush().SetParams(
		float32(e.cfg.Brush.Radius),
		float32(e.cfg.Brush.ForceScale),
		float32(e.cfg.Brush.InkAmount),
	)

	scratch := fluid.NewScalarGrid(w, h)

	var sumDiv float64
	samples := 0

	cx, cy := float64(w)/2, float64(h)/2
	orbit := float64(min(w, h)) / 4

	for frame := 0; frame < e.frames; frame++ {
		// Stir in a circle: position on the orbit, delta tangent to it.
		theta := float64(frame) * 0.08
		x := cx + orbit*math.Cos(theta)
		y := cy + orbit*math.Sin(theta)
		dx := float32(-orbit * 0.08 * math.Sin(theta))
		dy := float32(orbit * 0.08 * math.Cos(theta))

		solver.Brush().SetDown(true)
		solver.Brush().Move(int(x), int(y), dx, dy)

		solver.AdvanceFrame()

		speed := fluid.MaxSpeed(solver.Velocity())
		e.lastSpeed = speed
		if math.IsNaN(speed) || speed > maxStableSpeed {
			return divergedPenalty
		}

		if frame >= e.warmup {
			sumDiv += fluid.DivergenceNorm(solver.Velocity(), &scratch)
			samples++
		}
	}

	meanDiv := sumDiv / float64(samples)

	// Reward motion: a solver that damps everything to zero has perfect
	// divergence and no flow. Weigh residual against achieved speed.
	if e.lastSpeed < 1e-6 {
		return divergedPenalty / 2
	}
	return meanDiv / e.lastSpeed
}

// LastSpeed returns the final max speed of the most recent evaluation.
func (e *Evaluator) LastSpeed() float64 { return e.lastSpeed }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
