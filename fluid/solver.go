package fluid

import (
	"fmt"
	"sync"
)

// Stage phase names, in frame order.
const (
	PhaseBrush      = "brush"
	PhaseAdvect     = "advect"
	PhaseDiffuse    = "diffuse"
	PhaseDivergence = "divergence"
	PhasePressure   = "pressure"
	PhaseProject    = "project"
	PhaseInk        = "ink"
)

// PhaseTimer receives the name of each stage as it starts. Satisfied by
// telemetry.PerfCollector.
type PhaseTimer interface {
	StartPhase(name string)
}

// Params are the numerical parameters of a solver. They may change between
// frames but never mid-stage.
//
// No stability bounds are enforced: a dt too large relative to the grid
// spacing makes the explicit advection/diffusion diverge. Known limitation.
type Params struct {
	DT               float32
	Viscosity        float32
	JacobiIterations int
	EnableBoundary   bool
}

func (p Params) validate() error {
	if p.JacobiIterations < 1 {
		return fmt.Errorf("fluid: jacobi iterations must be at least 1, got %d", p.JacobiIterations)
	}
	return nil
}

// Solver owns the grid fields of one simulation session and advances them
// one frame at a time. Fields are allocated once at construction and never
// resized; a solver is torn down with Close when the session ends.
type Solver struct {
	w, h int

	vel      VectorPair
	ink      ScalarPair
	pressure ScalarPair
	div      ScalarGrid

	// Transient per-frame fields, written by the brush stage and consumed
	// by the same frame's force/ink-addition stages.
	force  VectorGrid
	inkInj ScalarGrid

	brush BrushInput

	mu     sync.Mutex
	params Params

	pool  *workerPool
	timer PhaseTimer

	frame int64
}

// NewSolver allocates a solver for a w×h grid. It fails on non-positive
// dimensions or an invalid parameter set and holds no state after a failure.
func NewSolver(w, h int, params Params) (*Solver, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("fluid: grid dimensions must be positive, got %dx%d", w, h)
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	return &Solver{
		w: w, h: h,
		vel:      NewVectorPair(w, h),
		ink:      NewScalarPair(w, h),
		pressure: NewScalarPair(w, h),
		div:      NewScalarGrid(w, h),
		force:    NewVectorGrid(w, h),
		inkInj:   NewScalarGrid(w, h),
		params:   params,
		pool:     newWorkerPool(),
	}, nil
}

// Close stops the worker pool. The solver must not be used afterwards.
func (s *Solver) Close() {
	s.pool.stop()
}

// Size returns the grid dimensions.
func (s *Solver) Size() (int, int) { return s.w, s.h }

// Frame returns the number of completed frames.
func (s *Solver) Frame() int64 { return s.frame }

// Brush returns the shared brush input written by the input adapter.
func (s *Solver) Brush() *BrushInput { return &s.brush }

// SetPhaseTimer installs a per-stage timing hook. Pass nil to disable.
func (s *Solver) SetPhaseTimer(t PhaseTimer) { s.timer = t }

// Params returns the current parameter set.
func (s *Solver) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetParams replaces the parameter set. Takes effect at the next frame.
func (s *Solver) SetParams(p Params) error {
	if err := p.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.params = p
	s.mu.Unlock()
	return nil
}

// Ink returns the current ink buffer.
func (s *Solver) Ink() *ScalarGrid { return s.ink.Current() }

// Velocity returns the current velocity buffer.
func (s *Solver) Velocity() *VectorGrid { return s.vel.Current() }

// Pressure returns the current pressure buffer.
func (s *Solver) Pressure() *ScalarGrid { return s.pressure.Current() }

// Divergence returns the divergence buffer computed by the last frame.
func (s *Solver) Divergence() *ScalarGrid { return &s.div }

func (s *Solver) startPhase(name string) {
	if s.timer != nil {
		s.timer.StartPhase(name)
	}
}

// AdvanceFrame runs one full simulation step. The stage order is
// load-bearing: divergence is computed after advection and diffusion and
// before the pressure solve; projection follows the pressure solve and
// precedes ink advection, so ink is transported by the divergence-free
// field rather than the raw advected one.
//
// Stages are strictly sequential; within a stage, rows are processed by the
// worker pool with a full barrier before the next stage. Buffer swaps happen
// only here, between stages, never inside a worker.
func (s *Solver) AdvanceFrame() {
	p := s.Params()

	// 1. Brush injection, or a parity reset when the pointer is up. The
	// reset discards whatever the secondary buffer held so stale injected
	// forces cannot drift back in.
	s.startPhase(PhaseBrush)
	brush := s.brush.Latch()
	if brush.IsDown {
		s.pool.Dispatch(s.h, func(y int) {
			brushRow(&s.force, &s.inkInj, brush, y)
		})

		inkSrc, inkDst := s.ink.Current(), s.ink.Other()
		s.pool.Dispatch(s.h, func(y int) {
			addInkRow(inkSrc, inkDst, &s.inkInj, y)
		})
		s.ink.Swap()

		// In place on the current buffer: the kernel reads only its own
		// cell, so the velocity parity stays where the sequence expects it.
		vel := s.vel.Current()
		s.pool.Dispatch(s.h, func(y int) {
			addForceRow(vel, &s.force, p.DT, y)
		})
	} else {
		s.vel.Reset()
	}

	// 2. Self-advection of velocity.
	s.startPhase(PhaseAdvect)
	velSrc, velDst := s.vel.Current(), s.vel.Other()
	s.pool.Dispatch(s.h, func(y int) {
		advectVelocityRow(velSrc, velDst, p.DT, p.EnableBoundary, y)
	})
	s.vel.Swap()

	// 3. Viscous diffusion, fixed Jacobi iteration count.
	s.startPhase(PhaseDiffuse)
	alpha := p.Viscosity * p.DT
	beta := 1 / (4 + alpha)
	for it := 0; it < p.JacobiIterations; it++ {
		src, dst := s.vel.Current(), s.vel.Other()
		s.pool.Dispatch(s.h, func(y int) {
			diffuseRow(src, dst, alpha, beta, y)
		})
		s.vel.Swap()
	}

	// 4. Divergence of the advected, diffused velocity.
	s.startPhase(PhaseDivergence)
	vel := s.vel.Current()
	s.pool.Dispatch(s.h, func(y int) {
		divergenceRow(vel, &s.div, y)
	})

	// 5. Pressure Poisson solve from a zeroed baseline.
	s.startPhase(PhasePressure)
	s.pressure.Reset()
	s.pressure.Current().Clear()
	for it := 0; it < p.JacobiIterations; it++ {
		src, dst := s.pressure.Current(), s.pressure.Other()
		s.pool.Dispatch(s.h, func(y int) {
			pressureRow(src, dst, &s.div, y)
		})
		s.pressure.Swap()
	}

	// 6. Projection: subtract the pressure gradient.
	s.startPhase(PhaseProject)
	velSrc, velDst = s.vel.Current(), s.vel.Other()
	pr := s.pressure.Current()
	s.pool.Dispatch(s.h, func(y int) {
		projectRow(velSrc, pr, velDst, y)
	})
	s.vel.Swap()

	// 7. Ink transport by the divergence-free field.
	s.startPhase(PhaseInk)
	vel = s.vel.Current()
	inkSrc, inkDst := s.ink.Current(), s.ink.Other()
	s.pool.Dispatch(s.h, func(y int) {
		advectScalarRow(vel, inkSrc, inkDst, p.DT, y)
	})
	s.ink.Swap()

	s.frame++
}
