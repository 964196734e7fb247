// Package sim wires the solver, tracers, compositor and telemetry into a
// runnable session, windowed or headless.
package sim

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/riptide/config"
	"github.com/pthm-cable/riptide/fluid"
	"github.com/pthm-cable/riptide/render"
	"github.com/pthm-cable/riptide/telemetry"
)

// Sim holds the complete session state.
type Sim struct {
	cfg *config.Config

	solver     *fluid.Solver
	tracers    *TracerField
	compositor *render.Compositor
	presenter  *render.Presenter

	perf    *telemetry.PerfCollector
	out     *telemetry.OutputManager
	scratch fluid.ScalarGrid

	mode          render.DisplayMode
	paused        bool
	stepsPerFrame int
	showPanel     bool

	logStats   bool
	statsEvery int64
}

// Options selects the session variant.
type Options struct {
	// Graphical creates a presenter; requires an open raylib window.
	Graphical bool
	// LogStats emits a human-readable perf breakdown alongside the
	// structured window log.
	LogStats bool
	// Output receives CSV telemetry. May be nil (disabled).
	Output *telemetry.OutputManager
}

// New builds a session from the loaded config. On error no partial session
// is left behind.
func New(cfg *config.Config, opts Options) (*Sim, error) {
	w, h := cfg.Derived.GridW, cfg.Derived.GridH

	solver, err := fluid.NewSolver(w, h, fluid.Params{
		DT:               cfg.Derived.DT32,
		Viscosity:        float32(cfg.Solver.Viscosity),
		JacobiIterations: cfg.Solver.JacobiIterations,
		EnableBoundary:   cfg.Solver.EnableBoundary,
	})
	if err != nil {
		return nil, err
	}

	solver.Brush().SetParams(
		float32(cfg.Brush.Radius),
		float32(cfg.Brush.ForceScale),
		float32(cfg.Brush.InkAmount),
	)

	bg, err := loadBackground(cfg.Display.BackgroundImage, w, h)
	if err != nil {
		solver.Close()
		return nil, fmt.Errorf("loading background: %w", err)
	}

	compositor, err := render.NewCompositor(w, h, bg)
	if err != nil {
		solver.Close()
		return nil, err
	}

	mode, err := render.ParseMode(cfg.Display.Mode)
	if err != nil {
		solver.Close()
		return nil, err
	}

	s := &Sim{
		cfg:           cfg,
		solver:        solver,
		compositor:    compositor,
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		out:           opts.Output,
		scratch:       fluid.NewScalarGrid(w, h),
		mode:          mode,
		stepsPerFrame: 1,
		logStats:      opts.LogStats,
	}
	s.solver.SetPhaseTimer(s.perf)

	if cfg.Tracers.Count > 0 {
		s.tracers = NewTracerField(w, h, cfg.Tracers.Count,
			float32(cfg.Tracers.MaxAge), float32(cfg.Tracers.MinSpeed), 42)
	}

	if opts.Graphical {
		s.presenter = render.NewPresenter(w, h,
			cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	}

	// Stats cadence in frames, from the configured window in seconds.
	s.statsEvery = int64(cfg.Telemetry.StatsWindow * float64(cfg.Screen.TargetFPS))
	if s.statsEvery < 1 {
		s.statsEvery = 1
	}

	return s, nil
}

// Update handles input and advances the simulation. Windowed mode only.
func (s *Sim) Update() {
	s.handleInput()

	if s.paused {
		return
	}

	for i := 0; i < s.stepsPerFrame; i++ {
		s.step()
	}
	s.perf.RecordWallFrame()
}

// UpdateHeadless advances the simulation one frame without input handling.
func (s *Sim) UpdateHeadless() {
	s.step()
}

// step runs one solver frame plus tracer integration and telemetry.
func (s *Sim) step() {
	s.perf.StartFrame()
	s.solver.AdvanceFrame()

	if s.tracers != nil {
		s.perf.StartPhase(telemetry.PhaseTracers)
		s.tracers.Update(s.solver.Velocity(), s.solver.Params().DT)
	}
	s.perf.EndFrame()

	s.maybeEmitStats()
}

// maybeEmitStats logs and exports window stats on the configured cadence.
func (s *Sim) maybeEmitStats() {
	frame := s.solver.Frame()
	if frame == 0 || frame%s.statsEvery != 0 {
		return
	}

	stats := telemetry.CollectWindowStats(s.solver, &s.scratch, s.tracerCount())
	perf := s.perf.Stats()

	slog.Info("window", "stats", stats, "perf", perf)
	if s.logStats {
		s.logPerfStats(perf)
	}

	if err := s.out.WriteFrameStats(stats); err != nil {
		slog.Error("telemetry write failed", "err", err)
	}
	if err := s.out.WritePerf(perf, frame); err != nil {
		slog.Error("perf write failed", "err", err)
	}
}

func (s *Sim) tracerCount() int {
	if s.tracers == nil {
		return 0
	}
	return s.tracers.Count()
}

// Frame returns the number of frames advanced so far.
func (s *Sim) Frame() int64 { return s.solver.Frame() }

// Mode returns the active display mode.
func (s *Sim) Mode() render.DisplayMode { return s.mode }

// Compose renders the current fields into the compositor's pixel buffer.
// Exposed separately from Draw so headless runs can exercise it.
func (s *Sim) Compose() {
	start := time.Now()
	s.compositor.Compose(s.mode, s.solver.Ink(), s.solver.Velocity())
	s.perf.RecordPhase(telemetry.PhaseCompose, time.Since(start))
}

// Draw composes the current frame and presents it. Windowed mode only.
func (s *Sim) Draw() {
	s.Compose()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	defer rl.EndDrawing()

	s.presenter.Present(s.compositor.Pixels())

	if s.tracers != nil {
		gw, gh := s.solver.Size()
		s.tracers.Draw(
			s.cfg.Derived.ScreenW32/float32(gw),
			s.cfg.Derived.ScreenH32/float32(gh),
		)
	}

	s.drawPanel()
	s.drawHUD()
}

// Unload releases GPU and solver resources.
func (s *Sim) Unload() {
	if s.presenter != nil {
		s.presenter.Unload()
	}
	s.solver.Close()
}
