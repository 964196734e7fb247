package sim

import (
	"fmt"
	"log/slog"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panelWidth  = float32(280)
	panelMargin = float32(10)
)

// panelContains reports whether the point lies inside the open panel.
func (s *Sim) panelContains(p rl.Vector2) bool {
	return p.X >= panelMargin && p.X <= panelMargin+panelWidth &&
		p.Y >= panelMargin && p.Y <= panelMargin+330
}

// drawPanel renders the parameter panel and applies any edits to the solver.
func (s *Sim) drawPanel() {
	if !s.showPanel {
		return
	}

	p := s.solver.Params()
	changed := false

	x := panelMargin + 10
	y := panelMargin + 10
	sliderW := panelWidth - 90

	rl.DrawRectangle(int32(panelMargin), int32(panelMargin),
		int32(panelWidth), 330, rl.Color{R: 20, G: 24, B: 32, A: 220})

	rl.DrawText("Solver", int32(x), int32(y), 18, rl.RayWhite)
	y += 28

	rl.DrawText("Time step", int32(x), int32(y), 14, rl.LightGray)
	y += 18
	newDT := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 20},
		"0.05", "1.5",
		p.DT, 0.05, 1.5,
	)
	rl.DrawText(fmt.Sprintf("%.2f", p.DT), int32(x+sliderW+8), int32(y+2), 16, rl.LightGray)
	if newDT != p.DT {
		p.DT = newDT
		changed = true
	}
	y += 32

	rl.DrawText("Viscosity", int32(x), int32(y), 14, rl.LightGray)
	y += 18
	newVisc := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 20},
		"0", "0.01",
		p.Viscosity, 0, 0.01,
	)
	rl.DrawText(fmt.Sprintf("%.5f", p.Viscosity), int32(x+sliderW+8), int32(y+2), 16, rl.LightGray)
	if newVisc != p.Viscosity {
		p.Viscosity = newVisc
		changed = true
	}
	y += 32

	rl.DrawText("Jacobi iterations", int32(x), int32(y), 14, rl.LightGray)
	y += 18
	newIters := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 20},
		"1", "80",
		float32(p.JacobiIterations), 1, 80,
	)
	rl.DrawText(fmt.Sprintf("%d", p.JacobiIterations), int32(x+sliderW+8), int32(y+2), 16, rl.LightGray)
	if int(newIters) != p.JacobiIterations {
		p.JacobiIterations = int(newIters)
		changed = true
	}
	y += 32

	newBoundary := gui.CheckBox(
		rl.Rectangle{X: x, Y: y, Width: 20, Height: 20},
		"No-slip walls", p.EnableBoundary,
	)
	if newBoundary != p.EnableBoundary {
		p.EnableBoundary = newBoundary
		changed = true
	}
	y += 32

	rl.DrawText("Brush", int32(x), int32(y), 18, rl.RayWhite)
	y += 28

	rl.DrawText("Radius", int32(x), int32(y), 14, rl.LightGray)
	y += 18
	radius, force, ink := s.brushParams()
	newRadius := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 20},
		"1", "64",
		radius, 1, 64,
	)
	rl.DrawText(fmt.Sprintf("%.0f", radius), int32(x+sliderW+8), int32(y+2), 16, rl.LightGray)
	y += 32

	rl.DrawText("Force scale", int32(x), int32(y), 14, rl.LightGray)
	y += 18
	newForce := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 20},
		"0", "10",
		force, 0, 10,
	)
	rl.DrawText(fmt.Sprintf("%.1f", force), int32(x+sliderW+8), int32(y+2), 16, rl.LightGray)

	if newRadius != radius || newForce != force {
		s.setBrushParams(newRadius, newForce, ink)
	}

	if changed {
		if err := s.solver.SetParams(p); err != nil {
			slog.Warn("rejected parameter edit", "err", err)
		}
	}
}

// brushParams returns the current brush settings for panel display.
func (s *Sim) brushParams() (radius, force, ink float32) {
	return s.solver.Brush().Params()
}

func (s *Sim) setBrushParams(radius, force, ink float32) {
	s.solver.Brush().SetParams(radius, force, ink)
}

// drawHUD renders the one-line status readout.
func (s *Sim) drawHUD() {
	h := int32(s.cfg.Derived.ScreenH32)
	status := fmt.Sprintf("frame %d | %s | %dx steps | [space] pause  [tab] mode  [p] panel",
		s.solver.Frame(), s.mode, s.stepsPerFrame)
	if s.paused {
		status = "PAUSED | " + status
	}
	rl.DrawText(status, 10, h-24, 16, rl.Color{R: 200, G: 200, B: 200, A: 200})
	rl.DrawFPS(int32(s.cfg.Derived.ScreenW32)-90, 10)
}
