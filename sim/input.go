package sim

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/riptide/render"
)

// handleInput processes keyboard and mouse input.
func (s *Sim) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		s.paused = !s.paused
	}

	// Steps-per-frame control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && s.stepsPerFrame > 1 {
		s.stepsPerFrame--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && s.stepsPerFrame < 10 {
		s.stepsPerFrame++
	}

	// Display mode: direct keys or Tab to cycle
	if rl.IsKeyPressed(rl.KeyI) {
		s.mode = render.ModeInk
	}
	if rl.IsKeyPressed(rl.KeyV) {
		s.mode = render.ModeVelocity
	}
	if rl.IsKeyPressed(rl.KeyB) {
		s.mode = render.ModeImage
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		s.mode = s.mode.Next()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		s.showPanel = !s.showPanel
	}

	s.handleBrush()
}

// handleBrush forwards pointer state to the solver's brush input in grid
// coordinates. The panel captures the mouse while it is open so dragging a
// slider does not stir the fluid.
func (s *Sim) handleBrush() {
	brush := s.solver.Brush()

	down := rl.IsMouseButtonDown(rl.MouseLeftButton)
	if s.showPanel && s.panelContains(rl.GetMousePosition()) {
		down = false
	}
	brush.SetDown(down)

	if !down {
		return
	}

	gw, gh := s.solver.Size()
	scaleX := float32(gw) / s.cfg.Derived.ScreenW32
	scaleY := float32(gh) / s.cfg.Derived.ScreenH32

	pos := rl.GetMousePosition()
	delta := rl.GetMouseDelta()

	gx := int(pos.X * scaleX)
	gy := int(pos.Y * scaleY)
	if gx < 0 {
		gx = 0
	}
	if gx >= gw {
		gx = gw - 1
	}
	if gy < 0 {
		gy = 0
	}
	if gy >= gh {
		gy = gh - 1
	}

	brush.Move(gx, gy, delta.X*scaleX, delta.Y*scaleY)
}
