package fluid

import "sync"

// BrushState is the simulation-side view of the pointer for one frame:
// position in grid coordinates, the position delta that gives the force its
// direction, and the injection parameters.
type BrushState struct {
	PosX, PosY     int
	DeltaX, DeltaY float32
	IsDown         bool
	Radius         float32
	ForceScale     float32
	InkAmount      float32
}

// BrushInput is the single piece of state shared between the asynchronous
// input producer and the frame-periodic simulation consumer. The producer
// accumulates pointer movement; the scheduler latches the whole state under
// one lock at the start of the brush stage, so a frame can never observe a
// position from one event and a delta from another.
type BrushInput struct {
	mu    sync.Mutex
	state BrushState
}

// Move updates the pointer position and accumulates the movement delta.
func (b *BrushInput) Move(x, y int, dx, dy float32) {
	b.mu.Lock()
	b.state.PosX = x
	b.state.PosY = y
	b.state.DeltaX += dx
	b.state.DeltaY += dy
	b.mu.Unlock()
}

// SetDown sets whether the pointer is pressed.
func (b *BrushInput) SetDown(down bool) {
	b.mu.Lock()
	b.state.IsDown = down
	b.mu.Unlock()
}

// SetParams sets the brush radius and injection strengths.
func (b *BrushInput) SetParams(radius, forceScale, inkAmount float32) {
	b.mu.Lock()
	b.state.Radius = radius
	b.state.ForceScale = forceScale
	b.state.InkAmount = inkAmount
	b.mu.Unlock()
}

// Params returns the current radius and injection strengths without
// touching the accumulated delta.
func (b *BrushInput) Params() (radius, forceScale, inkAmount float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Radius, b.state.ForceScale, b.state.InkAmount
}

// Latch snapshots the brush state and clears the accumulated delta. Called
// exactly once per frame by the scheduler.
func (b *BrushInput) Latch() BrushState {
	b.mu.Lock()
	s := b.state
	b.state.DeltaX = 0
	b.state.DeltaY = 0
	b.mu.Unlock()
	return s
}
