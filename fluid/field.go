// Package fluid implements a real-time Eulerian fluid solver on a fixed 2D
// grid: semi-Lagrangian advection, Jacobi diffusion and a pressure
// projection that removes the divergent part of the velocity field.
package fluid

// ScalarGrid is a W×H scalar field stored row-major.
type ScalarGrid struct {
	W, H int
	Data []float32
}

// NewScalarGrid allocates a zeroed scalar field.
func NewScalarGrid(w, h int) ScalarGrid {
	return ScalarGrid{W: w, H: h, Data: make([]float32, w*h)}
}

// At returns the value at cell (x, y). No bounds check.
func (g *ScalarGrid) At(x, y int) float32 {
	return g.Data[y*g.W+x]
}

// Set writes the value at cell (x, y). No bounds check.
func (g *ScalarGrid) Set(x, y int, v float32) {
	g.Data[y*g.W+x] = v
}

// Clear zeroes the field.
func (g *ScalarGrid) Clear() {
	clear(g.Data)
}

// VectorGrid is a W×H vector field with per-component storage.
type VectorGrid struct {
	W, H int
	X, Y []float32
}

// NewVectorGrid allocates a zeroed vector field.
func NewVectorGrid(w, h int) VectorGrid {
	return VectorGrid{
		W: w, H: h,
		X: make([]float32, w*h),
		Y: make([]float32, w*h),
	}
}

// At returns the vector at cell (x, y). No bounds check.
func (g *VectorGrid) At(x, y int) (float32, float32) {
	i := y*g.W + x
	return g.X[i], g.Y[i]
}

// Set writes the vector at cell (x, y). No bounds check.
func (g *VectorGrid) Set(x, y int, vx, vy float32) {
	i := y*g.W + x
	g.X[i] = vx
	g.Y[i] = vy
}

// Clear zeroes the field.
func (g *VectorGrid) Clear() {
	clear(g.X)
	clear(g.Y)
}

// ScalarPair is a double-buffered scalar field. One buffer is "current" at
// any stage boundary; the other is the exclusive write target of the stage
// about to run. Swap flips an index bit and never copies data.
//
// The pair does not enforce read/write exclusivity: a stage that reads and
// writes the same buffer produces order-dependent results. Keeping source
// and destination apart is the frame scheduler's job.
type ScalarPair struct {
	front, back    ScalarGrid
	currentIsFront bool
}

// NewScalarPair allocates both buffers of a double-buffered scalar field.
func NewScalarPair(w, h int) ScalarPair {
	return ScalarPair{
		front:          NewScalarGrid(w, h),
		back:           NewScalarGrid(w, h),
		currentIsFront: true,
	}
}

// Current returns the buffer holding the latest completed values.
func (p *ScalarPair) Current() *ScalarGrid {
	if p.currentIsFront {
		return &p.front
	}
	return &p.back
}

// Other returns the buffer the next stage writes into.
func (p *ScalarPair) Other() *ScalarGrid {
	if p.currentIsFront {
		return &p.back
	}
	return &p.front
}

// Swap flips which buffer is current. O(1).
func (p *ScalarPair) Swap() {
	p.currentIsFront = !p.currentIsFront
}

// Reset forces the pair back to its canonical baseline: the front buffer
// becomes current regardless of how many swaps have happened.
func (p *ScalarPair) Reset() {
	p.currentIsFront = true
}

// CurrentIsFront reports the parity of the pair. After an odd number of
// swaps it is the opposite of what it was before; callers running a
// fixed-iteration solve track this explicitly rather than assuming a slot.
func (p *ScalarPair) CurrentIsFront() bool {
	return p.currentIsFront
}

// VectorPair is a double-buffered vector field with the same discipline as
// ScalarPair.
type VectorPair struct {
	front, back    VectorGrid
	currentIsFront bool
}

// NewVectorPair allocates both buffers of a double-buffered vector field.
func NewVectorPair(w, h int) VectorPair {
	return VectorPair{
		front:          NewVectorGrid(w, h),
		back:           NewVectorGrid(w, h),
		currentIsFront: true,
	}
}

// Current returns the buffer holding the latest completed values.
func (p *VectorPair) Current() *VectorGrid {
	if p.currentIsFront {
		return &p.front
	}
	return &p.back
}

// Other returns the buffer the next stage writes into.
func (p *VectorPair) Other() *VectorGrid {
	if p.currentIsFront {
		return &p.back
	}
	return &p.front
}

// Swap flips which buffer is current. O(1).
func (p *VectorPair) Swap() {
	p.currentIsFront = !p.currentIsFront
}

// Reset forces the front buffer to be current.
func (p *VectorPair) Reset() {
	p.currentIsFront = true
}

// CurrentIsFront reports the parity of the pair.
func (p *VectorPair) CurrentIsFront() bool {
	return p.currentIsFront
}
