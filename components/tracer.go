// Package components declares the component types attached to flow tracer
// entities.
package components

// Position is a tracer location in grid coordinates.
type Position struct {
	X float32
	Y float32
}

// Velocity is the fluid velocity sampled at the tracer last frame, kept so
// the renderer can orient the streak without resampling.
type Velocity struct {
	X float32
	Y float32
}

// Tracer holds lifetime state. A tracer is respawned once Age exceeds
// MaxAge or it drifts into near-stagnant flow.
type Tracer struct {
	Age    float32
	MaxAge float32
}
