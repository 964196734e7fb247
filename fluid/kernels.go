package fluid

// Stage kernels. Each kernel reads fixed input fields at the current cell
// and an immutable neighborhood and writes exactly the same-position cell of
// its output field, so a stage may be evaluated for all cells in any order
// or in parallel. No kernel depends on another cell's updated value within
// the same dispatch.
//
// The row variants below process one grid row; the worker pool dispatches
// them over row bands.

// brushWeight is the falloff of the brush: 1 at the center, 0 at and beyond
// the radius.
func brushWeight(distSq, radius float32) float32 {
	if radius <= 0 {
		return 0
	}
	w := 1 - distSq/(radius*radius)
	if w < 0 {
		return 0
	}
	return w
}

// brushRow splats the brush into the transient force and injected-ink
// fields for one row.
func brushRow(force *VectorGrid, inkInj *ScalarGrid, b BrushState, y int) {
	w := force.W
	dy := float32(y - b.PosY)
	for x := 0; x < w; x++ {
		dx := float32(x - b.PosX)
		wt := brushWeight(dx*dx+dy*dy, b.Radius)
		i := y*w + x
		force.X[i] = b.ForceScale * wt * b.DeltaX
		force.Y[i] = b.ForceScale * wt * b.DeltaY
		inkInj.Data[i] = b.InkAmount * wt
	}
}

// addForceRow integrates the transient force field into the velocity field
// for one row: v' = v + dt·f. The kernel touches only its own cell, so it
// runs in place on the current buffer and leaves the pair parity unchanged.
func addForceRow(vel *VectorGrid, force *VectorGrid, dt float32, y int) {
	w := vel.W
	for i := y * w; i < (y+1)*w; i++ {
		vel.X[i] += dt * force.X[i]
		vel.Y[i] += dt * force.Y[i]
	}
}

// addInkRow adds the injected ink to the dye field for one row.
func addInkRow(src, dst, inj *ScalarGrid, y int) {
	w := src.W
	for i := y * w; i < (y+1)*w; i++ {
		dst.Data[i] = src.Data[i] + inj.Data[i]
	}
}

// advectVelocityRow transports the velocity field along itself for one row
// using a semi-Lagrangian backtrace: sample where the fluid came from.
// With the boundary enabled, wall-margin cells are pinned to zero (no-slip).
func advectVelocityRow(src, dst *VectorGrid, dt float32, noSlip bool, y int) {
	w, h := src.W, src.H
	for x := 0; x < w; x++ {
		i := y*w + x
		if noSlip && isBorderCell(x, y, w, h) {
			dst.X[i] = 0
			dst.Y[i] = 0
			continue
		}
		px := clampCoord(float32(x)-dt*src.X[i], w)
		py := clampCoord(float32(y)-dt*src.Y[i], h)
		dst.X[i], dst.Y[i] = BilinearSampleVec(src, px, py)
	}
}

// diffuseRow runs one Jacobi relaxation step of the viscous diffusion
// equation for one row. The caller iterates, swapping buffers each step.
func diffuseRow(src, dst *VectorGrid, alpha, beta float32, y int) {
	w, h := src.W, src.H
	for x := 0; x < w; x++ {
		i := y*w + x
		l, r, u, d := neighbors4(x, y, w, h)
		dst.X[i] = beta * (src.X[l] + src.X[r] + src.X[u] + src.X[d] + alpha*src.X[i])
		dst.Y[i] = beta * (src.Y[l] + src.Y[r] + src.Y[u] + src.Y[d] + alpha*src.Y[i])
	}
}

// divergenceRow computes the central-difference divergence of the velocity
// field for one row.
func divergenceRow(vel *VectorGrid, div *ScalarGrid, y int) {
	w, h := vel.W, vel.H
	for x := 0; x < w; x++ {
		l, r, u, d := neighbors4(x, y, w, h)
		div.Data[y*w+x] = 0.5 * ((vel.X[r] - vel.X[l]) + (vel.Y[d] - vel.Y[u]))
	}
}

// pressureRow runs one Jacobi relaxation step of the pressure Poisson
// equation for one row. The caller iterates, swapping buffers each step.
func pressureRow(src, dst, div *ScalarGrid, y int) {
	w, h := src.W, src.H
	for x := 0; x < w; x++ {
		i := y*w + x
		l, r, u, d := neighbors4(x, y, w, h)
		dst.Data[i] = 0.25 * (src.Data[l] + src.Data[r] + src.Data[u] + src.Data[d] - div.Data[i])
	}
}

// projectRow subtracts the pressure gradient from the velocity field for
// one row, removing its divergent component.
func projectRow(vel *VectorGrid, p *ScalarGrid, dst *VectorGrid, y int) {
	w, h := vel.W, vel.H
	for x := 0; x < w; x++ {
		i := y*w + x
		l, r, u, d := neighbors4(x, y, w, h)
		gx := 0.5 * (p.Data[r] - p.Data[l])
		gy := 0.5 * (p.Data[d] - p.Data[u])
		dst.X[i] = vel.X[i] - gx
		dst.Y[i] = vel.Y[i] - gy
	}
}

// advectScalarRow transports a scalar field along the velocity field for
// one row, with the same backtrace as velocity advection.
func advectScalarRow(vel *VectorGrid, src, dst *ScalarGrid, dt float32, y int) {
	w, h := src.W, src.H
	for x := 0; x < w; x++ {
		i := y*w + x
		px := clampCoord(float32(x)-dt*vel.X[i], w)
		py := clampCoord(float32(y)-dt*vel.Y[i], h)
		dst.Data[i] = BilinearSample(src, px, py)
	}
}
