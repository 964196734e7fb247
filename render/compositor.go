// Package render maps simulation fields to a displayable RGBA color field.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/pthm-cable/riptide/fluid"
)

// DisplayMode selects which field the compositor visualizes.
type DisplayMode int

const (
	ModeInk DisplayMode = iota
	ModeVelocity
	ModeImage
)

// String returns the config-file name of the mode.
func (m DisplayMode) String() string {
	switch m {
	case ModeInk:
		return "ink"
	case ModeVelocity:
		return "velocity"
	case ModeImage:
		return "image"
	}
	return "unknown"
}

// ParseMode converts a config-file name into a DisplayMode.
func ParseMode(s string) (DisplayMode, error) {
	switch s {
	case "ink":
		return ModeInk, nil
	case "velocity":
		return ModeVelocity, nil
	case "image":
		return ModeImage, nil
	}
	return ModeInk, fmt.Errorf("render: unknown display mode %q", s)
}

// Next cycles to the following mode, wrapping after image.
func (m DisplayMode) Next() DisplayMode {
	return (m + 1) % 3
}

// refractionStrength scales how far the ink gradient displaces the
// background lookup in image mode, in UV units.
const refractionStrength = 0.08

// gradientEpsilon is the central-difference step and the near-zero cutoff
// below which image mode falls back to plain background sampling.
const gradientEpsilon = 1e-4

// Compositor projects the current field state into an RGBA buffer sized to
// the simulation grid. It never feeds back into the simulation.
type Compositor struct {
	w, h int
	out  []color.RGBA

	// Background for image mode, stored as straight RGBA.
	bg    []color.RGBA
	bgW   int
	bgH   int
	hasBG bool
}

// NewCompositor allocates a compositor for a w×h grid. The background image
// is optional; without one, image mode renders black.
func NewCompositor(w, h int, background *image.RGBA) (*Compositor, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: output dimensions must be positive, got %dx%d", w, h)
	}

	c := &Compositor{
		w: w, h: h,
		out: make([]color.RGBA, w*h),
	}

	if background != nil {
		b := background.Bounds()
		c.bgW = b.Dx()
		c.bgH = b.Dy()
		c.bg = make([]color.RGBA, c.bgW*c.bgH)
		for y := 0; y < c.bgH; y++ {
			for x := 0; x < c.bgW; x++ {
				c.bg[y*c.bgW+x] = background.RGBAAt(b.Min.X+x, b.Min.Y+y)
			}
		}
		c.hasBG = true
	}

	return c, nil
}

// Size returns the output dimensions.
func (c *Compositor) Size() (int, int) { return c.w, c.h }

// Pixels returns the last composed frame.
func (c *Compositor) Pixels() []color.RGBA { return c.out }

// Compose renders the given fields under the selected mode and returns the
// RGBA buffer. The returned slice is reused across calls.
func (c *Compositor) Compose(mode DisplayMode, ink *fluid.ScalarGrid, vel *fluid.VectorGrid) []color.RGBA {
	switch mode {
	case ModeInk:
		c.composeInk(ink)
	case ModeVelocity:
		c.composeVelocity(vel)
	case ModeImage:
		c.composeImage(ink)
	}
	return c.out
}

// inkRamp maps dye density to a fixed color ramp: deep blue through cyan to
// white as density saturates.
func inkRamp(d float32) color.RGBA {
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	if d < 0.5 {
		t := d * 2
		return color.RGBA{
			R: uint8(8 + 20*t),
			G: uint8(12 + 150*t),
			B: uint8(40 + 180*t),
			A: 255,
		}
	}
	t := (d - 0.5) * 2
	return color.RGBA{
		R: uint8(28 + 227*t),
		G: uint8(162 + 93*t),
		B: uint8(220 + 35*t),
		A: 255,
	}
}

func (c *Compositor) composeInk(ink *fluid.ScalarGrid) {
	for i, d := range ink.Data {
		c.out[i] = inkRamp(d)
	}
}

func (c *Compositor) composeVelocity(vel *fluid.VectorGrid) {
	for i := range vel.X {
		vx, vy := vel.X[i], vel.Y[i]
		mag := float32(math.Sqrt(float64(vx*vx + vy*vy)))
		c.out[i] = color.RGBA{
			R: channel(0.5 + vx),
			G: channel(0.5 + vy),
			B: channel(mag * 4),
			A: 255,
		}
	}
}

func (c *Compositor) composeImage(ink *fluid.ScalarGrid) {
	if !c.hasBG {
		for i := range c.out {
			c.out[i] = color.RGBA{A: 255}
		}
		return
	}

	w, h := c.w, c.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Ink-density gradient by central difference; at the edge the
			// clamped neighbor duplicates the cell and the difference is 0.
			gx := (sampleClamped(ink, x+1, y) - sampleClamped(ink, x-1, y)) * 0.5
			gy := (sampleClamped(ink, x, y+1) - sampleClamped(ink, x, y-1)) * 0.5

			u := (float32(x) + 0.5) / float32(w)
			v := (float32(y) + 0.5) / float32(h)
			if gx > gradientEpsilon || gx < -gradientEpsilon ||
				gy > gradientEpsilon || gy < -gradientEpsilon {
				u -= gx * refractionStrength
				v -= gy * refractionStrength
			}

			c.out[y*w+x] = c.sampleBackground(u, v)
		}
	}
}

func sampleClamped(g *fluid.ScalarGrid, x, y int) float32 {
	if x < 0 {
		x = 0
	}
	if x >= g.W {
		x = g.W - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= g.H {
		y = g.H - 1
	}
	return g.At(x, y)
}

// sampleBackground bilinearly samples the background at UV coordinates,
// clamped to the image.
func (c *Compositor) sampleBackground(u, v float32) color.RGBA {
	fx := u*float32(c.bgW) - 0.5
	fy := v*float32(c.bgH) - 0.5

	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	x0 = clampInt(x0, c.bgW)
	y0 = clampInt(y0, c.bgH)
	x1 := clampInt(x0+1, c.bgW)
	y1 := clampInt(y0+1, c.bgH)

	p00 := c.bg[y0*c.bgW+x0]
	p10 := c.bg[y0*c.bgW+x1]
	p01 := c.bg[y1*c.bgW+x0]
	p11 := c.bg[y1*c.bgW+x1]

	return color.RGBA{
		R: lerp2(p00.R, p10.R, p01.R, p11.R, tx, ty),
		G: lerp2(p00.G, p10.G, p01.G, p11.G, tx, ty),
		B: lerp2(p00.B, p10.B, p01.B, p11.B, tx, ty),
		A: 255,
	}
}

func clampInt(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func lerp2(a, b, c, d uint8, tx, ty float32) uint8 {
	top := float32(a) + (float32(b)-float32(a))*tx
	bot := float32(c) + (float32(d)-float32(c))*tx
	return uint8(top + (bot-top)*ty)
}

func channel(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return uint8(v * 255)
}
