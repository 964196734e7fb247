package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/pthm-cable/riptide/fluid"
)

func TestParseMode(t *testing.T) {
	cases := map[string]DisplayMode{
		"ink":      ModeInk,
		"velocity": ModeVelocity,
		"image":    ModeImage,
	}
	for name, want := range cases {
		got, err := ParseMode(name)
		if err != nil {
			t.Errorf("ParseMode(%q) failed: %v", name, err)
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %v, want %v", name, got, want)
		}
		if got.String() != name {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), name)
		}
	}

	if _, err := ParseMode("plasma"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestModeCycle(t *testing.T) {
	m := ModeInk
	seen := map[DisplayMode]bool{}
	for i := 0; i < 3; i++ {
		seen[m] = true
		m = m.Next()
	}
	if m != ModeInk {
		t.Errorf("cycle did not wrap, ended on %v", m)
	}
	if len(seen) != 3 {
		t.Errorf("cycle visited %d modes, want 3", len(seen))
	}
}

func TestNewCompositorRejectsBadDimensions(t *testing.T) {
	if _, err := NewCompositor(0, 8, nil); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := NewCompositor(8, -1, nil); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestComposeInkRampOrdering(t *testing.T) {
	c, err := NewCompositor(4, 1, nil)
	if err != nil {
		t.Fatal(err)
	}

	ink := fluid.NewScalarGrid(4, 1)
	ink.Set(0, 0, 0)
	ink.Set(1, 0, 0.3)
	ink.Set(2, 0, 0.7)
	ink.Set(3, 0, 1)

	px := c.Compose(ModeInk, &ink, nil)

	// Denser ink renders brighter along the ramp.
	for i := 0; i < 3; i++ {
		if lum(px[i]) >= lum(px[i+1]) {
			t.Errorf("ramp not increasing at %d: %v then %v", i, px[i], px[i+1])
		}
	}
	for _, p := range px {
		if p.A != 255 {
			t.Errorf("ink output must be opaque, got alpha %d", p.A)
		}
	}
}

func TestComposeInkClampsDensity(t *testing.T) {
	c, _ := NewCompositor(2, 1, nil)

	ink := fluid.NewScalarGrid(2, 1)
	ink.Set(0, 0, -5)
	ink.Set(1, 0, 50)

	px := c.Compose(ModeInk, &ink, nil)
	if px[0] != inkRamp(0) {
		t.Errorf("negative density should clamp to 0, got %v", px[0])
	}
	if px[1] != inkRamp(1) {
		t.Errorf("oversaturated density should clamp to 1, got %v", px[1])
	}
}

func TestComposeVelocityEncodesDirection(t *testing.T) {
	c, _ := NewCompositor(3, 1, nil)

	vel := fluid.NewVectorGrid(3, 1)
	vel.Set(0, 0, -0.5, 0) // leftward
	vel.Set(1, 0, 0, 0)    // still
	vel.Set(2, 0, 0.5, 0)  // rightward

	px := c.Compose(ModeVelocity, nil, &vel)

	if !(px[0].R < px[1].R && px[1].R < px[2].R) {
		t.Errorf("red channel must track x velocity: %d %d %d", px[0].R, px[1].R, px[2].R)
	}
	if px[1].B != 0 {
		t.Errorf("still cell must have zero magnitude channel, got %d", px[1].B)
	}
	if px[2].B == 0 {
		t.Error("moving cell must have nonzero magnitude channel")
	}
}

func TestComposeImageWithoutBackgroundIsBlack(t *testing.T) {
	c, _ := NewCompositor(2, 2, nil)
	ink := fluid.NewScalarGrid(2, 2)

	px := c.Compose(ModeImage, &ink, nil)
	for i, p := range px {
		if p.R != 0 || p.G != 0 || p.B != 0 || p.A != 255 {
			t.Errorf("pixel %d = %v, want opaque black", i, p)
		}
	}
}

func TestComposeImageUniformInkPassesBackgroundThrough(t *testing.T) {
	// Uniform ink has zero gradient everywhere, so every lookup falls back
	// to plain sampling of the background.
	bg := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fill := color.RGBA{R: 100, G: 150, B: 200, A: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			bg.SetRGBA(x, y, fill)
		}
	}

	c, err := NewCompositor(8, 8, bg)
	if err != nil {
		t.Fatal(err)
	}

	ink := fluid.NewScalarGrid(8, 8)
	for i := range ink.Data {
		ink.Data[i] = 0.5
	}

	px := c.Compose(ModeImage, &ink, nil)
	for i, p := range px {
		if p.R != fill.R || p.G != fill.G || p.B != fill.B {
			t.Errorf("pixel %d = %v, want %v", i, p, fill)
		}
	}
}

func TestComposeImageGradientDisplacesLookup(t *testing.T) {
	// Left half dark, right half light background; a sharp ink edge at the
	// seam must bend lookups, so the seam pixels differ from the plain
	// background somewhere.
	bg := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := uint8(0)
			if x >= 8 {
				v = 255
			}
			bg.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	c, err := NewCompositor(16, 16, bg)
	if err != nil {
		t.Fatal(err)
	}

	ink := fluid.NewScalarGrid(16, 16)
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			ink.Set(x, y, 1)
		}
	}

	plain := fluid.NewScalarGrid(16, 16)
	base := append([]color.RGBA(nil), c.Compose(ModeImage, &plain, nil)...)
	warped := c.Compose(ModeImage, &ink, nil)

	diff := 0
	for i := range base {
		if base[i] != warped[i] {
			diff++
		}
	}
	if diff == 0 {
		t.Error("ink gradient did not displace any background lookups")
	}
}

func lum(c color.RGBA) int {
	return int(c.R) + int(c.G) + int(c.B)
}
