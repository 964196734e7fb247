package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Presenter owns the GPU texture the composed frame is uploaded to and
// stretches it over the window each frame.
type Presenter struct {
	tex     rl.Texture2D
	w, h    int
	screenW float32
	screenH float32
}

// NewPresenter creates the streaming texture. Must be called after
// rl.InitWindow.
func NewPresenter(gridW, gridH int, screenW, screenH float32) *Presenter {
	img := rl.GenImageColor(gridW, gridH, color.RGBA{A: 255})
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)

	return &Presenter{
		tex:     tex,
		w:       gridW,
		h:       gridH,
		screenW: screenW,
		screenH: screenH,
	}
}

// Present uploads the pixel buffer and draws it scaled to the window.
// The buffer must be w*h pixels in row-major order.
func (p *Presenter) Present(pixels []color.RGBA) {
	rl.UpdateTexture(p.tex, pixels)
	src := rl.NewRectangle(0, 0, float32(p.w), float32(p.h))
	dst := rl.NewRectangle(0, 0, p.screenW, p.screenH)
	rl.DrawTexturePro(p.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// Unload releases the texture.
func (p *Presenter) Unload() {
	rl.UnloadTexture(p.tex)
}
