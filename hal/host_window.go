//go:build !tinygo && cgo

package hal

import (
	"image"

	"pastfuture/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowScale = 3

// RunWindow starts a desktop window that displays the framebuffer.
// It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error) error {
	h := New().(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("pastfuture (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*windowScale, h.fb.height*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.width || g.fbImg.Bounds().Dy() != fb.height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	g.img = fb.snapshotRGBA(g.img)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
