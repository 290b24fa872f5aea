package watchface

import (
	"image"
	"image/color"
	"sync/atomic"
	"testing"

	"pastfuture/hal"
	"pastfuture/sparkos/face"
)

type memFramebuffer struct {
	w, h     int
	buf      []byte
	presents atomic.Int32
}

func newMemFramebuffer(w, h int) *memFramebuffer {
	return &memFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFramebuffer) Width() int                   { return f.w }
func (f *memFramebuffer) Height() int                  { return f.h }
func (f *memFramebuffer) Format() hal.PixelFormat      { return hal.PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int             { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte               { return f.buf }
func (f *memFramebuffer) Present() error               { f.presents.Add(1); return nil }
func (f *memFramebuffer) presentCount() int            { return int(f.presents.Load()) }
func (f *memFramebuffer) Framebuffer() hal.Framebuffer { return f }

func (f *memFramebuffer) ClearRGB(r, g, b uint8) {
	p := hal.RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *memFramebuffer) at(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

func (f *memFramebuffer) count(r image.Rectangle, pixel uint16) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if f.at(x, y) == pixel {
				n++
			}
		}
	}
	return n
}

func TestNewRendererNeedsFramebuffer(t *testing.T) {
	if r := NewRenderer(nil, face.DefaultLayout(), Images{}); r != nil {
		t.Fatalf("NewRenderer(nil) got %v, want nil", r)
	}
}

func TestRenderRestingFace(t *testing.T) {
	layout := face.DefaultLayout()
	fb := newMemFramebuffer(144, 168)
	r := NewRenderer(fb, layout, Images{})

	l := NewLayer(layout)
	l.SetText(face.RegionText, "14:37")
	if err := r.Render(l); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if fb.presentCount() != 1 || r.Frames() != 1 {
		t.Fatalf("presents got %d frames %d, want 1", fb.presentCount(), r.Frames())
	}

	if got := fb.at(0, 0); got != pixelWhite {
		t.Fatalf("top-left got %#04x, want white", got)
	}
	if got := fb.at(0, 165); got != pixelWhite {
		t.Fatalf("bottom margin got %#04x, want white", got)
	}
	if got := fb.at(0, layout.Band.Min.Y); got != pixelBlack {
		t.Fatalf("band edge got %#04x, want black", got)
	}
	if n := fb.count(layout.Text, pixelWhite); n == 0 {
		t.Fatalf("no inverted text pixels in the band")
	}
	if n := fb.count(layout.Future, pixelBlack); n == 0 {
		t.Fatalf("future glyph is blank")
	}
	if n := fb.count(layout.Past, pixelBlack); n == 0 {
		t.Fatalf("past glyph is blank")
	}
}

func TestRenderCentresFaceOnLargerPanel(t *testing.T) {
	layout := face.DefaultLayout()
	fb := newMemFramebuffer(200, 200)
	r := NewRenderer(fb, layout, Images{})
	if got, want := r.Origin(), image.Pt(28, 16); got != want {
		t.Fatalf("origin got %v, want %v", got, want)
	}

	if err := r.Render(NewLayer(layout)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := fb.at(0, 0); got != pixelBlack {
		t.Fatalf("outside face got %#04x, want black", got)
	}
	if got := fb.at(28, 16); got != pixelWhite {
		t.Fatalf("face corner got %#04x, want white", got)
	}
}

func TestRenderClipsTextOutsideScreen(t *testing.T) {
	layout := face.DefaultLayout()
	fb := newMemFramebuffer(144, 300)
	r := NewRenderer(fb, layout, Images{})
	origin := r.Origin()

	l := NewLayer(layout)
	l.SetText(face.RegionText, "88:88")
	l.setFrame(layout.Below())
	if err := r.Render(l); err != nil {
		t.Fatalf("Render: %v", err)
	}

	band := layout.Band.Add(origin)
	if n := fb.count(band, pixelWhite); n != 0 {
		t.Fatalf("band has %d white pixels with the text off-screen", n)
	}
	below := image.Rect(0, origin.Y+layout.Screen.Max.Y, 144, 300)
	if n := fb.count(below, pixelBlack); n != below.Dx()*below.Dy() {
		t.Fatalf("text drawn outside the face: %d of %d pixels black", n, below.Dx()*below.Dy())
	}
}

func TestRenderUsesConfiguredImages(t *testing.T) {
	layout := face.DefaultLayout()
	red := image.NewRGBA(image.Rect(0, 0, 36, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 36; x++ {
			red.SetRGBA(x, y, color.RGBA{R: 0xFF, A: 0xFF})
		}
	}
	images := Images{
		Future: BitmapFromImage(red, layout.Future.Dx(), layout.Future.Dy()),
	}
	fb := newMemFramebuffer(144, 168)
	r := NewRenderer(fb, layout, images)
	if err := r.Render(NewLayer(layout)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := hal.RGB565(0xFF, 0, 0)
	if n := fb.count(layout.Future, want); n != layout.Future.Dx()*layout.Future.Dy() {
		t.Fatalf("future region has %d red pixels, want all", n)
	}
}
