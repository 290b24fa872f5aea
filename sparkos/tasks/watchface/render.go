package watchface

import (
	"image"
	"image/color"

	"pastfuture/hal"
	"pastfuture/sparkos/face"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

var (
	_ drivers.Displayer = (*fbDisplayer)(nil)
	_ drivers.Displayer = (*Bitmap)(nil)
)

var (
	timeFont  = &freemono.Bold18pt7b
	timeColor = color.RGBA{A: 0xFF}
)

const (
	pixelWhite = 0xFFFF
	pixelBlack = 0x0000
)

// Images are the pictures shown in the future and past regions.
type Images struct {
	Future *Bitmap
	Past   *Bitmap
}

// Renderer paints the face into an RGB565 framebuffer.
type Renderer struct {
	fb     hal.Framebuffer
	layout face.Layout
	images Images

	// origin is where face coordinate (0,0) lands on the framebuffer.
	origin image.Point
	// clip is the visible face area in framebuffer coordinates.
	clip image.Rectangle

	ascent  int
	descent int

	frames uint64
}

// NewRenderer returns nil if fb is not an RGB565 framebuffer.
func NewRenderer(fb hal.Framebuffer, layout face.Layout, images Images) *Renderer {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	if images.Future == nil {
		images.Future = DefaultGlyph(face.RegionFuture, layout.Future.Dx(), layout.Future.Dy())
	}
	if images.Past == nil {
		images.Past = DefaultGlyph(face.RegionPast, layout.Past.Dx(), layout.Past.Dy())
	}

	origin := image.Pt(
		(fb.Width()-layout.Screen.Dx())/2-layout.Screen.Min.X,
		(fb.Height()-layout.Screen.Dy())/2-layout.Screen.Min.Y,
	)
	r := &Renderer{
		fb:     fb,
		layout: layout,
		images: images,
		origin: origin,
		clip:   layout.Screen.Add(origin).Intersect(image.Rect(0, 0, fb.Width(), fb.Height())),
	}
	_, r.ascent, r.descent = textMetrics(timeFont, "0123456789:")
	return r
}

// Origin returns the framebuffer position of the face's top-left corner.
func (r *Renderer) Origin() image.Point { return r.origin.Add(r.layout.Screen.Min) }

// Frames is the number of frames presented so far.
func (r *Renderer) Frames() uint64 { return r.frames }

// Render draws the layer and presents the framebuffer.
func (r *Renderer) Render(l *Layer) error {
	buf := r.fb.Buffer()
	if buf == nil {
		return hal.ErrNotImplemented
	}

	r.fb.ClearRGB(0, 0, 0)
	r.fill(buf, r.layout.Screen, pixelWhite)
	r.blit(buf, r.layout.Future, r.images.Future)
	r.blit(buf, r.layout.Past, r.images.Past)

	if text := l.Text(); text != "" {
		frame := l.Frame()
		w, _, _ := textMetrics(timeFont, text)
		x := frame.Min.X + (frame.Dx()-w)/2
		y := frame.Min.Y + (frame.Dy()-(r.ascent+r.descent))/2 + r.ascent
		d := &fbDisplayer{fb: r.fb, origin: r.origin, clip: r.clip}
		tinyfont.WriteLine(d, timeFont, int16(x), int16(y), text, timeColor)
	}

	r.invert(buf, r.layout.Band)

	if err := r.fb.Present(); err != nil {
		return err
	}
	r.frames++
	return nil
}

func (r *Renderer) fill(buf []byte, rect image.Rectangle, pixel uint16) {
	rect = rect.Add(r.origin).Intersect(r.clip)
	stride := r.fb.StrideBytes()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := y * stride
		for x := rect.Min.X; x < rect.Max.X; x++ {
			putPixel(buf, row+x*2, pixel)
		}
	}
}

func (r *Renderer) blit(buf []byte, rect image.Rectangle, b *Bitmap) {
	if b == nil {
		return
	}
	dst := rect.Add(r.origin)
	vis := dst.Intersect(r.clip)
	stride := r.fb.StrideBytes()
	for y := vis.Min.Y; y < vis.Max.Y; y++ {
		row := y * stride
		for x := vis.Min.X; x < vis.Max.X; x++ {
			putPixel(buf, row+x*2, b.At(x-dst.Min.X, y-dst.Min.Y))
		}
	}
}

// invert flips every pixel of rect, the way the band behind the time turns
// black text on white into white on black.
func (r *Renderer) invert(buf []byte, rect image.Rectangle) {
	rect = rect.Add(r.origin).Intersect(r.clip)
	stride := r.fb.StrideBytes()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := y * stride
		for x := rect.Min.X; x < rect.Max.X; x++ {
			off := row + x*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = ^buf[off]
			buf[off+1] = ^buf[off+1]
		}
	}
}

func putPixel(buf []byte, off int, pixel uint16) {
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// fbDisplayer lets tinyfont draw in face coordinates, clipped to the
// visible area.
type fbDisplayer struct {
	fb     hal.Framebuffer
	origin image.Point
	clip   image.Rectangle
}

func (d *fbDisplayer) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	p := image.Pt(int(x), int(y)).Add(d.origin)
	if !p.In(d.clip) {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}
	putPixel(buf, p.Y*d.fb.StrideBytes()+p.X*2, hal.RGB565(c.R, c.G, c.B))
}

func (d *fbDisplayer) Display() error { return nil }
