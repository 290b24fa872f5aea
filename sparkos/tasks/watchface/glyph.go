package watchface

import (
	"image"
	"image/color"

	"pastfuture/hal"
	"pastfuture/sparkos/face"

	"golang.org/x/image/draw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

// Bitmap is an RGB565 picture blitted as-is into one face region.
type Bitmap struct {
	w, h int
	pix  []uint16
}

// NewBitmap returns a white w x h bitmap.
func NewBitmap(w, h int) *Bitmap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Bitmap{w: w, h: h, pix: make([]uint16, w*h)}
	for i := range b.pix {
		b.pix[i] = 0xFFFF
	}
	return b
}

// maxSourceSide caps the source area read by BitmapFromImage. Unbounded
// images such as image.Uniform are sampled from their top-left corner.
const maxSourceSide = 4096

// BitmapFromImage scales img into a w x h bitmap. Transparent areas come out
// white, matching the face background.
func BitmapFromImage(img image.Image, w, h int) *Bitmap {
	b := NewBitmap(w, h)
	if img == nil || w == 0 || h == 0 {
		return b
	}
	sr := img.Bounds()
	if sr.Empty() {
		return b
	}
	if sr.Dx() > maxSourceSide {
		sr.Max.X = sr.Min.X + maxSourceSide
	}
	if sr.Dy() > maxSourceSide {
		sr.Max.Y = sr.Min.Y + maxSourceSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, sr, draw.Over, nil)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := dst.RGBAAt(x, y)
			b.pix[y*w+x] = hal.RGB565(c.R, c.G, c.B)
		}
	}
	return b
}

// Bounds returns the bitmap rectangle anchored at the origin.
func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

// At returns the RGB565 pixel at (x, y), or white outside the bitmap.
func (b *Bitmap) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return 0xFFFF
	}
	return b.pix[y*b.w+x]
}

// Size, SetPixel and Display make a Bitmap a drivers.Displayer so tinyfont
// can draw into it.
func (b *Bitmap) Size() (x, y int16) { return int16(b.w), int16(b.h) }

func (b *Bitmap) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= b.w || iy >= b.h {
		return
	}
	b.pix[iy*b.w+ix] = hal.RGB565(c.R, c.G, c.B)
}

func (b *Bitmap) Display() error { return nil }

func (b *Bitmap) fill(r image.Rectangle, pixel uint16) {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := b.pix[y*b.w : (y+1)*b.w]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = pixel
		}
	}
}

var (
	labelFont  = &freemono.Bold9pt7b
	labelColor = color.RGBA{A: 0xFF}
)

// DefaultGlyph draws the stock picture for the future or past region: a
// label with an arrow pointing away from the time band.
func DefaultGlyph(r face.Region, w, h int) *Bitmap {
	b := NewBitmap(w, h)
	label := "PAST"
	up := false
	if r == face.RegionFuture {
		label = "FUTURE"
		up = true
	}

	tw, ascent, descent := textMetrics(labelFont, label)
	const arrowH, gap = 8, 4
	blockH := ascent + descent + gap + arrowH
	top := (h - blockH) / 2
	cx := w / 2

	textTop := top
	arrowTop := top + ascent + descent + gap
	if up {
		arrowTop = top
		textTop = top + arrowH + gap
	}
	tinyfont.WriteLine(b, labelFont, int16((w-tw)/2), int16(textTop+ascent), label, labelColor)

	for i := 0; i < arrowH; i++ {
		half := i + 1
		y := arrowTop + i
		if !up {
			y = arrowTop + arrowH - 1 - i
		}
		b.fill(image.Rect(cx-half, y, cx+half, y+1), 0x0000)
	}
	return b
}

// textMetrics returns the advance width of s and how far its glyphs reach
// above and below the baseline.
func textMetrics(f tinyfont.Fonter, s string) (width, ascent, descent int) {
	_, outbox := tinyfont.LineWidth(f, s)
	width = int(outbox)
	for _, r := range s {
		info := f.GetGlyph(r).Info()
		if up := -int(info.YOffset); up > ascent {
			ascent = up
		}
		if down := int(info.Height) + int(info.YOffset); down > descent {
			descent = down
		}
	}
	return width, ascent, descent
}
