//go:build !tinygo

package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu       sync.Mutex
	width    int
	height   int
	stride   int
	buf      []byte
	front    []byte
	presents uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
		front:  make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

// Present publishes the back buffer to the window/snapshot side.
func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.buf)
	f.presents++
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// snapshotRGBA converts the last presented frame into dst, allocating it when
// the size does not match.
func (f *hostFramebuffer) snapshotRGBA(dst *image.RGBA) *image.RGBA {
	if dst == nil || dst.Bounds().Dx() != f.width || dst.Bounds().Dy() != f.height {
		dst = image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	src := f.front
	pix := dst.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(pix); i += 2 {
		r, g, b := RGB888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		pix[j+0] = r
		pix[j+1] = g
		pix[j+2] = b
		pix[j+3] = 0xFF
	}
	return dst
}

func (f *hostFramebuffer) presentCount() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}
