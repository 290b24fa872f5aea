package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"pastfuture/hal"
	"pastfuture/sparkos/kernel"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var panicFont = &proggy.TinySZ8pt7b

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			select {}
		}
		fb := disp.Framebuffer()
		if fb == nil {
			select {}
		}
		drawPanic(fb, lines)
		select {}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"pastfuture panic:",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// drawPanic writes lines top to bottom, wrapping at the panel width, until
// the panel is full.
func drawPanic(fb hal.Framebuffer, lines []string) {
	fb.ClearRGB(255, 255, 255)

	_, outboxWidth := tinyfont.LineWidth(panicFont, "0")
	fontWidth := int(outboxWidth)
	fontHeight := int(panicFont.GetYAdvance())
	if fontWidth <= 0 || fontHeight <= 0 {
		_ = fb.Present()
		return
	}
	cols := fb.Width() / fontWidth
	if cols <= 0 {
		cols = 1
	}

	d := panicDisplay{fb: fb}
	fg := color.RGBA{A: 255}
	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > fb.Height() {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, panicFont, 0, int16(y+fontHeight-2), chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if buf == nil || ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d panicDisplay) Display() error { return nil }

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
