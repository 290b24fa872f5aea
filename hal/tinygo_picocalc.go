//go:build tinygo && baremetal && picocalc

package hal

import (
	"machine"
)

type picoCalcHAL struct {
	logger *uartLogger
	fb     Framebuffer
	t      *tinyGoTime
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1. The 320x320 panel hosts the
// face centred.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	disp, err := newPicoCalcDisplay()
	if err != nil {
		disp = newPicoCalcDisplayStub()
	}

	return &picoCalcHAL{
		logger: &uartLogger{uart: uart},
		fb:     disp,
		t:      newTinyGoTime(),
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *picoCalcHAL) Time() Time       { return h.t }

type picoCalcFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte

	lcd *ili9488
}

func (f *picoCalcFramebuffer) Width() int          { return f.w }
func (f *picoCalcFramebuffer) Height() int         { return f.h }
func (f *picoCalcFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *picoCalcFramebuffer) StrideBytes() int    { return f.stride }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf }

func (f *picoCalcFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *picoCalcFramebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	return f.lcd.blitRGB565LittleEndian(f.buf, f.w, f.h)
}

const picoCalcPanelSize = 320

func newPicoCalcDisplay() (*picoCalcFramebuffer, error) {
	lcd, err := initILI9488()
	if err != nil {
		return nil, err
	}
	fb := newPicoCalcDisplayStub()
	fb.lcd = lcd
	return fb, nil
}

func newPicoCalcDisplayStub() *picoCalcFramebuffer {
	const w = picoCalcPanelSize
	const h = picoCalcPanelSize
	return &picoCalcFramebuffer{
		w:      w,
		h:      h,
		stride: w * 2,
		buf:    make([]byte, w*h*2),
	}
}
