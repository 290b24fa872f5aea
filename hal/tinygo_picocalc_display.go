//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

// ili9488 drives the PicoCalc panel over SPI1 in 16bpp mode.
type ili9488 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	txBuf []byte
}

func initILI9488() (*ili9488, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	})

	lcd := &ili9488{
		spi:   *machine.SPI1,
		cs:    machine.GP13,
		dc:    machine.GP14,
		rst:   machine.GP15,
		txBuf: make([]byte, 4096),
	}

	for _, p := range []machine.Pin{lcd.cs, lcd.dc, lcd.rst} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}

	lcd.rst.Low()
	time.Sleep(64 * time.Millisecond)
	lcd.rst.High()
	time.Sleep(140 * time.Millisecond)

	lcd.powerOn()
	return lcd, nil
}

func (d *ili9488) powerOn() {
	d.cmd(0xC0, 0x17, 0x15)             // PWCTRL1
	d.cmd(0xC1, 0x41)                   // PWCTRL2
	d.cmd(0xC5, 0x00, 0x12, 0x80, 0x40) // VMCTRL
	d.cmd(0x3A, 0x55)                   // COLMOD 16bpp
	d.cmd(0xB1, 0xA0, 0x11)             // FRMCTRL1
	d.cmd(0xB6, 0x02, 0x22, 0x27)       // DISCTRL (320 lines)
	d.cmd(0x21)                         // INVON
	d.cmd(0x36, 0x40|0x04|0x08)         // MADCTL: MX|MH|BGR for PicoCalc wiring

	d.cmd(0x11) // SLPOUT
	time.Sleep(120 * time.Millisecond)
	d.cmd(0x29) // DISPON
}

func (d *ili9488) cmd(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

func (d *ili9488) setWindow(x0, y0, x1, y1 uint16) {
	d.cmd(0x2A, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1))
	d.cmd(0x2B, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1))
	d.cmd(0x2C)
}

// blitRGB565LittleEndian pushes a full frame. The framebuffer stores RGB565
// little-endian; the panel wants big-endian, so bytes are swapped per chunk.
func (d *ili9488) blitRGB565LittleEndian(buf []byte, w, h int) error {
	total := w * h * 2
	if w <= 0 || h <= 0 || len(buf) < total {
		return errors.New("invalid framebuffer")
	}

	chunk := d.txBuf[:len(d.txBuf)&^1]
	if len(chunk) < 2 {
		return errors.New("tx buffer too small")
	}

	d.setWindow(0, 0, uint16(w-1), uint16(h-1))
	d.cs.Low()
	d.dc.High()
	for off := 0; off < total; {
		n := len(chunk)
		if remain := total - off; n > remain {
			n = remain &^ 1
		}
		src := buf[off : off+n]
		for i := 0; i < n; i += 2 {
			chunk[i] = src[i+1]
			chunk[i+1] = src[i]
		}
		d.spi.Tx(chunk[:n], nil)
		off += n
	}
	d.cs.High()
	return nil
}
