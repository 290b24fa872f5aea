//go:build tinygo && baremetal && !picocalc

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *uartLogger
	fb     Framebuffer
	t      *tinyGoTime
}

// New returns a Pico 2 (RP2350) HAL implementation without a panel.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1. The face still runs and
// logs its transitions; frames go to a stub framebuffer.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		fb:     &stubFramebuffer{w: 144, h: 168, format: PixelFormatRGB565},
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Time() Time       { return h.t }
