//go:build tinygo && !baremetal

package hal

import (
	"time"
)

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	fb     *tinyGoHostFramebuffer
	t      *tinyGoHostTime
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU pin mapping.
func New() HAL {
	return &tinyGoHostHAL{
		logger: &tinyGoHostLogger{},
		fb:     newTinyGoHostFramebuffer(144, 168),
		t:      newTinyGoHostTime(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) Display() Display { return tinyGoHostDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Time() Time       { return h.t }

type tinyGoHostDisplay struct {
	fb Framebuffer
}

func (d tinyGoHostDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoHostTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoHostTime() *tinyGoHostTime {
	t := &tinyGoHostTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoHostTime) Ticks() <-chan uint64 { return t.ch }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
