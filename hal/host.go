//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Host panel geometry. Matches the 144x168 watch display the face is laid out for.
const (
	HostWidth  = 144
	HostHeight = 168
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	t      *hostTime
}

// New returns a host HAL implementation.
func New() HAL {
	return newHost(os.Stdout)
}

func newHost(w io.Writer) *hostHAL {
	return &hostHAL{
		logger: &hostLogger{w: w},
		fb:     newHostFramebuffer(HostWidth, HostHeight),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
