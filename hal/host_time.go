//go:build !tinygo

package hal

import "time"

const tickDur = time.Millisecond

// hostTime turns host frame steps into a millisecond tick stream.
//
// The host runners call step once per frame; elapsed wall time since the
// previous frame is converted into whole ticks so the stream stays at 1kHz
// on average even at 60 frames per second.
type hostTime struct {
	ch  chan uint64
	seq uint64

	now  func() time.Time
	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step(n uint64) {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(n)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % tickDur
	t.stepN(ticks)
}

// stepN publishes n ticks. When the consumer lags, only the newest sequence
// number matters, so a full channel keeps its queued values and the counter
// still advances.
func (t *hostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
