// Package watchface runs the face: it feeds clock ticks into a
// face.Controller, animates the time text and paints the framebuffer.
package watchface

import (
	"fmt"

	"pastfuture/hal"
	"pastfuture/sparkos/client/logger"
	"pastfuture/sparkos/face"
	"pastfuture/sparkos/kernel"
	"pastfuture/sparkos/proto"
)

const (
	subscribeRequestID = 1
	subscribeRetry     = 500
	shutdownLogRetry   = 100
)

type Task struct {
	disp     hal.Display
	clockCap kernel.Capability
	logCap   kernel.Capability
	ep       kernel.Capability

	layout face.Layout
	gran   face.Granularity
	images Images

	ctrl     *face.Controller
	layer    *Layer
	renderer *Renderer

	primed    bool
	lastSeq   uint32
	lastState face.TransitionState
	renderErr bool
}

// New returns the face task. ep must carry both rights: the task receives on
// it and hands a send-only copy to the clock service for replies.
func New(disp hal.Display, clockCap, logCap, ep kernel.Capability, layout face.Layout, g face.Granularity, images Images) *Task {
	return &Task{
		disp:     disp,
		clockCap: clockCap,
		logCap:   logCap,
		ep:       ep,
		layout:   layout,
		gran:     g,
		images:   images,
	}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}

	t.layer = NewLayer(t.layout)
	t.ctrl = face.NewController(t.layer, t.layout, t.gran)
	if t.disp != nil {
		t.renderer = NewRenderer(t.disp.Framebuffer(), t.layout, t.images)
	}
	if t.renderer == nil {
		logger.Log(ctx, t.logCap, "watchface: no RGB565 framebuffer, rendering off")
	}

	res := ctx.SendToCapRetry(
		t.clockCap,
		uint16(proto.MsgClockSubscribe),
		proto.ClockSubscribePayload(subscribeRequestID),
		t.ep.Restrict(kernel.RightSend),
		subscribeRetry,
	)
	if res != kernel.SendOK {
		logger.Logf(ctx, t.logCap, "watchface: clock subscribe: %s", res)
		return
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			select {
			case <-done:
				return
			default:
			}
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if !t.handle(ctx, msg) {
				return
			}

		case now := <-tickCh:
			t.step(ctx, now)
		}
	}
}

// handle processes one message. It reports false when the task should stop.
func (t *Task) handle(ctx *kernel.Context, msg kernel.Message) bool {
	switch proto.Kind(msg.Kind) {
	case proto.MsgClockTick:
		tick, ok := proto.DecodeClockTickPayload(msg.Payload())
		if !ok {
			logger.Log(ctx, t.logCap, "watchface: bad clock tick")
			return true
		}
		t.onClock(ctx, tick)

	case proto.MsgError:
		code, ref, _, ok := proto.DecodeErrorPayload(msg.Payload())
		if !ok {
			return true
		}
		logger.Logf(ctx, t.logCap, "watchface: %s error: %s", ref, code)
		if ref == proto.MsgClockSubscribe {
			return false
		}

	case proto.MsgAppShutdown:
		scheduled, finished, superseded := t.layer.Stats()
		line := fmt.Sprintf("watchface: shutdown slides=%d finished=%d superseded=%d",
			scheduled, finished, superseded)
		if t.logCap.Valid() {
			_ = logger.LogRetry(ctx, t.logCap, line, shutdownLogRetry)
		}
		return false
	}
	return true
}

func (t *Task) onClock(ctx *kernel.Context, tick proto.ClockTick) {
	if t.primed && tick.Seq != t.lastSeq+1 {
		logger.Logf(ctx, t.logCap, "watchface: clock seq %d after %d", tick.Seq, t.lastSeq)
	}
	t.lastSeq = tick.Seq

	s := face.Sample{Hour: tick.Hour, Minute: tick.Minute, Second: tick.Second}

	// Slides scheduled below start from the current kernel tick.
	t.layer.Advance(ctx.NowTick())
	if !t.primed {
		t.ctrl.Prime(s)
		t.primed = true
	} else {
		t.ctrl.OnTick(s)
	}
	t.noteState(ctx)
	t.deliver(ctx)
	t.render(ctx)
}

func (t *Task) step(ctx *kernel.Context, now uint64) {
	if !t.layer.Animating() && !t.layer.Dirty() {
		return
	}
	t.layer.Advance(now)
	t.deliver(ctx)
	t.render(ctx)
}

// deliver hands finished slides back to the controller.
func (t *Task) deliver(ctx *kernel.Context) {
	for _, c := range t.layer.TakeCompleted() {
		cur, ok := t.ctrl.InFlight()
		if !ok || cur.ID != c.ID {
			logger.Logf(ctx, t.logCap, "watchface: stale completion %d", c.ID)
		}
		c.Call()
	}
	t.noteState(ctx)
}

func (t *Task) noteState(ctx *kernel.Context) {
	st := t.ctrl.State()
	if st == t.lastState {
		return
	}
	text := t.ctrl.Text()
	logger.Logf(ctx, t.logCap, "watchface: %s -> %s %s", t.lastState, st, text.String())
	t.lastState = st
}

func (t *Task) render(ctx *kernel.Context) {
	if t.renderer == nil || !t.layer.Dirty() {
		return
	}
	if err := t.renderer.Render(t.layer); err != nil {
		if !t.renderErr {
			logger.Logf(ctx, t.logCap, "watchface: render: %v", err)
			t.renderErr = true
		}
	}
	t.layer.ClearDirty()
}
