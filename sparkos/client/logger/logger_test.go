package logger

import (
	"strings"
	"testing"
	"time"

	"pastfuture/sparkos/kernel"
	"pastfuture/sparkos/proto"
)

type funcTask func(ctx *kernel.Context)

func (f funcTask) Run(ctx *kernel.Context) { f(ctx) }

// runInTask runs fn on a kernel task and waits for it to return.
func runInTask(t *testing.T, k *kernel.Kernel, fn func(ctx *kernel.Context)) {
	t.Helper()
	done := make(chan struct{})
	k.AddTask(funcTask(func(ctx *kernel.Context) {
		defer close(done)
		fn(ctx)
	}))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not finish")
	}
}

func TestLogInvalidCapIsNoop(t *testing.T) {
	k := kernel.New()
	runInTask(t, k, func(ctx *kernel.Context) {
		if res := Log(ctx, kernel.Capability{}, "x"); res != kernel.SendErrInvalidToCap {
			t.Errorf("Log got %s, want %s", res, kernel.SendErrInvalidToCap)
		}
	})
	if res := Log(nil, kernel.Capability{}, "x"); res != kernel.SendErrInvalidFromCap {
		t.Fatalf("Log(nil ctx) got %s", res)
	}
}

func TestLogfAndTruncation(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	long := strings.Repeat("a", kernel.MaxMessageBytes+20)

	var got []kernel.Message
	runInTask(t, k, func(ctx *kernel.Context) {
		if res := Logf(ctx, ep.Restrict(kernel.RightSend), "tick %02d", 7); res != kernel.SendOK {
			t.Errorf("Logf got %s", res)
		}
		if res := Log(ctx, ep.Restrict(kernel.RightSend), long); res != kernel.SendOK {
			t.Errorf("Log got %s", res)
		}
		for i := 0; i < 2; i++ {
			msg, ok := ctx.TryRecv(ep.Restrict(kernel.RightRecv))
			if !ok {
				t.Errorf("message %d missing", i)
				return
			}
			got = append(got, msg)
		}
	})
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if proto.Kind(got[0].Kind) != proto.MsgLogLine || string(got[0].Payload()) != "tick 07" {
		t.Fatalf("first line got %s %q", proto.Kind(got[0].Kind), got[0].Payload())
	}
	if n := len(got[1].Payload()); n != kernel.MaxMessageBytes {
		t.Fatalf("long line length got %d, want %d", n, kernel.MaxMessageBytes)
	}
}

func TestLogRetry(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	runInTask(t, k, func(ctx *kernel.Context) {
		if err := LogRetry(ctx, ep.Restrict(kernel.RightSend), "bye", 0); err != nil {
			t.Errorf("LogRetry: %v", err)
		}
		msg, ok := ctx.TryRecv(ep.Restrict(kernel.RightRecv))
		if !ok || string(msg.Payload()) != "bye" {
			t.Errorf("got %q ok=%v, want bye", msg.Payload(), ok)
		}
		if err := LogRetry(ctx, kernel.Capability{}, "lost", 0); err == nil {
			t.Errorf("LogRetry to invalid cap: got nil error")
		}
	})
	if err := LogRetry(nil, ep, "x", 0); err == nil {
		t.Fatalf("LogRetry(nil ctx): got nil error")
	}
}

func TestLogRetryGivesUpOnFullQueue(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	send := ep.Restrict(kernel.RightSend)

	runInTask(t, k, func(ctx *kernel.Context) {
		for {
			if res := Log(ctx, send, "fill"); res == kernel.SendErrQueueFull {
				break
			}
		}
		if err := LogRetry(ctx, send, "late", 0); err == nil {
			t.Errorf("LogRetry on full queue: got nil error")
		}
	})
}
