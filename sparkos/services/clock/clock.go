// Package clock is the wall-clock source of the face.
//
// It samples a clockwork.Clock on every kernel tick and pushes one
// MsgClockTick per elapsed second or minute to each subscriber. Ticks are
// queued per subscriber and retried while the subscriber's mailbox is full,
// so a slow consumer sees every tick, late but in order.
package clock

import (
	"time"

	"pastfuture/sparkos/client/logger"
	"pastfuture/sparkos/face"
	"pastfuture/sparkos/kernel"
	"pastfuture/sparkos/proto"

	"github.com/jonboulle/clockwork"
)

const (
	maxSubscribers = 4

	// maxCatchUp bounds how many missed intervals are replayed after a stall.
	// A larger gap is treated as a clock jump and only the current time is sent.
	maxCatchUp = 10

	// maxPending bounds the per-subscriber backlog of a consumer that stopped
	// reading without closing its endpoint.
	maxPending = 256
)

type subscriber struct {
	inUse   bool
	id      uint32
	reply   kernel.Capability
	seq     uint32
	pending []proto.ClockTick
	dropped uint64
}

// Service delivers clock ticks to subscribers.
type Service struct {
	clk  clockwork.Clock
	loc  *time.Location
	gran face.Granularity
	ep   kernel.Capability
	log  kernel.Capability

	last     time.Time
	haveLast bool

	subs [maxSubscribers]subscriber
}

// New returns a clock service reading clk at granularity g and serving
// subscriptions on ep. loc may be nil for the clock's own location.
func New(clk clockwork.Clock, loc *time.Location, g face.Granularity, ep kernel.Capability) *Service {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Service{clk: clk, loc: loc, gran: g, ep: ep}
}

// WithLogger makes the service log subscription changes to logCap.
func (s *Service) WithLogger(logCap kernel.Capability) *Service {
	s.log = logCap
	return s
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}

	after := ctx.NowTick()
	for {
		if !s.drainRequests(ctx, ch) {
			return
		}
		s.poll()
		s.flush(ctx)
		after = ctx.WaitTick(after)
	}
}

// drainRequests handles every queued request. It reports false once the
// service endpoint has been closed.
func (s *Service) drainRequests(ctx *kernel.Context, ch <-chan kernel.Message) bool {
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return false
			}
			s.handle(ctx, msg)
		default:
			return true
		}
	}
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	if proto.Kind(msg.Kind) != proto.MsgClockSubscribe {
		return
	}
	if !msg.Cap.Valid() {
		return
	}

	requestID, ok := proto.DecodeClockSubscribePayload(msg.Payload())
	if !ok {
		payload := proto.ErrorPayload(
			proto.ErrBadMessage,
			proto.MsgClockSubscribe,
			proto.ErrorDetailWithRequestID(0, nil),
		)
		_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError), payload, kernel.Capability{})
		return
	}

	s.poll()
	if !s.haveLast {
		s.last = s.now()
		s.haveLast = true
	}

	sub := s.allocate(requestID, msg.Cap)
	if sub == nil {
		payload := proto.ErrorPayload(
			proto.ErrOverflow,
			proto.MsgClockSubscribe,
			proto.ErrorDetailWithRequestID(requestID, nil),
		)
		_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError), payload, kernel.Capability{})
		return
	}

	s.enqueue(sub, s.last)
	logger.Logf(ctx, s.log, "clock: subscriber %d at %s granularity", requestID, s.gran)
}

func (s *Service) allocate(requestID uint32, reply kernel.Capability) *subscriber {
	for i := range s.subs {
		if s.subs[i].inUse {
			continue
		}
		s.subs[i] = subscriber{inUse: true, id: requestID, reply: reply}
		return &s.subs[i]
	}
	return nil
}

// now is the wall-clock time truncated to the tick granularity.
func (s *Service) now() time.Time {
	t := s.clk.Now()
	if s.loc != nil {
		t = t.In(s.loc)
	}
	return t.Truncate(s.gran.Interval())
}

// poll queues a tick for every interval boundary crossed since the last one.
func (s *Service) poll() {
	if !s.haveLast {
		return
	}
	now := s.now()
	if now.Equal(s.last) {
		return
	}

	step := s.gran.Interval()
	if now.Before(s.last) || now.Sub(s.last) > maxCatchUp*step {
		s.last = now
		s.broadcast(now)
		return
	}
	for t := s.last.Add(step); !t.After(now); t = t.Add(step) {
		s.broadcast(t)
	}
	s.last = now
}

func (s *Service) broadcast(t time.Time) {
	for i := range s.subs {
		if s.subs[i].inUse {
			s.enqueue(&s.subs[i], t)
		}
	}
}

func (s *Service) enqueue(sub *subscriber, t time.Time) {
	sub.seq++
	smp := face.SampleFromTime(t)
	tick := proto.ClockTick{Seq: sub.seq, Hour: smp.Hour, Minute: smp.Minute, Second: smp.Second}
	if len(sub.pending) >= maxPending {
		copy(sub.pending, sub.pending[1:])
		sub.pending = sub.pending[:len(sub.pending)-1]
		sub.dropped++
	}
	sub.pending = append(sub.pending, tick)
}

func (s *Service) flush(ctx *kernel.Context) {
	for i := range s.subs {
		sub := &s.subs[i]
		if !sub.inUse {
			continue
		}
		sent := 0
		for _, tick := range sub.pending {
			res := ctx.SendToCapResult(sub.reply, uint16(proto.MsgClockTick), proto.ClockTickPayload(tick), kernel.Capability{})
			if res == kernel.SendOK {
				sent++
				continue
			}
			if res != kernel.SendErrQueueFull {
				logger.Logf(ctx, s.log, "clock: drop subscriber %d: %s", sub.id, res)
				*sub = subscriber{}
			}
			break
		}
		if sub.inUse {
			sub.pending = append(sub.pending[:0], sub.pending[sent:]...)
		}
	}
}
