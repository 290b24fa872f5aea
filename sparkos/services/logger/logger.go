package logger

import (
	"pastfuture/hal"
	"pastfuture/sparkos/kernel"
	"pastfuture/sparkos/proto"
)

// Service writes MsgLogLine payloads to the HAL logger, one line each.
type Service struct {
	log    hal.Logger
	ep     kernel.Capability
	prefix string
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

// WithPrefix returns s with every line prefixed, e.g. "pastfuture: ".
func (s *Service) WithPrefix(p string) *Service {
	s.prefix = p
	return s
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		s.handle(msg)
	}
}

func (s *Service) handle(msg kernel.Message) {
	if s.log == nil {
		return
	}
	if proto.Kind(msg.Kind) != proto.MsgLogLine {
		return
	}
	if s.prefix == "" {
		s.log.WriteLineBytes(msg.Payload())
		return
	}
	s.log.WriteLineString(s.prefix + string(msg.Payload()))
}
