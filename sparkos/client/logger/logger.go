package logger

import (
	"fmt"

	"pastfuture/sparkos/kernel"
	"pastfuture/sparkos/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full. An invalid logCap makes
// it a no-op, so tasks can run without a logger in tests.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	if !logCap.Valid() {
		return kernel.SendErrInvalidToCap
	}
	b := []byte(line)
	if len(b) > kernel.MaxMessageBytes {
		b = b[:kernel.MaxMessageBytes]
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(b), kernel.Capability{})
}

// Logf formats and sends a log line. See Log.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, fmt.Sprintf(format, args...))
}

// LogRetry sends a log line, waiting up to limit kernel ticks while the
// logger queue is full. Use it for lines that must not be lost (startup,
// shutdown).
func LogRetry(ctx *kernel.Context, logCap kernel.Capability, line string, limit int) error {
	if ctx == nil {
		return fmt.Errorf("logger retry: nil context")
	}
	b := []byte(line)
	if len(b) > kernel.MaxMessageBytes {
		b = b[:kernel.MaxMessageBytes]
	}
	res := ctx.SendToCapRetry(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(b), kernel.Capability{}, limit)
	if res != kernel.SendOK {
		return fmt.Errorf("logger send: %s", res)
	}
	return nil
}
