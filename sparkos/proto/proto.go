package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgError
	MsgClockSubscribe
	MsgClockTick
	MsgAppShutdown
)

// ErrCode is a generic error category for MsgError responses.
type ErrCode uint16

const (
	ErrUnknown ErrCode = iota
	ErrBadMessage
	ErrOverflow
	ErrInternal
)

func (c ErrCode) String() string {
	switch c {
	case ErrUnknown:
		return "unknown"
	case ErrBadMessage:
		return "bad_message"
	case ErrOverflow:
		return "overflow"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgError:
		return "error"
	case MsgClockSubscribe:
		return "clock_subscribe"
	case MsgClockTick:
		return "clock_tick"
	case MsgAppShutdown:
		return "app_shutdown"
	default:
		return "unknown"
	}
}
