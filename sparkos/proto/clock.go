package proto

import "encoding/binary"

// ClockSubscribePayload encodes a MsgClockSubscribe request payload.
// The reply capability travels in the message Cap field.
//
// Layout (little-endian):
//   - u32: requestID
func ClockSubscribePayload(requestID uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	return buf
}

// DecodeClockSubscribePayload decodes a ClockSubscribePayload.
func DecodeClockSubscribePayload(payload []byte) (requestID uint32, ok bool) {
	if len(payload) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(payload[0:4]), true
}

// ClockTick is the decoded form of a MsgClockTick payload.
type ClockTick struct {
	// Seq increases by one per tick queued for a subscriber. A gap means
	// the subscriber fell so far behind that the clock service dropped its
	// oldest pending ticks.
	Seq    uint32
	Hour   uint8
	Minute uint8
	Second uint8
}

// ClockTickPayload encodes a MsgClockTick payload.
//
// Layout (little-endian):
//   - u32: seq
//   - u8: hour
//   - u8: minute
//   - u8: second
func ClockTickPayload(t ClockTick) []byte {
	buf := make([]byte, 7)
	binary.LittleEndian.PutUint32(buf[0:4], t.Seq)
	buf[4] = t.Hour
	buf[5] = t.Minute
	buf[6] = t.Second
	return buf
}

// DecodeClockTickPayload decodes a ClockTickPayload.
func DecodeClockTickPayload(payload []byte) (ClockTick, bool) {
	if len(payload) < 7 {
		return ClockTick{}, false
	}
	return ClockTick{
		Seq:    binary.LittleEndian.Uint32(payload[0:4]),
		Hour:   payload[4],
		Minute: payload[5],
		Second: payload[6],
	}, true
}
