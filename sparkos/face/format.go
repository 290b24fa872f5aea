package face

import "time"

// Sample is one wall-clock reading delivered with a tick.
type Sample struct {
	Hour   uint8
	Minute uint8
	Second uint8
}

// SampleFromTime extracts the local hour, minute and second of t.
func SampleFromTime(t time.Time) Sample {
	return Sample{Hour: uint8(t.Hour()), Minute: uint8(t.Minute()), Second: uint8(t.Second())}
}

// DisplayLen is the number of visible characters in a DisplayString.
const DisplayLen = 5

// DisplayString is the fixed-size "HH:MM" text buffer.
type DisplayString [DisplayLen]byte

func (d DisplayString) String() string { return string(d[:]) }

// Format renders s as zero-padded 24-hour "HH:MM".
//
// Fields are not validated; out-of-range values give unspecified characters.
func Format(s Sample) DisplayString {
	var d DisplayString
	FormatInto(&d, s)
	return d
}

// FormatInto overwrites dst in place with the formatted sample.
func FormatInto(dst *DisplayString, s Sample) {
	dst[0] = '0' + s.Hour/10
	dst[1] = '0' + s.Hour%10
	dst[2] = ':'
	dst[3] = '0' + s.Minute/10
	dst[4] = '0' + s.Minute%10
}
