package face

import (
	"fmt"
	"image"
	"strings"
	"time"
)

// Region names one of the fixed areas of the face.
type Region uint8

const (
	RegionText Region = iota
	RegionFuture
	RegionPast
)

func (r Region) String() string {
	switch r {
	case RegionText:
		return "text"
	case RegionFuture:
		return "future"
	case RegionPast:
		return "past"
	default:
		return fmt.Sprintf("Region(%d)", uint8(r))
	}
}

// Slide timing shared by the exit and enter transitions.
const (
	SlideDuration = 300 * time.Millisecond
	SlideDelay    = 500 * time.Millisecond
)

// Layout is the face geometry in face coordinates, fixed at startup.
type Layout struct {
	Screen image.Rectangle // visible area
	Text   image.Rectangle // resting frame of the time text
	Band   image.Rectangle // inverted strip behind the text
	Future image.Rectangle
	Past   image.Rectangle
}

// DefaultLayout is the 144x168 watch geometry: "future" image on top, an
// inverted band with the time, "past" image at the bottom.
func DefaultLayout() Layout {
	return Layout{
		Screen: image.Rect(0, 0, 144, 168),
		Text:   image.Rect(0, 59, 144, 103),
		Band:   image.Rect(0, 50, 144, 112),
		Future: image.Rect(0, 0, 144, 50),
		Past:   image.Rect(0, 112, 144, 162),
	}
}

// Below is the text frame moved so it sits entirely under the visible area.
func (l Layout) Below() image.Rectangle {
	return l.Text.Add(image.Pt(0, l.Screen.Max.Y-l.Text.Min.Y))
}

// Above is the text frame moved so it sits entirely over the visible area.
func (l Layout) Above() image.Rectangle {
	return l.Text.Add(image.Pt(0, l.Screen.Min.Y-l.Text.Max.Y))
}

// Granularity is how often the clock source delivers ticks.
type Granularity uint8

const (
	PerMinute Granularity = iota
	PerSecond
)

func (g Granularity) String() string {
	switch g {
	case PerMinute:
		return "minute"
	case PerSecond:
		return "second"
	default:
		return fmt.Sprintf("Granularity(%d)", uint8(g))
	}
}

// ParseGranularity accepts "minute" or "second" (case-insensitive).
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minute", "min", "m":
		return PerMinute, nil
	case "second", "sec", "s":
		return PerSecond, nil
	default:
		return PerMinute, fmt.Errorf("unknown granularity %q (want minute or second)", s)
	}
}

// Interval is the tick period for g.
func (g Granularity) Interval() time.Duration {
	if g == PerSecond {
		return time.Second
	}
	return time.Minute
}

// MarshalText implements encoding.TextMarshaler.
func (g Granularity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so config files can
// carry the granularity as a plain string.
func (g *Granularity) UnmarshalText(b []byte) error {
	v, err := ParseGranularity(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}
