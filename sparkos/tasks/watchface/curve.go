package watchface

import (
	"image"
	"math"
)

// easeInOut is the slide curve: slow start, slow finish.
var easeInOut = cubicBezier(0.42, 0, 0.58, 1)

// cubicBezier returns the CSS-style timing function with control points
// (x1,y1) and (x2,y2). The input and output are both in [0,1].
func cubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		for range 8 {
			x := bezierAt(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return bezierAt(y1, y2, u)
			}
			dx := bezierSlope(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Newton did not settle; bisect.
		lo, hi := 0.0, 1.0
		u = math.Min(math.Max(u, 0), 1)
		for range 16 {
			x := bezierAt(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) / 2
		}
		return bezierAt(y1, y2, u)
	}
}

func bezierAt(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierSlope(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

// lerpRect interpolates every edge of a rectangle, rounding to whole pixels.
func lerpRect(a, b image.Rectangle, t float64) image.Rectangle {
	return image.Rect(
		lerpInt(a.Min.X, b.Min.X, t),
		lerpInt(a.Min.Y, b.Min.Y, t),
		lerpInt(a.Max.X, b.Max.X, t),
		lerpInt(a.Max.Y, b.Max.Y, t),
	)
}

func lerpInt(a, b int, t float64) int {
	return a + int(math.Round(float64(b-a)*t))
}
