// Package face holds the watch face logic that does not depend on a display:
// formatting wall-clock samples and deciding, tick by tick, whether the time
// text is replaced in place or through a slide-out/slide-in transition.
//
// Everything here runs on a single goroutine. The caller delivers ticks and
// animation completions one at a time; nothing in the package blocks,
// schedules or locks.
package face
