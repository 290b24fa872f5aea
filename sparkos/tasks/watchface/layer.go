package watchface

import (
	"image"
	"time"

	"pastfuture/sparkos/face"
)

// slide is one scheduled AnimationSpec owned by the layer until it completes
// or is superseded.
type slide struct {
	spec       face.AnimationSpec
	onComplete func()
	begin      uint64 // kernel tick (ms) at schedule time
	running    bool   // delay elapsed
}

// Completion is a finished or superseded slide waiting to be reported.
type Completion struct {
	ID   uint32
	Call func()
}

// Layer is the framebuffer-side implementation of face.Display.
//
// It keeps the text and frame of the time region and runs at most one slide.
// Completion callbacks are queued, never invoked from inside Layer methods;
// the owning task delivers them with TakeCompleted after each step, so the
// controller only ever runs from the task loop.
type Layer struct {
	layout face.Layout

	text  string
	frame image.Rectangle
	dirty bool

	now    uint64
	active *slide
	done   []Completion

	stats layerStats
}

type layerStats struct {
	scheduled  uint64
	finished   uint64
	superseded uint64
}

// NewLayer returns a layer with the text at its resting frame.
func NewLayer(layout face.Layout) *Layer {
	return &Layer{layout: layout, frame: layout.Text, dirty: true}
}

// SetText replaces the time text. Other regions carry static images only.
func (l *Layer) SetText(r face.Region, text string) {
	if r != face.RegionText {
		return
	}
	if text == l.text {
		return
	}
	l.text = text
	l.dirty = true
}

// ScheduleSlide starts spec, superseding a slide that is still running. The
// superseded slide's completion is queued right away so its spec is
// released exactly once, and the frame jumps to the new start so the text
// does not sit half way through the old slide while the new one waits out
// its delay.
func (l *Layer) ScheduleSlide(spec face.AnimationSpec, onComplete func()) {
	if spec.Region != face.RegionText {
		if onComplete != nil {
			l.done = append(l.done, Completion{ID: spec.ID, Call: onComplete})
		}
		return
	}
	if l.active != nil {
		l.finish(l.active)
		l.stats.superseded++
		l.setFrame(spec.Start)
	}
	l.active = &slide{spec: spec, onComplete: onComplete, begin: l.now}
	l.stats.scheduled++
	l.Advance(l.now)
}

// Advance moves the running slide to kernel tick now (milliseconds).
func (l *Layer) Advance(now uint64) {
	if now > l.now {
		l.now = now
	}
	s := l.active
	if s == nil {
		return
	}

	elapsed := time.Duration(l.now-s.begin) * time.Millisecond
	if elapsed < s.spec.Delay {
		return
	}
	s.running = true

	t := 1.0
	if s.spec.Duration > 0 {
		t = float64(elapsed-s.spec.Delay) / float64(s.spec.Duration)
	}
	if t >= 1 {
		l.setFrame(s.spec.End)
		l.active = nil
		l.finish(s)
		l.stats.finished++
		return
	}
	l.setFrame(lerpRect(s.spec.Start, s.spec.End, easeInOut(t)))
}

func (l *Layer) setFrame(r image.Rectangle) {
	if r == l.frame {
		return
	}
	l.frame = r
	l.dirty = true
}

func (l *Layer) finish(s *slide) {
	if s.onComplete != nil {
		l.done = append(l.done, Completion{ID: s.spec.ID, Call: s.onComplete})
		s.onComplete = nil
	}
}

// TakeCompleted returns the completions queued since the last call.
func (l *Layer) TakeCompleted() []Completion {
	if len(l.done) == 0 {
		return nil
	}
	done := l.done
	l.done = nil
	return done
}

// Animating reports whether a slide is scheduled (waiting or moving).
func (l *Layer) Animating() bool { return l.active != nil }

// Text returns the current text of the time region.
func (l *Layer) Text() string { return l.text }

// Frame returns the current frame of the time region.
func (l *Layer) Frame() image.Rectangle { return l.frame }

// Dirty reports whether the layer changed since the last ClearDirty.
func (l *Layer) Dirty() bool { return l.dirty }

// ClearDirty marks the current state as rendered.
func (l *Layer) ClearDirty() { l.dirty = false }


// Stats reports how many slides were scheduled, ran to the end, or were
// superseded before finishing.
func (l *Layer) Stats() (scheduled, finished, superseded uint64) {
	return l.stats.scheduled, l.stats.finished, l.stats.superseded
}
