package face

import (
	"fmt"
	"image"
	"time"
)

// TransitionState tracks which slide, if any, the controller considers live.
type TransitionState uint8

const (
	StateIdle TransitionState = iota
	StateExitInFlight
	StateEnterInFlight
)

func (s TransitionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExitInFlight:
		return "exit"
	case StateEnterInFlight:
		return "enter"
	default:
		return fmt.Sprintf("TransitionState(%d)", uint8(s))
	}
}

// TickKind is the classification of one tick.
type TickKind uint8

const (
	TickPlain TickKind = iota
	TickExit
	TickEnter
)

func (k TickKind) String() string {
	switch k {
	case TickPlain:
		return "plain"
	case TickExit:
		return "exit"
	case TickEnter:
		return "enter"
	default:
		return fmt.Sprintf("TickKind(%d)", uint8(k))
	}
}

// Classify decides what a tick does. Only per-second sources have boundary
// ticks; a per-minute source always produces plain updates.
func Classify(s Sample, g Granularity) TickKind {
	if g != PerSecond {
		return TickPlain
	}
	switch s.Second {
	case 59:
		return TickExit
	case 0:
		return TickEnter
	default:
		return TickPlain
	}
}

// AnimationSpec describes one slide of a region between two frames.
//
// ID is a generation tag unique per controller; the display layer hands it
// back through the completion callback so a late completion of an older
// slide can never be mistaken for the current one.
type AnimationSpec struct {
	ID       uint32
	Region   Region
	Start    image.Rectangle
	End      image.Rectangle
	Duration time.Duration
	Delay    time.Duration
}

// Display is the presentation layer the controller drives.
type Display interface {
	// SetText replaces the visible text of a region.
	SetText(r Region, text string)
	// ScheduleSlide takes ownership of spec and animates it. onComplete must
	// be called exactly once, on the controller's goroutine, when the slide
	// finishes or is superseded.
	ScheduleSlide(spec AnimationSpec, onComplete func())
}

// Controller owns the committed time text and the transition state.
//
// It is not safe for concurrent use; all calls must come from one goroutine.
type Controller struct {
	disp   Display
	layout Layout
	gran   Granularity

	text  DisplayString
	state TransitionState

	nextID      uint32
	current     uint32 // ID of the in-flight spec, 0 when none
	outstanding map[uint32]AnimationSpec
}

// NewController returns an idle controller showing "00:00" until the first tick.
func NewController(d Display, layout Layout, g Granularity) *Controller {
	c := &Controller{
		disp:        d,
		layout:      layout,
		gran:        g,
		outstanding: make(map[uint32]AnimationSpec),
	}
	FormatInto(&c.text, Sample{})
	return c
}

// Prime commits and shows s without any transition, so the face does not
// start blank before the first tick arrives.
func (c *Controller) Prime(s Sample) {
	c.commit(s)
}

// OnTick handles one tick from the clock source.
func (c *Controller) OnTick(s Sample) {
	switch Classify(s, c.gran) {
	case TickExit:
		c.schedule(StateExitInFlight, c.layout.Text, c.layout.Below())
	case TickEnter:
		c.commit(s)
		c.schedule(StateEnterInFlight, c.layout.Above(), c.layout.Text)
	default:
		c.commit(s)
	}
}

// OnAnimationComplete releases the spec tagged id. The state returns to idle
// only when id is the current in-flight spec; a stale or repeated completion
// changes nothing else.
func (c *Controller) OnAnimationComplete(id uint32) {
	if _, ok := c.outstanding[id]; !ok {
		return
	}
	delete(c.outstanding, id)
	if id != c.current {
		return
	}
	c.current = 0
	c.state = StateIdle
}

// State returns the current transition state.
func (c *Controller) State() TransitionState { return c.state }

// Text returns the last committed display text.
func (c *Controller) Text() DisplayString { return c.text }

// Granularity returns the tick granularity the controller was built for.
func (c *Controller) Granularity() Granularity { return c.gran }

// InFlight returns the spec the controller considers current, if any.
func (c *Controller) InFlight() (AnimationSpec, bool) {
	if c.current == 0 {
		return AnimationSpec{}, false
	}
	spec, ok := c.outstanding[c.current]
	return spec, ok
}

// Outstanding is the number of scheduled specs whose completion has not been
// delivered yet.
func (c *Controller) Outstanding() int { return len(c.outstanding) }

func (c *Controller) commit(s Sample) {
	FormatInto(&c.text, s)
	if c.disp != nil {
		c.disp.SetText(RegionText, c.text.String())
	}
}

func (c *Controller) schedule(state TransitionState, start, end image.Rectangle) {
	c.nextID++
	if c.nextID == 0 {
		c.nextID++
	}
	spec := AnimationSpec{
		ID:       c.nextID,
		Region:   RegionText,
		Start:    start,
		End:      end,
		Duration: SlideDuration,
		Delay:    SlideDelay,
	}
	c.outstanding[spec.ID] = spec
	c.current = spec.ID
	c.state = state

	if c.disp == nil {
		return
	}
	id := spec.ID
	c.disp.ScheduleSlide(spec, func() { c.OnAnimationComplete(id) })
}
