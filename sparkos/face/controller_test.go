package face

import (
	"testing"
)

type call struct {
	op     string
	region Region
	text   string
	spec   AnimationSpec
}

type fakeDisplay struct {
	calls []call
	done  map[uint32]func()
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{done: make(map[uint32]func())}
}

func (d *fakeDisplay) SetText(r Region, text string) {
	d.calls = append(d.calls, call{op: "setText", region: r, text: text})
}

func (d *fakeDisplay) ScheduleSlide(spec AnimationSpec, onComplete func()) {
	d.calls = append(d.calls, call{op: "slide", region: spec.Region, spec: spec})
	d.done[spec.ID] = onComplete
}

func (d *fakeDisplay) reset() { d.calls = nil }

func (d *fakeDisplay) count(op string) int {
	n := 0
	for _, c := range d.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func (d *fakeDisplay) complete(t *testing.T, id uint32) {
	t.Helper()
	fn, ok := d.done[id]
	if !ok {
		t.Fatalf("no completion registered for spec %d", id)
	}
	fn()
}

func newSecondController() (*Controller, *fakeDisplay) {
	d := newFakeDisplay()
	return NewController(d, DefaultLayout(), PerSecond), d
}

func TestClassify(t *testing.T) {
	tests := []struct {
		s    Sample
		g    Granularity
		want TickKind
	}{
		{Sample{Second: 59}, PerSecond, TickExit},
		{Sample{Second: 0}, PerSecond, TickEnter},
		{Sample{Second: 30}, PerSecond, TickPlain},
		{Sample{Second: 58}, PerSecond, TickPlain},
		{Sample{Second: 1}, PerSecond, TickPlain},
		{Sample{Second: 0}, PerMinute, TickPlain},
		{Sample{Second: 59}, PerMinute, TickPlain},
	}
	for _, tt := range tests {
		if got := Classify(tt.s, tt.g); got != tt.want {
			t.Fatalf("Classify(%+v, %s) = %s, want %s", tt.s, tt.g, got, tt.want)
		}
	}
}

func TestPlainTickSetsTextOnly(t *testing.T) {
	c, d := newSecondController()

	for sec := uint8(1); sec < 59; sec++ {
		d.reset()
		c.OnTick(Sample{Hour: 9, Minute: 5, Second: sec})
		if n := d.count("setText"); n != 1 {
			t.Fatalf("second %d: setText calls = %d, want 1", sec, n)
		}
		if n := d.count("slide"); n != 0 {
			t.Fatalf("second %d: slide calls = %d, want 0", sec, n)
		}
	}
	if got := d.calls[0].text; got != "09:05" {
		t.Fatalf("setText = %q, want %q", got, "09:05")
	}
	if c.State() != StateIdle {
		t.Fatalf("state = %s, want idle", c.State())
	}
}

func TestExitTickKeepsTextAndSlidesBelow(t *testing.T) {
	c, d := newSecondController()
	c.Prime(Sample{Hour: 14, Minute: 36, Second: 58})
	d.reset()

	c.OnTick(Sample{Hour: 14, Minute: 37, Second: 59})

	if n := d.count("setText"); n != 0 {
		t.Fatalf("setText calls = %d, want 0", n)
	}
	if n := d.count("slide"); n != 1 {
		t.Fatalf("slide calls = %d, want 1", n)
	}
	if got := c.Text().String(); got != "14:36" {
		t.Fatalf("text = %q, want %q", got, "14:36")
	}

	l := DefaultLayout()
	spec := d.calls[0].spec
	if spec.Start != l.Text {
		t.Fatalf("start = %v, want resting %v", spec.Start, l.Text)
	}
	if spec.End.Min.Y < l.Screen.Max.Y {
		t.Fatalf("end = %v, not fully below %v", spec.End, l.Screen)
	}
	if spec.Duration != SlideDuration || spec.Delay != SlideDelay {
		t.Fatalf("timing = %s/%s, want %s/%s", spec.Duration, spec.Delay, SlideDuration, SlideDelay)
	}
	if c.State() != StateExitInFlight {
		t.Fatalf("state = %s, want exit", c.State())
	}
}

func TestEnterTickCommitsThenSlidesFromAbove(t *testing.T) {
	c, d := newSecondController()
	c.Prime(Sample{Hour: 14, Minute: 37, Second: 58})
	c.OnTick(Sample{Hour: 14, Minute: 37, Second: 59})
	d.reset()

	c.OnTick(Sample{Hour: 14, Minute: 38, Second: 0})

	if len(d.calls) != 2 || d.calls[0].op != "setText" || d.calls[1].op != "slide" {
		t.Fatalf("calls = %+v, want setText then slide", d.calls)
	}
	if got := d.calls[0].text; got != "14:38" {
		t.Fatalf("setText = %q, want %q", got, "14:38")
	}
	if got := c.Text().String(); got != "14:38" {
		t.Fatalf("text = %q, want %q", got, "14:38")
	}

	l := DefaultLayout()
	spec := d.calls[1].spec
	if spec.Start.Max.Y > l.Screen.Min.Y {
		t.Fatalf("start = %v, not fully above %v", spec.Start, l.Screen)
	}
	if spec.End != l.Text {
		t.Fatalf("end = %v, want resting %v", spec.End, l.Text)
	}
	if c.State() != StateEnterInFlight {
		t.Fatalf("state = %s, want enter", c.State())
	}
}

func TestCompletionReturnsToIdle(t *testing.T) {
	c, d := newSecondController()

	c.OnTick(Sample{Hour: 1, Minute: 2, Second: 59})
	exit, ok := c.InFlight()
	if !ok {
		t.Fatal("expected an in-flight spec")
	}
	d.complete(t, exit.ID)
	if c.State() != StateIdle || c.Outstanding() != 0 {
		t.Fatalf("after exit completion: state=%s outstanding=%d", c.State(), c.Outstanding())
	}

	c.OnTick(Sample{Hour: 1, Minute: 3, Second: 0})
	enter, _ := c.InFlight()
	d.complete(t, enter.ID)
	if c.State() != StateIdle || c.Outstanding() != 0 {
		t.Fatalf("after enter completion: state=%s outstanding=%d", c.State(), c.Outstanding())
	}
	if _, ok := c.InFlight(); ok {
		t.Fatal("expected no in-flight spec")
	}
}

func TestStaleCompletionDoesNotClearNewerSpec(t *testing.T) {
	c, d := newSecondController()

	c.OnTick(Sample{Hour: 1, Minute: 2, Second: 59})
	exit, _ := c.InFlight()
	c.OnTick(Sample{Hour: 1, Minute: 3, Second: 0})
	enter, _ := c.InFlight()
	if exit.ID == enter.ID {
		t.Fatalf("spec ids collide: %d", exit.ID)
	}
	if c.Outstanding() != 2 {
		t.Fatalf("outstanding = %d, want 2", c.Outstanding())
	}

	d.complete(t, exit.ID)
	if c.State() != StateEnterInFlight {
		t.Fatalf("state after stale completion = %s, want enter", c.State())
	}
	if c.Outstanding() != 1 {
		t.Fatalf("outstanding after stale completion = %d, want 1", c.Outstanding())
	}

	d.complete(t, enter.ID)
	if c.State() != StateIdle || c.Outstanding() != 0 {
		t.Fatalf("final: state=%s outstanding=%d", c.State(), c.Outstanding())
	}
}

func TestRepeatedCompletionIsNoop(t *testing.T) {
	c, d := newSecondController()

	c.OnTick(Sample{Second: 59})
	first, _ := c.InFlight()
	d.complete(t, first.ID)

	c.OnTick(Sample{Minute: 1, Second: 0})
	d.complete(t, first.ID)
	if c.State() != StateEnterInFlight {
		t.Fatalf("state = %s, want enter after duplicate completion", c.State())
	}
}

func TestLostCompletionLeavesStateUntilNextBoundary(t *testing.T) {
	c, d := newSecondController()

	c.OnTick(Sample{Minute: 1, Second: 59})
	c.OnTick(Sample{Minute: 2, Second: 0})
	c.OnTick(Sample{Minute: 2, Second: 1})
	if c.State() != StateEnterInFlight {
		t.Fatalf("state = %s, want enter while completion is missing", c.State())
	}
	if got := c.Text().String(); got != "00:02" {
		t.Fatalf("text = %q, want %q", got, "00:02")
	}

	d.reset()
	c.OnTick(Sample{Minute: 2, Second: 59})
	if d.count("slide") != 1 || c.State() != StateExitInFlight {
		t.Fatalf("next boundary: slides=%d state=%s", d.count("slide"), c.State())
	}
}

func TestPerMinuteNeverAnimates(t *testing.T) {
	d := newFakeDisplay()
	c := NewController(d, DefaultLayout(), PerMinute)

	c.OnTick(Sample{Hour: 7, Minute: 0, Second: 0})
	c.OnTick(Sample{Hour: 7, Minute: 1, Second: 59})
	if d.count("slide") != 0 {
		t.Fatalf("slide calls = %d, want 0", d.count("slide"))
	}
	if d.count("setText") != 2 {
		t.Fatalf("setText calls = %d, want 2", d.count("setText"))
	}
	if got := c.Text().String(); got != "07:01" {
		t.Fatalf("text = %q, want %q", got, "07:01")
	}
}

func TestPrimeShowsTimeWithoutAnimation(t *testing.T) {
	c, d := newSecondController()
	c.Prime(Sample{Hour: 23, Minute: 59, Second: 59})
	if d.count("setText") != 1 || d.count("slide") != 0 {
		t.Fatalf("calls = %+v", d.calls)
	}
	if got := c.Text().String(); got != "23:59" {
		t.Fatalf("text = %q", got)
	}
}

func TestNewControllerStartsIdle(t *testing.T) {
	c, d := newSecondController()
	if c.State() != StateIdle || c.Text().String() != "00:00" || len(d.calls) != 0 {
		t.Fatalf("state=%s text=%q calls=%d", c.State(), c.Text(), len(d.calls))
	}
}
