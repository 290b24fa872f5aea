package face

import "testing"

func TestLayoutOffscreenFrames(t *testing.T) {
	l := DefaultLayout()

	below := l.Below()
	if below.Min.Y != l.Screen.Max.Y || below.Dx() != l.Text.Dx() || below.Dy() != l.Text.Dy() {
		t.Fatalf("Below = %v", below)
	}
	above := l.Above()
	if above.Max.Y != l.Screen.Min.Y || above.Dy() != l.Text.Dy() {
		t.Fatalf("Above = %v", above)
	}
	if below.Overlaps(l.Screen) || above.Overlaps(l.Screen) {
		t.Fatalf("offscreen frames overlap screen: above=%v below=%v", above, below)
	}
}

func TestDefaultLayoutInsideScreen(t *testing.T) {
	l := DefaultLayout()
	for name, r := range map[string]interface{ Empty() bool }{
		"text": l.Text, "band": l.Band, "future": l.Future, "past": l.Past,
	} {
		if r.Empty() {
			t.Fatalf("%s region is empty", name)
		}
	}
	if !l.Text.In(l.Band) {
		t.Fatalf("text %v not inside band %v", l.Text, l.Band)
	}
	if !l.Future.In(l.Screen) || !l.Past.In(l.Screen) {
		t.Fatalf("images outside screen: %v %v", l.Future, l.Past)
	}
}

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		in      string
		want    Granularity
		wantErr bool
	}{
		{"second", PerSecond, false},
		{"Minute", PerMinute, false},
		{" s ", PerSecond, false},
		{"hour", PerMinute, true},
	}
	for _, tt := range tests {
		got, err := ParseGranularity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseGranularity(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseGranularity(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	var g Granularity
	if err := g.UnmarshalText([]byte("second")); err != nil || g != PerSecond {
		t.Fatalf("UnmarshalText = %s, %v", g, err)
	}
}
