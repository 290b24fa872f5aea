package app

import (
	"errors"
	"testing"

	"pastfuture/sparkos/kernel"
)

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		in         string
		n          int
		head, tail string
	}{
		{"", 4, "", ""},
		{"abc", 4, "abc", ""},
		{"abcdef", 4, "abcd", "ef"},
		{"añbc", 2, "añ", "bc"},
		{"abc", 0, "", "abc"},
	}
	for _, tt := range tests {
		head, tail := takeRunes(tt.in, tt.n)
		if head != tt.head || tail != tt.tail {
			t.Fatalf("takeRunes(%q, %d) got %q,%q want %q,%q", tt.in, tt.n, head, tail, tt.head, tt.tail)
		}
	}
}

func TestPanicLines(t *testing.T) {
	lines := panicLines(kernel.PanicInfo{TaskID: 3, Value: errors.New("boom"), Stack: []byte("a\n\nb\n")})
	want := []string{"pastfuture panic:", "task: 3", "panic: boom", "stack:", "a", "b"}
	if len(lines) != len(want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d got %q, want %q", i, lines[i], want[i])
		}
	}

	lines = panicLines(kernel.PanicInfo{TaskID: 1, Value: "x"})
	if got := lines[len(lines)-1]; got != "stack: unavailable" {
		t.Fatalf("last line got %q", got)
	}
}

func TestDrawPanicPresents(t *testing.T) {
	fb := &testFramebuffer{w: 144, h: 168, buf: make([]byte, 144*168*2)}
	drawPanic(fb, []string{"pastfuture panic:", "a very long line that has to wrap across the narrow watch panel"})
	if fb.presents.Load() != 1 {
		t.Fatalf("presents got %d, want 1", fb.presents.Load())
	}
}
