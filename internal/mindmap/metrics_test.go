package mindmap

import (
	"strings"
	"testing"
)

func TestMeasureWidth_Empty(t *testing.T) {
	if w := MeasureWidth("", 18); w != 0 {
		t.Errorf("expected 0 width for empty string, got %v", w)
	}
}

func TestMeasureWidth_NarrowAndWide(t *testing.T) {
	tests := []struct {
		text     string
		fontSize float64
		want     float64
	}{
		{"abc", 10, 3 * 10 * 0.6},
		{"中文", 10, 2 * 10 * 0.9},
		{"a中", 10, 10*0.9 + 10*0.6},
	}
	for _, tt := range tests {
		if got := MeasureWidth(tt.text, tt.fontSize); got != tt.want {
			t.Errorf("MeasureWidth(%q, %v) = %v, want %v", tt.text, tt.fontSize, got, tt.want)
		}
	}
}

func TestMeasureWidth_MonotonicInLength(t *testing.T) {
	prev := 0.0
	text := ""
	for i := 0; i < 10; i++ {
		text += "x"
		w := MeasureWidth(text, 14)
		if w <= prev {
			t.Fatalf("width not monotonic at length %d: %v <= %v", i+1, w, prev)
		}
		prev = w
	}
}

func TestWrap_FitsUnchanged(t *testing.T) {
	lines := Wrap("short title", 1000, 12)
	if len(lines) != 1 || lines[0] != "short title" {
		t.Errorf("expected single unchanged line, got %v", lines)
	}
}

func TestWrap_NoSpacesFitsUnchanged(t *testing.T) {
	// A spaceless string that fits must come back as-is.
	lines := Wrap("nospaceshere", 1000, 12)
	if len(lines) != 1 || lines[0] != "nospaceshere" {
		t.Errorf("expected single unchanged line, got %v", lines)
	}
}

func TestWrap_GreedyPacking(t *testing.T) {
	// Each word is 12 wide at font size 10; two words plus a space are 30.
	lines := Wrap("aa bb cc dd", 30, 10)
	want := []string{"aa bb", "cc dd"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestWrap_PreservesWords(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog again and again"
	lines := Wrap(text, 50, 10)
	rejoined := strings.Join(lines, " ")
	if got, want := strings.Fields(rejoined), strings.Fields(text); len(got) != len(want) {
		t.Fatalf("word count changed: got %d, want %d", len(got), len(want))
	} else {
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("word[%d]: expected %q, got %q", i, want[i], got[i])
			}
		}
	}
}

func TestWrap_OverlongSingleWordFallback(t *testing.T) {
	long := strings.Repeat("x", 100)
	lines := Wrap(long, 30, 10)
	if len(lines) != 1 || lines[0] != long {
		t.Errorf("expected unwrapped fallback line, got %v", lines)
	}
}

func TestWrap_WhitespaceOnlyFallback(t *testing.T) {
	lines := Wrap("   ", 1, 10)
	if len(lines) != 1 || lines[0] != "   " {
		t.Errorf("expected original text back, got %q", lines)
	}
}
