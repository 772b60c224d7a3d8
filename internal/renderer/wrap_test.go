package renderer

import (
	"strings"
	"testing"
)

func TestWrapLines_Empty(t *testing.T) {
	face := DefaultFontSet().Regular

	if lines := WrapLines("", 200, face); len(lines) != 0 {
		t.Errorf("Expected no lines for empty input, got %v", lines)
	}
	if lines := WrapLines("   ", 200, face); len(lines) != 0 {
		t.Errorf("Expected no lines for whitespace input, got %v", lines)
	}
}

func TestWrapLines_RoundTrip(t *testing.T) {
	face := DefaultFontSet().Regular

	inputs := []string{
		"one",
		"a short line that fits",
		"Building 7, King Fahd Road, Al Olaya district, Riyadh 12211, second floor",
		"Chicken Shawarma Plate with extra garlic sauce and pickles on the side",
	}

	for _, input := range inputs {
		for _, maxWidth := range []float64{80, 160, 320, 520} {
			lines := WrapLines(input, maxWidth, face)
			if got := strings.Join(lines, " "); got != input {
				t.Errorf("WrapLines(%q, %.0f) lost content: joined %q", input, maxWidth, got)
			}
		}
	}
}

func TestWrapLines_WidthBound(t *testing.T) {
	face := DefaultFontSet().Regular
	input := "falafel wrap with tahini extra pickles and a large mint lemonade"
	maxWidth := 180.0

	for _, line := range WrapLines(input, maxWidth, face) {
		if w := textWidth(face, line); w >= maxWidth && strings.Contains(line, " ") {
			t.Errorf("multi-word line %q measures %.1f, over limit %.1f", line, w, maxWidth)
		}
	}
}

func TestWrapLines_LongWordOverflows(t *testing.T) {
	face := DefaultFontSet().Regular

	lines := WrapLines("supercalifragilisticexpialidocious", 20, face)
	if len(lines) != 1 {
		t.Fatalf("Expected a single overflowing line, got %d", len(lines))
	}
	if lines[0] != "supercalifragilisticexpialidocious" {
		t.Errorf("word must never be split mid-word, got %q", lines[0])
	}
}
