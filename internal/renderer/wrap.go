package renderer

import (
	"strings"

	"golang.org/x/image/font"
)

// WrapLines splits text into lines that each measure under maxWidth
// pixels with the given face. Words are never broken: a single word
// wider than maxWidth is emitted as its own overflowing line. Empty
// input yields no lines.
func WrapLines(text string, maxWidth float64, face font.Face) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if textWidth(face, candidate) < maxWidth {
			current = candidate
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	return append(lines, current)
}

// textWidth measures a string in pixels. It goes through the face
// directly so both layout passes see the same number whether or not a
// drawing context exists yet.
func textWidth(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}
