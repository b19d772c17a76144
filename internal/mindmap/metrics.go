package mindmap

import "strings"

// Character width factors relative to font size. Wide covers CJK and any
// other non-ASCII glyph; narrow covers ASCII. These are a heuristic proxy
// for proportional-font rendering and are load-bearing for layout parity,
// so they must not change.
const (
	wideCharFactor   = 0.9
	narrowCharFactor = 0.6
)

// MeasureWidth estimates the rendered pixel width of text at the given
// font size. Code points above 127 count as wide glyphs.
func MeasureWidth(text string, fontSize float64) float64 {
	var wide, narrow int
	for _, r := range text {
		if r > 127 {
			wide++
		} else {
			narrow++
		}
	}
	return float64(wide)*fontSize*wideCharFactor + float64(narrow)*fontSize*narrowCharFactor
}

// Wrap splits text into lines that each fit within maxWidth. Text that
// already fits is returned as a single line, spaces or not. Otherwise
// words are packed greedily; a word that would overflow the current line
// starts a new one. If packing produces nothing (no whitespace to split
// on, or every word overflows alone) the original text comes back as one
// unwrapped line rather than an error.
func Wrap(text string, maxWidth, fontSize float64) []string {
	if MeasureWidth(text, fontSize) <= maxWidth {
		return []string{text}
	}

	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if MeasureWidth(candidate, fontSize) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}

	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}
