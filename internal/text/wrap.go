package text

import (
	"strings"
	"unicode"
)

// Ellipsis is appended to text cut short by Truncate and ClampLines
const Ellipsis = "..."

// MeasureFunc returns the rendered width of s
type MeasureFunc func(s string) float64

// SplitTextToLines splits text into lines no wider than maxWidth. Explicit
// newlines always start a new line. A single word wider than maxWidth is
// kept whole on its own line.
func SplitTextToLines(s string, maxWidth float64, measure MeasureFunc) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if maxWidth <= 0 || measure == nil {
		return strings.Split(s, "\n")
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := splitIntoWords(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if current != "" && measure(candidate) > maxWidth {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// Truncate shortens s until it fits maxWidth, appending an ellipsis when
// anything was removed
func Truncate(s string, maxWidth float64, measure MeasureFunc) string {
	if measure == nil || measure(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace) + Ellipsis
		if measure(candidate) <= maxWidth {
			return candidate
		}
	}
	return Ellipsis
}

// ClampLines keeps at most max lines; the last kept line is truncated with an
// ellipsis when lines were dropped
func ClampLines(lines []string, max int, maxWidth float64, measure MeasureFunc) []string {
	if max <= 0 {
		return nil
	}
	if len(lines) <= max {
		return lines
	}
	out := make([]string, max)
	copy(out, lines[:max])
	out[max-1] = Truncate(strings.TrimRightFunc(out[max-1], unicode.IsSpace)+Ellipsis, maxWidth, measure)
	return out
}

// splitIntoWords splits text into words
func splitIntoWords(s string) []string {
	return strings.FieldsFunc(s, unicode.IsSpace)
}
