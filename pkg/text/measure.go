// Package text is the text measurement service used while preparing
// elements: it knows the line height of a font and word-wraps a string into
// display lines of measured width. Layout treats its answers as
// authoritative and never re-wraps text itself.
package text

import (
	"image/color"
	"strings"
)

// FontSpec selects a font family, a size in points and a fill color.
type FontSpec struct {
	Family string
	Size   float64
	Color  color.Color
}

// DefaultFont is 11pt regular black.
var DefaultFont = FontSpec{Family: FamilyRegular, Size: 11, Color: color.Black}

// WithSize returns a copy with the size replaced.
func (f FontSpec) WithSize(size float64) FontSpec {
	f.Size = size
	return f
}

// Line is one display line and its measured width.
type Line struct {
	Text  string
	Width float64
}

// Measurer measures and wraps text.
type Measurer interface {
	// LineHeight is the distance between two consecutive baselines.
	LineHeight(f FontSpec) float64
	// Width measures a single line of text.
	Width(f FontSpec, s string) float64
	// Wrap breaks s into lines no wider than maxWidth. Explicit newlines
	// always start a new line; a single word wider than maxWidth gets a line
	// of its own and overflows.
	Wrap(f FontSpec, s string, maxWidth float64) []Line
}

// WrapLines is the greedy word-wrapping used by every Measurer in this
// package, parameterized by a width function.
func WrapLines(s string, maxWidth float64, width func(string) float64) []Line {
	if s == "" {
		return nil
	}
	var lines []Line
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(para, maxWidth, width)...)
	}
	return lines
}

func wrapParagraph(para string, maxWidth float64, width func(string) float64) []Line {
	words := splitIntoWords(para)
	if len(words) == 0 {
		return []Line{{}}
	}

	var lines []Line
	current := ""
	currentWidth := 0.0
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		w := width(candidate)
		if w <= maxWidth || current == "" {
			current, currentWidth = candidate, w
			continue
		}
		lines = append(lines, Line{Text: current, Width: currentWidth})
		current, currentWidth = word, width(word)
	}
	return append(lines, Line{Text: current, Width: currentWidth})
}

// splitIntoWords splits text on runs of blanks.
func splitIntoWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r'
	})
}

// FixedMeasurer gives every glyph the same advance and every font the same
// line height. It is deterministic and safe for concurrent use.
type FixedMeasurer struct {
	GlyphWidth  float64
	LineSpacing float64
}

// LineHeight implements Measurer.
func (m FixedMeasurer) LineHeight(FontSpec) float64 { return m.LineSpacing }

// Width implements Measurer.
func (m FixedMeasurer) Width(_ FontSpec, s string) float64 {
	return float64(len([]rune(s))) * m.GlyphWidth
}

// Wrap implements Measurer.
func (m FixedMeasurer) Wrap(f FontSpec, s string, maxWidth float64) []Line {
	return WrapLines(s, maxWidth, func(line string) float64 { return m.Width(f, line) })
}
