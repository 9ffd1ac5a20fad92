package geom

import (
	"image/color"
	"slices"
)

// BorderStyle describes one side of a border. A nil Dash means a solid line.
type BorderStyle struct {
	Color color.Color
	Width float64
	Dash  []float64
}

// NewBorderStyle creates a BorderStyle, panicking on a negative width.
func NewBorderStyle(c color.Color, width float64, dash ...float64) BorderStyle {
	checkLength("border width", width)
	for _, d := range dash {
		checkLength("dash length", d)
	}
	if c == nil {
		c = color.Black
	}
	return BorderStyle{Color: c, Width: width, Dash: slices.Clone(dash)}
}

// Equal reports whether both styles would paint the same line.
func (s BorderStyle) Equal(o BorderStyle) bool {
	return s.Width == o.Width && colorsEqual(s.Color, o.Color) && slices.Equal(s.Dash, o.Dash)
}

// Border holds an optional style per side; nil means no border on that side.
type Border struct {
	Top    *BorderStyle
	Right  *BorderStyle
	Bottom *BorderStyle
	Left   *BorderStyle
}

// NoBorder has no side set.
var NoBorder = Border{}

// AllBorders uses the same style on every side.
func AllBorders(s BorderStyle) Border {
	return Border{Top: &s, Right: &s, Bottom: &s, Left: &s}
}

// NewBorder creates a border from explicit sides.
func NewBorder(top, right, bottom, left *BorderStyle) Border {
	return Border{Top: top, Right: right, Bottom: bottom, Left: left}
}

// WithTop returns a copy with the top side replaced.
func (b Border) WithTop(s *BorderStyle) Border { b.Top = s; return b }

// WithRight returns a copy with the right side replaced.
func (b Border) WithRight(s *BorderStyle) Border { b.Right = s; return b }

// WithBottom returns a copy with the bottom side replaced.
func (b Border) WithBottom(s *BorderStyle) Border { b.Bottom = s; return b }

// WithLeft returns a copy with the left side replaced.
func (b Border) WithLeft(s *BorderStyle) Border { b.Left = s; return b }

func sideWidth(s *BorderStyle) float64 {
	if s == nil {
		return 0
	}
	return s.Width
}

// TopWidth is the top line width or 0.
func (b Border) TopWidth() float64 { return sideWidth(b.Top) }

// RightWidth is the right line width or 0.
func (b Border) RightWidth() float64 { return sideWidth(b.Right) }

// BottomWidth is the bottom line width or 0.
func (b Border) BottomWidth() float64 { return sideWidth(b.Bottom) }

// LeftWidth is the left line width or 0.
func (b Border) LeftWidth() float64 { return sideWidth(b.Left) }

// XSumWidth is the left plus right line width.
func (b Border) XSumWidth() float64 { return b.LeftWidth() + b.RightWidth() }

// YSumWidth is the top plus bottom line width.
func (b Border) YSumWidth() float64 { return b.TopWidth() + b.BottomWidth() }

// HasAnyBorder reports whether at least one side is set.
func (b Border) HasAnyBorder() bool {
	return b.Top != nil || b.Right != nil || b.Bottom != nil || b.Left != nil
}

// HasAllBorders reports whether every side is set.
func (b Border) HasAllBorders() bool {
	return b.Top != nil && b.Right != nil && b.Bottom != nil && b.Left != nil
}

// AreAllBordersEqual reports whether all four sides are set and identical,
// which lets a painter stroke one rectangle instead of four lines.
func (b Border) AreAllBordersEqual() bool {
	if !b.HasAllBorders() {
		return false
	}
	return b.Top.Equal(*b.Right) && b.Top.Equal(*b.Bottom) && b.Top.Equal(*b.Left)
}
