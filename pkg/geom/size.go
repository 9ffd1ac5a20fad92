package geom

import (
	"fmt"
	"math"

	"pagebox/pkg/errors"
)

// Size is a width/height pair, both >= 0.
type Size struct {
	Width  float64
	Height float64
}

// SizeZero is the empty size.
var SizeZero = Size{}

// SizeUnbounded is the default maximum size of an element.
var SizeUnbounded = Size{Width: math.MaxFloat64, Height: math.MaxFloat64}

// NewSize creates a Size, panicking on negative components.
func NewSize(width, height float64) Size {
	checkLength("width", width)
	checkLength("height", height)
	return Size{Width: width, Height: height}
}

// WithWidth returns a copy with the width replaced.
func (s Size) WithWidth(w float64) Size {
	return NewSize(w, s.Height)
}

// WithHeight returns a copy with the height replaced.
func (s Size) WithHeight(h float64) Size {
	return NewSize(s.Width, h)
}

// PlusHeight returns a copy with delta added to the height.
func (s Size) PlusHeight(delta float64) Size {
	return Size{Width: s.Width, Height: s.Height + delta}
}

// Clamp restricts s componentwise into [min, max]: max(min, s) first, then
// min(max, ·), so a maximum smaller than the minimum wins.
func (s Size) Clamp(min, max Size) Size {
	return Size{
		Width:  math.Min(max.Width, math.Max(min.Width, s.Width)),
		Height: math.Min(max.Height, math.Max(min.Height, s.Height)),
	}
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

func checkLength(name string, v float64) {
	if v < 0 || math.IsNaN(v) {
		errors.Invalid("%s must be >= 0, got %v", name, v)
	}
}
