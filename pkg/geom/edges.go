package geom

import "fmt"

// Edges holds one length per side of a box.
type Edges struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Margin is the space outside an element's border.
type Margin = Edges

// Padding is the space between an element's border and its content.
type Padding = Edges

// EdgesZero has all four sides set to zero.
var EdgesZero = Edges{}

// NewEdges creates Edges from top, right, bottom and left values.
func NewEdges(top, right, bottom, left float64) Edges {
	checkLength("top", top)
	checkLength("right", right)
	checkLength("bottom", bottom)
	checkLength("left", left)
	return Edges{Top: top, Right: right, Bottom: bottom, Left: left}
}

// All creates Edges with the same value on every side.
func All(v float64) Edges {
	return NewEdges(v, v, v, v)
}

// Symmetric creates Edges with y on top/bottom and x on left/right.
func Symmetric(y, x float64) Edges {
	return NewEdges(y, x, y, x)
}

// EdgesFromSlice accepts the CSS shorthand forms: 1, 2 or 4 values.
func EdgesFromSlice(v []float64) (Edges, bool) {
	switch len(v) {
	case 0:
		return EdgesZero, true
	case 1:
		return safeEdges(v[0], v[0], v[0], v[0])
	case 2:
		return safeEdges(v[0], v[1], v[0], v[1])
	case 4:
		return safeEdges(v[0], v[1], v[2], v[3])
	}
	return Edges{}, false
}

func safeEdges(t, r, b, l float64) (Edges, bool) {
	if t < 0 || r < 0 || b < 0 || l < 0 {
		return Edges{}, false
	}
	return Edges{Top: t, Right: r, Bottom: b, Left: l}, true
}

// XSum is left + right.
func (e Edges) XSum() float64 { return e.Left + e.Right }

// YSum is top + bottom.
func (e Edges) YSum() float64 { return e.Top + e.Bottom }

// WithTop returns a copy with the top side replaced.
func (e Edges) WithTop(v float64) Edges {
	return NewEdges(v, e.Right, e.Bottom, e.Left)
}

// WithRight returns a copy with the right side replaced.
func (e Edges) WithRight(v float64) Edges {
	return NewEdges(e.Top, v, e.Bottom, e.Left)
}

// WithBottom returns a copy with the bottom side replaced.
func (e Edges) WithBottom(v float64) Edges {
	return NewEdges(e.Top, e.Right, v, e.Left)
}

// WithLeft returns a copy with the left side replaced.
func (e Edges) WithLeft(v float64) Edges {
	return NewEdges(e.Top, e.Right, e.Bottom, v)
}

func (e Edges) String() string {
	return fmt.Sprintf("[%g %g %g %g]", e.Top, e.Right, e.Bottom, e.Left)
}
