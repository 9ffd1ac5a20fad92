package layout

import "pagebox/pkg/geom"

// ElementWithSize pairs a prepared element with its content size and its
// size including margin, border and padding.
type ElementWithSize struct {
	Element  Element
	Size     geom.Size
	FullSize geom.Size
}

func newEWS(e Element) ElementWithSize {
	s := e.PreparedSize()
	return ElementWithSize{
		Element:  e,
		Size:     s,
		FullSize: geom.Size{Width: s.Width + e.FullXSum(), Height: s.Height + e.FullYSum()},
	}
}

// SplitResult holds the two prepared halves of a split. First fits the
// requested height; Second carries the rest.
type SplitResult struct {
	First  ElementWithSize
	Second ElementWithSize
}

// Splittable is implemented by elements that can be broken across pages.
//
// Split returns nil when splitting makes no sense: the element is not
// splittable in its current configuration, nothing would fit, or
// everything already fits. The receiver must be prepared. Both halves are
// fresh, prepared elements and the receiver is left as it was, so it can
// still be placed whole when a split higher up fails.
type Splittable interface {
	Element
	IsSplittable() bool
	Split(elementWidth, availableHeight float64) *SplitResult
}

// trySplit splits e when it supports it.
func trySplit(e Element, width, availableHeight float64) *SplitResult {
	s, ok := e.(Splittable)
	if !ok || !s.IsSplittable() || !e.IsPrepared() {
		return nil
	}
	return s.Split(width, availableHeight)
}
