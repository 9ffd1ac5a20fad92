package layout

import "math"

// HAlign is the horizontal placement of an element in its available width.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

func (a HAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// VAlign is the vertical placement of an element in its available height.
type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

func (a VAlign) String() string {
	switch a {
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	}
	return "top"
}

// HorizontallyAligned is implemented by elements placed with an HAlign.
type HorizontallyAligned interface {
	Element
	HorizontalAlign() HAlign
	SetHorizontalAlign(a HAlign) error
}

// VerticallyAligned is implemented by elements placed with a VAlign.
type VerticallyAligned interface {
	Element
	VerticalAlign() VAlign
	SetVerticalAlign(a VAlign) error
}

// indentX is the horizontal offset of a box of the given width. It may be
// negative when the box is wider than the available width.
func indentX(a HAlign, available, width float64) float64 {
	switch a {
	case AlignCenter:
		return (available - width) / 2
	case AlignRight:
		return available - width
	}
	return 0
}

// indentY is the vertical offset of a box of the given height, never
// negative.
func indentY(a VAlign, available, height float64) float64 {
	switch a {
	case AlignMiddle:
		return math.Max(0, (available-height)/2)
	case AlignBottom:
		return math.Max(0, available-height)
	}
	return 0
}

// aligned holds the alignment of elements that support both directions.
type aligned struct {
	b      *Base
	halign HAlign
	valign VAlign
}

func (a *aligned) HorizontalAlign() HAlign { return a.halign }
func (a *aligned) VerticalAlign() VAlign   { return a.valign }

// SetHorizontalAlign changes the horizontal alignment before preparation.
func (a *aligned) SetHorizontalAlign(h HAlign) error {
	if err := a.b.checkNotPrepared("alignment"); err != nil {
		return err
	}
	a.halign = h
	return nil
}

// SetVerticalAlign changes the vertical alignment before preparation.
func (a *aligned) SetVerticalAlign(v VAlign) error {
	if err := a.b.checkNotPrepared("alignment"); err != nil {
		return err
	}
	a.valign = v
	return nil
}

// alignVertically pushes the content of a prepared element down so that
// its full box sits at its VAlign within availableHeight. Elements without
// a vertical alignment are left untouched.
func alignVertically(e Element, availableHeight float64) {
	va, ok := e.(VerticallyAligned)
	if !ok {
		return
	}
	b := e.base()
	full := b.preparedSize.Height + b.FullYSum()
	if d := indentY(va.VerticalAlign(), availableHeight, full); d > 0 {
		b.injectTopPadding(d)
	}
}

// horizontalIndent returns the indentX of e for the given width, or 0 for
// elements without a horizontal alignment.
func horizontalIndent(e Element, available float64) float64 {
	ha, ok := e.(HorizontallyAligned)
	if !ok {
		return 0
	}
	return indentX(ha.HorizontalAlign(), available, e.PreparedSize().Width+e.FullXSum())
}

// resetAlignment removes padding injected by alignVertically, restoring
// the configured box.
func resetAlignment(e Element) {
	b := e.base()
	if b.injectedTop == 0 {
		return
	}
	size := b.preparedSize
	b.markNotPrepared()
	b.padding.Top -= b.injectedTop
	b.injectedTop = 0
	b.markPrepared(size)
}

// unalignedFullHeight is the full height of a prepared element without
// injected alignment padding.
func unalignedFullHeight(e Element) float64 {
	return e.PreparedSize().Height + e.FullYSum() - e.base().injectedTop
}

// detachedCopy returns a shallow copy of e without injected alignment
// padding, so a new parent can align it without touching e. Children are
// shared. Elements that cannot be aligned vertically are returned as is.
func detachedCopy(e Element) Element {
	var c Element
	switch v := e.(type) {
	case *Text:
		t := *v
		t.aligned.b = &t.Base
		c = &t
	case *Image:
		img := *v
		img.aligned.b = &img.Base
		c = &img
	case *HBox:
		h := *v
		h.aligned.b = &h.Base
		c = &h
	case *VBox:
		vb := *v
		vb.aligned.b = &vb.Base
		c = &vb
	case *Table:
		t := *v
		t.aligned.b = &t.Base
		c = &t
	default:
		return e
	}
	resetAlignment(c)
	return c
}
