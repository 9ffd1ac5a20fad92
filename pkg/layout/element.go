package layout

import (
	"image/color"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
)

// Kind is the closed set of element variants.
type Kind uint8

const (
	KindText Kind = iota
	KindImage
	KindSpacer
	KindPageBreak
	KindHBox
	KindVBox
	KindTable

	kindPageSet
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindSpacer:
		return "spacer"
	case KindPageBreak:
		return "pagebreak"
	case KindHBox:
		return "hbox"
	case KindVBox:
		return "vbox"
	case KindTable:
		return "table"
	case kindPageSet:
		return "pageset"
	}
	return "element"
}

// Element is a node of the layout tree. The set of implementations is
// closed: Text, Image, Spacer, PageBreak, HBox, VBox and Table. Optional
// capabilities are expressed by HorizontallyAligned, VerticallyAligned and
// Splittable.
type Element interface {
	ID() string
	Kind() Kind

	Margin() geom.Margin
	Border() geom.Border
	Padding() geom.Padding
	FillColor() color.Color
	MinSize() geom.Size
	MaxSize() geom.Size

	IsPrepared() bool
	PreparedSize() geom.Size
	AvailableSize() geom.Size
	FullXSum() float64
	FullYSum() float64

	base() *Base
	onPrepare(ctx PrepareContext) (geom.Size, error)
	onRender(ctx *RenderContext) error
}

// Base is the box-model state shared by every element: margin, border,
// padding, fill, size bounds and the prepared state. Box-model setters fail
// once the element is prepared.
type Base struct {
	id      string
	margin  geom.Margin
	border  geom.Border
	padding geom.Padding
	fill    color.Color
	minSize geom.Size
	maxSize geom.Size

	prepared      bool
	preparedSize  geom.Size
	availableSize geom.Size

	// injectedTop is the part of padding.Top added by vertical alignment.
	injectedTop float64
}

func newBase(opts []Option) Base {
	b := Base{maxSize: geom.SizeUnbounded}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *Base) base() *Base { return b }

// ID is the caller-supplied or session-assigned identifier.
func (b *Base) ID() string { return b.id }

func (b *Base) Margin() geom.Margin      { return b.margin }
func (b *Base) Border() geom.Border      { return b.border }
func (b *Base) Padding() geom.Padding    { return b.padding }
func (b *Base) FillColor() color.Color   { return b.fill }
func (b *Base) MinSize() geom.Size       { return b.minSize }
func (b *Base) MaxSize() geom.Size       { return b.maxSize }
func (b *Base) IsPrepared() bool         { return b.prepared }
func (b *Base) PreparedSize() geom.Size  { return b.preparedSize }
func (b *Base) AvailableSize() geom.Size { return b.availableSize }

func (b *Base) checkNotPrepared(what string) error {
	if b.prepared {
		return errors.New(errors.ErrCodeIllegalState, "cannot change %s of prepared element %s", what, b.debugID())
	}
	return nil
}

func (b *Base) debugID() string {
	if b.id == "" {
		return "<unnamed>"
	}
	return b.id
}

// SetID sets the identifier used in logs.
func (b *Base) SetID(id string) error {
	if err := b.checkNotPrepared("id"); err != nil {
		return err
	}
	b.id = id
	return nil
}

// SetMargin replaces the margin.
func (b *Base) SetMargin(m geom.Margin) error {
	if err := b.checkNotPrepared("margin"); err != nil {
		return err
	}
	b.margin = m
	return nil
}

// SetBorder replaces the border.
func (b *Base) SetBorder(br geom.Border) error {
	if err := b.checkNotPrepared("border"); err != nil {
		return err
	}
	b.border = br
	return nil
}

// SetPadding replaces the padding.
func (b *Base) SetPadding(p geom.Padding) error {
	if err := b.checkNotPrepared("padding"); err != nil {
		return err
	}
	b.padding = p
	return nil
}

// SetFillColor sets the background of the padding box; nil disables it.
func (b *Base) SetFillColor(c color.Color) error {
	if err := b.checkNotPrepared("fill color"); err != nil {
		return err
	}
	b.fill = c
	return nil
}

// SetMinSize sets the lower bound of the prepared content size.
func (b *Base) SetMinSize(s geom.Size) error {
	if err := b.checkNotPrepared("min size"); err != nil {
		return err
	}
	b.minSize = s
	return nil
}

// SetMaxSize sets the upper bound of the prepared content size.
func (b *Base) SetMaxSize(s geom.Size) error {
	if err := b.checkNotPrepared("max size"); err != nil {
		return err
	}
	b.maxSize = s
	return nil
}

// FullTop is margin + border + padding on the top side.
func (b *Base) FullTop() float64 { return b.margin.Top + b.border.TopWidth() + b.padding.Top }

// FullRight is margin + border + padding on the right side.
func (b *Base) FullRight() float64 { return b.margin.Right + b.border.RightWidth() + b.padding.Right }

// FullBottom is margin + border + padding on the bottom side.
func (b *Base) FullBottom() float64 {
	return b.margin.Bottom + b.border.BottomWidth() + b.padding.Bottom
}

// FullLeft is margin + border + padding on the left side.
func (b *Base) FullLeft() float64 { return b.margin.Left + b.border.LeftWidth() + b.padding.Left }

// FullXSum is FullLeft + FullRight.
func (b *Base) FullXSum() float64 {
	return b.margin.XSum() + b.border.XSumWidth() + b.padding.XSum()
}

// FullYSum is FullTop + FullBottom.
func (b *Base) FullYSum() float64 {
	return b.margin.YSum() + b.border.YSumWidth() + b.padding.YSum()
}

// MarginAndBorderXSum positions the painted box before padding is added.
func (b *Base) MarginAndBorderXSum() float64 { return b.margin.XSum() + b.border.XSumWidth() }

// MarginAndBorderYSum positions the painted box before padding is added.
func (b *Base) MarginAndBorderYSum() float64 { return b.margin.YSum() + b.border.YSumWidth() }

// markNotPrepared reopens the element so a parent can adjust its box model.
// It must be followed by markPrepared with a size measured against the
// same available area.
func (b *Base) markNotPrepared() {
	b.prepared = false
}

// markPrepared freezes the element with an externally computed size. Split
// halves are created this way.
func (b *Base) markPrepared(size geom.Size) {
	b.prepared = true
	b.preparedSize = size
}

// injectTopPadding moves content down by delta while keeping the content
// size, so alignment needs no render-time branch.
func (b *Base) injectTopPadding(delta float64) {
	size := b.preparedSize
	b.markNotPrepared()
	b.padding.Top += delta
	b.injectedTop += delta
	b.markPrepared(size)
}

// copyBoxFrom copies the box model of src, without any padding that
// alignment injected, into a fresh unprepared base.
func (b *Base) copyBoxFrom(src *Base, idSuffix string) {
	b.margin = src.margin
	b.border = src.border
	b.padding = src.padding
	b.padding.Top -= src.injectedTop
	b.fill = src.fill
	b.minSize = src.minSize
	b.maxSize = src.maxSize
	b.availableSize = src.availableSize
	if src.id != "" {
		b.id = src.id + idSuffix
	}
}

// Option configures the box model of a new element.
type Option func(*Base)

// WithID sets the element ID.
func WithID(id string) Option { return func(b *Base) { b.id = id } }

// WithMargin sets the margin.
func WithMargin(m geom.Margin) Option { return func(b *Base) { b.margin = m } }

// WithPadding sets the padding.
func WithPadding(p geom.Padding) Option { return func(b *Base) { b.padding = p } }

// WithBorder sets the border.
func WithBorder(br geom.Border) Option { return func(b *Base) { b.border = br } }

// WithFill sets the fill color.
func WithFill(c color.Color) Option { return func(b *Base) { b.fill = c } }

// WithMinSize sets the minimum content size.
func WithMinSize(s geom.Size) Option { return func(b *Base) { b.minSize = s } }

// WithMaxSize sets the maximum content size.
func WithMaxSize(s geom.Size) Option { return func(b *Base) { b.maxSize = s } }
