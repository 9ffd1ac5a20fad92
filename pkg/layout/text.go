package layout

import (
	"math"
	"slices"
	"strings"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
	"pagebox/pkg/text"
)

// Text is a block of word-wrapped text. A splittable Text can be broken
// between lines across pages.
type Text struct {
	Base
	aligned

	text        string
	font        text.FontSpec
	lineSpacing float64
	maxRows     int
	splittable  bool
	placeholder bool

	lines      []text.Line
	lineHeight float64
}

// NewText creates a non-splittable text block.
func NewText(s string, font text.FontSpec, opts ...Option) *Text {
	t := &Text{Base: newBase(opts), text: s, font: font, lineSpacing: 1}
	t.aligned.b = &t.Base
	return t
}

// NewSplittableText creates a text block that pagination may split between
// lines.
func NewSplittableText(s string, font text.FontSpec, opts ...Option) *Text {
	t := NewText(s, font, opts...)
	t.splittable = true
	return t
}

func (t *Text) Kind() Kind                 { return KindText }
func (t *Text) Text() string               { return t.text }
func (t *Text) Font() text.FontSpec        { return t.font }
func (t *Text) LineSpacing() float64       { return t.lineSpacing }
func (t *Text) MaxRows() int               { return t.maxRows }
func (t *Text) IsSplittable() bool         { return t.splittable }
func (t *Text) ReplacesPlaceholders() bool { return t.placeholder }

// Lines returns the wrapped lines of a prepared text.
func (t *Text) Lines() []text.Line { return slices.Clone(t.lines) }

// LineHeight is the font line height multiplied by the line spacing.
func (t *Text) LineHeight() float64 { return t.lineHeight }

// SetLineSpacing sets the factor applied to the font line height.
func (t *Text) SetLineSpacing(f float64) error {
	if err := t.checkNotPrepared("line spacing"); err != nil {
		return err
	}
	if f <= 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "line spacing must be > 0, got %v", f)
	}
	t.lineSpacing = f
	return nil
}

// SetMaxRows limits the number of lines kept after wrapping. Zero means no
// limit.
func (t *Text) SetMaxRows(n int) error {
	if err := t.checkNotPrepared("max rows"); err != nil {
		return err
	}
	if n < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "max rows must be >= 0, got %d", n)
	}
	t.maxRows = n
	return nil
}

// SetSplittable toggles whether pagination may split the text.
func (t *Text) SetSplittable(v bool) error {
	if err := t.checkNotPrepared("splittable"); err != nil {
		return err
	}
	t.splittable = v
	return nil
}

// SetReplacePlaceholders enables "${name}" substitution at render time.
// Layout is computed on the unreplaced text, so replacements should have
// the same width.
func (t *Text) SetReplacePlaceholders(v bool) error {
	if err := t.checkNotPrepared("placeholders"); err != nil {
		return err
	}
	t.placeholder = v
	return nil
}

func (t *Text) onPrepare(ctx PrepareContext) (geom.Size, error) {
	if ctx.Global == nil || ctx.Global.Measurer == nil {
		return geom.SizeZero, errors.New(errors.ErrCodeIllegalState, "text %s: no measurer in global context", t.debugID())
	}
	m := ctx.Global.Measurer
	t.lineHeight = m.LineHeight(t.font) * t.lineSpacing
	t.lines = m.Wrap(t.font, t.text, math.Max(0, ctx.AvailableWidth))
	if t.maxRows > 0 && len(t.lines) > t.maxRows {
		t.lines = t.lines[:t.maxRows]
	}
	return t.measureLines(ctx.AvailableWidth), nil
}

func (t *Text) measureLines(available float64) geom.Size {
	var width float64
	for _, l := range t.lines {
		width = math.Max(width, l.Width)
	}
	if t.halign != AlignLeft {
		width = math.Max(width, available)
	}
	return geom.Size{Width: width, Height: float64(len(t.lines)) * t.lineHeight}
}

func (t *Text) onRender(ctx *RenderContext) error {
	for i, l := range t.lines {
		s, w := l.Text, l.Width
		if t.placeholder && len(ctx.Placeholders) > 0 {
			if r := replacePlaceholders(s, ctx.Placeholders); r != s {
				s = r
				if t.halign != AlignLeft && ctx.Global != nil && ctx.Global.Measurer != nil {
					w = ctx.Global.Measurer.Width(t.font, s)
				}
			}
		}
		if s == "" {
			continue
		}
		x := ctx.Left + indentX(t.halign, ctx.Width, w)
		y := ctx.Top - float64(i)*t.lineHeight
		if err := ctx.Surface.DrawText(t.font, x, y, s); err != nil {
			return err
		}
	}
	return nil
}

func replacePlaceholders(s string, values map[string]string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	for k, v := range values {
		s = strings.ReplaceAll(s, k, v)
	}
	return s
}

// Split breaks the text after floor(availableHeight / LineHeight) lines.
// Both halves are clamped to the min and max size of the text; a first half
// that its minimum height pushes past availableHeight makes the split fail.
func (t *Text) Split(elementWidth, availableHeight float64) *SplitResult {
	if !t.splittable || !t.prepared || availableHeight <= 0 || t.lineHeight <= 0 {
		return nil
	}
	perPage := int(math.Floor(availableHeight / t.lineHeight))
	if perPage <= 0 || perPage >= len(t.lines) {
		return nil
	}
	first := t.copyWithLines(t.lines[:perPage], false, "-1")
	if first.preparedSize.Height > availableHeight {
		return nil
	}
	second := t.copyWithLines(t.lines[perPage:], true, "-2")
	return &SplitResult{First: newEWS(first), Second: newEWS(second)}
}

func (t *Text) copyWithLines(lines []text.Line, splittable bool, suffix string) *Text {
	c := &Text{
		text:        joinLines(lines),
		font:        t.font,
		lineSpacing: t.lineSpacing,
		splittable:  splittable,
		placeholder: t.placeholder,
		lines:       slices.Clone(lines),
		lineHeight:  t.lineHeight,
	}
	c.aligned = aligned{b: &c.Base, halign: t.halign, valign: AlignTop}
	c.copyBoxFrom(&t.Base, suffix)
	// each half honors the size bounds of the original
	c.markPrepared(geom.Size{
		Width:  t.preparedSize.Width,
		Height: float64(len(lines)) * t.lineHeight,
	}.Clamp(c.minSize, c.maxSize))
	return c
}

func joinLines(lines []text.Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}
