package layout

import (
	"image/color"
	"math"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
)

// VBoxRow is one row of a VBox.
type VBoxRow struct {
	elem Element

	// full width and height of the element, set by prepare
	preparedWidth  float64
	preparedHeight float64
}

func (r *VBoxRow) Element() Element        { return r.elem }
func (r *VBoxRow) PreparedWidth() float64  { return r.preparedWidth }
func (r *VBoxRow) PreparedHeight() float64 { return r.preparedHeight }

// VBox stacks its rows top to bottom. Every row is prepared against the
// full available area.
type VBox struct {
	Base
	aligned

	rows       []*VBoxRow
	rowBorder  geom.Border
	rowFill    color.Color
	splittable bool
}

// NewVBox creates a vertical box that pagination never splits.
func NewVBox(opts ...Option) *VBox {
	v := &VBox{Base: newBase(opts)}
	v.aligned.b = &v.Base
	return v
}

// NewSplittableVBox creates a vertical box that can be split between rows.
func NewSplittableVBox(opts ...Option) *VBox {
	v := NewVBox(opts...)
	v.splittable = true
	return v
}

func (v *VBox) Kind() Kind             { return KindVBox }
func (v *VBox) IsSplittable() bool     { return v.splittable }
func (v *VBox) RowCount() int          { return len(v.rows) }
func (v *VBox) Row(i int) *VBoxRow     { return v.rows[i] }
func (v *VBox) RowBorder() geom.Border { return v.rowBorder }
func (v *VBox) RowFill() color.Color   { return v.rowFill }

// AddRow appends a row.
func (v *VBox) AddRow(e Element) (*VBoxRow, error) {
	if err := v.checkNotPrepared("rows"); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "vbox %s: row element is nil", v.debugID())
	}
	r := &VBoxRow{elem: e}
	v.rows = append(v.rows, r)
	return r, nil
}

// SetRowBorder sets the border painted around every row.
func (v *VBox) SetRowBorder(b geom.Border) error {
	if err := v.checkNotPrepared("row border"); err != nil {
		return err
	}
	v.rowBorder = b
	return nil
}

// SetRowFill sets the background painted behind every row.
func (v *VBox) SetRowFill(c color.Color) error {
	if err := v.checkNotPrepared("row fill"); err != nil {
		return err
	}
	v.rowFill = c
	return nil
}

// SetSplittable toggles whether pagination may split the box.
func (v *VBox) SetSplittable(s bool) error {
	if err := v.checkNotPrepared("splittable"); err != nil {
		return err
	}
	v.splittable = s
	return nil
}

func (v *VBox) onPrepare(ctx PrepareContext) (geom.Size, error) {
	bx := v.rowBorder.XSumWidth()
	by := v.rowBorder.YSumWidth()

	var size geom.Size
	for _, r := range v.rows {
		e := r.elem
		rctx := ctx.with(math.Max(0, ctx.AvailableWidth-bx-e.FullXSum()), math.Max(0, ctx.AvailableHeight-by-e.FullYSum()))
		if err := Prepare(e, rctx); err != nil {
			return geom.SizeZero, err
		}
		r.preparedWidth = e.PreparedSize().Width + e.FullXSum()
		r.preparedHeight = e.PreparedSize().Height + e.FullYSum()
		size.Width = math.Max(size.Width, r.preparedWidth+bx)
		size.Height += r.preparedHeight + by
	}

	if ctx.Global.debug().Prepare && size.Width-ctx.AvailableWidth > prepareEpsilon {
		ctx.Global.Log().Warn("vbox uses more width than available", "id", v.id,
			"used", size.Width, "available", ctx.AvailableWidth)
	}
	return size, nil
}

func (v *VBox) onRender(ctx *RenderContext) error {
	bx := v.rowBorder.XSumWidth()
	by := v.rowBorder.YSumWidth()
	inner := ctx.Width - bx

	y := ctx.Top
	for _, r := range v.rows {
		boxHeight := r.preparedHeight + by
		if err := paintBox(ctx, ctx.Left, y, ctx.Width, boxHeight, v.rowBorder, v.rowFill); err != nil {
			return err
		}
		left := ctx.Left + v.rowBorder.LeftWidth() + horizontalIndent(r.elem, inner)
		if err := Render(r.elem, ctx.at(left, y-v.rowBorder.TopWidth(), inner, r.preparedHeight)); err != nil {
			return err
		}
		y -= boxHeight
	}
	return nil
}

// Split divides the rows at the first row that does not fit. That row is
// split itself when possible, otherwise it starts the second half.
func (v *VBox) Split(elementWidth, availableHeight float64) *SplitResult {
	first, second := v.splitRows(0, availableHeight)
	if first == nil {
		return nil
	}
	a := v.copyWithRows(first, "-1")
	b := v.copyWithRows(second, "-2")
	return &SplitResult{First: newEWS(a), Second: newEWS(b)}
}

// splitRows walks the rows top to bottom. The first headerRows rows are
// put into both halves. It returns nil halves when splitting makes no
// sense.
func (v *VBox) splitRows(headerRows int, availableHeight float64) (first, second []Element) {
	if !v.splittable || !v.prepared || availableHeight <= 0 {
		return nil, nil
	}
	if v.preparedSize.Height <= availableHeight || len(v.rows) <= headerRows {
		return nil, nil
	}
	by := v.rowBorder.YSumWidth()

	var used float64
	for _, r := range v.rows[:headerRows] {
		first = append(first, r.elem)
		second = append(second, r.elem)
		used += r.preparedHeight + by
	}

	for i := headerRows; i < len(v.rows); i++ {
		r := v.rows[i]
		if used+r.preparedHeight+by <= availableHeight {
			first = append(first, r.elem)
			used += r.preparedHeight + by
			continue
		}

		e := r.elem
		res := trySplit(e, e.PreparedSize().Width, availableHeight-used-by-e.FullYSum())
		if res != nil {
			first = append(first, res.First.Element)
			second = append(second, res.Second.Element)
			i++
		}
		for ; i < len(v.rows); i++ {
			second = append(second, v.rows[i].elem)
		}
		break
	}

	if len(first) <= headerRows || len(second) <= headerRows {
		return nil, nil
	}
	return first, second
}

func (v *VBox) copyRowsInto(c *VBox, elems []Element, suffix string) {
	c.rowBorder = v.rowBorder
	c.rowFill = v.rowFill
	c.splittable = v.splittable
	c.aligned = aligned{b: &c.Base, halign: v.halign, valign: v.valign}
	c.copyBoxFrom(&v.Base, suffix)

	by := v.rowBorder.YSumWidth()
	var height float64
	c.rows = make([]*VBoxRow, len(elems))
	for i, e := range elems {
		r := &VBoxRow{
			elem:           e,
			preparedWidth:  e.PreparedSize().Width + e.FullXSum(),
			preparedHeight: e.PreparedSize().Height + e.FullYSum(),
		}
		c.rows[i] = r
		height += r.preparedHeight + by
	}
	c.markPrepared(geom.Size{Width: v.preparedSize.Width, Height: height})
}

func (v *VBox) copyWithRows(elems []Element, suffix string) *VBox {
	c := &VBox{}
	v.copyRowsInto(c, elems, suffix)
	return c
}
