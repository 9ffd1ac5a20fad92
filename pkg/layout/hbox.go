package layout

import (
	"image/color"
	"math"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
)

// prepareEpsilon is the rounding slack tolerated before a box reports that
// its children used more space than available.
const prepareEpsilon = 0.01

// HBoxColumn is one column of an HBox.
type HBoxColumn struct {
	elem  Element
	width geom.Width

	// set by prepare: the full width allotted to the column and the full
	// height of its element
	preparedWidth  float64
	preparedHeight float64
}

func (c *HBoxColumn) Element() Element        { return c.elem }
func (c *HBoxColumn) Width() geom.Width       { return c.width }
func (c *HBoxColumn) PreparedWidth() float64  { return c.preparedWidth }
func (c *HBoxColumn) PreparedHeight() float64 { return c.preparedHeight }

// HBox lays its columns out left to right. Each column has a width spec;
// star columns share what the other columns leave over.
type HBox struct {
	Base
	aligned

	columns      []*HBoxColumn
	columnBorder geom.Border
	columnFill   color.Color
	splittable   bool
}

// NewHBox creates a horizontal box that pagination never splits.
func NewHBox(opts ...Option) *HBox {
	h := &HBox{Base: newBase(opts)}
	h.aligned.b = &h.Base
	return h
}

// NewSplittableHBox creates a horizontal box that can be split when one of
// its columns overflows.
func NewSplittableHBox(opts ...Option) *HBox {
	h := NewHBox(opts...)
	h.splittable = true
	return h
}

func (h *HBox) Kind() Kind                { return KindHBox }
func (h *HBox) IsSplittable() bool        { return h.splittable }
func (h *HBox) ColumnCount() int          { return len(h.columns) }
func (h *HBox) Column(i int) *HBoxColumn  { return h.columns[i] }
func (h *HBox) ColumnBorder() geom.Border { return h.columnBorder }
func (h *HBox) ColumnFill() color.Color   { return h.columnFill }

// AddColumn appends a column.
func (h *HBox) AddColumn(e Element, w geom.Width) (*HBoxColumn, error) {
	if err := h.checkNotPrepared("columns"); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "hbox %s: column element is nil", h.debugID())
	}
	c := &HBoxColumn{elem: e, width: w}
	h.columns = append(h.columns, c)
	return c, nil
}

// SetColumnBorder sets the border painted around every column.
func (h *HBox) SetColumnBorder(b geom.Border) error {
	if err := h.checkNotPrepared("column border"); err != nil {
		return err
	}
	h.columnBorder = b
	return nil
}

// SetColumnFill sets the background painted behind every column.
func (h *HBox) SetColumnFill(c color.Color) error {
	if err := h.checkNotPrepared("column fill"); err != nil {
		return err
	}
	h.columnFill = c
	return nil
}

// SetSplittable toggles whether pagination may split the box.
func (h *HBox) SetSplittable(v bool) error {
	if err := h.checkNotPrepared("splittable"); err != nil {
		return err
	}
	h.splittable = v
	return nil
}

func (h *HBox) onPrepare(ctx PrepareContext) (geom.Size, error) {
	bx := h.columnBorder.XSumWidth()
	by := h.columnBorder.YSumWidth()
	available := ctx.AvailableWidth - bx*float64(len(h.columns))

	var used float64
	prepareColumn := func(c *HBoxColumn, full float64) error {
		e := c.elem
		cctx := ctx.with(math.Max(0, full-e.FullXSum()), math.Max(0, ctx.AvailableHeight-by-e.FullYSum()))
		if err := Prepare(e, cctx); err != nil {
			return err
		}
		c.preparedWidth = full
		c.preparedHeight = e.PreparedSize().Height + e.FullYSum()
		used += full
		return nil
	}

	stars := 0
	for _, c := range h.columns {
		if c.width.IsStar() {
			stars++
			continue
		}
		if err := prepareColumn(c, c.width.Resolve(available)); err != nil {
			return geom.SizeZero, err
		}
	}

	if stars > 0 {
		rest := available - used
		if rest < 0 {
			ctx.Global.Log().Warn("no width left for star columns", "id", h.id, "available", available, "used", used)
			rest = 0
		}
		each := rest / float64(stars)
		for _, c := range h.columns {
			if !c.width.IsStar() {
				continue
			}
			if err := prepareColumn(c, each); err != nil {
				return geom.SizeZero, err
			}
		}
	}

	rowHeight := h.alignColumns()

	size := geom.Size{Width: used + bx*float64(len(h.columns)), Height: rowHeight + by}
	if ctx.Global.debug().Prepare {
		if size.Width-ctx.AvailableWidth > prepareEpsilon {
			ctx.Global.Log().Warn("hbox uses more width than available", "id", h.id,
				"used", size.Width, "available", ctx.AvailableWidth)
		}
		if size.Height-ctx.AvailableHeight > prepareEpsilon {
			ctx.Global.Log().Warn("hbox uses more height than available", "id", h.id,
				"used", size.Height, "available", ctx.AvailableHeight)
		}
	}
	return size, nil
}

// alignColumns pushes vertically aligned columns down within the row and
// returns the row height.
func (h *HBox) alignColumns() float64 {
	var rowHeight float64
	for _, c := range h.columns {
		rowHeight = math.Max(rowHeight, c.preparedHeight)
	}
	for _, c := range h.columns {
		alignVertically(c.elem, rowHeight)
		c.preparedHeight = c.elem.PreparedSize().Height + c.elem.FullYSum()
	}
	return rowHeight
}

func (h *HBox) onRender(ctx *RenderContext) error {
	bx := h.columnBorder.XSumWidth()
	by := h.columnBorder.YSumWidth()
	rowHeight := h.preparedSize.Height - by

	x := ctx.Left
	for _, c := range h.columns {
		boxWidth := c.preparedWidth + bx
		if err := paintBox(ctx, x, ctx.Top, boxWidth, rowHeight+by, h.columnBorder, h.columnFill); err != nil {
			return err
		}
		left := x + h.columnBorder.LeftWidth()
		cctx := ctx.at(left+horizontalIndent(c.elem, c.preparedWidth), ctx.Top-h.columnBorder.TopWidth(),
			c.preparedWidth, rowHeight)
		if err := Render(c.elem, cctx); err != nil {
			return err
		}
		x += boxWidth
	}
	return nil
}

// Split divides every overflowing column. Columns that fit are copied into
// the first half and leave an empty placeholder in the second. If any
// overflowing column cannot be split, the box cannot be split. The
// receiver and its columns are never modified.
func (h *HBox) Split(elementWidth, availableHeight float64) *SplitResult {
	if !h.splittable || !h.prepared || availableHeight <= 0 {
		return nil
	}
	by := h.columnBorder.YSumWidth()
	columnHeight := availableHeight - by

	overflow := false
	for _, c := range h.columns {
		if unalignedFullHeight(c.elem) > columnHeight {
			overflow = true
			break
		}
	}
	if !overflow {
		return nil
	}

	firsts := make([]Element, len(h.columns))
	seconds := make([]Element, len(h.columns))
	for i, c := range h.columns {
		e := c.elem
		if unalignedFullHeight(e) <= columnHeight {
			firsts[i] = e
			seconds[i] = preparedSpacer(c.preparedWidth)
			continue
		}
		ownY := e.FullYSum() - e.base().injectedTop
		res := trySplit(e, c.preparedWidth-e.FullXSum(), columnHeight-ownY)
		if res == nil {
			return nil
		}
		firsts[i] = res.First.Element
		seconds[i] = res.Second.Element
	}
	// the first half realigns its columns; the receiver keeps its own
	for i, c := range h.columns {
		if firsts[i] == c.elem {
			firsts[i] = detachedCopy(c.elem)
		}
	}

	first := h.copyWithColumns(firsts, "-1")
	second := h.copyWithColumns(seconds, "-2")
	return &SplitResult{First: newEWS(first), Second: newEWS(second)}
}

func (h *HBox) copyWithColumns(elems []Element, suffix string) *HBox {
	c := &HBox{
		columnBorder: h.columnBorder,
		columnFill:   h.columnFill,
		splittable:   h.splittable,
	}
	c.aligned = aligned{b: &c.Base, halign: h.halign, valign: h.valign}
	c.copyBoxFrom(&h.Base, suffix)
	c.columns = make([]*HBoxColumn, len(elems))
	for i, e := range elems {
		c.columns[i] = &HBoxColumn{
			elem:           e,
			width:          h.columns[i].width,
			preparedWidth:  h.columns[i].preparedWidth,
			preparedHeight: e.PreparedSize().Height + e.FullYSum(),
		}
	}
	rowHeight := c.alignColumns()
	c.markPrepared(geom.Size{Width: h.preparedSize.Width, Height: rowHeight + h.columnBorder.YSumWidth()})
	return c
}
