package layout

import (
	"image/color"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
)

// TableCell is one cell of a table row. A cell may span several columns.
type TableCell struct {
	Element Element
	ColSpan int
}

// Cell creates a cell covering one column.
func Cell(e Element) *TableCell { return &TableCell{Element: e, ColSpan: 1} }

// SpanCell creates a cell covering n columns.
func SpanCell(e Element, n int) *TableCell { return &TableCell{Element: e, ColSpan: n} }

// Table is a VBox whose rows are HBoxes sharing one set of column widths.
// The first HeaderRowCount rows are repeated on every page the table
// spans.
type Table struct {
	VBox

	widths     []geom.Width
	headerRows int
	cellBorder geom.Border
	cellFill   color.Color
}

// NewTable creates a splittable table with the given column widths.
func NewTable(widths []geom.Width, opts ...Option) *Table {
	if len(widths) == 0 {
		errors.Invalid("table needs at least one column")
	}
	t := &Table{VBox: VBox{Base: newBase(opts), splittable: true}, widths: append([]geom.Width(nil), widths...)}
	t.aligned.b = &t.Base
	return t
}

func (t *Table) Kind() Kind              { return KindTable }
func (t *Table) ColumnCount() int        { return len(t.widths) }
func (t *Table) Widths() []geom.Width    { return append([]geom.Width(nil), t.widths...) }
func (t *Table) HeaderRowCount() int     { return t.headerRows }
func (t *Table) CellBorder() geom.Border { return t.cellBorder }
func (t *Table) CellFill() color.Color   { return t.cellFill }

// SetCellBorder sets the column border of rows added afterwards.
func (t *Table) SetCellBorder(b geom.Border) error {
	if err := t.checkNotPrepared("cell border"); err != nil {
		return err
	}
	t.cellBorder = b
	return nil
}

// SetCellFill sets the column fill of rows added afterwards.
func (t *Table) SetCellFill(c color.Color) error {
	if err := t.checkNotPrepared("cell fill"); err != nil {
		return err
	}
	t.cellFill = c
	return nil
}

// SetHeaderRowCount marks the first n rows as header rows.
func (t *Table) SetHeaderRowCount(n int) error {
	if err := t.checkNotPrepared("header rows"); err != nil {
		return err
	}
	if n < 0 || n > len(t.rows) {
		return errors.New(errors.ErrCodeInvalidArgument,
			"table %s: header row count %d out of range [0, %d]", t.debugID(), n, len(t.rows))
	}
	t.headerRows = n
	return nil
}

// AddRow appends a row of cells. Missing trailing cells are filled with
// empty spacers; more cells than columns is an error.
func (t *Table) AddRow(cells ...*TableCell) (*HBox, error) {
	if err := t.checkNotPrepared("rows"); err != nil {
		return nil, err
	}
	row := NewSplittableHBox()
	row.columnBorder = t.cellBorder
	row.columnFill = t.cellFill

	col := 0
	for i, cell := range cells {
		if cell == nil || cell.Element == nil {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "table %s: cell %d is empty", t.debugID(), i)
		}
		span := max(1, cell.ColSpan)
		if col+span > len(t.widths) {
			return nil, errors.New(errors.ErrCodeInvalidArgument,
				"table %s: row uses %d columns, table has %d", t.debugID(), col+span, len(t.widths))
		}
		w, err := geom.Span(t.widths[col:col+span], len(t.widths))
		if err != nil {
			return nil, err
		}
		if _, err := row.AddColumn(cell.Element, w); err != nil {
			return nil, err
		}
		col += span
	}
	for ; col < len(t.widths); col++ {
		if _, err := row.AddColumn(NewSpacer(0, 0), t.widths[col]); err != nil {
			return nil, err
		}
	}

	if _, err := t.VBox.AddRow(row); err != nil {
		return nil, err
	}
	return row, nil
}

// AddRowElements appends a row with one cell per element.
func (t *Table) AddRowElements(elems ...Element) (*HBox, error) {
	cells := make([]*TableCell, len(elems))
	for i, e := range elems {
		cells[i] = Cell(e)
	}
	return t.AddRow(cells...)
}

// Split works like VBox.Split but repeats the header rows in both halves.
func (t *Table) Split(elementWidth, availableHeight float64) *SplitResult {
	first, second := t.splitRows(t.headerRows, availableHeight)
	if first == nil {
		return nil
	}
	a := t.copyWithRows(first, "-1")
	b := t.copyWithRows(second, "-2")
	return &SplitResult{First: newEWS(a), Second: newEWS(b)}
}

func (t *Table) copyWithRows(elems []Element, suffix string) *Table {
	c := &Table{
		widths:     t.widths,
		headerRows: t.headerRows,
		cellBorder: t.cellBorder,
		cellFill:   t.cellFill,
	}
	t.VBox.copyRowsInto(&c.VBox, elems, suffix)
	return c
}
