package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
	"pagebox/pkg/text"
)

func newTestTable(t *testing.T, bodyRows int) *Table {
	t.Helper()
	tbl := NewTable([]geom.Width{geom.Star(), geom.Star()}, WithID("tbl"))
	_, err := tbl.AddRowElements(NewText("H1", text.DefaultFont), NewText("H2", text.DefaultFont))
	require.NoError(t, err)
	for i := 0; i < bodyRows; i++ {
		_, err := tbl.AddRowElements(NewSpacer(0, 20), NewSpacer(0, 20))
		require.NoError(t, err)
	}
	require.NoError(t, tbl.SetHeaderRowCount(1))
	return tbl
}

func TestTableHeaderRepetition(t *testing.T) {
	tbl := newTestTable(t, 5)
	prepareIn(t, newTestGlobal(), tbl, 200, 1000)
	require.Equal(t, 112.0, tbl.PreparedSize().Height)

	res := tbl.Split(200, 60)
	require.NotNil(t, res)
	first := res.First.Element.(*Table)
	second := res.Second.Element.(*Table)

	assert.Equal(t, KindTable, first.Kind())
	assert.Equal(t, 3, first.RowCount())
	assert.Equal(t, 4, second.RowCount())
	assert.Greater(t, second.RowCount(), second.HeaderRowCount())
	assert.Same(t, tbl.Row(0).Element(), first.Row(0).Element())
	assert.Same(t, tbl.Row(0).Element(), second.Row(0).Element())
	assert.Equal(t, 52.0, res.First.Size.Height)
	assert.Equal(t, 72.0, res.Second.Size.Height)
	assert.Equal(t, 1, second.HeaderRowCount())

	assert.Equal(t, 6, tbl.RowCount(), "the original keeps its rows")
	assert.Equal(t, 112.0, tbl.PreparedSize().Height)

	again := second.Split(200, 40)
	require.NotNil(t, again, "the second half can be split again")
	assert.Same(t, tbl.Row(0).Element(), again.Second.Element.(*Table).Row(0).Element())
}

func TestTableInFailedRowSplitKeepsCells(t *testing.T) {
	tbl := NewTable([]geom.Width{geom.Star(), geom.Star()})
	_, err := tbl.AddRowElements(NewText("H1", text.DefaultFont), NewText("H2", text.DefaultFont))
	require.NoError(t, err)
	short := NewText("short", text.DefaultFont)
	require.NoError(t, short.SetVerticalAlign(AlignBottom))
	body, err := tbl.AddRowElements(NewSplittableText(numberedLines(10), text.DefaultFont), short)
	require.NoError(t, err)
	require.NoError(t, tbl.SetHeaderRowCount(1))

	outer := NewSplittableHBox()
	_, err = outer.AddColumn(tbl, geom.Star())
	require.NoError(t, err)
	_, err = outer.AddColumn(NewSpacer(10, 500), geom.Star())
	require.NoError(t, err)
	prepareIn(t, newTestGlobal(), outer, 400, 1000)
	require.Equal(t, 108.0, short.Padding().Top)

	require.NotNil(t, tbl.Split(200, 50), "the table alone can be split")
	assert.Nil(t, outer.Split(400, 50))

	assert.Equal(t, 108.0, short.Padding().Top)
	assert.Same(t, short, body.Column(1).Element())
	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, 132.0, tbl.PreparedSize().Height)
}

func TestTableSplitLeavingOnlyHeadersFails(t *testing.T) {
	tbl := newTestTable(t, 3)
	prepareIn(t, newTestGlobal(), tbl, 200, 1000)

	assert.Nil(t, tbl.Split(200, 20))
}

func TestTableAddRowSpans(t *testing.T) {
	tbl := NewTable([]geom.Width{geom.Abs(100), geom.Abs(50), geom.Star()})
	row, err := tbl.AddRow(SpanCell(NewSpacer(0, 10), 2))
	require.NoError(t, err)
	require.Equal(t, 2, row.ColumnCount())
	assert.Equal(t, geom.Abs(150), row.Column(0).Width())
	assert.Equal(t, geom.Star(), row.Column(1).Width())
	assert.IsType(t, &Spacer{}, row.Column(1).Element())
}

func TestTableStarSpanBecomesPercentage(t *testing.T) {
	tbl := NewTable([]geom.Width{geom.Star(), geom.Star(), geom.Star(), geom.Star()})
	row, err := tbl.AddRow(SpanCell(NewSpacer(0, 10), 2), Cell(NewSpacer(0, 10)))
	require.NoError(t, err)
	assert.Equal(t, geom.Percent(50), row.Column(0).Width())
	assert.Equal(t, geom.Star(), row.Column(1).Width())
	assert.Equal(t, 3, row.ColumnCount())

	prepareIn(t, newTestGlobal(), tbl, 400, 100)
	assert.Equal(t, []float64{200, 100, 100}, columnWidths(row))
}

func TestTableConstructionErrors(t *testing.T) {
	tbl := NewTable([]geom.Width{geom.Abs(100), geom.Star()})

	_, err := tbl.AddRow(SpanCell(NewSpacer(0, 10), 2))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument), "mixed kinds in span")

	_, err = tbl.AddRowElements(NewSpacer(0, 1), NewSpacer(0, 1), NewSpacer(0, 1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument), "too many cells")

	err = tbl.SetHeaderRowCount(1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument), "more header rows than rows")

	assert.Panics(t, func() { NewTable(nil) })
}
