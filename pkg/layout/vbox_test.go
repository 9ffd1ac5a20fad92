package layout

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagebox/pkg/geom"
	"pagebox/pkg/text"
)

func newSpacerVBox(t *testing.T, heights ...float64) *VBox {
	t.Helper()
	v := NewSplittableVBox(WithID("list"))
	for _, h := range heights {
		_, err := v.AddRow(NewSpacer(10, h))
		require.NoError(t, err)
	}
	return v
}

func TestVBoxPrepareSumsRows(t *testing.T) {
	v := NewVBox()
	_, err := v.AddRow(NewSpacer(50, 10))
	require.NoError(t, err)
	_, err = v.AddRow(NewSpacer(50, 10, WithMargin(geom.All(5))))
	require.NoError(t, err)
	_, err = v.AddRow(NewSpacer(80, 20))
	require.NoError(t, err)
	prepareIn(t, newTestGlobal(), v, 200, 100)

	assert.Equal(t, geom.NewSize(80, 50), v.PreparedSize())
	assert.Equal(t, 60.0, v.Row(1).PreparedWidth())
	assert.Equal(t, 20.0, v.Row(1).PreparedHeight())
}

func TestVBoxRowBorder(t *testing.T) {
	v := NewVBox()
	require.NoError(t, v.SetRowBorder(geom.AllBorders(geom.NewBorderStyle(color.Black, 2))))
	require.NoError(t, v.SetRowFill(color.White))
	_, err := v.AddRow(NewSpacer(50, 10))
	require.NoError(t, err)
	_, err = v.AddRow(NewSpacer(50, 10))
	require.NoError(t, err)
	g := newTestGlobal()
	prepareIn(t, g, v, 200, 100)
	assert.Equal(t, geom.NewSize(54, 28), v.PreparedSize())

	rec := renderAt(t, g, v, 0, 100)
	fills := rec.OfKind("fill")
	require.Len(t, fills, 2)
	assert.Equal(t, 98.0, fills[0].Y)
	assert.Equal(t, 84.0, fills[1].Y)
	assert.Len(t, rec.OfKind("stroke"), 2)
}

func TestVBoxRowsRespectHorizontalAlignment(t *testing.T) {
	g := newTestGlobal()
	v := NewVBox()
	inner := NewHBox()
	require.NoError(t, inner.SetHorizontalAlign(AlignCenter))
	_, err := inner.AddColumn(NewSpacer(40, 10, WithFill(color.White)), geom.Abs(40))
	require.NoError(t, err)
	_, err = v.AddRow(inner)
	require.NoError(t, err)
	_, err = v.AddRow(NewSpacer(100, 10))
	require.NoError(t, err)
	prepareIn(t, g, v, 100, 100)

	fills := renderAt(t, g, v, 0, 100).OfKind("fill")
	require.Len(t, fills, 1)
	assert.Equal(t, 30.0, fills[0].X)
}

func TestVBoxSplitBetweenRows(t *testing.T) {
	v := newSpacerVBox(t, 20, 20, 20, 20, 20)
	prepareIn(t, newTestGlobal(), v, 100, 1000)

	res := v.Split(v.PreparedSize().Width, 50)
	require.NotNil(t, res)
	first := res.First.Element.(*VBox)
	second := res.Second.Element.(*VBox)
	assert.Equal(t, 2, first.RowCount())
	assert.Equal(t, 3, second.RowCount())
	assert.Equal(t, 40.0, res.First.Size.Height)
	assert.Equal(t, 60.0, res.Second.Size.Height)
	assert.Equal(t, "list-1", first.ID())
	assert.Same(t, v.Row(2).Element(), second.Row(0).Element())
	assert.Equal(t, 5, v.RowCount(), "original keeps its rows")
}

func TestVBoxSplitSubSplitsOverflowingRow(t *testing.T) {
	v := NewSplittableVBox()
	_, err := v.AddRow(NewSpacer(10, 30))
	require.NoError(t, err)
	_, err = v.AddRow(NewSplittableText(numberedLines(10), text.DefaultFont))
	require.NoError(t, err)
	_, err = v.AddRow(NewSpacer(10, 5))
	require.NoError(t, err)
	prepareIn(t, newTestGlobal(), v, 100, 1000)

	res := v.Split(100, 80)
	require.NotNil(t, res)
	first := res.First.Element.(*VBox)
	second := res.Second.Element.(*VBox)

	require.Equal(t, 2, first.RowCount())
	assert.Len(t, first.Row(1).Element().(*Text).Lines(), 4)
	assert.Equal(t, 78.0, res.First.Size.Height)

	require.Equal(t, 2, second.RowCount())
	assert.Len(t, second.Row(0).Element().(*Text).Lines(), 6)
	assert.Equal(t, 77.0, res.Second.Size.Height)

	require.Equal(t, 3, v.RowCount())
	assert.Len(t, v.Row(1).Element().(*Text).Lines(), 10)
	assert.Equal(t, 155.0, v.PreparedSize().Height)
}

func TestVBoxSplitMakesNoSense(t *testing.T) {
	g := newTestGlobal()

	v := newSpacerVBox(t, 60, 20)
	prepareIn(t, g, v, 100, 1000)
	assert.Nil(t, v.Split(100, 50), "first row neither fits nor splits")
	assert.Nil(t, v.Split(100, 80), "everything fits")
	assert.Nil(t, v.Split(100, 0), "no height")

	fixed := NewVBox()
	for i := 0; i < 3; i++ {
		_, err := fixed.AddRow(NewSpacer(10, 20))
		require.NoError(t, err)
	}
	prepareIn(t, g, fixed, 100, 1000)
	assert.Nil(t, fixed.Split(100, 30), "not splittable")
}
