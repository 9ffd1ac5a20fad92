package layout

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
	"pagebox/pkg/render"
	"pagebox/pkg/text"
)

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "l" + strconv.Itoa(i)
	}
	return strings.Join(lines, "\n")
}

func lineTexts(lines []text.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestTextPrepareWrapsLines(t *testing.T) {
	tx := NewText("aaaa bbbb cccc", text.DefaultFont)
	prepareIn(t, newTestGlobal(), tx, 50, 100)

	assert.Equal(t, []string{"aaaa bbbb", "cccc"}, lineTexts(tx.Lines()))
	assert.Equal(t, 45.0, tx.PreparedSize().Width)
	assert.Equal(t, 24.0, tx.PreparedSize().Height)
}

func TestTextWithoutMeasurerFails(t *testing.T) {
	tx := NewText("x", text.DefaultFont)
	err := Prepare(tx, PrepareContext{AvailableWidth: 10, AvailableHeight: 10, Global: &GlobalContext{}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeIllegalState))
}

func TestTextMaxRowsAndLineSpacing(t *testing.T) {
	tx := NewText(numberedLines(10), text.DefaultFont)
	require.NoError(t, tx.SetMaxRows(3))
	require.NoError(t, tx.SetLineSpacing(1.5))
	prepareIn(t, newTestGlobal(), tx, 100, 1000)

	assert.Len(t, tx.Lines(), 3)
	assert.Equal(t, 18.0, tx.LineHeight())
	assert.Equal(t, 54.0, tx.PreparedSize().Height)

	assert.Error(t, NewText("", text.DefaultFont).SetLineSpacing(0))
	assert.Error(t, NewText("", text.DefaultFont).SetMaxRows(-1))
}

func TestTextSplitLinesPerPage(t *testing.T) {
	tx := NewSplittableText(numberedLines(10), text.DefaultFont, WithID("body"))
	require.NoError(t, tx.SetVerticalAlign(AlignBottom))
	prepareIn(t, newTestGlobal(), tx, 100, 1000)
	require.Equal(t, 120.0, tx.PreparedSize().Height)

	res := tx.Split(tx.PreparedSize().Width, 50)
	require.NotNil(t, res)

	first := res.First.Element.(*Text)
	second := res.Second.Element.(*Text)
	assert.Len(t, first.Lines(), 4)
	assert.Len(t, second.Lines(), 6)
	assert.Equal(t, 48.0, res.First.Size.Height)
	assert.LessOrEqual(t, res.First.Size.Height, 50.0)
	assert.Equal(t, 72.0, res.Second.Size.Height)

	joined := append(lineTexts(first.Lines()), lineTexts(second.Lines())...)
	assert.Equal(t, lineTexts(tx.Lines()), joined)

	assert.False(t, first.IsSplittable())
	assert.True(t, second.IsSplittable())
	assert.Equal(t, AlignTop, first.VerticalAlign())
	assert.Equal(t, AlignTop, second.VerticalAlign())
	assert.True(t, first.IsPrepared())
	assert.True(t, second.IsPrepared())
	assert.Equal(t, "body-1", first.ID())
	assert.Equal(t, "body-2", second.ID())
	assert.Len(t, tx.Lines(), 10, "split must not change the original")
}

func TestTextSplitHalvesHonorSizeBounds(t *testing.T) {
	g := newTestGlobal()

	capped := NewSplittableText(numberedLines(10), text.DefaultFont, WithMaxSize(geom.NewSize(1000, 60)))
	prepareIn(t, g, capped, 100, 1000)
	require.Equal(t, 60.0, capped.PreparedSize().Height)
	res := capped.Split(100, 50)
	require.NotNil(t, res)
	assert.Equal(t, 48.0, res.First.Size.Height)
	assert.Equal(t, 60.0, res.Second.Size.Height)
	assert.Len(t, res.Second.Element.(*Text).Lines(), 6)

	padded := NewSplittableText(numberedLines(10), text.DefaultFont, WithMinSize(geom.NewSize(0, 40)))
	prepareIn(t, g, padded, 100, 1000)
	res = padded.Split(100, 110)
	require.NotNil(t, res)
	assert.Equal(t, 108.0, res.First.Size.Height)
	assert.Equal(t, 40.0, res.Second.Size.Height)

	tall := NewSplittableText(numberedLines(10), text.DefaultFont, WithMinSize(geom.NewSize(0, 100)))
	prepareIn(t, g, tall, 100, 1000)
	assert.Nil(t, tall.Split(100, 50), "minimum height does not fit")
}

func TestTextSplitMakesNoSense(t *testing.T) {
	g := newTestGlobal()
	splittable := NewSplittableText(numberedLines(10), text.DefaultFont)
	prepareIn(t, g, splittable, 100, 1000)
	fixed := NewText(numberedLines(10), text.DefaultFont)
	prepareIn(t, g, fixed, 100, 1000)

	tests := []struct {
		name      string
		tx        *Text
		available float64
	}{
		{"no height", splittable, 0},
		{"negative height", splittable, -5},
		{"less than a line", splittable, 11},
		{"everything fits", splittable, 120},
		{"not splittable", fixed, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, tt.tx.Split(100, tt.available))
		})
	}
}

func TestTextAlignRightUsesAvailableWidth(t *testing.T) {
	g := newTestGlobal()
	tx := NewText("ab", text.DefaultFont)
	require.NoError(t, tx.SetHorizontalAlign(AlignRight))
	prepareIn(t, g, tx, 100, 100)
	assert.Equal(t, 100.0, tx.PreparedSize().Width)

	rec := renderAt(t, g, tx, 0, 500)
	ops := rec.Texts()
	require.Equal(t, []string{"ab"}, ops)
	assert.Equal(t, 90.0, rec.Ops[0].X)
	assert.Equal(t, 500.0, rec.Ops[0].Y)
}

func TestTextReplacesPlaceholdersAtRender(t *testing.T) {
	g := newTestGlobal()
	tx := NewText("Page ${pageset-page-number}", text.DefaultFont)
	require.NoError(t, tx.SetReplacePlaceholders(true))
	prepareIn(t, g, tx, 500, 100)

	rec := &render.Recorder{}
	ctx := &RenderContext{Surface: rec, Global: g, Top: 100, Width: 500,
		Placeholders: PageInfo{PageSetPageIndex: 2}.Placeholders()}
	require.NoError(t, Render(tx, ctx))
	assert.Equal(t, []string{"Page 3"}, rec.Texts())

	plain := NewText("Page ${pageset-page-number}", text.DefaultFont)
	prepareIn(t, g, plain, 500, 100)
	other := &render.Recorder{}
	ctx.Surface = other
	require.NoError(t, Render(plain, ctx))
	assert.Equal(t, []string{"Page ${pageset-page-number}"}, other.Texts())
}
