package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
	"pagebox/pkg/layout"
	"pagebox/pkg/render"
	"pagebox/pkg/text"
)

func newPageSet(t *testing.T, pages int) *layout.PageSet {
	t.Helper()
	ps := layout.NewPageSet(geom.NewSize(300, 100))
	require.NoError(t, ps.SetMargin(geom.NewEdges(0, 0, 20, 0)))
	footer := layout.NewText("${total-page-number}/${total-page-count} ${pageset-index}", text.DefaultFont)
	require.NoError(t, footer.SetReplacePlaceholders(true))
	require.NoError(t, ps.SetFooter(footer))
	for i := 0; i < pages; i++ {
		require.NoError(t, ps.AddElement(layout.NewSpacer(10, 80)))
	}
	return ps
}

func newGlobal() *layout.GlobalContext {
	return layout.NewGlobalContext(text.FixedMeasurer{GlyphWidth: 5, LineSpacing: 12}, nil)
}

func TestBuildNumbersPagesAcrossPageSets(t *testing.T) {
	for _, workers := range []int{1, 4} {
		d := New()
		d.SetWorkers(workers)
		require.NoError(t, d.AddPageSet(newPageSet(t, 2)))
		require.NoError(t, d.AddPageSet(newPageSet(t, 3)))

		host := &render.RecordingHost{}
		p, err := d.Build(context.Background(), host, newGlobal())
		require.NoError(t, err)

		assert.Equal(t, []int{2, 3}, p.PageCounts())
		assert.Equal(t, 5, p.TotalPageCount)
		require.Len(t, host.Pages, 5)
		want := []string{"1/5 0", "2/5 0", "3/5 1", "4/5 1", "5/5 1"}
		for i, page := range host.Pages {
			assert.Equal(t, []string{want[i]}, page.Texts(), "page %d", i)
			assert.True(t, page.Closed)
		}
	}
}

func TestPrepareStopsOnError(t *testing.T) {
	d := New()
	d.SetWorkers(2)
	bad := layout.NewPageSet(geom.NewSize(100, 100))
	require.NoError(t, bad.SetHeader(layout.NewSpacer(10, 200)))
	require.NoError(t, d.AddPageSet(newPageSet(t, 1)))
	require.NoError(t, d.AddPageSet(bad))

	_, err := d.Prepare(context.Background(), newGlobal())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeIllegalState))
}

func TestRenderNeedsPrepare(t *testing.T) {
	d := New()
	require.NoError(t, d.AddPageSet(newPageSet(t, 1)))
	err := d.Render(context.Background(), nil, &render.RecordingHost{}, newGlobal())
	assert.True(t, errors.Is(err, errors.ErrCodeIllegalState))
}

func TestCanceledContext(t *testing.T) {
	d := New()
	require.NoError(t, d.AddPageSet(newPageSet(t, 1)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Build(ctx, &render.RecordingHost{}, newGlobal())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAddPageSetTwice(t *testing.T) {
	d := New()
	ps := newPageSet(t, 1)
	require.NoError(t, d.AddPageSet(ps))
	assert.True(t, errors.Is(d.AddPageSet(ps), errors.ErrCodeInvalidArgument))
	assert.True(t, errors.Is(d.AddPageSet(nil), errors.ErrCodeInvalidArgument))
	assert.Len(t, d.PageSets(), 1)
}
