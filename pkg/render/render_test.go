package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
	"pagebox/pkg/text"
)

var red = color.RGBA{R: 255, A: 255}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestCanvasFlipsYAxis(t *testing.T) {
	c := NewCanvas(geom.NewSize(100, 100), text.NewFonts(), 1)
	// top-left corner at y=100 is the top row of the raster
	require.NoError(t, c.FillRect(0, 100, 10, 10, red))

	img := c.Image()
	assert.Equal(t, red, rgba(img.At(5, 5)))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(img.At(5, 95)))
}

func TestCanvasScale(t *testing.T) {
	c := NewCanvas(geom.NewSize(50, 40), text.NewFonts(), 2)
	assert.Equal(t, image.Rect(0, 0, 100, 80), c.Image().Bounds())

	require.NoError(t, c.FillRect(10, 10, 5, 5, red))
	assert.Equal(t, red, rgba(c.Image().At(25, 65)))
}

func TestCanvasStrokeAndLine(t *testing.T) {
	c := NewCanvas(geom.NewSize(100, 100), text.NewFonts(), 1)
	black := geom.NewBorderStyle(color.Black, 2)
	require.NoError(t, c.StrokeRect(10, 90, 80, 80, black))
	require.NoError(t, c.DrawLine(0, 50, 100, 50, geom.NewBorderStyle(red, 2, 4, 2)))
	require.NoError(t, c.StrokeRect(0, 0, 10, 10, geom.BorderStyle{}), "zero width is a no-op")

	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgba(c.Image().At(10, 30)))
	assert.Equal(t, red, rgba(c.Image().At(1, 50)))
}

func TestCanvasDrawImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			src.Set(x, y, red)
		}
	}
	c := NewCanvas(geom.NewSize(100, 100), text.NewFonts(), 1)
	require.NoError(t, c.DrawImage(src, 20, 80, 20, 20))

	assert.Equal(t, red, rgba(c.Image().At(30, 30)))
	assert.NotEqual(t, red, rgba(c.Image().At(50, 50)))
}

func TestCanvasDrawText(t *testing.T) {
	c := NewCanvas(geom.NewSize(200, 50), text.NewFonts(), 1)
	require.NoError(t, c.DrawText(text.DefaultFont.WithSize(20), 0, 50, "HHHH"))

	img := c.Image()
	dark := 0
	for x := 0; x < 60; x++ {
		for y := 0; y < 25; y++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 0, "glyphs are painted below the top of the line box")
}

func TestCanvasClosed(t *testing.T) {
	c := NewCanvas(geom.NewSize(10, 10), text.NewFonts(), 1)
	require.NoError(t, c.Close())
	err := c.FillRect(0, 10, 1, 1, red)
	assert.True(t, errors.Is(err, errors.ErrCodeIllegalState))
	assert.Error(t, c.DrawText(text.DefaultFont, 0, 10, "x"))
}

func TestDocumentPages(t *testing.T) {
	d := NewDocument(text.NewFonts(), 1)
	_, err := d.AddPage(geom.Size{Width: 0, Height: 10})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))

	for i := 0; i < 2; i++ {
		p, err := d.AddPage(geom.NewSize(20, 30))
		require.NoError(t, err)
		require.NoError(t, p.FillRect(0, 30, 20, 30, red))
		require.NoError(t, p.Close())
	}
	assert.Equal(t, 2, d.PageCount())
	assert.Equal(t, image.Rect(0, 0, 20, 30), d.Page(1).Bounds())

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := d.SavePNGs(dir, "doc")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "doc-001.png"), filepath.Join(dir, "doc-002.png")}, paths)
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestRecorder(t *testing.T) {
	h := &RecordingHost{}
	s, err := h.AddPage(geom.NewSize(100, 100))
	require.NoError(t, err)
	require.NoError(t, s.FillRect(1, 2, 3, 4, red))
	require.NoError(t, s.DrawText(text.DefaultFont, 5, 6, "hello"))
	require.NoError(t, s.DrawLine(0, 0, 10, 10, geom.NewBorderStyle(red, 1)))
	require.NoError(t, s.Close())

	rec := h.Pages[0]
	assert.True(t, rec.Closed)
	assert.Equal(t, []string{"hello"}, rec.Texts())
	require.Len(t, rec.OfKind(OpLine), 1)
	assert.Equal(t, 10.0, rec.OfKind(OpLine)[0].W)
	assert.Equal(t, "fill(1,2 3x4)", rec.Ops[0].String())
	assert.Equal(t, `text(5,6 "hello")`, rec.Ops[1].String())
	assert.Error(t, s.FillRect(0, 0, 1, 1, red))
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCompare(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	base := solid(10, 10, white)

	nearly := solid(10, 10, color.RGBA{253, 255, 255, 255})
	shifted := solid(10, 10, white)
	shifted.Set(4, 4, red)
	expectedShift := solid(10, 10, white)
	expectedShift.Set(5, 4, red)

	tests := []struct {
		name      string
		actual    image.Image
		expected  image.Image
		opts      CompareOptions
		match     bool
		different int
	}{
		{"identical", base, base, CompareOptions{}, true, 0},
		{"within tolerance", nearly, base, CompareOptions{Tolerance: 2}, true, 0},
		{"beyond tolerance", nearly, base, CompareOptions{Tolerance: 1}, false, 100},
		{"shift without radius", shifted, expectedShift, CompareOptions{}, false, 2},
		{"shift with radius", shifted, expectedShift, CompareOptions{FuzzyRadius: 1}, true, 0},
		{"percent budget", shifted, expectedShift, CompareOptions{MaxDifferentPercent: 5}, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compare(tt.actual, tt.expected, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.match, res.Match)
			assert.Equal(t, tt.different, res.DifferentPixels)
			assert.Equal(t, 100, res.TotalPixels)
		})
	}
}

func TestCompareDiffImage(t *testing.T) {
	actual := solid(4, 4, color.White)
	actual.Set(1, 2, color.Black)
	res, err := Compare(actual, solid(4, 4, color.White), CompareOptions{})
	require.NoError(t, err)

	assert.Equal(t, 255, res.MaxDifference)
	assert.Equal(t, red, rgba(res.Diff.At(1, 2)))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(res.Diff.At(0, 0)))
}

func TestCompareBoundsMismatch(t *testing.T) {
	res, err := Compare(solid(4, 4, color.White), solid(5, 4, color.White), CompareOptions{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))
	assert.False(t, res.Match)
}

func TestPNGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	img := solid(3, 2, red)
	require.NoError(t, SavePNG(path, img))

	loaded, err := LoadPNG(path)
	require.NoError(t, err)
	res, err := Compare(loaded, img, CompareOptions{})
	require.NoError(t, err)
	assert.True(t, res.Match)

	_, err = LoadPNG(filepath.Join(t.TempDir(), "missing.png"))
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}
