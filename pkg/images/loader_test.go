package images

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagebox/pkg/errors"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	red := color.RGBA{255, 0, 0, 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, red)
		}
	}
	path := filepath.Join(t.TempDir(), "red.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoader_SizeBeforeDecode(t *testing.T) {
	path := writeTestPNG(t, 3, 2)
	l := NewLoader()

	r, err := l.Load(path)
	require.NoError(t, err)
	w, h := r.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, path, r.Name())

	img, err := r.Image()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}

func TestLoader_CachesByPath(t *testing.T) {
	path := writeTestPNG(t, 1, 1)
	l := NewLoader()
	a, err := l.Load(path)
	require.NoError(t, err)
	b, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestLoader_Errors(t *testing.T) {
	l := NewLoader()
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("hello"), 0o644))
	_, err = l.Load(bad)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))
}

func TestFromImage(t *testing.T) {
	r := FromImage("mem", image.NewRGBA(image.Rect(0, 0, 4, 5)))
	w, h := r.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 5, h)
	img, err := r.Image()
	require.NoError(t, err)
	assert.NotNil(t, img)
}
