package render

import (
	"image"
	"image/color"
	"os"

	"github.com/fogleman/gg"

	"pagebox/pkg/errors"
)

// CompareOptions tunes a pixel comparison.
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) that still
	// counts as equal.
	Tolerance int
	// FuzzyRadius lets a pixel match any expected pixel within this many
	// pixels, absorbing one-pixel glyph shifts.
	FuzzyRadius int
	// MaxDifferentPercent accepts images whose share of differing pixels is
	// at most this value.
	MaxDifferentPercent float64
}

// CompareResult describes how two rasters differ.
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int
	// Diff is a gray copy of the actual image with differing pixels in red.
	Diff *image.RGBA
}

var diffRed = color.RGBA{R: 255, A: 255}

// Compare checks actual against expected pixel by pixel. Rasters of
// different bounds never match and yield an error.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, errors.New(errors.ErrCodeInvalidArgument,
			"image bounds differ: actual %v, expected %v", bounds, expected.Bounds())
	}

	res := &CompareResult{Match: true, TotalPixels: bounds.Dx() * bounds.Dy(), Diff: image.NewRGBA(bounds)}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := actual.At(x, y)
			d := channelDiff(a, expected.At(x, y))
			res.MaxDifference = max(res.MaxDifference, d)

			if d > opts.Tolerance && !fuzzyMatch(a, expected, x, y, opts) {
				res.Match = false
				res.DifferentPixels++
				res.Diff.Set(x, y, diffRed)
				continue
			}
			res.Diff.Set(x, y, color.GrayModel.Convert(a))
		}
	}

	if !res.Match && opts.MaxDifferentPercent > 0 && res.TotalPixels > 0 {
		pct := float64(res.DifferentPixels) / float64(res.TotalPixels) * 100
		res.Match = pct <= opts.MaxDifferentPercent
	}
	return res, nil
}

func fuzzyMatch(a color.Color, expected image.Image, x, y int, opts CompareOptions) bool {
	bounds := expected.Bounds()
	for dy := -opts.FuzzyRadius; dy <= opts.FuzzyRadius; dy++ {
		for dx := -opts.FuzzyRadius; dx <= opts.FuzzyRadius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if (dx == 0 && dy == 0) || !p.In(bounds) {
				continue
			}
			if channelDiff(a, expected.At(p.X, p.Y)) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

// channelDiff is the largest 8-bit channel difference of two colors.
func channelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absDiff(ar, br),
		absDiff(ag, bg),
		absDiff(ab, bb),
		absDiff(aa, ba),
	)
}

func absDiff(a, b uint32) int {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		return -d
	}
	return d
}

// LoadPNG reads a PNG file.
func LoadPNG(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "reading %s", path)
	}
	img, err := gg.LoadPNG(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "decoding %s", path)
	}
	return img, nil
}

// SavePNG writes img as a PNG file.
func SavePNG(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "saving %s", path)
	}
	return nil
}
