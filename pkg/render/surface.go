// Package render provides the drawing surfaces layout paints onto: a
// gg-backed raster canvas with a multi-page host document, and a recorder
// that captures draw calls for inspection.
//
// All coordinates are in page units (points) with y growing upward from the
// bottom edge of the page. Rectangles are given by their top-left corner
// and extend right and down.
package render

import (
	"image"
	"image/color"

	"pagebox/pkg/geom"
	"pagebox/pkg/text"
)

// Surface is the drawing target of one page.
type Surface interface {
	FillRect(x, y, w, h float64, c color.Color) error
	StrokeRect(x, y, w, h float64, s geom.BorderStyle) error
	DrawLine(x1, y1, x2, y2 float64, s geom.BorderStyle) error
	DrawImage(img image.Image, x, y, w, h float64) error
	// DrawText draws one line of text whose line box has its top-left
	// corner at x, y.
	DrawText(f text.FontSpec, x, y float64, s string) error
}

// PageSurface is a Surface that must be closed once the page is complete.
type PageSurface interface {
	Surface
	Close() error
}

// Host accepts new pages in output order.
type Host interface {
	AddPage(size geom.Size) (PageSurface, error)
}
