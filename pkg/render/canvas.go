package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
	"pagebox/pkg/text"
)

// Canvas paints one page into an RGBA raster through gg. Page units are
// multiplied by the scale factor to get pixels.
type Canvas struct {
	context *gg.Context
	fonts   *text.Fonts
	size    geom.Size
	scale   float64
	closed  bool
}

// NewCanvas creates a white page of the given size in points.
func NewCanvas(size geom.Size, fonts *text.Fonts, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(size.Width * scale))
	h := int(math.Ceil(size.Height * scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return &Canvas{context: dc, fonts: fonts, size: size, scale: scale}
}

// px converts a page x coordinate to pixels.
func (c *Canvas) px(x float64) float64 { return x * c.scale }

// py converts a page y coordinate (upward) to a pixel row (downward).
func (c *Canvas) py(y float64) float64 { return (c.size.Height - y) * c.scale }

func (c *Canvas) check() error {
	if c.closed {
		return errors.New(errors.ErrCodeIllegalState, "drawing on a closed page")
	}
	return nil
}

// FillRect implements Surface.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) error {
	if err := c.check(); err != nil {
		return err
	}
	if col == nil || w <= 0 || h <= 0 {
		return nil
	}
	c.context.SetColor(col)
	c.context.DrawRectangle(c.px(x), c.py(y), w*c.scale, h*c.scale)
	c.context.Fill()
	return nil
}

func (c *Canvas) setStroke(s geom.BorderStyle) {
	col := s.Color
	if col == nil {
		col = color.Black
	}
	c.context.SetColor(col)
	c.context.SetLineWidth(s.Width * c.scale)
	dash := make([]float64, len(s.Dash))
	for i, d := range s.Dash {
		dash[i] = d * c.scale
	}
	c.context.SetDash(dash...)
}

// StrokeRect implements Surface.
func (c *Canvas) StrokeRect(x, y, w, h float64, s geom.BorderStyle) error {
	if err := c.check(); err != nil {
		return err
	}
	if s.Width <= 0 {
		return nil
	}
	c.setStroke(s)
	c.context.DrawRectangle(c.px(x), c.py(y), w*c.scale, h*c.scale)
	c.context.Stroke()
	c.context.SetDash()
	return nil
}

// DrawLine implements Surface.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, s geom.BorderStyle) error {
	if err := c.check(); err != nil {
		return err
	}
	if s.Width <= 0 {
		return nil
	}
	c.setStroke(s)
	c.context.DrawLine(c.px(x1), c.py(y1), c.px(x2), c.py(y2))
	c.context.Stroke()
	c.context.SetDash()
	return nil
}

// DrawImage implements Surface, scaling img to w x h.
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) error {
	if err := c.check(); err != nil {
		return err
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 || w <= 0 || h <= 0 {
		return nil
	}
	c.context.Push()
	c.context.Translate(c.px(x), c.py(y))
	c.context.Scale(w*c.scale/float64(bounds.Dx()), h*c.scale/float64(bounds.Dy()))
	c.context.DrawImage(img, 0, 0)
	c.context.Pop()
	return nil
}

// DrawText implements Surface. The face is taken from the same font
// registry that measured the text during preparation.
func (c *Canvas) DrawText(f text.FontSpec, x, y float64, s string) error {
	if err := c.check(); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	scaled := f.WithSize(f.Size * c.scale)
	col := f.Color
	if col == nil {
		col = color.Black
	}
	c.context.SetColor(col)
	c.context.SetFontFace(c.fonts.Face(scaled))
	c.context.DrawString(s, c.px(x), c.py(y)+c.fonts.Ascent(scaled))
	return nil
}

// Close implements PageSurface. Further drawing fails.
func (c *Canvas) Close() error {
	c.closed = true
	return nil
}

// Image returns the painted raster.
func (c *Canvas) Image() image.Image {
	return c.context.Image()
}

// SavePNG writes the page as a PNG file.
func (c *Canvas) SavePNG(filename string) error {
	if err := c.context.SavePNG(filename); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "saving %s", filename)
	}
	return nil
}
