package layout

import (
	"image/color"

	"pagebox/pkg/geom"
)

var debugBorder = geom.NewBorderStyle(geom.DebugColor, 0.5, 2, 2)

// paintBox fills and strokes the border box whose outer top-left corner is
// (x, y). The fill covers everything inside the border. Each border side is
// drawn centered on its band.
func paintBox(ctx *RenderContext, x, y, w, h float64, border geom.Border, fill color.Color) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	s := ctx.Surface
	if fill != nil {
		fx := x + border.LeftWidth()
		fy := y - border.TopWidth()
		fw := w - border.XSumWidth()
		fh := h - border.YSumWidth()
		if fw > 0 && fh > 0 {
			if err := s.FillRect(fx, fy, fw, fh, fill); err != nil {
				return err
			}
		}
	}

	if !border.HasAnyBorder() {
		if fill == nil && ctx.Global.debug().Borders {
			return s.StrokeRect(x, y, w, h, debugBorder)
		}
		return nil
	}

	if border.HasAllBorders() && border.AreAllBordersEqual() {
		half := border.TopWidth() / 2
		return s.StrokeRect(x+half, y-half, w-2*half, h-2*half, *border.Top)
	}

	if st := border.Top; st != nil && st.Width > 0 {
		cy := y - st.Width/2
		if err := s.DrawLine(x, cy, x+w, cy, *st); err != nil {
			return err
		}
	}
	if st := border.Bottom; st != nil && st.Width > 0 {
		cy := y - h + st.Width/2
		if err := s.DrawLine(x, cy, x+w, cy, *st); err != nil {
			return err
		}
	}
	if st := border.Left; st != nil && st.Width > 0 {
		cx := x + st.Width/2
		if err := s.DrawLine(cx, y, cx, y-h, *st); err != nil {
			return err
		}
	}
	if st := border.Right; st != nil && st.Width > 0 {
		cx := x + w - st.Width/2
		if err := s.DrawLine(cx, y, cx, y-h, *st); err != nil {
			return err
		}
	}
	return nil
}
