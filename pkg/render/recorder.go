package render

import (
	"fmt"
	"image"
	"image/color"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
	"pagebox/pkg/text"
)

// OpKind names a recorded draw call.
type OpKind string

const (
	OpFillRect   OpKind = "fill"
	OpStrokeRect OpKind = "stroke"
	OpLine       OpKind = "line"
	OpImage      OpKind = "image"
	OpText       OpKind = "text"
)

// Op is one recorded draw call. For lines X,Y is the start and W,H the end
// point.
type Op struct {
	Kind  OpKind
	X, Y  float64
	W, H  float64
	Text  string
	Color color.Color
	Width float64
}

func (o Op) String() string {
	if o.Kind == OpText {
		return fmt.Sprintf("%s(%g,%g %q)", o.Kind, o.X, o.Y, o.Text)
	}
	return fmt.Sprintf("%s(%g,%g %gx%g)", o.Kind, o.X, o.Y, o.W, o.H)
}

// Recorder is a Surface that records draw calls instead of painting.
type Recorder struct {
	Size   geom.Size
	Ops    []Op
	Closed bool
}

func (r *Recorder) add(op Op) error {
	if r.Closed {
		return errors.New(errors.ErrCodeIllegalState, "drawing on a closed page")
	}
	r.Ops = append(r.Ops, op)
	return nil
}

// FillRect implements Surface.
func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) error {
	return r.add(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

// StrokeRect implements Surface.
func (r *Recorder) StrokeRect(x, y, w, h float64, s geom.BorderStyle) error {
	return r.add(Op{Kind: OpStrokeRect, X: x, Y: y, W: w, H: h, Color: s.Color, Width: s.Width})
}

// DrawLine implements Surface.
func (r *Recorder) DrawLine(x1, y1, x2, y2 float64, s geom.BorderStyle) error {
	return r.add(Op{Kind: OpLine, X: x1, Y: y1, W: x2, H: y2, Color: s.Color, Width: s.Width})
}

// DrawImage implements Surface.
func (r *Recorder) DrawImage(_ image.Image, x, y, w, h float64) error {
	return r.add(Op{Kind: OpImage, X: x, Y: y, W: w, H: h})
}

// DrawText implements Surface.
func (r *Recorder) DrawText(f text.FontSpec, x, y float64, s string) error {
	return r.add(Op{Kind: OpText, X: x, Y: y, Text: s, Color: f.Color})
}

// Close implements PageSurface.
func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

// OfKind returns the recorded ops of one kind, in order.
func (r *Recorder) OfKind(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.OfKind(OpText) {
		out = append(out, op.Text)
	}
	return out
}

// RecordingHost is a Host whose pages are Recorders.
type RecordingHost struct {
	Pages []*Recorder
}

// AddPage implements Host.
func (h *RecordingHost) AddPage(size geom.Size) (PageSurface, error) {
	r := &Recorder{Size: size}
	h.Pages = append(h.Pages, r)
	return r, nil
}
