package layout

import (
	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
)

// Prepare measures e against the available area in ctx and freezes it.
// The stored size is the raw content size clamped into [MinSize, MaxSize].
// Preparing an element twice is an ILLEGAL_STATE error.
func Prepare(e Element, ctx PrepareContext) error {
	b := e.base()
	if b.prepared {
		return errors.New(errors.ErrCodeIllegalState, "%s %s is already prepared", e.Kind(), b.debugID())
	}
	if b.id == "" && ctx.Global != nil {
		b.id = ctx.Global.IDs.Next(e.Kind())
	}

	raw, err := e.onPrepare(ctx)
	if err != nil {
		return err
	}
	size := raw.Clamp(b.minSize, b.maxSize)
	b.availableSize = geom.Size{Width: ctx.AvailableWidth, Height: ctx.AvailableHeight}
	b.markPrepared(size)

	if ctx.Global.debug().Prepare {
		ctx.Global.Log().Debug("prepared", "id", b.id, "kind", e.Kind(),
			"available", b.availableSize, "raw", raw, "size", size)
	}
	return nil
}

// Render paints the box of e with its top-left margin corner at
// (ctx.Left, ctx.Top) and then its content. Rendering an unprepared
// element is an ILLEGAL_STATE error.
func Render(e Element, ctx *RenderContext) error {
	b := e.base()
	if !b.prepared {
		return errors.New(errors.ErrCodeIllegalState, "%s %s rendered before prepare", e.Kind(), b.debugID())
	}
	if ctx.Global.debug().Render {
		ctx.Global.Log().Debug("render", "id", b.id, "kind", e.Kind(), "x", ctx.Left, "y", ctx.Top,
			"size", b.preparedSize)
	}

	x := ctx.Left + b.margin.Left
	y := ctx.Top - b.margin.Top
	w := b.preparedSize.Width + b.padding.XSum() + b.border.XSumWidth()
	h := b.preparedSize.Height + b.padding.YSum() + b.border.YSumWidth()
	if err := paintBox(ctx, x, y, w, h, b.border, b.fill); err != nil {
		return err
	}

	content := ctx.at(ctx.Left+b.FullLeft(), ctx.Top-b.FullTop(), b.preparedSize.Width, b.preparedSize.Height)
	return e.onRender(content)
}
