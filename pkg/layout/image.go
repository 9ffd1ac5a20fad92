package layout

import (
	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
	"pagebox/pkg/images"
)

// Image draws an image resource scaled to a fixed content size.
type Image struct {
	Base
	aligned

	resource images.Resource
	size     geom.Size
}

// NewImage creates an image of the given content size. A zero width or
// height is taken from the natural pixel size of the resource.
func NewImage(res images.Resource, width, height float64, opts ...Option) *Image {
	if res == nil {
		errors.Invalid("image resource is nil")
	}
	pw, ph := res.Size()
	if width == 0 {
		width = float64(pw)
	}
	if height == 0 {
		height = float64(ph)
	}
	img := &Image{Base: newBase(opts), resource: res, size: geom.NewSize(width, height)}
	img.aligned.b = &img.Base
	return img
}

func (img *Image) Kind() Kind                { return KindImage }
func (img *Image) Resource() images.Resource { return img.resource }
func (img *Image) Size() geom.Size           { return img.size }

func (img *Image) onPrepare(PrepareContext) (geom.Size, error) {
	return img.size, nil
}

func (img *Image) onRender(ctx *RenderContext) error {
	data, err := img.resource.Image()
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "image %s", img.resource.Name())
	}
	return ctx.Surface.DrawImage(data, ctx.Left, ctx.Top, ctx.Width, ctx.Height)
}
