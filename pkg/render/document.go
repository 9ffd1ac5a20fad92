package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
	"pagebox/pkg/text"
)

// Document is a Host that keeps every page as a raster canvas.
type Document struct {
	fonts *text.Fonts
	scale float64
	pages []*Canvas
}

// NewDocument creates an empty raster document. Scale converts points to
// pixels; 1 renders at 72 dpi.
func NewDocument(fonts *text.Fonts, scale float64) *Document {
	return &Document{fonts: fonts, scale: scale}
}

// AddPage implements Host.
func (d *Document) AddPage(size geom.Size) (PageSurface, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "invalid page size %s", size)
	}
	c := NewCanvas(size, d.fonts, d.scale)
	d.pages = append(d.pages, c)
	return c, nil
}

// PageCount is the number of pages added so far.
func (d *Document) PageCount() int { return len(d.pages) }

// Page returns the raster of page i.
func (d *Document) Page(i int) image.Image { return d.pages[i].Image() }

// SavePNGs writes one PNG per page into dir, named prefix-001.png and so on,
// and returns the written paths.
func (d *Document) SavePNGs(dir, prefix string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "creating %s", dir)
	}
	paths := make([]string, 0, len(d.pages))
	for i, p := range d.pages {
		path := filepath.Join(dir, fmt.Sprintf("%s-%03d.png", prefix, i+1))
		if err := p.SavePNG(path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
