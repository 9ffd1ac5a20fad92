package layout

import "pagebox/pkg/geom"

// PageBreak ends the current page during pagination. A non-forced break on
// a page that is still empty is ignored; a forced break always starts a
// new page.
type PageBreak struct {
	Base
	forced bool
}

// NewPageBreak creates a page break that is skipped on an empty page.
func NewPageBreak(opts ...Option) *PageBreak {
	return &PageBreak{Base: newBase(opts)}
}

// NewForcedPageBreak creates a page break that may produce an empty page.
func NewForcedPageBreak(opts ...Option) *PageBreak {
	return &PageBreak{Base: newBase(opts), forced: true}
}

func (p *PageBreak) Kind() Kind     { return KindPageBreak }
func (p *PageBreak) IsForced() bool { return p.forced }

func (p *PageBreak) onPrepare(PrepareContext) (geom.Size, error) { return geom.SizeZero, nil }

func (p *PageBreak) onRender(*RenderContext) error { return nil }
