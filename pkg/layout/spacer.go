package layout

import "pagebox/pkg/geom"

// Spacer occupies a fixed content size and draws nothing but its box.
type Spacer struct {
	Base
	size geom.Size
}

// NewSpacer creates a spacer of the given size.
func NewSpacer(width, height float64, opts ...Option) *Spacer {
	return &Spacer{Base: newBase(opts), size: geom.NewSize(width, height)}
}

// SpacerX creates a spacer that only takes horizontal space.
func SpacerX(width float64, opts ...Option) *Spacer { return NewSpacer(width, 0, opts...) }

// SpacerY creates a spacer that only takes vertical space.
func SpacerY(height float64, opts ...Option) *Spacer { return NewSpacer(0, height, opts...) }

func (s *Spacer) Kind() Kind { return KindSpacer }

func (s *Spacer) onPrepare(PrepareContext) (geom.Size, error) { return s.size, nil }

func (s *Spacer) onRender(*RenderContext) error { return nil }

// preparedSpacer is the zero-content placeholder used for a column that
// has nothing left after a split.
func preparedSpacer(width float64) *Spacer {
	s := &Spacer{Base: newBase(nil)}
	s.markPrepared(geom.Size{Width: width})
	return s
}
