// Package document combines page sets into one paginated document with
// page numbers that run across all of them.
//
// Page sets do not share element trees, so they can be prepared
// concurrently as long as the measurer in the global context is safe for
// concurrent use. Rendering is always sequential because pages must reach
// the host in order.
package document

import (
	"context"

	"golang.org/x/sync/errgroup"

	"pagebox/pkg/errors"
	"pagebox/pkg/layout"
	"pagebox/pkg/render"
)

// Document is an ordered list of page sets.
type Document struct {
	pageSets []*layout.PageSet
	workers  int
}

// New creates an empty document that prepares page sets one at a time.
func New() *Document {
	return &Document{workers: 1}
}

// AddPageSet appends a page set. A page set must not be added twice.
func (d *Document) AddPageSet(ps *layout.PageSet) error {
	if ps == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "page set is nil")
	}
	for _, existing := range d.pageSets {
		if existing == ps {
			return errors.New(errors.ErrCodeInvalidArgument, "page set %s added twice", ps.ID())
		}
	}
	d.pageSets = append(d.pageSets, ps)
	return nil
}

// PageSets returns the page sets in order.
func (d *Document) PageSets() []*layout.PageSet {
	return append([]*layout.PageSet(nil), d.pageSets...)
}

// SetWorkers sets how many page sets are prepared concurrently. Values
// below 1 mean one.
func (d *Document) SetWorkers(n int) {
	d.workers = max(1, n)
}

// Prepared is the pagination of every page set.
type Prepared struct {
	Results        []*layout.PrepareResult
	TotalPageCount int
}

// PageCounts returns the number of pages of each page set.
func (p *Prepared) PageCounts() []int {
	out := make([]int, len(p.Results))
	for i, r := range p.Results {
		out[i] = r.PageCount()
	}
	return out
}

// Prepare prepares and paginates all page sets.
func (d *Document) Prepare(ctx context.Context, g *layout.GlobalContext) (*Prepared, error) {
	results := make([]*layout.PrepareResult, len(d.pageSets))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(d.workers)
	for i, ps := range d.pageSets {
		i, ps := i, ps
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			res, err := ps.PrepareAllPages(g)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	p := &Prepared{Results: results}
	for _, r := range results {
		p.TotalPageCount += r.PageCount()
	}
	g.Log().Info("document prepared", "pagesets", len(results), "pages", p.TotalPageCount)
	return p, nil
}

// Render renders every page set in order into host.
func (d *Document) Render(ctx context.Context, p *Prepared, host render.Host, g *layout.GlobalContext) error {
	if p == nil || len(p.Results) != len(d.pageSets) {
		return errors.New(errors.ErrCodeIllegalState, "document rendered before prepare")
	}
	offset := 0
	for i, ps := range d.pageSets {
		if err := ctx.Err(); err != nil {
			return err
		}
		num := layout.Numbering{PageSetIndex: i, TotalPageOffset: offset, TotalPageCount: p.TotalPageCount}
		if err := ps.RenderAllPages(p.Results[i], host, g, num); err != nil {
			return err
		}
		offset += p.Results[i].PageCount()
	}
	return nil
}

// Build prepares the document and renders it into host.
func (d *Document) Build(ctx context.Context, host render.Host, g *layout.GlobalContext) (*Prepared, error) {
	p, err := d.Prepare(ctx, g)
	if err != nil {
		return nil, err
	}
	if err := d.Render(ctx, p, host, g); err != nil {
		return nil, err
	}
	return p, nil
}
