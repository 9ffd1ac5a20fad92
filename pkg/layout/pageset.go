package layout

import (
	"math"
	"slices"
	"strconv"

	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
	"pagebox/pkg/render"
)

// Built-in placeholders substituted in texts that enable placeholder
// replacement.
const (
	PlaceholderPageSetIndex      = "${pageset-index}"
	PlaceholderPageSetPageIndex  = "${pageset-page-index}"
	PlaceholderPageSetPageNumber = "${pageset-page-number}"
	PlaceholderPageSetPageCount  = "${pageset-page-count}"
	PlaceholderTotalPageIndex    = "${total-page-index}"
	PlaceholderTotalPageNumber   = "${total-page-number}"
	PlaceholderTotalPageCount    = "${total-page-count}"
)

// Placeholders returns the built-in placeholder values for the page.
func (p PageInfo) Placeholders() map[string]string {
	return map[string]string{
		PlaceholderPageSetIndex:      strconv.Itoa(p.PageSetIndex),
		PlaceholderPageSetPageIndex:  strconv.Itoa(p.PageSetPageIndex),
		PlaceholderPageSetPageNumber: strconv.Itoa(p.PageSetPageIndex + 1),
		PlaceholderPageSetPageCount:  strconv.Itoa(p.PageSetPageCount),
		PlaceholderTotalPageIndex:    strconv.Itoa(p.TotalPageIndex),
		PlaceholderTotalPageNumber:   strconv.Itoa(p.TotalPageIndex + 1),
		PlaceholderTotalPageCount:    strconv.Itoa(p.TotalPageCount),
	}
}

// RenderCustomizer adjusts the render context of each page before anything
// is drawn, typically by adding placeholders.
type RenderCustomizer func(ctx *RenderContext) error

// PageSet is a page template with an optional header and footer, and the
// body elements that are paginated onto as many pages as needed.
//
// The box model of the page set describes the page: margin surrounds the
// body and holds the header and footer. Preparation may grow the top and
// bottom margin to fit them.
type PageSet struct {
	Base

	pageSize   geom.Size
	header     Element
	footer     Element
	elements   []Element
	customizer RenderCustomizer
}

// NewPageSet creates a page set for pages of the given size.
func NewPageSet(pageSize geom.Size, opts ...Option) *PageSet {
	if pageSize.Width <= 0 || pageSize.Height <= 0 {
		errors.Invalid("page size must be positive, got %s", pageSize)
	}
	return &PageSet{Base: newBase(opts), pageSize: pageSize}
}

func (ps *PageSet) PageSize() geom.Size { return ps.pageSize }
func (ps *PageSet) Header() Element     { return ps.header }
func (ps *PageSet) Footer() Element     { return ps.footer }
func (ps *PageSet) Elements() []Element { return slices.Clone(ps.elements) }

// SetHeader sets the element painted in the top margin of every page.
func (ps *PageSet) SetHeader(e Element) error {
	if err := ps.checkNotPrepared("header"); err != nil {
		return err
	}
	ps.header = e
	return nil
}

// SetFooter sets the element painted in the bottom margin of every page.
func (ps *PageSet) SetFooter(e Element) error {
	if err := ps.checkNotPrepared("footer"); err != nil {
		return err
	}
	ps.footer = e
	return nil
}

// AddElement appends a body element.
func (ps *PageSet) AddElement(e Element) error {
	if err := ps.checkNotPrepared("elements"); err != nil {
		return err
	}
	if e == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "page set %s: element is nil", ps.debugID())
	}
	ps.elements = append(ps.elements, e)
	return nil
}

// SetRenderCustomizer installs a hook called for every page before it is
// drawn.
func (ps *PageSet) SetRenderCustomizer(fn RenderCustomizer) error {
	if err := ps.checkNotPrepared("render customizer"); err != nil {
		return err
	}
	ps.customizer = fn
	return nil
}

// PrepareResult is the pagination of one page set: the elements placed on
// every page, in order. It is read-only once returned.
type PrepareResult struct {
	HeaderHeight float64
	FooterHeight float64

	pages [][]ElementWithSize
}

// PageCount returns the number of pages.
func (r *PrepareResult) PageCount() int { return len(r.pages) }

// Page returns the elements placed on page i.
func (r *PrepareResult) Page(i int) []ElementWithSize { return slices.Clone(r.pages[i]) }

// Pages returns the elements of every page.
func (r *PrepareResult) Pages() [][]ElementWithSize {
	out := make([][]ElementWithSize, len(r.pages))
	for i, p := range r.pages {
		out[i] = slices.Clone(p)
	}
	return out
}

// PrepareAllPages prepares the header, footer and body and paginates the
// body. It can be called once.
func (ps *PageSet) PrepareAllPages(g *GlobalContext) (*PrepareResult, error) {
	if ps.prepared {
		return nil, errors.New(errors.ErrCodeIllegalState, "page set %s is already prepared", ps.debugID())
	}
	if ps.id == "" && g != nil {
		ps.id = g.IDs.Next(kindPageSet)
	}
	log := g.Log()
	ctx := PrepareContext{Global: g}
	res := &PrepareResult{}

	if ps.header != nil {
		h, err := ps.prepareMarginElement(ctx, ps.header, ps.margin.Top)
		if err != nil {
			return nil, err
		}
		res.HeaderHeight = h
		if h > ps.margin.Top {
			log.Info("growing top margin to fit header", "pageset", ps.id, "from", ps.margin.Top, "to", h)
			ps.margin.Top = h
		}
	}
	if ps.footer != nil {
		h, err := ps.prepareMarginElement(ctx, ps.footer, ps.margin.Bottom)
		if err != nil {
			return nil, err
		}
		res.FooterHeight = h
		if h > ps.margin.Bottom {
			log.Info("growing bottom margin to fit footer", "pageset", ps.id, "from", ps.margin.Bottom, "to", h)
			ps.margin.Bottom = h
		}
	}

	if ps.FullYSum() > ps.pageSize.Height {
		return nil, errors.New(errors.ErrCodeIllegalState,
			"page set %s: header and footer need %g, page height is %g", ps.id, ps.FullYSum(), ps.pageSize.Height)
	}

	contentWidth := ps.pageSize.Width - ps.FullXSum()
	contentHeight := ps.pageSize.Height - ps.FullYSum()
	for _, e := range ps.elements {
		ectx := ctx.with(math.Max(0, contentWidth-e.FullXSum()), math.Max(0, contentHeight-e.FullYSum()))
		if err := Prepare(e, ectx); err != nil {
			return nil, err
		}
	}
	ps.markPrepared(ps.pageSize)

	res.pages = ps.paginate(g)
	log.Debug("paginated", "pageset", ps.id, "elements", len(ps.elements), "pages", len(res.pages))
	return res, nil
}

func (ps *PageSet) prepareMarginElement(ctx PrepareContext, e Element, height float64) (float64, error) {
	w := math.Max(0, ps.pageSize.Width-ps.margin.XSum()-e.FullXSum())
	h := math.Max(0, height-e.FullYSum())
	if err := Prepare(e, ctx.with(w, h)); err != nil {
		return 0, err
	}
	return e.PreparedSize().Height + e.FullYSum(), nil
}

// paginate assigns the prepared body elements to pages. Elements that do
// not fit are split; an element that neither fits nor splits starts a new
// page, or overflows when the page is still empty.
func (ps *PageSet) paginate(g *GlobalContext) [][]ElementWithSize {
	log := g.Log()
	debug := g.debug()
	top := ps.pageSize.Height - ps.FullTop()
	bottom := ps.FullBottom()

	work := make([]ElementWithSize, len(ps.elements))
	for i, e := range ps.elements {
		work[i] = newEWS(e)
	}

	var pages [][]ElementWithSize
	var page []ElementWithSize
	curY := top
	closePage := func() {
		pages = append(pages, page)
		page = nil
		curY = top
	}

	for len(work) > 0 {
		item := work[0]
		work = work[1:]
		e := item.Element

		if pb, ok := e.(*PageBreak); ok {
			if len(page) > 0 || pb.IsForced() {
				closePage()
			}
			continue
		}

		if curY-item.FullSize.Height >= bottom {
			alignVertically(e, curY-bottom)
			item = newEWS(e)
			page = append(page, item)
			curY -= item.FullSize.Height
			continue
		}

		available := curY - bottom - e.FullYSum()
		if res := trySplit(e, item.Size.Width, available); res != nil {
			if debug.Split {
				log.Debug("split", "id", e.ID(), "available", available,
					"first", res.First.Size, "second", res.Second.Size)
			}
			work = append([]ElementWithSize{res.First, res.Second}, work...)
			continue
		}

		if len(page) > 0 {
			closePage()
			work = append([]ElementWithSize{item}, work...)
			continue
		}

		log.Warn("element does not fit on an empty page", "pageset", ps.id, "id", e.ID(),
			"height", item.FullSize.Height, "available", curY-bottom)
		page = append(page, item)
		curY -= item.FullSize.Height
	}
	if len(page) > 0 || len(pages) == 0 {
		pages = append(pages, page)
	}
	return pages
}

// Numbering places the pages of one page set within a whole document.
type Numbering struct {
	PageSetIndex    int
	TotalPageOffset int
	TotalPageCount  int
}

// RenderAllPages adds one page per paginated page to host and renders the
// page box, header, body and footer onto it.
func (ps *PageSet) RenderAllPages(res *PrepareResult, host render.Host, g *GlobalContext, num Numbering) error {
	if !ps.prepared {
		return errors.New(errors.ErrCodeIllegalState, "page set %s rendered before prepare", ps.debugID())
	}
	if num.TotalPageCount == 0 {
		num.TotalPageCount = num.TotalPageOffset + res.PageCount()
	}
	w, h := ps.pageSize.Width, ps.pageSize.Height
	contentWidth := w - ps.FullXSum()

	for i, items := range res.pages {
		surface, err := host.AddPage(ps.pageSize)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "page set %s: add page %d", ps.id, i)
		}
		info := PageInfo{
			PageSetIndex:     num.PageSetIndex,
			PageSetPageIndex: i,
			PageSetPageCount: res.PageCount(),
			TotalPageIndex:   num.TotalPageOffset + i,
			TotalPageCount:   num.TotalPageCount,
		}
		ctx := &RenderContext{
			Surface:      surface,
			Global:       g,
			Page:         info,
			Top:          h,
			Width:        w,
			Height:       h,
			Placeholders: info.Placeholders(),
		}
		if ps.customizer != nil {
			if err := ps.customizer(ctx); err != nil {
				return err
			}
		}
		if err := ps.renderPage(ctx, items, contentWidth); err != nil {
			return err
		}
		if err := surface.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "page set %s: close page %d", ps.id, i)
		}
	}
	g.Log().Debug("rendered", "pageset", ps.id, "pages", res.PageCount())
	return nil
}

func (ps *PageSet) renderPage(ctx *RenderContext, items []ElementWithSize, contentWidth float64) error {
	w, h := ps.pageSize.Width, ps.pageSize.Height
	m := ps.margin

	boxWidth := w - m.XSum()
	if err := paintBox(ctx, m.Left, h-m.Top, boxWidth, h-m.YSum(), ps.border, ps.fill); err != nil {
		return err
	}

	if ps.header != nil {
		if err := Render(ps.header, ctx.at(m.Left, h, boxWidth, m.Top)); err != nil {
			return err
		}
	}

	y := h - ps.FullTop()
	for _, item := range items {
		left := ps.FullLeft() + horizontalIndent(item.Element, contentWidth)
		if err := Render(item.Element, ctx.at(left, y, contentWidth, item.FullSize.Height)); err != nil {
			return err
		}
		y -= item.FullSize.Height
	}

	if ps.footer != nil {
		if err := Render(ps.footer, ctx.at(m.Left, m.Bottom, boxWidth, m.Bottom)); err != nil {
			return err
		}
	}
	return nil
}
