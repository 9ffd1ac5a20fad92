package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"pagebox/pkg/document"
	"pagebox/pkg/errors"
	"pagebox/pkg/geom"
	"pagebox/pkg/images"
	"pagebox/pkg/layout"
	"pagebox/pkg/script"
	"pagebox/pkg/text"
)

// Builder turns a decoded File into a document. Relative paths for fonts,
// images and scripts are resolved against BaseDir.
type Builder struct {
	BaseDir string
	Fonts   *text.Fonts
	Images  *images.Loader
	Logger  *log.Logger
}

// NewBuilder creates a builder with fresh font and image registries.
func NewBuilder(baseDir string, logger *log.Logger) *Builder {
	return &Builder{BaseDir: baseDir, Fonts: text.NewFonts(), Images: images.NewLoader(), Logger: logger}
}

func (b *Builder) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.BaseDir, p)
}

// Build registers the fonts of f and builds one page set per entry.
func (b *Builder) Build(f *File) (*document.Document, error) {
	for family, file := range f.Fonts {
		if err := b.Fonts.RegisterFile(family, b.path(file)); err != nil {
			return nil, err
		}
	}

	doc := document.New()
	doc.SetWorkers(f.Workers)
	for i := range f.PageSets {
		ps, err := b.pageSet(fmt.Sprintf("pagesets[%d]", i), &f.PageSets[i])
		if err != nil {
			return nil, err
		}
		if err := doc.AddPageSet(ps); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func invalid(at, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, "%s: %s", at, fmt.Sprintf(format, args...))
}

func (b *Builder) pageSet(at string, c *PageSetConfig) (*layout.PageSet, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, invalid(at, "width and height must be positive")
	}
	opts, err := boxOptions(at, c.ID, c.Margin, c.Padding, c.Border, c.Fill)
	if err != nil {
		return nil, err
	}
	ps := layout.NewPageSet(geom.NewSize(c.Width, c.Height), opts...)

	if c.Header != nil {
		e, err := b.element(at+".header", c.Header)
		if err != nil {
			return nil, err
		}
		if err := ps.SetHeader(e); err != nil {
			return nil, err
		}
	}
	if c.Footer != nil {
		e, err := b.element(at+".footer", c.Footer)
		if err != nil {
			return nil, err
		}
		if err := ps.SetFooter(e); err != nil {
			return nil, err
		}
	}
	for i := range c.Body {
		e, err := b.element(fmt.Sprintf("%s.body[%d]", at, i), &c.Body[i])
		if err != nil {
			return nil, err
		}
		if err := ps.AddElement(e); err != nil {
			return nil, err
		}
	}

	if c.Script != "" {
		src, err := os.ReadFile(b.path(c.Script))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "%s: script", at)
		}
		engine, err := script.New(c.Script, string(src), b.Logger)
		if err != nil {
			return nil, err
		}
		if err := ps.SetRenderCustomizer(engine.Customizer()); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

func (b *Builder) element(at string, c *ElementConfig) (layout.Element, error) {
	opts, err := boxOptions(at, c.ID, c.Margin, c.Padding, c.Border, c.Fill)
	if err != nil {
		return nil, err
	}
	sizeOpts, err := sizeOptions(at, c)
	if err != nil {
		return nil, err
	}
	opts = append(opts, sizeOpts...)

	var e layout.Element
	switch strings.ToLower(c.Type) {
	case "text":
		e, err = b.text(at, c, opts)
	case "image":
		e, err = b.image(at, c, opts)
	case "spacer":
		if c.Width < 0 || c.Height < 0 {
			return nil, invalid(at, "spacer size must be >= 0")
		}
		e = layout.NewSpacer(c.Width, c.Height, opts...)
	case "pagebreak":
		if c.Forced {
			e = layout.NewForcedPageBreak(opts...)
		} else {
			e = layout.NewPageBreak(opts...)
		}
	case "hbox":
		e, err = b.hbox(at, c, opts)
	case "vbox":
		e, err = b.vbox(at, c, opts)
	case "table":
		e, err = b.table(at, c, opts)
	case "":
		return nil, invalid(at, "missing element type")
	default:
		return nil, invalid(at, "unknown element type %q", c.Type)
	}
	if err != nil {
		return nil, err
	}
	if err := applyAlignment(at, e, c.HAlign, c.VAlign); err != nil {
		return nil, err
	}
	return e, nil
}

func (b *Builder) text(at string, c *ElementConfig, opts []layout.Option) (layout.Element, error) {
	font := text.DefaultFont
	if c.Font != "" {
		font.Family = c.Font
	}
	if c.Size < 0 {
		return nil, invalid(at, "font size must be >= 0")
	}
	if c.Size > 0 {
		font.Size = c.Size
	}
	if c.Color != "" {
		col, err := parseColor(at, c.Color)
		if err != nil {
			return nil, err
		}
		if col != nil {
			font.Color = col
		}
	}

	t := layout.NewText(c.Text, font, opts...)
	if err := t.SetSplittable(c.Splittable); err != nil {
		return nil, err
	}
	if err := t.SetReplacePlaceholders(c.Placeholders); err != nil {
		return nil, err
	}
	if c.LineSpacing != 0 {
		if err := t.SetLineSpacing(c.LineSpacing); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", at)
		}
	}
	if c.MaxRows != 0 {
		if err := t.SetMaxRows(c.MaxRows); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", at)
		}
	}
	return t, nil
}

func (b *Builder) image(at string, c *ElementConfig, opts []layout.Option) (layout.Element, error) {
	if c.Src == "" {
		return nil, invalid(at, "image needs src")
	}
	if c.Width < 0 || c.Height < 0 {
		return nil, invalid(at, "image size must be >= 0")
	}
	res, err := b.Images.Load(b.path(c.Src))
	if err != nil {
		return nil, err
	}
	return layout.NewImage(res, c.Width, c.Height, opts...), nil
}

func (b *Builder) hbox(at string, c *ElementConfig, opts []layout.Option) (layout.Element, error) {
	h := layout.NewHBox(opts...)
	if err := h.SetSplittable(c.Splittable); err != nil {
		return nil, err
	}
	if err := b.cellStyle(at, c, h.SetColumnBorder, h.SetColumnFill); err != nil {
		return nil, err
	}
	for i := range c.Children {
		childAt := fmt.Sprintf("%s.children[%d]", at, i)
		w := geom.Star()
		if c.Children[i].Column != "" {
			var err error
			if w, err = geom.ParseWidth(c.Children[i].Column); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", childAt)
			}
		}
		e, err := b.element(childAt, &c.Children[i])
		if err != nil {
			return nil, err
		}
		if _, err := h.AddColumn(e, w); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (b *Builder) vbox(at string, c *ElementConfig, opts []layout.Option) (layout.Element, error) {
	v := layout.NewVBox(opts...)
	if err := v.SetSplittable(c.Splittable); err != nil {
		return nil, err
	}
	if err := b.cellStyle(at, c, v.SetRowBorder, v.SetRowFill); err != nil {
		return nil, err
	}
	for i := range c.Children {
		e, err := b.element(fmt.Sprintf("%s.children[%d]", at, i), &c.Children[i])
		if err != nil {
			return nil, err
		}
		if _, err := v.AddRow(e); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (b *Builder) table(at string, c *ElementConfig, opts []layout.Option) (layout.Element, error) {
	if len(c.Columns) == 0 {
		return nil, invalid(at, "table needs columns")
	}
	widths := make([]geom.Width, len(c.Columns))
	for i, s := range c.Columns {
		w, err := geom.ParseWidth(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s.columns[%d]", at, i)
		}
		widths[i] = w
	}

	t := layout.NewTable(widths, opts...)
	if err := b.cellStyle(at, c, t.SetCellBorder, t.SetCellFill); err != nil {
		return nil, err
	}
	for i, row := range c.Rows {
		cells := make([]*layout.TableCell, len(row.Cells))
		for j := range row.Cells {
			e, err := b.element(fmt.Sprintf("%s.rows[%d].cells[%d]", at, i, j), &row.Cells[j])
			if err != nil {
				return nil, err
			}
			cells[j] = layout.SpanCell(e, row.Cells[j].Span)
		}
		if _, err := t.AddRow(cells...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s.rows[%d]", at, i)
		}
	}
	if err := t.SetHeaderRowCount(c.HeaderRows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", at)
	}
	return t, nil
}

func (b *Builder) cellStyle(at string, c *ElementConfig, setBorder func(geom.Border) error, setFill func(color.Color) error) error {
	if c.CellBorder != nil {
		br, err := parseBorder(at+".cell_border", c.CellBorder)
		if err != nil {
			return err
		}
		if err := setBorder(br); err != nil {
			return err
		}
	}
	if c.CellFill != "" {
		col, err := parseColor(at+".cell_fill", c.CellFill)
		if err != nil {
			return err
		}
		if err := setFill(col); err != nil {
			return err
		}
	}
	return nil
}

func boxOptions(at, id string, margin, padding []float64, border *BorderConfig, fill string) ([]layout.Option, error) {
	var opts []layout.Option
	if id != "" {
		opts = append(opts, layout.WithID(id))
	}
	m, ok := geom.EdgesFromSlice(margin)
	if !ok {
		return nil, invalid(at, "margin needs 1, 2 or 4 values >= 0, got %v", margin)
	}
	p, ok := geom.EdgesFromSlice(padding)
	if !ok {
		return nil, invalid(at, "padding needs 1, 2 or 4 values >= 0, got %v", padding)
	}
	opts = append(opts, layout.WithMargin(m), layout.WithPadding(p))
	if border != nil {
		br, err := parseBorder(at+".border", border)
		if err != nil {
			return nil, err
		}
		opts = append(opts, layout.WithBorder(br))
	}
	if fill != "" {
		col, err := parseColor(at+".fill", fill)
		if err != nil {
			return nil, err
		}
		opts = append(opts, layout.WithFill(col))
	}
	return opts, nil
}

func sizeOptions(at string, c *ElementConfig) ([]layout.Option, error) {
	for _, v := range []float64{c.MinWidth, c.MinHeight, c.MaxWidth, c.MaxHeight} {
		if v < 0 {
			return nil, invalid(at, "min and max sizes must be >= 0")
		}
	}
	var opts []layout.Option
	if c.MinWidth > 0 || c.MinHeight > 0 {
		opts = append(opts, layout.WithMinSize(geom.NewSize(c.MinWidth, c.MinHeight)))
	}
	if c.MaxWidth > 0 || c.MaxHeight > 0 {
		bound := geom.SizeUnbounded
		if c.MaxWidth > 0 {
			bound.Width = c.MaxWidth
		}
		if c.MaxHeight > 0 {
			bound.Height = c.MaxHeight
		}
		opts = append(opts, layout.WithMaxSize(bound))
	}
	return opts, nil
}

func parseColor(at, s string) (color.Color, error) {
	c, ok := geom.ParseColor(s)
	if !ok {
		return nil, invalid(at, "unknown color %q", s)
	}
	return c, nil
}

func parseBorder(at string, c *BorderConfig) (geom.Border, error) {
	if c.Width < 0 {
		return geom.Border{}, invalid(at, "border width must be >= 0")
	}
	for _, d := range c.Dash {
		if d < 0 {
			return geom.Border{}, invalid(at, "dash lengths must be >= 0")
		}
	}
	col, err := parseColor(at, c.Color)
	if err != nil {
		return geom.Border{}, err
	}
	style := geom.NewBorderStyle(col, c.Width, c.Dash...)
	if len(c.Sides) == 0 {
		return geom.AllBorders(style), nil
	}
	var br geom.Border
	for _, side := range c.Sides {
		s := style
		switch strings.ToLower(side) {
		case "top":
			br.Top = &s
		case "right":
			br.Right = &s
		case "bottom":
			br.Bottom = &s
		case "left":
			br.Left = &s
		default:
			return geom.Border{}, invalid(at, "unknown border side %q", side)
		}
	}
	return br, nil
}

func applyAlignment(at string, e layout.Element, h, v string) error {
	if h != "" {
		ha, ok := e.(layout.HorizontallyAligned)
		if !ok {
			return invalid(at, "%s does not support halign", e.Kind())
		}
		a, ok := map[string]layout.HAlign{
			"left": layout.AlignLeft, "center": layout.AlignCenter, "right": layout.AlignRight,
		}[strings.ToLower(h)]
		if !ok {
			return invalid(at, "unknown halign %q", h)
		}
		if err := ha.SetHorizontalAlign(a); err != nil {
			return err
		}
	}
	if v != "" {
		va, ok := e.(layout.VerticallyAligned)
		if !ok {
			return invalid(at, "%s does not support valign", e.Kind())
		}
		a, ok := map[string]layout.VAlign{
			"top": layout.AlignTop, "middle": layout.AlignMiddle, "bottom": layout.AlignBottom,
		}[strings.ToLower(v)]
		if !ok {
			return invalid(at, "unknown valign %q", v)
		}
		if err := va.SetVerticalAlign(a); err != nil {
			return err
		}
	}
	return nil
}
