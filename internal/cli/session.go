package cli

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"

	"pagebox/pkg/config"
	"pagebox/pkg/document"
	"pagebox/pkg/layout"
	"pagebox/pkg/render"
)

// Options adjust how a document description is loaded and rendered.
type Options struct {
	Scale        float64 // pixels per point, 1 when zero
	DebugBorders bool    // outline elements without border or fill
	Workers      int     // overrides the file's worker count when positive
}

// Session is a document description loaded from disk and ready to be
// prepared. Elements are prepared in place, so a session is single-use.
type Session struct {
	File     *config.File
	Builder  *config.Builder
	Document *document.Document
	Global   *layout.GlobalContext
	opts     Options
}

// Open loads and builds the document described by path.
func Open(path string, opts Options, logger *log.Logger) (*Session, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	b := config.NewBuilder(filepath.Dir(path), logger)
	doc, err := b.Build(f)
	if err != nil {
		return nil, err
	}
	if opts.Workers > 0 {
		doc.SetWorkers(opts.Workers)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	g := layout.NewGlobalContext(b.Fonts, logger)
	g.Debug = f.Debug.Layout()
	if opts.DebugBorders {
		g.Debug.Borders = true
	}
	return &Session{File: f, Builder: b, Document: doc, Global: g, opts: opts}, nil
}

// Prepare paginates every page set.
func (s *Session) Prepare(ctx context.Context) (*document.Prepared, error) {
	return s.Document.Prepare(ctx, s.Global)
}

// Render draws the prepared pages into raster images.
func (s *Session) Render(ctx context.Context, p *document.Prepared) (*render.Document, error) {
	pages := render.NewDocument(s.Builder.Fonts, s.opts.Scale)
	if err := s.Document.Render(ctx, p, pages, s.Global); err != nil {
		return nil, err
	}
	return pages, nil
}

// RenderFile opens path, prepares it and renders all pages.
func RenderFile(ctx context.Context, path string, opts Options, logger *log.Logger) (*render.Document, *document.Prepared, error) {
	s, err := Open(path, opts, logger)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.Prepare(ctx)
	if err != nil {
		return nil, nil, err
	}
	pages, err := s.Render(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	return pages, p, nil
}
