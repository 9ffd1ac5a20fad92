package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"pagebox/internal/cli"
	"pagebox/pkg/render"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <document.toml>\n", os.Args[0])
		os.Exit(1)
	}
	path := os.Args[1]
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, TimeFormat: "15:04:05.00"})

	pages, _, err := cli.RenderFile(context.Background(), path, cli.Options{Scale: 1.5}, logger)
	if err != nil {
		logger.Fatal("render failed", "file", path, "err", err)
	}
	if pages.PageCount() == 0 {
		logger.Fatal("document has no pages", "file", path)
	}

	a := app.New()
	w := a.NewWindow("pageview " + filepath.Base(path))
	w.Resize(fyne.NewSize(900, 1000))

	v := newViewer(pages)
	prev := widget.NewButton("Previous", func() { v.show(v.current - 1) })
	next := widget.NewButton("Next", func() { v.show(v.current + 1) })
	bar := container.NewHBox(prev, next, v.status)

	w.SetContent(container.NewBorder(bar, nil, nil, nil, container.NewScroll(v.img)))
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyLeft, fyne.KeyPageUp:
			v.show(v.current - 1)
		case fyne.KeyRight, fyne.KeyPageDown, fyne.KeySpace:
			v.show(v.current + 1)
		}
	})
	v.show(0)
	w.ShowAndRun()
}

type viewer struct {
	pages   *render.Document
	current int
	img     *canvas.Image
	status  *widget.Label
}

func newViewer(pages *render.Document) *viewer {
	img := canvas.NewImageFromImage(pages.Page(0))
	img.FillMode = canvas.ImageFillOriginal
	return &viewer{pages: pages, img: img, status: widget.NewLabel("")}
}

func (v *viewer) show(i int) {
	if i < 0 || i >= v.pages.PageCount() {
		return
	}
	v.current = i
	v.img.Image = v.pages.Page(i)
	v.img.Refresh()
	v.status.SetText(fmt.Sprintf("page %d of %d", i+1, v.pages.PageCount()))
}
