package layout

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"pagebox/pkg/render"
	"pagebox/pkg/text"
)

// Debug selects diagnostic output. It is carried by the GlobalContext so
// that two documents prepared side by side can trace independently.
type Debug struct {
	Prepare bool // log every prepared element and consistency warnings
	Split   bool // log every split attempt made by pagination
	Render  bool // log every rendered element
	Borders bool // outline elements that have neither border nor fill
}

// GlobalContext holds the resources shared by a whole preparation and
// rendering run.
type GlobalContext struct {
	Measurer text.Measurer
	Logger   *log.Logger
	Debug    Debug
	IDs      *IDSequence
}

var discard = log.New(io.Discard)

// NewGlobalContext creates a context with a fresh ID sequence.
func NewGlobalContext(m text.Measurer, logger *log.Logger) *GlobalContext {
	return &GlobalContext{Measurer: m, Logger: logger, IDs: NewIDSequence("")}
}

// Log returns the configured logger or a discarding one.
func (g *GlobalContext) Log() *log.Logger {
	if g == nil || g.Logger == nil {
		return discard
	}
	return g.Logger
}

func (g *GlobalContext) debug() Debug {
	if g == nil {
		return Debug{}
	}
	return g.Debug
}

// PrepareContext is the per-call input of Prepare. The available size
// excludes the element's own margin, border and padding.
type PrepareContext struct {
	AvailableWidth  float64
	AvailableHeight float64
	Global          *GlobalContext
}

func (c PrepareContext) with(width, height float64) PrepareContext {
	return PrepareContext{AvailableWidth: width, AvailableHeight: height, Global: c.Global}
}

// PageInfo locates the page being rendered. Indexes are zero based.
type PageInfo struct {
	PageSetIndex     int
	PageSetPageIndex int
	PageSetPageCount int
	TotalPageIndex   int
	TotalPageCount   int
}

// RenderContext is the per-call input of Render: the surface of the current
// page, the area the element was placed in, and page numbering.
type RenderContext struct {
	Surface render.Surface
	Global  *GlobalContext
	Page    PageInfo

	Left   float64
	Top    float64
	Width  float64
	Height float64

	// Placeholders maps "${name}" to its value on the current page.
	Placeholders map[string]string
}

func (c *RenderContext) at(left, top, width, height float64) *RenderContext {
	n := *c
	n.Left, n.Top, n.Width, n.Height = left, top, width, height
	return &n
}

// IDSequence hands out element IDs for one build or preparation session.
// It is safe for concurrent use.
type IDSequence struct {
	prefix string
	n      atomic.Int64
}

// NewIDSequence creates a sequence whose IDs start with prefix.
func NewIDSequence(prefix string) *IDSequence {
	return &IDSequence{prefix: prefix}
}

// Next returns a new ID such as "text-3".
func (s *IDSequence) Next(k Kind) string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s%s-%d", s.prefix, k, s.n.Add(1))
}
