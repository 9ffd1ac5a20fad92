// Package config decodes TOML document descriptions and builds page sets
// from them.
//
//	[fonts]
//	serif = "fonts/NotoSerif-Regular.ttf"
//
//	[[pagesets]]
//	width = 595
//	height = 842
//	margin = [40, 50]
//	script = "folio.js"
//
//	[pagesets.footer]
//	type = "text"
//	text = "Page ${pageset-page-number} of ${pageset-page-count}"
//	placeholders = true
//	halign = "center"
//
//	[[pagesets.body]]
//	type = "text"
//	text = "Hello"
//	splittable = true
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"pagebox/pkg/errors"
	"pagebox/pkg/layout"
)

// File is a decoded document description.
type File struct {
	Workers  int               `toml:"workers"`
	Debug    DebugConfig       `toml:"debug"`
	Fonts    map[string]string `toml:"fonts"`
	PageSets []PageSetConfig   `toml:"pagesets"`
}

// DebugConfig mirrors layout.Debug.
type DebugConfig struct {
	Prepare bool `toml:"prepare"`
	Split   bool `toml:"split"`
	Render  bool `toml:"render"`
	Borders bool `toml:"borders"`
}

// Layout converts the flags for a global context.
func (d DebugConfig) Layout() layout.Debug {
	return layout.Debug{Prepare: d.Prepare, Split: d.Split, Render: d.Render, Borders: d.Borders}
}

// PageSetConfig describes one page set.
type PageSetConfig struct {
	ID      string          `toml:"id"`
	Width   float64         `toml:"width"`
	Height  float64         `toml:"height"`
	Margin  []float64       `toml:"margin"`
	Padding []float64       `toml:"padding"`
	Border  *BorderConfig   `toml:"border"`
	Fill    string          `toml:"fill"`
	Header  *ElementConfig  `toml:"header"`
	Footer  *ElementConfig  `toml:"footer"`
	Body    []ElementConfig `toml:"body"`
	// Script is the path of a JavaScript customizer.
	Script string `toml:"script"`
}

// BorderConfig describes a border. Sides lists the sides it applies to;
// empty means all four.
type BorderConfig struct {
	Color string    `toml:"color"`
	Width float64   `toml:"width"`
	Dash  []float64 `toml:"dash"`
	Sides []string  `toml:"sides"`
}

// ElementConfig describes any element. Type selects which fields apply.
type ElementConfig struct {
	Type string `toml:"type"`
	ID   string `toml:"id"`

	Margin    []float64     `toml:"margin"`
	Padding   []float64     `toml:"padding"`
	Border    *BorderConfig `toml:"border"`
	Fill      string        `toml:"fill"`
	MinWidth  float64       `toml:"min_width"`
	MinHeight float64       `toml:"min_height"`
	MaxWidth  float64       `toml:"max_width"`
	MaxHeight float64       `toml:"max_height"`
	HAlign    string        `toml:"halign"`
	VAlign    string        `toml:"valign"`

	// text
	Text         string  `toml:"text"`
	Font         string  `toml:"font"`
	Size         float64 `toml:"size"`
	Color        string  `toml:"color"`
	LineSpacing  float64 `toml:"line_spacing"`
	MaxRows      int     `toml:"max_rows"`
	Splittable   bool    `toml:"splittable"`
	Placeholders bool    `toml:"placeholders"`

	// image and spacer
	Src    string  `toml:"src"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// pagebreak
	Forced bool `toml:"forced"`

	// child of an hbox: its column width, "*" when empty
	Column string `toml:"column"`
	// cell of a table row: number of columns covered
	Span int `toml:"span"`

	// hbox and vbox
	Children   []ElementConfig `toml:"children"`
	CellBorder *BorderConfig   `toml:"cell_border"`
	CellFill   string          `toml:"cell_fill"`

	// table
	Columns    []string         `toml:"columns"`
	HeaderRows int              `toml:"header_rows"`
	Rows       []TableRowConfig `toml:"rows"`
}

// TableRowConfig is one table row.
type TableRowConfig struct {
	Cells []ElementConfig `toml:"cells"`
}

// Load reads and decodes a description file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "reading %s", path)
	}
	return Parse(data)
}

// Parse decodes a description. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decoding document")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if len(f.PageSets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "document has no pagesets")
	}
	return &f, nil
}
