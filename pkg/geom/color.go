package geom

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]color.RGBA{
	"red":       {255, 0, 0, 255},
	"green":     {0, 128, 0, 255},
	"blue":      {0, 0, 255, 255},
	"yellow":    {255, 255, 0, 255},
	"cyan":      {0, 255, 255, 255},
	"magenta":   {255, 0, 255, 255},
	"white":     {255, 255, 255, 255},
	"black":     {0, 0, 0, 255},
	"gray":      {128, 128, 128, 255},
	"lightgray": {211, 211, 211, 255},
	"orange":    {255, 165, 0, 255},
	"purple":    {128, 0, 128, 255},
	"pink":      {255, 192, 203, 255},
	"brown":     {165, 42, 42, 255},
	"lime":      {0, 255, 0, 255},
	"navy":      {0, 0, 128, 255},
	"teal":      {0, 128, 128, 255},
	"silver":    {192, 192, 192, 255},
}

// ParseColor accepts a color name or a #rgb/#rrggbb hex string. The values
// "none" and "transparent" parse to a nil color.
func ParseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "transparent":
		return nil, true
	}
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, false
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, true
	}
	return nil, false
}

// DebugColor is painted around elements without border or fill when debug
// borders are enabled.
var DebugColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

func colorsEqual(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}
