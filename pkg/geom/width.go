package geom

import (
	"strconv"
	"strings"

	"pagebox/pkg/errors"
)

// WidthKind discriminates a Width.
type WidthKind uint8

const (
	WidthAbsolute   WidthKind = iota // fixed length
	WidthPercentage                  // percent of the available width (0-100)
	WidthStar                        // share of the width left after the other columns
)

func (k WidthKind) String() string {
	switch k {
	case WidthAbsolute:
		return "absolute"
	case WidthPercentage:
		return "percentage"
	case WidthStar:
		return "star"
	}
	return "unknown"
}

// Width is a column width specification.
type Width struct {
	Kind  WidthKind
	Value float64
}

// Abs returns an absolute width.
func Abs(v float64) Width {
	checkLength("absolute width", v)
	return Width{Kind: WidthAbsolute, Value: v}
}

// Percent returns a width relative to the available width, on a 0-100 scale.
func Percent(p float64) Width {
	checkLength("percentage", p)
	return Width{Kind: WidthPercentage, Value: p}
}

// Star returns a width taking an even share of the remaining space.
func Star() Width {
	return Width{Kind: WidthStar}
}

// IsStar reports whether w is a star width.
func (w Width) IsStar() bool { return w.Kind == WidthStar }

// Resolve computes the full width for non-star kinds. Star widths cannot be
// resolved in isolation and resolve to 0.
func (w Width) Resolve(available float64) float64 {
	switch w.Kind {
	case WidthAbsolute:
		return w.Value
	case WidthPercentage:
		return available * w.Value / 100
	}
	return 0
}

func (w Width) String() string {
	switch w.Kind {
	case WidthPercentage:
		return strconv.FormatFloat(w.Value, 'g', -1, 64) + "%"
	case WidthStar:
		return "*"
	}
	return strconv.FormatFloat(w.Value, 'g', -1, 64)
}

// ParseWidth parses "120", "50%" or "*".
func ParseWidth(s string) (Width, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "*":
		return Star(), nil
	case strings.HasSuffix(s, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || v < 0 {
			return Width{}, errors.New(errors.ErrCodeInvalidArgument, "invalid percentage width %q", s)
		}
		return Width{Kind: WidthPercentage, Value: v}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return Width{}, errors.New(errors.ErrCodeInvalidArgument, "invalid width %q", s)
	}
	return Width{Kind: WidthAbsolute, Value: v}, nil
}

// Span merges the widths of consecutive columns covered by one cell. All
// widths must share a kind. Absolute and percentage widths are summed; star
// widths become the percentage n*100/totalColumns.
func Span(widths []Width, totalColumns int) (Width, error) {
	if len(widths) == 0 {
		return Width{}, errors.New(errors.ErrCodeInvalidArgument, "cannot span zero columns")
	}
	if len(widths) == 1 {
		return widths[0], nil
	}
	kind := widths[0].Kind
	sum := 0.0
	for i, w := range widths {
		if w.Kind != kind {
			return Width{}, errors.New(errors.ErrCodeInvalidArgument,
				"spanned column %d has width kind %s, expected %s", i, w.Kind, kind)
		}
		sum += w.Value
	}
	switch kind {
	case WidthStar:
		if totalColumns <= 0 {
			return Width{}, errors.New(errors.ErrCodeInvalidArgument, "invalid column count %d", totalColumns)
		}
		return Width{Kind: WidthPercentage, Value: float64(len(widths)) * 100 / float64(totalColumns)}, nil
	case WidthAbsolute, WidthPercentage:
		return Width{Kind: kind, Value: sum}, nil
	}
	return Width{}, errors.New(errors.ErrCodeInvalidArgument, "unsupported width kind %d", kind)
}
