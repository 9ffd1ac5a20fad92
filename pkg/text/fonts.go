package text

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"pagebox/pkg/errors"
)

// Built-in font families backed by the Go fonts.
const (
	FamilyRegular = "regular"
	FamilyBold    = "bold"
	FamilyItalic  = "italic"
	FamilyMono    = "mono"
)

type faceKey struct {
	family string
	size   float64
}

// Fonts is a registry of TrueType fonts and a cache of sized faces. It
// implements Measurer and hands the same faces to the raster painter so
// that drawn text matches measured text. All methods are safe for
// concurrent use.
type Fonts struct {
	mu    sync.Mutex
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face
}

// NewFonts returns a registry preloaded with the built-in families.
func NewFonts() *Fonts {
	fs := &Fonts{
		fonts: make(map[string]*truetype.Font),
		faces: make(map[faceKey]font.Face),
	}
	for family, ttf := range map[string][]byte{
		FamilyRegular: goregular.TTF,
		FamilyBold:    gobold.TTF,
		FamilyItalic:  goitalic.TTF,
		FamilyMono:    gomono.TTF,
	} {
		if err := fs.RegisterTTF(family, ttf); err != nil {
			panic(fmt.Sprintf("embedded font %s: %v", family, err))
		}
	}
	return fs
}

// RegisterTTF adds or replaces a family from raw TTF bytes.
func (fs *Fonts) RegisterTTF(family string, ttf []byte) error {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "parsing font %q", family)
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.fonts[family] = f
	for k := range fs.faces {
		if k.family == family {
			delete(fs.faces, k)
		}
	}
	return nil
}

// RegisterFile adds a family from a TTF file on disk.
func (fs *Fonts) RegisterFile(family, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "reading font %q", path)
	}
	return fs.RegisterTTF(family, data)
}

// Face returns the cached face for f, falling back to the regular family
// for unknown names.
func (fs *Fonts) Face(f FontSpec) font.Face {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.faceLocked(f)
}

func (fs *Fonts) faceLocked(f FontSpec) font.Face {
	key := faceKey{family: f.Family, size: f.Size}
	if face, ok := fs.faces[key]; ok {
		return face
	}
	ttf, ok := fs.fonts[f.Family]
	if !ok {
		ttf = fs.fonts[FamilyRegular]
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: f.Size, DPI: 72, Hinting: font.HintingNone})
	fs.faces[key] = face
	return face
}

// Ascent is the distance from the top of a line to its baseline.
func (fs *Fonts) Ascent(f FontSpec) float64 {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return float64(fs.faceLocked(f).Metrics().Ascent) / 64
}

// LineHeight implements Measurer.
func (fs *Fonts) LineHeight(f FontSpec) float64 {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return float64(fs.faceLocked(f).Metrics().Height) / 64
}

// Width implements Measurer.
func (fs *Fonts) Width(f FontSpec, s string) float64 {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.widthLocked(f, s)
}

func (fs *Fonts) widthLocked(f FontSpec, s string) float64 {
	return float64(font.MeasureString(fs.faceLocked(f), s)) / 64
}

// Wrap implements Measurer.
func (fs *Fonts) Wrap(f FontSpec, s string, maxWidth float64) []Line {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return WrapLines(s, maxWidth, func(line string) float64 { return fs.widthLocked(f, line) })
}
