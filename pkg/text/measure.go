// Package text measures runs of text for the layout engine and provides the
// font faces the renderer draws with.
package text

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Measurer returns the advance width of a single line of text.
type Measurer interface {
	Width(s string, fontSize float64, bold bool) float64
}

// Fixed is a Measurer where every rune advances Ratio * fontSize. It makes
// layouts independent of font files.
type Fixed struct {
	Ratio float64
}

func (f Fixed) Width(s string, fontSize float64, _ bool) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize * f.Ratio
}

type faceKey struct {
	size float64
	bold bool
}

type widthKey struct {
	s string
	faceKey
}

// GoFont measures with the Go font family bundled in golang.org/x/image.
// It caches faces and measured widths; it is safe for concurrent use.
type GoFont struct {
	mu      sync.Mutex
	regular *truetype.Font
	bold    *truetype.Font
	faces   map[faceKey]font.Face
	widths  map[widthKey]float64
	ctx     *gg.Context
}

// NewGoFont parses the bundled fonts.
func NewGoFont() (*GoFont, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}
	return &GoFont{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
		widths:  make(map[widthKey]float64),
		ctx:     gg.NewContext(1, 1),
	}, nil
}

// Face returns the font face for the given size and weight.
func (g *GoFont) Face(fontSize float64, bold bool) font.Face {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.face(faceKey{size: fontSize, bold: bold})
}

func (g *GoFont) face(k faceKey) font.Face {
	if f, ok := g.faces[k]; ok {
		return f
	}
	ttf := g.regular
	if k.bold {
		ttf = g.bold
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: k.size, Hinting: font.HintingNone})
	g.faces[k] = f
	return f
}

func (g *GoFont) Width(s string, fontSize float64, bold bool) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	k := widthKey{s: s, faceKey: faceKey{size: fontSize, bold: bold}}
	if w, ok := g.widths[k]; ok {
		return w
	}
	g.ctx.SetFontFace(g.face(k.faceKey))
	w, _ := g.ctx.MeasureString(s)
	g.widths[k] = w
	return w
}

// Normalize collapses runs of whitespace to single spaces and trims the ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
