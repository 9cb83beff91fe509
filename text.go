package placard

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// Glyph is one shaped glyph cell in label space: origin at the top-left of
// the text block, Y increasing downward, units equal to world units.
type Glyph struct {
	Rune          rune
	X, Y          float64
	Width, Height float64
}

// Shaper lays text out into glyph cells. It is supplied by the rendering
// side; wrapping happens here, clipping happens at draw time.
type Shaper interface {
	Font
	Shape(text string, wrapWidth float64) []Glyph
}

// shapeGlyphs performs greedy word wrapping at wrapWidth (0 = no wrapping).
// Words wider than wrapWidth are broken between runes. Explicit newlines
// start a new line.
func shapeGlyphs(f Font, s string, wrapWidth float64) []Glyph {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	lh := f.LineHeight()
	spaceW, _ := f.MeasureString(" ")

	var glyphs []Glyph
	y := 0.0
	for _, para := range strings.Split(s, "\n") {
		x := 0.0
		for _, word := range strings.Fields(para) {
			ww, _ := f.MeasureString(word)
			if x > 0 {
				if wrapWidth > 0 && x+spaceW+ww > wrapWidth {
					x = 0
					y += lh
				} else {
					x += spaceW
				}
			}
			for _, r := range word {
				rw, _ := f.MeasureString(string(r))
				if wrapWidth > 0 && x > 0 && x+rw > wrapWidth {
					x = 0
					y += lh
				}
				glyphs = append(glyphs, Glyph{Rune: r, X: x, Y: y, Width: rw, Height: lh})
				x += rw
			}
		}
		y += lh
	}
	return glyphs
}

// glyphExtent returns the width and height covered by the glyph cells.
func glyphExtent(glyphs []Glyph) (w, h float64) {
	for _, g := range glyphs {
		w = math.Max(w, g.X+g.Width)
		h = math.Max(h, g.Y+g.Height)
	}
	return w, h
}

// --- MonoFont ---

// MonoFont is a fixed-advance font with no outlines. Glyph faces are drawn
// with Ebitengine's debug font. Useful for headless runs and tests.
type MonoFont struct {
	Advance float64
	Height  float64
}

// MeasureString returns the width and height of s.
func (f MonoFont) MeasureString(s string) (width, height float64) {
	lines := strings.Split(s, "\n")
	for _, l := range lines {
		width = math.Max(width, float64(len([]rune(l)))*f.Advance)
	}
	return width, float64(len(lines)) * f.Height
}

// LineHeight returns the vertical distance between baselines.
func (f MonoFont) LineHeight() float64 {
	return f.Height
}

// Shape lays out s with word wrapping at wrapWidth.
func (f MonoFont) Shape(s string, wrapWidth float64) []Glyph {
	return shapeGlyphs(f, s, wrapWidth)
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("placard: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// DefaultFont loads the Go Regular typeface at the given size.
func DefaultFont(size float64) (*TTFFont, error) {
	return LoadTTFFont(goregular.TTF, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Shape lays out s with word wrapping at wrapWidth.
func (f *TTFFont) Shape(s string, wrapWidth float64) []Glyph {
	return shapeGlyphs(f, s, wrapWidth)
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// --- TextBlock ---

// TextBlock holds shaped label text and its cached glyph-face texture.
type TextBlock struct {
	Content string
	Font    Font
	Color   Color
	Glyphs  []Glyph

	// Width and Height are the extent of the shaped glyphs.
	Width, Height float64
	// MaxHeight clips the drawn glyph faces to the placard face; 0 = no clip.
	MaxHeight float64
	// Origin is the label-local position of the block's top-left corner.
	Origin Vec3

	image *ebiten.Image
	dirty bool
}

// newTextBlock wraps already shaped glyphs.
func newTextBlock(content string, f Font, c Color, glyphs []Glyph) *TextBlock {
	w, h := glyphExtent(glyphs)
	return &TextBlock{
		Content: content,
		Font:    f,
		Color:   c,
		Glyphs:  glyphs,
		Width:   w,
		Height:  h,
		dirty:   true,
	}
}

// visibleHeight is the drawn height after clipping to MaxHeight.
func (tb *TextBlock) visibleHeight() float64 {
	if tb.MaxHeight > 0 && tb.Height > tb.MaxHeight {
		return tb.MaxHeight
	}
	return tb.Height
}

// textureSize is the pixel size of the glyph texture. Rows below the clip
// are never sampled, so they are not allocated.
func (tb *TextBlock) textureSize() (w, h int) {
	return int(math.Ceil(tb.Width)) + 1, int(math.Ceil(tb.visibleHeight())) + 1
}

// texture renders the glyph faces in white once and returns the cached
// image. The renderer tints it with Color. Returns nil for empty blocks.
func (tb *TextBlock) texture() *ebiten.Image {
	if len(tb.Glyphs) == 0 || tb.Width <= 0 || tb.Height <= 0 {
		return nil
	}
	if !tb.dirty && tb.image != nil {
		return tb.image
	}
	tb.dirty = false

	w, h := tb.textureSize()
	vh := tb.visibleHeight()
	if tb.image != nil {
		tb.image.Deallocate()
	}
	tb.image = ebiten.NewImage(w, h)

	switch f := tb.Font.(type) {
	case *TTFFont:
		for _, g := range tb.Glyphs {
			if g.Y >= vh {
				continue
			}
			op := &text.DrawOptions{}
			op.GeoM.Translate(g.X, g.Y)
			text.Draw(tb.image, string(g.Rune), f.face, op)
		}
	default:
		for _, g := range tb.Glyphs {
			if g.Y >= vh {
				continue
			}
			ebitenutil.DebugPrintAt(tb.image, string(g.Rune), int(g.X), int(g.Y))
		}
	}
	return tb.image
}

// release frees the cached texture.
func (tb *TextBlock) release() {
	if tb.image != nil {
		tb.image.Deallocate()
		tb.image = nil
	}
	tb.dirty = true
}
