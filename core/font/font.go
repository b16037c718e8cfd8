/*
Package font holds the layout core's view of fonts: a small opaque
FontHandle identifying a registered font, and a ShapingFont that wraps a
parsed SFNT font together with a HarfBuzz font object and the font-level
metrics (ascender, descender) the inline formatting context's metrics
pass needs.

The registry itself is a read-only borrow handed to Layout.New by the
caller (spec.md §6.2's "Fonts: fn query() → FontHandle, fn get(FontHandle)
→ Option<&ShapingFont>"); the engine never mutates it. Real font
matching (family/weight/style selection, @font-face, fallback chains)
is out of scope for this core — Query always returns the one font the
registry was seeded with, or FontHandle invalid if none was registered.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"bytes"
	"io/ioutil"
	"sync"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// FontHandle is an opaque reference to a font held by a Registry. The
// zero value is Invalid and denotes "no font bound" (spec.md's
// `FontHandle::invalid`).
type FontHandle int32

// Invalid is the FontHandle denoting "no font".
const Invalid FontHandle = 0

// ScalableFont is a parsed, unscaled font: a typeface variant (e.g.
// "Helvetica regular") before any particular size has been applied.
type ScalableFont struct {
	Fontname string
	Filepath string
	Binary   []byte
	SFNT     *sfnt.Font
}

// LoadOpenTypeFont reads and parses an OpenType/TrueType font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := ioutil.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err == nil {
		f.Filepath = fontfile
	}
	return f, err
}

// ParseOpenTypeFont parses an in-memory OpenType/TrueType font.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// ShapingFont is a ScalableFont bound to a HarfBuzz font object, ready to
// shape runs of text (the value a Registry.Get returns). Ascender and
// Descender are in the shaper's 26.6 fixed-point units, at the size the
// font was prepared for.
type ShapingFont struct {
	parent    *ScalableFont
	size      float64
	hbFont    *hb.Font
	Ascender  fixed.Int26_6
	Descender fixed.Int26_6
}

// ScalableFontParent returns the unscaled font this shaping font was
// prepared from.
func (sf *ShapingFont) ScalableFontParent() *ScalableFont {
	return sf.parent
}

// PtSize returns the font size, in points, this font was prepared for.
func (sf *ShapingFont) PtSize() float64 {
	return sf.size
}

// HBFont returns the underlying HarfBuzz font object, for packages doing
// the actual shaping (see inline.Shaper).
func (sf *ShapingFont) HBFont() *hb.Font {
	return sf.hbFont
}

// prepare builds a ShapingFont from a parsed ScalableFont at a given
// point size, deriving font extents for the metrics pass.
func prepare(sc *ScalableFont, size float64) (*ShapingFont, error) {
	if size < 5.0 || size > 500.0 {
		T().Infof("font size out of range %g, clamped to 10pt", size)
		size = 10.0
	}
	face, err := hbtt.Parse(bytes.NewReader(sc.Binary), true)
	if err != nil {
		return nil, err
	}
	hbFont := hb.NewFont(face)
	hbFont.Ptem = float32(size)
	sf := &ShapingFont{parent: sc, size: size, hbFont: hbFont}
	ppem := fixed.Int26_6(size * 64)
	if m, err := sc.SFNT.Metrics(nil, ppem, xfont.HintingNone); err == nil {
		sf.Ascender = m.Ascent
		sf.Descender = m.Descent
	}
	return sf, nil
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns the font used when nothing else is registered. It
// is always present; currently Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}

// --- Registry ---------------------------------------------------------------

// Registry is the engine's read-only view onto registered fonts, per
// spec.md §6.2: Query returns a FontHandle, Get resolves it to a
// ShapingFont. The zero Registry value holds no fonts: Query returns
// Invalid and Get finds nothing; Store needs a Registry built by
// NewRegistry.
type Registry struct {
	mu      sync.Mutex
	fonts   map[FontHandle]*ShapingFont
	next    FontHandle
	defHand FontHandle
}

// NewRegistry returns a Registry preloaded with a single default font
// (fontname/size as given, or the built-in fallback if name is empty),
// the only font Query will ever hand back. Real per-element font
// matching is out of scope for this core (spec.md §9).
func NewRegistry(name string, size float64) (*Registry, error) {
	r := &Registry{fonts: make(map[FontHandle]*ShapingFont)}
	var sc *ScalableFont
	var err error
	if name == "" {
		sc = FallbackFont()
	} else {
		sc, err = LoadOpenTypeFont(name)
		if err != nil {
			return nil, err
		}
	}
	sf, err := prepare(sc, size)
	if err != nil {
		return nil, err
	}
	r.next = 1
	r.fonts[r.next] = sf
	r.defHand = r.next
	r.next++
	return r, nil
}

// Query returns the registry's default font handle, or Invalid if the
// registry holds no fonts. This is the stub required by spec.md §9: real
// font selection (family, weight, style, @font-face) is out of scope.
func (r *Registry) Query() FontHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.defHand
}

// Get resolves a FontHandle to its ShapingFont. ok is false for Invalid
// or any handle the registry does not recognize.
func (r *Registry) Get(h FontHandle) (*ShapingFont, bool) {
	if h == Invalid {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sf, ok := r.fonts[h]
	return sf, ok
}

// Store registers a pre-built ShapingFont and returns its handle. Used by
// callers (and tests) that want more than one font available, even
// though Query only ever reports the registry's default.
func (r *Registry) Store(sf *ShapingFont) FontHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.next
	r.next++
	r.fonts[h] = sf
	if r.defHand == Invalid {
		r.defHand = h
	}
	return h
}
