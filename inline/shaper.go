/*
Package inline builds inline formatting contexts: it shapes text into
the flat glyph stream boxtree.IFC holds (spec.md §4.3), runs the metrics
pass over it, and splits the result into line boxes.

Shaping goes through HarfBuzz, the same shaper the teacher's
engine/glyphing/harfbuzz adapter wraps; this package talks to
benoitkugler/textlayout/harfbuzz directly rather than through that
adapter's glyphing.Params/GlyphSequence types, since this core shapes
every run left-to-right (see Shape) and has no feature-range or bidi
machinery to carry.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inline

import (
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/math/fixed"

	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/core/font"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ShapedGlyph is one glyph HarfBuzz produced for a run, with its raw
// 26.6 fixed-point metrics still unscaled to layout units.
type ShapedGlyph struct {
	GID      uint32
	XAdvance fixed.Int26_6
	XOffset  fixed.Int26_6
}

// Shape runs HarfBuzz over a rune slice, per spec.md §4.3's
// text-shaping step. Only the buffer's direction is set (left-to-right);
// no script or language is set on the buffer.
func Shape(sf *font.ShapingFont, runes []rune) []ShapedGlyph {
	if sf == nil || len(runes) == 0 {
		return nil
	}
	buf := hb.NewBuffer()
	buf.Props.Direction = hb.LeftToRight
	buf.AddRunes(runes, 0, len(runes))
	buf.Shape(sf.HBFont(), nil)
	out := make([]ShapedGlyph, len(buf.Info))
	for i := range buf.Info {
		out[i] = ShapedGlyph{
			GID:      buf.Info[i].Glyph,
			XAdvance: fixed.Int26_6(buf.Pos[i].XAdvance),
			XOffset:  fixed.Int26_6(buf.Pos[i].XOffset),
		}
	}
	return out
}

// scaleFixed converts a HarfBuzz 26.6 fixed-point value to a layout Unit.
func scaleFixed(v fixed.Int26_6, unitsPerPixel dimen.Unit) dimen.Unit {
	// HarfBuzz's 26.6 values are already in font design units scaled to
	// the font's ppem at shaping time; treat .64 as a pixel fraction.
	return dimen.Round(float64(v)/64.0, unitsPerPixel)
}
