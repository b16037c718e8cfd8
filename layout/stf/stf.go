/*
Package stf implements shrink-to-fit width measurement (spec.md §4.7):
an inline-block's auto width is not filled to its containing block the
way normal flow fills it (CSS 2.2 §10.3.3), it shrinks to its content's
preferred width, clamped to the space actually available.

NaturalWidth is the leaf measurement primitive of spec.md §4.7's
two-phase probe: phase 1's object tree bottoms out at an `ifc` object
tag exactly where NaturalWidth is called, on a formatting context that
has already run through inline.SolveMetrics. The phase-1/phase-2 split
itself - build an object tree of flow_stf/flow_normal/ifc tags, clamp a
running auto_width at pop, then realize the settled width top-down -
lives in package layout (layout.measureWidth is phase 1,
layout.layoutChildren is phase 2), since it needs direct access to the
environment, style computer, and box tree that this package deliberately
stays independent of.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package stf

import (
	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/dimen"
)

// NaturalWidth returns an inline formatting context's preferred
// (unwrapped) width: the widest run of glyph advances between forced
// line breaks. ifc must already have run through inline.SolveMetrics,
// so every GlyphEntry.Metrics.Advance is filled in; NaturalWidth itself
// does no shaping or measuring of its own, only summation.
//
// A forced break (spec.md §4.3's `\n`/`\r`/`\r\n` segmentation) resets
// the running sum rather than contributing to it: the preferred width
// of "a\nbbbbb" is the width of "bbbbb", not of both lines concatenated.
func NaturalWidth(ifc *boxtree.IFC) dimen.Unit {
	var widest, running dimen.Unit
	for i := 0; i < len(ifc.Glyphs); i++ {
		g := ifc.Glyphs[i]
		if g.Index == 0 && i+1 < len(ifc.Glyphs) {
			m := ifc.Glyphs[i+1].Marker
			if m.Kind == boxtree.LineBreakMarker {
				if running > widest {
					widest = running
				}
				running = 0
				i++
				continue
			}
			running += ifc.Glyphs[i+1].Metrics.Advance
			i++
			continue
		}
		running += g.Metrics.Advance
	}
	if running > widest {
		widest = running
	}
	return widest
}
