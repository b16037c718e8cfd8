package inline

import (
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/npillmayer/vizbox/boxtree"
	cfont "github.com/npillmayer/vizbox/core/font"
	"github.com/npillmayer/vizbox/core/dimen"
)

// InlineBlockSizer resolves the border-box width and left/right margins
// of an inline-block referenced by an InlineBlockMarker, so the metrics
// pass can compute its advance without importing the layout dispatcher
// that actually placed it.
type InlineBlockSizer func(blockIndex int32) (width, marginLeft, marginRight dimen.Unit)

// SolveMetrics is the IFC metrics pass (spec.md §4.3's `ifcSolveMetrics`):
// one linear sweep filling in GlyphMetrics for every entry. sf may be
// nil (no font bound), in which case every real-glyph metric is zero.
func SolveMetrics(ifc *boxtree.IFC, sf *cfont.ShapingFont, unitsPerPixel dimen.Unit, sizer InlineBlockSizer) {
	var sfntBuf sfnt.Buffer
	var sfont *sfnt.Font
	var ppem fixed.Int26_6
	if sf != nil {
		sfont = sf.ScalableFontParent().SFNT
		ppem = fixed.Int26_6(sf.PtSize() * 64)
	}
	glyphMetrics := func(gid uint32) boxtree.GlyphMetrics {
		if sfont == nil {
			return boxtree.GlyphMetrics{}
		}
		bounds, adv, err := sfont.GlyphBounds(&sfntBuf, sfnt.GlyphIndex(gid), ppem, xfont.HintingNone)
		if err != nil {
			return boxtree.GlyphMetrics{}
		}
		return boxtree.GlyphMetrics{
			Offset:  scaleFixed(bounds.Min.X, unitsPerPixel),
			Advance: scaleFixed(adv, unitsPerPixel),
			Width:   scaleFixed(bounds.Max.X-bounds.Min.X, unitsPerPixel),
		}
	}

	for i := 0; i < len(ifc.Glyphs); i++ {
		g := &ifc.Glyphs[i]
		if g.Index != 0 {
			g.Metrics = glyphMetrics(g.Index)
			continue
		}
		i++
		if i >= len(ifc.Glyphs) {
			break
		}
		m := &ifc.Glyphs[i]
		switch m.Marker.Kind {
		case boxtree.ZeroGlyphIndex:
			m.Metrics = glyphMetrics(0)
		case boxtree.BoxStart:
			ib := ifc.InlineBoxes[m.Marker.Data]
			m.Metrics = boxtree.GlyphMetrics{
				Offset:  ib.MarginStart,
				Advance: ib.MarginStart + ib.BorderStart + ib.PaddingStart,
				Width:   ib.BorderStart + ib.PaddingStart,
			}
		case boxtree.BoxEnd:
			ib := ifc.InlineBoxes[m.Marker.Data]
			m.Metrics = boxtree.GlyphMetrics{
				Offset:  0,
				Advance: ib.MarginEnd + ib.BorderEnd + ib.PaddingEnd,
				Width:   ib.BorderEnd + ib.PaddingEnd,
			}
		case boxtree.InlineBlockMarker:
			if sizer != nil {
				w, ml, mr := sizer(m.Marker.Data)
				m.Metrics = boxtree.GlyphMetrics{
					Offset:  ml,
					Advance: w + ml + mr,
					Width:   w,
				}
			}
		case boxtree.LineBreakMarker:
			m.Metrics = boxtree.GlyphMetrics{}
		}
	}
}
