package boxtree

import (
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/core/font"
	"github.com/npillmayer/vizbox/env"
)

// IFCID indexes BoxTree.IFCs.
type IFCID int32

// MarkerKind is the `kind` of a glyph-stream special entry, always
// preceded by an index-0 "zero glyph" marker (spec.md §4.3).
type MarkerKind uint8

const (
	ZeroGlyphIndex MarkerKind = iota
	BoxStart
	BoxEnd
	InlineBlockMarker
	LineBreakMarker
)

// Marker is the `(kind, data)` pair following every `0` glyph-stream
// entry. Data is the inline-box index for BoxStart/BoxEnd, the block
// index for InlineBlockMarker, and unused for the others.
type Marker struct {
	Kind MarkerKind
	Data int32
}

// GlyphMetrics is a glyph-stream entry's positioning data, scaled to
// layout units (spec.md §4.3's metrics pass output).
type GlyphMetrics struct {
	Offset  dimen.Unit
	Advance dimen.Unit
	Width   dimen.Unit
}

// GlyphEntry is one `(index, metrics)` pair of the flat glyph stream.
// Index is a real shaped glyph id when non-zero; when zero, Marker
// carries the special-entry payload and occupies the *next* GlyphEntry
// slot in the stream (its own Index field is unused).
type GlyphEntry struct {
	Index   uint32
	Metrics GlyphMetrics
	Marker  Marker // only meaningful when the *previous* entry's Index == 0
}

// InlineBox is one row of an IFC's flat inline_boxes table.
type InlineBox struct {
	Node           env.NodeID
	PaddingStart   dimen.Unit
	PaddingEnd     dimen.Unit
	PaddingTop     dimen.Unit
	PaddingBottom  dimen.Unit
	BorderStart    dimen.Unit
	BorderEnd      dimen.Unit
	BorderTop      dimen.Unit
	BorderBottom   dimen.Unit
	MarginStart    dimen.Unit
	MarginEnd      dimen.Unit
	Insets         Insets
	Background     Background
}

// LineBox is a horizontal slice of an IFC's glyph stream (spec.md
// GLOSSARY).
type LineBox struct {
	Baseline   dimen.Unit
	Begin, End int32 // [Begin, End) indices into the owning IFC's Glyphs
	Owner      int32 // inline box index open when the line was finalized
}

// IFC is one inline formatting context: a flat glyph stream, the inline
// boxes it references, and the line boxes it was split into (spec.md
// §3.2, §4.3).
type IFC struct {
	Glyphs      []GlyphEntry
	InlineBoxes []InlineBox
	Lines       []LineBox
	Parent      BlockRef
	Ascender    dimen.Unit
	Descender   dimen.Unit
	Font        font.FontHandle
	FontColor   [3]uint8 // set by the cosmetic pass's font-color propagation step; RGB only, alpha always opaque
}

// NewIFC returns an IFC seeded with its mandatory root inline box and
// the opening `(0, BoxStart(0))` pair (spec.md §4.3 invariant 3).
func NewIFC(parent BlockRef) *IFC {
	ifc := &IFC{Parent: parent}
	ifc.InlineBoxes = append(ifc.InlineBoxes, InlineBox{})
	ifc.pushMarker(BoxStart, 0)
	return ifc
}

// pushMarker appends the `(0, marker)` pair.
func (ifc *IFC) pushMarker(kind MarkerKind, data int32) {
	ifc.Glyphs = append(ifc.Glyphs,
		GlyphEntry{Index: 0},
		GlyphEntry{Marker: Marker{Kind: kind, Data: data}},
	)
}

// PushGlyph appends a real shaped glyph; its metrics are filled in later
// by the metrics pass.
func (ifc *IFC) PushGlyph(glyphID uint32) {
	ifc.Glyphs = append(ifc.Glyphs, GlyphEntry{Index: glyphID})
}

// OpenInlineBox appends a new inline box row and a matching BoxStart
// marker, returning its index.
func (ifc *IFC) OpenInlineBox(node env.NodeID) int32 {
	idx := int32(len(ifc.InlineBoxes))
	ifc.InlineBoxes = append(ifc.InlineBoxes, InlineBox{Node: node})
	ifc.pushMarker(BoxStart, idx)
	return idx
}

// CloseInlineBox appends the matching BoxEnd marker.
func (ifc *IFC) CloseInlineBox(idx int32) {
	ifc.pushMarker(BoxEnd, idx)
}

// PushInlineBlock appends an InlineBlock marker referencing a block box
// laid out by shrink-to-fit mode.
func (ifc *IFC) PushInlineBlock(blockIndex int32) {
	ifc.pushMarker(InlineBlockMarker, blockIndex)
}

// PushLineBreak appends a LineBreak marker (spec.md §4.3's text
// segmentation rule for `\n`/`\r`/`\r\n`).
func (ifc *IFC) PushLineBreak() {
	ifc.pushMarker(LineBreakMarker, 0)
}

// CheckGlyphStreamBalance verifies spec.md §8.1's IFC glyph-stream
// balance invariant: a left-to-right scan pushing on BoxStart and
// popping on BoxEnd leaves every BoxEnd matching the top's index, and
// the only inline box still open at the end (if any) is the root (index
// 0), which the stream never explicitly closes.
func (ifc *IFC) CheckGlyphStreamBalance() bool {
	var stack []int32
	for i := 0; i < len(ifc.Glyphs); i++ {
		if ifc.Glyphs[i].Index != 0 {
			continue
		}
		i++
		if i >= len(ifc.Glyphs) {
			return false
		}
		m := ifc.Glyphs[i].Marker
		switch m.Kind {
		case BoxStart:
			stack = append(stack, m.Data)
		case BoxEnd:
			if len(stack) == 0 || stack[len(stack)-1] != m.Data {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0 || (len(stack) == 1 && stack[0] == 0)
}
