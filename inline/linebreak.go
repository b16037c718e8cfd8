package inline

import (
	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/dimen"
)

// InlineBlockOffset is the pending position of one inline-block
// encountered while splitting lines, recorded for the caller to apply
// once the owning block's margin-box height is known.
type InlineBlockOffset struct {
	BlockIndex int32
	X          dimen.Unit
	Y          dimen.Unit
}

// SplitLines runs the line-box splitting sweep (spec.md §4.3) over an
// IFC whose metrics pass has already run, appending LineBox entries to
// ifc.Lines. marginBoxHeight/marginTop resolve an inline-block's
// placement offset; ascender/descender come from the bound font.
func SplitLines(ifc *boxtree.IFC, maxLineBoxLength dimen.Unit,
	marginBoxHeight func(blockIndex int32) (height, marginTop dimen.Unit)) []InlineBlockOffset {

	var pending []InlineBlockOffset
	var stack []int32
	owner := int32(0)
	stack = append(stack, 0)

	lineBegin := int32(2)
	var cursor dimen.Unit
	var maxTopHeight dimen.Unit
	baseline := ifc.Ascender
	committed := 0

	finalize := func(end int32) {
		if committed == 0 && end == lineBegin {
			return
		}
		ifc.Lines = append(ifc.Lines, boxtree.LineBox{
			Baseline: baseline + maxTopHeight,
			Begin:    lineBegin,
			End:      end,
			Owner:    owner,
		})
		lineBegin = end
		cursor = 0
		maxTopHeight = 0
		baseline = ifc.Ascender
		committed = 0
	}

	n := int32(len(ifc.Glyphs))
	for i := int32(2); i < n; i++ {
		g := ifc.Glyphs[i]
		if g.Index != 0 {
			m := g.Metrics
			if cursor > 0 && m.Width > 0 && cursor+m.Offset+m.Width > maxLineBoxLength && committed > 0 {
				finalize(i)
			}
			cursor += m.Advance
			committed++
			continue
		}
		// special entry: the marker lives at i+1.
		i++
		if i >= n {
			break
		}
		mk := ifc.Glyphs[i]
		switch mk.Marker.Kind {
		case boxtree.BoxStart:
			stack = append(stack, mk.Marker.Data)
			owner = mk.Marker.Data
			cursor += mk.Metrics.Advance
			committed++
		case boxtree.BoxEnd:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
			owner = stack[len(stack)-1]
			cursor += mk.Metrics.Advance
			committed++
		case boxtree.LineBreakMarker:
			finalize(i + 1)
		case boxtree.InlineBlockMarker:
			if marginBoxHeight != nil {
				h, mt := marginBoxHeight(mk.Marker.Data)
				pending = append(pending, InlineBlockOffset{
					BlockIndex: mk.Marker.Data,
					X:          cursor,
					Y:          baseline - h + mt,
				})
				if h > maxTopHeight {
					maxTopHeight = h
				}
			}
			cursor += mk.Metrics.Advance
			committed += 2
		}
	}
	finalize(n)
	return pending
}
