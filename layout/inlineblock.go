package layout

import (
	"strconv"

	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/core/valuesolver"
	"github.com/npillmayer/vizbox/env"
	"github.com/npillmayer/vizbox/inline"
	"github.com/npillmayer/vizbox/layout/flow"
	"github.com/npillmayer/vizbox/layout/stf"
	"github.com/npillmayer/vizbox/stacking"
	"github.com/npillmayer/vizbox/style"
)

// appendInlineBlockChild lays out node as an inline-level box whose own
// width shrinks to fit its content (spec.md §4.7), then splices it into
// ifc's glyph stream as an InlineBlockMarker. node gets its own Subtree
// (a fresh formatting root, exactly the way a replaced element or a
// float gets one), reachable from the containing subtree through a
// subtree_proxy box so the stacking/paint passes can still find it.
//
// spec.md §4.5's mode-transition table governs which mode this box
// enters next: a fixed inline-size goes straight to `flow` (nothing to
// measure); an auto inline-size opens `stf`, which measures the
// object-tree's preferred width (phase 1, measureWidth) before
// realizing it (phase 2, layoutChildren) - the two passes are kept
// strictly separate per spec.md §9, since phase 2 needs the used width
// phase 1 is the only thing that can produce. A relatively-positioned
// inline-block resolves a real stacking context exactly like an
// ordinary block does, through the stacking tree's late-block-binding
// path (PushWithoutBlock/SetBlock): the context opens before the used
// width (and therefore the box's final geometry) is settled.
func (l *Layout) appendInlineBlockChild(ifc *boxtree.IFC, node env.NodeID, bs valuesolver.BoxStyle, containingBlockWidth dimen.Unit) {
	l.Style.SetCurrentNode(style.BoxGen, node)
	widthEdges := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupWidthEdges)
	heightEdges := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupHeightEdges)
	borderStyles := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupBorderStyle)
	insetsV := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupInsets)
	zIndexV := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupZIndex)
	upp := l.Registers.UnitsPerPixel()

	posStr := positionString(bs.Position)
	used := flow.SolveAllSizes(widthEdges, heightEdges, borderStyles, insetsV, l.Registers,
		containingBlockWidth, 0, upp, posStr)

	subtreeID := l.Tree.Forest.NewSubtree()
	ref := l.Tree.Forest.PushBlock(subtreeID, node, boxtree.BoxType{Kind: boxtree.KindBlock})

	zAuto := zIndexV["z-index"] == "auto"
	var z int32
	if !zAuto {
		if n, err := strconv.Atoi(zIndexV["z-index"]); err == nil {
			z = int32(n)
		}
	}
	kind, zUsed := flow.SolveStackingContext(posStr, zAuto, z)
	sk := stackingKind(kind)
	hasCtx := sk != stacking.KindNone
	var ctxID int32
	if hasCtx {
		// the context is opened before this box's used width (and hence
		// its final ref-worthy geometry) is known - spec.md §9's late
		// block binding, completed by SetBlock once layout below
		// finishes.
		ctxID = l.Stacking.PushWithoutBlock(sk, zUsed)
	} else {
		l.Stacking.Push(sk, zUsed, boxtree.BlockRef{})
	}

	blockKids := l.collectBlockChildren(node)
	var contentHeight dimen.Unit

	switch {
	case len(blockKids) == 0:
		// pure inline content: the `ifc` object leaf is both measured
		// and realized in the same step, since its preferred width *is*
		// its natural width - there is no nested box whose realization
		// needs deferring.
		l.beginMode(ModeStf, subtreeID, ref, used, dimen.Size{W: containingBlockWidth, H: 0})
		childIFCID := l.Tree.NewIFC(ref)
		childIFC := l.Tree.IFCAt(childIFCID)
		l.appendChildren(childIFC, node, containingBlockWidth)
		sf := l.fontFor(childIFC.Font)
		if sf == nil {
			sf = l.defaultFont(childIFC)
		}
		inline.SolveMetrics(childIFC, sf, upp, nil)
		if used.WidthAuto {
			flow.ShrinkToFitWidth(&used, containingBlockWidth, stf.NaturalWidth(childIFC))
		}
		inline.SplitLines(childIFC, used.Width, nil)
		if len(childIFC.Lines) > 0 {
			contentHeight = (childIFC.Ascender + childIFC.Descender) * dimen.Unit(len(childIFC.Lines))
		}
		l.endMode()
		l.afterStfMode()

	case !used.WidthAuto:
		// fixed inline-size: spec.md §4.5 sends this straight to `flow`,
		// skipping the measuring pass - the used width is already known.
		l.beginMode(ModeFlow, subtreeID, ref, used, dimen.Size{W: used.Width, H: 0})
		contentHeight = l.layoutChildren(subtreeID, ref, node, used.Width)
		l.endMode()
		l.afterFlowMode()

	default:
		// auto inline-size over block-level content: `stf` phase 1
		// (measureWidth) probes the preferred width bottom-up, then
		// phase 2 (layoutChildren) realizes it now that used.Width is
		// settled - the two passes never fuse (spec.md §9).
		l.beginMode(ModeStf, subtreeID, ref, used, dimen.Size{W: containingBlockWidth, H: 0})
		auto := l.measureWidth(node, upp)
		flow.ShrinkToFitWidth(&used, containingBlockWidth, auto)
		contentHeight = l.layoutChildren(subtreeID, ref, node, used.Width)
		l.endMode()
		l.afterStfMode()
	}

	if !used.HeightAuto {
		contentHeight = used.Height
	}
	contentHeight = dimen.Clamp(contentHeight, used.MinHeight, used.MaxHeight)

	s := l.Tree.Forest.At(subtreeID)
	l.writeBlockGeometry(s, ref.Index, used, borderStyles, contentHeight)

	if hasCtx {
		l.Stacking.SetBlock(ctxID, ref)
		s.StackingContext[ref.Index] = boxtree.StackingRef{Valid: true, ID: ctxID}
	}
	l.Stacking.Pop()

	// splice a proxy box into the containing subtree so the metrics
	// pass (via the sizer callback closeIFCContainer wires up) and any
	// later paint pass can resolve the marker back to real geometry.
	parentSubtreeID := ifc.Parent.Subtree
	parentIdx := ifc.Parent.Index
	proxyRef := l.Tree.Forest.PushBlock(parentSubtreeID, node, boxtree.BoxType{Kind: boxtree.KindSubtreeProxy, Ref: int32(subtreeID)})
	ps := l.Tree.Forest.At(parentSubtreeID)
	ps.ContentSize[proxyRef.Index] = s.ContentSize[ref.Index]
	ps.BoxOffsets[proxyRef.Index] = s.BoxOffsets[ref.Index]
	ps.Borders[proxyRef.Index] = s.Borders[ref.Index]
	ps.Padding[proxyRef.Index] = s.Padding[ref.Index]
	ps.Margins[proxyRef.Index] = s.Margins[ref.Index]
	l.Tree.Forest.GrowSkip(boxtree.BlockRef{Subtree: parentSubtreeID, Index: parentIdx}, 1)

	ifc.PushInlineBlock(proxyRef.Index)
}
