package layout

import (
	"math"
	"strconv"

	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core"
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/core/valuesolver"
	"github.com/npillmayer/vizbox/env"
	"github.com/npillmayer/vizbox/inline"
	"github.com/npillmayer/vizbox/layout/flow"
	"github.com/npillmayer/vizbox/stacking"
	"github.com/npillmayer/vizbox/style"
)

// positionString renders a resolved valuesolver.Position back to the
// lowercase keyword flow's solvers key off of. absolute/fixed never
// appear here (dispatchNode panics on OuterAbsolute first); sticky, like
// static, is rendered as "static".
func positionString(p valuesolver.Position) string {
	if p == valuesolver.PositionRelative {
		return "relative"
	}
	return "static"
}

// stackingKind maps flow's StackingKind onto the stacking package's own
// Kind, the two packages being kept independent of each other (flow
// must not import stacking: see DESIGN.md).
func stackingKind(k flow.StackingKind) stacking.Kind {
	switch k {
	case flow.StackParentable:
		return stacking.KindParentable
	case flow.StackNonParentable:
		return stacking.KindNonParentable
	}
	return stacking.KindNone
}

// writeBlockGeometry writes a resolved block's final box-model geometry
// back into the subtree's columnar arrays at index. Shared by ordinary
// flow (blockElement) and an inline-block's own box (appendInlineBlockChild),
// since both resolve the same used-sizes shape into the same columns.
func (l *Layout) writeBlockGeometry(s *boxtree.Subtree, index int32, used flow.BlockUsedSizes, borderStyles style.Value, contentHeight dimen.Unit) {
	s.ContentSize[index] = dimen.Size{W: used.Width, H: contentHeight}
	s.BoxOffsets[index] = dimen.Rect{
		TopL: dimen.Point{X: used.MarginLeft, Y: 0},
		Size: dimen.Size{
			W: used.Width + used.PaddingLeft + used.PaddingRight + used.BorderLeft + used.BorderRight,
			H: contentHeight + used.PaddingTop + used.PaddingBottom + used.BorderTop + used.BorderBottom,
		},
	}
	s.Borders[index] = dimen.Edges{dimen.Top: used.BorderTop, dimen.Right: used.BorderRight, dimen.Bottom: used.BorderBottom, dimen.Left: used.BorderLeft}
	s.Padding[index] = dimen.Edges{dimen.Top: used.PaddingTop, dimen.Right: used.PaddingRight, dimen.Bottom: used.PaddingBottom, dimen.Left: used.PaddingLeft}
	s.Margins[index] = dimen.Edges{dimen.Top: used.MarginTop, dimen.Right: used.MarginRight, dimen.Bottom: used.MarginBottom, dimen.Left: used.MarginLeft}
	s.Insets[index] = used.Insets
	s.BorderStyles[index] = [4]string{
		borderStyles["border-top-style"], borderStyles["border-right-style"],
		borderStyles["border-bottom-style"], borderStyles["border-left-style"],
	}
}

// layoutChildren realizes node's content into subtreeID under ref:
// ordinary flow's own child loop, and also spec.md §4.7 phase 2's
// realize step once an inline-block's shrink-to-fit probe has settled
// its used width. Consecutive inline/text children are grouped under
// one anonymous ifc_container; block children dispatch directly.
// cbWidth is the containing-block width this content resolves
// percentages against. Returns the stacked children's content height
// (spec.md §4.6).
func (l *Layout) layoutChildren(subtreeID boxtree.SubtreeID, ref boxtree.BlockRef, node env.NodeID, cbWidth dimen.Unit) dimen.Unit {
	s := l.Tree.Forest.At(subtreeID)
	var openIFC boxtree.BlockRef
	haveIFC := false
	flushIFC := func() {
		if haveIFC {
			l.closeIFCContainer(subtreeID, ref.Index, openIFC, cbWidth)
			s = l.Tree.Forest.At(subtreeID)
			haveIFC = false
		}
	}
	ensureIFC := func() *boxtree.IFC {
		if !haveIFC {
			openIFC = l.openIFCContainer(subtreeID, ref.Index, cbWidth)
			s = l.Tree.Forest.At(subtreeID)
			haveIFC = true
		}
		return l.Tree.IFCAt(boxtree.IFCID(s.Type[openIFC.Index].Ref))
	}
	for c, ok := l.Env.FirstChild(node); ok; c, ok = l.Env.NextSibling(c) {
		cn := l.Env.Node(c)
		if cn.Category == env.TextNode {
			ifc := ensureIFC()
			sf := l.fontFor(ifc.Font)
			if sf == nil {
				sf = l.defaultFont(ifc)
			}
			inline.AppendText(ifc, sf, cn.Text, l.Registers.TabSize())
			continue
		}
		l.Style.SetCurrentNode(style.BoxGen, c)
		cbv := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupBoxStyle)
		cbs := valuesolver.BoxStyle(cbv["display"], cbv["position"], cbv["float"], false)
		if cbs.Outer == valuesolver.OuterNone {
			continue
		}
		if cbs.Outer == valuesolver.OuterInline {
			ifc := ensureIFC()
			if cbs.InnerBlock {
				l.appendInlineBlockChild(ifc, c, cbs, cbWidth)
			} else {
				l.appendInlineElement(ifc, c, cbs, cbWidth)
			}
			continue
		}
		flushIFC()
		// a block child's containing-block height is indeterminate until
		// its siblings are all stacked; percentages against it resolve to
		// 0 per the same auto-height-as-zero treatment CSS 2.2 gives this
		// edge case (spec.md §4.6.1 is silent here; see DESIGN.md).
		l.dispatchNode(subtreeID, ref.Index, c, cbWidth, 0, false)
		s = l.Tree.Forest.At(subtreeID)
	}
	flushIFC()
	return flow.OffsetChildBlocks(s, ref.Index)
}

// blockElement lays out one block-level node: resolve its box edges,
// push its block-box slot and a matching stacking-context frame, enter
// `flow` mode and realize its children (grouping consecutive
// inline/text children into one anonymous ifc_container), then finish
// its own geometry from what the children produced (spec.md §4.5, §4.6).
func (l *Layout) blockElement(subtreeID boxtree.SubtreeID, parentIndex int32, node env.NodeID, bs valuesolver.BoxStyle, cbWidth, cbHeight dimen.Unit) {
	l.Style.SetCurrentNode(style.BoxGen, node)
	widthEdges := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupWidthEdges)
	heightEdges := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupHeightEdges)
	borderStyles := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupBorderStyle)
	insetsV := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupInsets)
	zIndexV := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupZIndex)

	upp := l.Registers.UnitsPerPixel()
	posStr := positionString(bs.Position)
	used := flow.SolveAllSizes(widthEdges, heightEdges, borderStyles, insetsV, l.Registers,
		cbWidth, cbHeight, upp, posStr)

	prePush := l.Tree.Forest.At(subtreeID)
	if len(prePush.Skip) >= math.MaxInt32 {
		// spec.md §7's SizeLimitExceeded: a block index in this subtree
		// would overflow the int32 id width.
		panic(core.SizeLimitExceeded("subtree %d has reached its int32 block-index limit", subtreeID))
	}
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
	// flow mode always knows a block's ref at push time (unlike
	// shrink-to-fit's phase-1 probe), so Push is used for every kind;
	// PushWithoutBlock/SetBlock's late-binding dance belongs to stf
	// (see appendInlineBlockChild).
	ctxID, ok := l.Stacking.Push(sk, zUsed, ref)
	if ok {
		s := l.Tree.Forest.At(subtreeID)
		s.StackingContext[ref.Index] = boxtree.StackingRef{Valid: true, ID: ctxID}
	}

	// `initial`/`flow` -> `flow`: descend into node's own children under
	// an explicit mode frame (spec.md §4.5's beginMode), popping and
	// invoking afterFlowMode once the frame is exhausted.
	l.beginMode(ModeFlow, subtreeID, ref, used, dimen.Size{W: used.Width, H: 0})
	contentHeight := l.layoutChildren(subtreeID, ref, node, used.Width)
	l.endMode()
	l.afterFlowMode()

	if !used.HeightAuto {
		contentHeight = used.Height
	}
	contentHeight = dimen.Clamp(contentHeight, used.MinHeight, used.MaxHeight)

	s := l.Tree.Forest.At(subtreeID)
	l.writeBlockGeometry(s, ref.Index, used, borderStyles, contentHeight)

	l.Stacking.Pop()

	l.Tree.Forest.GrowSkip(boxtree.BlockRef{Subtree: subtreeID, Index: parentIndex}, s.Skip[ref.Index])
}
