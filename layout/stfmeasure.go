package layout

import (
	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/core/valuesolver"
	"github.com/npillmayer/vizbox/env"
	"github.com/npillmayer/vizbox/inline"
	"github.com/npillmayer/vizbox/layout/stf"
	"github.com/npillmayer/vizbox/style"
)

// measureWidth is spec.md §4.7 phase 1: it builds (and immediately
// consumes) node's object tree of preferred widths, bottom-up, without
// writing a single box into the tree. Phase 2 (layoutChildren, run from
// appendInlineBlockChild once this returns) depends on a used width this
// pass is the only thing that can produce - fusing the two passes would
// mean realizing a nested block's box before its parent's width is
// known, which is exactly what spec.md §9 forbids.
//
// A literal, non-percentage width is decidable without knowing the
// parent's width at all (flow_normal in spec.md's object-tree
// terminology): its own value is the answer, no recursion needed. An
// auto or percentage width cannot be decided here - the object-tree
// hands back its content's own preferred width instead (flow_stf),
// recursing into block-level children or, for purely inline content,
// reading the natural width straight off a throwaway measuring IFC (the
// `ifc` object tag).
func (l *Layout) measureWidth(node env.NodeID, upp dimen.Unit) dimen.Unit {
	l.Style.SetCurrentNode(style.BoxGen, node)
	we := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupWidthEdges)

	edges := literalEdge(we["margin-left"], upp) + literalEdge(we["margin-right"], upp) +
		literalEdge(we["padding-left"], upp) + literalEdge(we["padding-right"], upp)

	if w, fixed := literalFixedWidth(we["width"], upp); fixed {
		return w + edges
	}

	var content dimen.Unit
	blockKids := l.collectBlockChildren(node)
	if len(blockKids) == 0 {
		content = l.measureTextWidth(node, upp)
	} else {
		for _, c := range blockKids {
			if w := l.measureWidth(c, upp); w > content {
				content = w
			}
		}
	}
	return content + edges
}

// measureTextWidth is phase 1's `ifc` object leaf: a throwaway IFC built
// from node's direct text runs only, metrics-solved and measured via
// stf.NaturalWidth. Nested inline-level descendants (including any
// inline-block of their own) are not folded in here - they measure
// themselves independently when layoutChildren actually realizes them in
// phase 2, so counting them again here would double their contribution
// to the parent's running auto_width.
func (l *Layout) measureTextWidth(node env.NodeID, upp dimen.Unit) dimen.Unit {
	ifc := boxtree.NewIFC(boxtree.NoBlock)
	for c, ok := l.Env.FirstChild(node); ok; c, ok = l.Env.NextSibling(c) {
		cn := l.Env.Node(c)
		if cn.Category != env.TextNode {
			continue
		}
		sf := l.fontFor(ifc.Font)
		if sf == nil {
			sf = l.defaultFont(ifc)
		}
		inline.AppendText(ifc, sf, cn.Text, l.Registers.TabSize())
	}
	inline.SolveMetrics(ifc, l.fontFor(ifc.Font), upp, nil)
	return stf.NaturalWidth(ifc)
}

// collectBlockChildren returns node's block-level children - the
// trigger for running the full phase-1/phase-2 probe over nested block
// content rather than the single measuring-IFC shortcut.
func (l *Layout) collectBlockChildren(node env.NodeID) []env.NodeID {
	var kids []env.NodeID
	for c, ok := l.Env.FirstChild(node); ok; c, ok = l.Env.NextSibling(c) {
		cn := l.Env.Node(c)
		if cn.Category == env.TextNode {
			continue
		}
		l.Style.SetCurrentNode(style.BoxGen, c)
		cv := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupBoxStyle)
		cbs := valuesolver.BoxStyle(cv["display"], cv["position"], cv["float"], false)
		if cbs.Outer == valuesolver.OuterBlock {
			kids = append(kids, c)
		}
	}
	return kids
}

// literalFixedWidth reports whether v is a literal, non-percentage
// length: the condition spec.md §4.7 phase 1 needs to decide a child is
// immediately resolvable (flow_normal) without knowing its parent's
// eventual width.
func literalFixedWidth(v string, upp dimen.Unit) (dimen.Unit, bool) {
	if v == "" || v == "auto" {
		return 0, false
	}
	u, isPercent, err := dimen.ParseDimen(v, upp)
	if err != nil || isPercent {
		return 0, false
	}
	return u, true
}

// literalEdge resolves a margin/padding declaration phase 1 can use
// without a known containing-block width: auto and percentage values
// contribute 0 to the measured preferred width, since phase 2's
// AdjustWidthAndMargins resolves their real values once the parent
// width is settled.
func literalEdge(v string, upp dimen.Unit) dimen.Unit {
	if v == "" || v == "auto" {
		return 0
	}
	u, isPercent, err := dimen.ParseDimen(v, upp)
	if err != nil || isPercent {
		return 0
	}
	return u
}
