/*
Package layout is the top-level layout dispatcher (spec.md §4.5, §6.1):
Layout.New/Layout.Run drive a depth-first traversal of the external node
tree, dispatching each element to block-flow, shrink-to-fit, or inline
handling depending on its used box_style, and assembling the boxtree.
BoxTree and stacking.Tree that are this core's entire output.

dispatchNode drives this over an explicit mode stack (modes.go):
beginMode/endMode push and pop `flow`/`inline`/`stf` frames, and a
closing frame's afterFlowMode/afterInlineMode/afterStfMode hook runs on
whatever frame is left on top before control returns to it, per spec.md
§4.5 and §9's mode-transition table. Go's own call stack still carries
the recursion (there is no coroutine primitive to suspend a mode
mid-traversal and resume it later), but the mode stack - not the Go
call stack - is what the dispatcher and its hooks actually consult to
decide what happens next, which is the property §9 is protecting.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core"
	"github.com/npillmayer/vizbox/core/dimen"
	cfont "github.com/npillmayer/vizbox/core/font"
	cimage "github.com/npillmayer/vizbox/core/image"
	"github.com/npillmayer/vizbox/core/parameters"
	"github.com/npillmayer/vizbox/core/valuesolver"
	"github.com/npillmayer/vizbox/cosmetic"
	"github.com/npillmayer/vizbox/env"
	"github.com/npillmayer/vizbox/inline"
	"github.com/npillmayer/vizbox/layout/flow"
	"github.com/npillmayer/vizbox/stacking"
	"github.com/npillmayer/vizbox/style"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ImageRegistry is the read-only image lookup contract (spec.md §6.2).
type ImageRegistry interface {
	Dimensions(h cimage.ImageHandle) (cimage.Dimensions, bool)
	GetImageByURL(url string) (cimage.ImageHandle, bool)
}

// FontRegistry is the read-only font lookup contract (spec.md §6.2).
type FontRegistry interface {
	Query() cfont.FontHandle
	Get(h cfont.FontHandle) (*cfont.ShapingFont, bool)
}

// Layout is one layout run's complete mutable state: the borrowed
// environment and registries, the tunable parameter registers, the
// style computer, and the box/stacking trees being built.
type Layout struct {
	Env       env.Environment
	Images    ImageRegistry
	Fonts     FontRegistry
	Viewport  env.Viewport
	Registers *parameters.Registers
	Style     *style.Computer
	Tree      *boxtree.BoxTree
	Stacking  *stacking.Tree

	modes []modeFrame // the explicit flow/inline/stf mode stack (spec.md §4.5, modes.go)
}

// New returns a Layout ready for Run, per spec.md §6.1's
// `Layout::new(env, allocator, width, height, &images, &fonts)`. The
// allocator parameter has no counterpart here: Go's runtime allocator
// is threaded implicitly. Run's recover converts a panicking
// core.AppError into its error result; nothing in this package raises
// OutOfMemory (spec.md §7).
func New(e env.Environment, images ImageRegistry, fonts FontRegistry, viewport env.Viewport) *Layout {
	return &Layout{
		Env:       e,
		Images:    images,
		Fonts:     fonts,
		Viewport:  viewport,
		Registers: parameters.NewRegisters(),
		Style:     style.NewComputer(e),
		Tree:      boxtree.New(),
		Stacking:  stacking.New(),
	}
}

// Run executes the layout pass, returning the finished box tree and
// stacking-context tree, or an error for the two recoverable failure
// modes spec.md §7 names (OutOfMemory, SizeLimitExceeded).
func (l *Layout) Run() (tree *boxtree.BoxTree, stackTree *stacking.Tree, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ae, ok := r.(core.AppError); ok {
				err = ae
				return
			}
			panic(r)
		}
	}()

	upp := l.Registers.UnitsPerPixel()
	subtreeID := l.Tree.Forest.NewSubtree()
	icb := l.Tree.Forest.PushBlock(subtreeID, env.NoNode, boxtree.BoxType{Kind: boxtree.KindBlock})
	s := l.Tree.Forest.At(subtreeID)
	w := dimen.Round(l.Viewport.Width, upp)
	h := dimen.Round(l.Viewport.Height, upp)
	s.ContentSize[icb.Index] = dimen.Size{W: w, H: h}
	s.BoxOffsets[icb.Index] = dimen.Rect{Size: dimen.Size{W: w, H: h}}
	l.Tree.ICB = icb
	l.Stacking.PushInitial(icb)

	if root, ok := l.Env.RootNode(); ok {
		l.dispatchNode(subtreeID, icb.Index, root, w, h, true)
	}
	l.Stacking.PopInitial()

	cosmetic.Run(l.Tree, l.Style, l.Images, upp)
	return l.Tree, l.Stacking, nil
}

// dispatchNode resolves node's used box_style and routes it to block,
// inline, or "none" handling (spec.md §4.5's per-node dispatch table).
func (l *Layout) dispatchNode(subtreeID boxtree.SubtreeID, parentIndex int32, node env.NodeID, cbWidth, cbHeight dimen.Unit, isRoot bool) {
	n := l.Env.Node(node)
	if n.Category == env.TextNode {
		return
	}
	l.Style.SetCurrentNode(style.BoxGen, node)
	bv := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupBoxStyle)
	bs := valuesolver.BoxStyle(bv["display"], bv["position"], bv["float"], isRoot)

	switch bs.Outer {
	case valuesolver.OuterNone:
		return
	case valuesolver.OuterAbsolute:
		panic("layout: position: absolute/fixed is an unsupported non-goal of this core")
	case valuesolver.OuterBlock:
		// spec.md §4.5's meta-mode `initial` (isRoot) and an ordinary
		// flow parent both land here: a block-displayed node always
		// enters `flow`, whatever mode dispatched it.
		l.blockElement(subtreeID, parentIndex, node, bs, cbWidth, cbHeight)
	case valuesolver.OuterInline:
		// a bare inline element reached directly (not via a block
		// parent's child loop) starts its own anonymous IFC container:
		// `flow -> inline` (spec.md §4.5's mode-transition table).
		ifcRef := l.openIFCContainer(subtreeID, parentIndex, cbWidth)
		ifc := l.Tree.IFCAt(boxtree.IFCID(l.Tree.Forest.At(subtreeID).Type[ifcRef.Index].Ref))
		if bs.InnerBlock {
			l.appendInlineBlockChild(ifc, node, bs, cbWidth)
		} else {
			l.appendInlineElement(ifc, node, bs, cbWidth)
		}
		l.closeIFCContainer(subtreeID, parentIndex, ifcRef, cbWidth)
	}
}

// openIFCContainer appends a new ifc_container block box as a child of
// parentIndex, registers a fresh IFC on the tree, and pushes the
// matching `inline` mode frame (spec.md §4.5's beginMode).
// cbWidth is this IFC's containing-block width, recorded on the frame
// for whatever consults it later (an inline-block child's own
// shrink-to-fit clamp, say).
func (l *Layout) openIFCContainer(subtreeID boxtree.SubtreeID, parentIndex int32, cbWidth dimen.Unit) boxtree.BlockRef {
	ifcID := l.Tree.NewIFC(boxtree.BlockRef{Subtree: subtreeID, Index: parentIndex})
	ref := l.Tree.Forest.PushBlock(subtreeID, env.NoNode, boxtree.BoxType{Kind: boxtree.KindIFCContainer, Ref: int32(ifcID)})
	l.beginMode(ModeInline, subtreeID, ref, flow.BlockUsedSizes{}, dimen.Size{W: cbWidth, H: 0})
	return ref
}

// closeIFCContainer runs the metrics pass and line-box splitting over
// the container's IFC and writes back its geometry (spec.md §4.3).
func (l *Layout) closeIFCContainer(subtreeID boxtree.SubtreeID, parentIndex int32, ref boxtree.BlockRef, maxWidth dimen.Unit) {
	s := l.Tree.Forest.At(subtreeID)
	ifcID := boxtree.IFCID(s.Type[ref.Index].Ref)
	ifc := l.Tree.IFCAt(ifcID)
	upp := l.Registers.UnitsPerPixel()
	sizer := func(blockIndex int32) (width, marginLeft, marginRight dimen.Unit) {
		width = s.ContentSize[blockIndex].W +
			s.Padding[blockIndex][dimen.Left] + s.Padding[blockIndex][dimen.Right] +
			s.Borders[blockIndex][dimen.Left] + s.Borders[blockIndex][dimen.Right]
		return width, s.Margins[blockIndex][dimen.Left], s.Margins[blockIndex][dimen.Right]
	}
	inline.SolveMetrics(ifc, l.fontFor(ifc.Font), upp, sizer)
	maxLine := l.Registers.MaxLineBoxLength()
	if maxWidth < maxLine {
		maxLine = maxWidth
	}
	heightSizer := func(blockIndex int32) (height, marginTop dimen.Unit) {
		height = s.ContentSize[blockIndex].H +
			s.Padding[blockIndex][dimen.Top] + s.Padding[blockIndex][dimen.Bottom] +
			s.Borders[blockIndex][dimen.Top] + s.Borders[blockIndex][dimen.Bottom]
		return height, s.Margins[blockIndex][dimen.Top]
	}
	inline.SplitLines(ifc, maxLine, heightSizer)
	var height dimen.Unit
	if len(ifc.Lines) > 0 {
		height = ifc.Ascender + ifc.Descender
		height *= dimen.Unit(len(ifc.Lines))
	}
	s.ContentSize[ref.Index] = dimen.Size{W: maxWidth, H: height}
	l.endMode()
	l.afterInlineMode()
	l.Tree.Forest.GrowSkip(boxtree.BlockRef{Subtree: subtreeID, Index: parentIndex}, 1)
}

// appendInlineElement shapes an inline element's direct text content
// into ifc, bracketed by its own inline box (spec.md §4.3). Nested
// inline elements open their own inline box, nested inside this one,
// in the same ifc (see DESIGN.md).
func (l *Layout) appendInlineElement(ifc *boxtree.IFC, node env.NodeID, bs valuesolver.BoxStyle, containingBlockWidth dimen.Unit) {
	idx := ifc.OpenInlineBox(node)
	l.fillInlineBoxEdges(ifc, idx, node)
	l.appendChildren(ifc, node, containingBlockWidth)
	ifc.CloseInlineBox(idx)
}

// appendChildren walks node's children, appending text runs directly,
// recursing into nested inline elements, and handing
// inline-block children off to shrink-to-fit sizing.
// containingBlockWidth is the width an inline-block child's own box
// edges and shrink-to-fit clamp resolve against (spec.md §4.7).
func (l *Layout) appendChildren(ifc *boxtree.IFC, node env.NodeID, containingBlockWidth dimen.Unit) {
	for c, ok := l.Env.FirstChild(node); ok; c, ok = l.Env.NextSibling(c) {
		cn := l.Env.Node(c)
		if cn.Category == env.TextNode {
			sf := l.fontFor(ifc.Font)
			if sf == nil {
				sf = l.defaultFont(ifc)
			}
			inline.AppendText(ifc, sf, cn.Text, l.Registers.TabSize())
			continue
		}
		l.Style.SetCurrentNode(style.BoxGen, c)
		bv := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupBoxStyle)
		bs := valuesolver.BoxStyle(bv["display"], bv["position"], bv["float"], false)
		switch {
		case bs.Outer != valuesolver.OuterInline:
			// a block-displayed descendant of an inline element is out of
			// this trimmed path's scope.
		case bs.InnerBlock:
			l.appendInlineBlockChild(ifc, c, bs, containingBlockWidth)
		default:
			l.appendInlineElement(ifc, c, bs, containingBlockWidth)
		}
	}
}

// fillInlineBoxEdges resolves an inline box's padding/border/margin on
// the inline axis (the only axis §4.3's metrics pass consults).
func (l *Layout) fillInlineBoxEdges(ifc *boxtree.IFC, idx int32, node env.NodeID) {
	l.Style.SetCurrentNode(style.BoxGen, node)
	we := l.Style.GetSpecifiedValue(style.BoxGen, env.GroupWidthEdges)
	upp := l.Registers.UnitsPerPixel()
	ib := &ifc.InlineBoxes[idx]
	ib.PaddingStart, _ = parseLen(we["padding-left"], upp)
	ib.PaddingEnd, _ = parseLen(we["padding-right"], upp)
	ib.BorderStart, _ = parseLen(we["border-left-width"], upp)
	ib.BorderEnd, _ = parseLen(we["border-right-width"], upp)
	ib.MarginStart, _ = parseLen(we["margin-left"], upp)
	ib.MarginEnd, _ = parseLen(we["margin-right"], upp)
}

func parseLen(v string, upp dimen.Unit) (dimen.Unit, bool) {
	if v == "auto" || v == "" {
		return 0, v == "auto"
	}
	u, _, err := dimen.ParseDimen(v, upp)
	if err != nil {
		return 0, false
	}
	return u, false
}

// fontFor resolves a bound font handle (falling back to the registry's
// default when handle is invalid).
func (l *Layout) fontFor(h cfont.FontHandle) *cfont.ShapingFont {
	if h == cfont.Invalid {
		h = l.Fonts.Query()
	}
	sf, _ := l.Fonts.Get(h)
	return sf
}

// defaultFont resolves and binds this IFC's font the first time text is
// appended to it.
func (l *Layout) defaultFont(ifc *boxtree.IFC) *cfont.ShapingFont {
	h := l.Fonts.Query()
	ifc.Font = h
	sf, ok := l.Fonts.Get(h)
	if !ok {
		return nil
	}
	upp := l.Registers.UnitsPerPixel()
	ifc.Ascender = dimen.Round(float64(sf.Ascender)/64.0, upp)
	ifc.Descender = dimen.Round(float64(sf.Descender)/64.0, upp)
	return sf
}
