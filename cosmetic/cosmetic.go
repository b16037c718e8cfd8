/*
Package cosmetic is the layout core's second tree pass (spec.md §4.8):
after block-flow/shrink-to-fit has produced the box tree's geometry, this
pass walks it once more in preorder to resolve currentcolor propagation,
border colors, background color and background images, and to propagate
a resolved font color down into every inline formatting context.

The pass is a plain forward scan over a Subtree's skip-encoded columns
rather than a second environment-tree walk: the box tree's append order
is already a parent-before-children preorder (every PushBlock call
happens after its own parent's), so a single left-to-right sweep sees
every block's parent before the block itself, exactly what currentcolor
propagation needs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cosmetic

import (
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/color"
	"github.com/npillmayer/vizbox/core/dimen"
	cimage "github.com/npillmayer/vizbox/core/image"
	"github.com/npillmayer/vizbox/core/valuesolver"
	"github.com/npillmayer/vizbox/env"
	"github.com/npillmayer/vizbox/style"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ImageRegistry mirrors layout.ImageRegistry; this package is kept free
// of a dependency on the layout package (which already depends on
// cosmetic would be a cycle), so it declares its own narrow copy.
type ImageRegistry interface {
	Dimensions(h cimage.ImageHandle) (cimage.Dimensions, bool)
	GetImageByURL(url string) (cimage.ImageHandle, bool)
}

// Run executes the cosmetic pass over tree, using sc to re-resolve each
// box's color-bearing property groups and images to resolve
// background-image layers.
func Run(tree *boxtree.BoxTree, sc *style.Computer, images ImageRegistry, unitsPerPixel dimen.Unit) {
	for id := range tree.Forest.Subtrees {
		runSubtree(tree, boxtree.SubtreeID(id), sc, images, unitsPerPixel)
	}
	for _, ifc := range tree.IFCs {
		propagateFontColor(tree, ifc)
	}
}

func runSubtree(tree *boxtree.BoxTree, id boxtree.SubtreeID, sc *style.Computer, images ImageRegistry, unitsPerPixel dimen.Unit) {
	s := tree.Forest.At(id)
	n := s.Len()
	for i := 0; i < n; i++ {
		node := s.Node[i]
		if node == env.NoNode {
			// an ifc_container box: no cascade to consult, inherits the
			// containing block's used color for the IFC propagation step.
			parent := parentIndex(s, int32(i))
			if parent >= 0 {
				s.Color[i] = s.Color[parent]
			}
			continue
		}
		parent := parentIndex(s, int32(i))
		currentColor := color.Black
		if parent >= 0 {
			currentColor = s.Color[parent]
		}

		sc.SetCurrentNode(style.Cosmetic, node)
		colorV := sc.GetSpecifiedValue(style.Cosmetic, env.GroupColor)
		used, err := valuesolver.Color(colorV["color"], currentColor)
		if err != nil {
			used = currentColor
		}
		s.Color[i] = used

		borderColorV := sc.GetSpecifiedValue(style.Cosmetic, env.GroupBorderColor)
		sides := [4]string{
			borderColorV["border-top-color"], borderColorV["border-right-color"],
			borderColorV["border-bottom-color"], borderColorV["border-left-color"],
		}
		for side := 0; side < 4; side++ {
			bc, err := valuesolver.Color(sides[side], used)
			if err != nil {
				bc = used
			}
			s.BorderColors[i][side] = bc
		}

		bgColorV := sc.GetSpecifiedValue(style.Cosmetic, env.GroupBackgroundColor)
		bg, err := valuesolver.Color(bgColorV["background-color"], used)
		if err != nil {
			bg = used
		}
		s.Background[i].Color = bg

		bgV := sc.GetSpecifiedValue(style.Cosmetic, env.GroupBackground)
		s.Background[i].Images = resolveBackgroundImages(tree, s, int32(i), bgV, images, unitsPerPixel)
	}
}

// parentIndex walks backward to find i's nearest enclosing block, or -1
// if i is a subtree root.
func parentIndex(s *boxtree.Subtree, i int32) int32 {
	for p := i - 1; p >= 0; p-- {
		if p+s.Skip[p] > i {
			return p
		}
	}
	return -1
}

// resolveBackgroundImages parses the (non-goal-trimmed, single-layer)
// `background-image` value and resolves it through the image registry,
// per spec.md §4.1's background-image operation.
func resolveBackgroundImages(tree *boxtree.BoxTree, s *boxtree.Subtree, i int32, bgV style.Value, images ImageRegistry, unitsPerPixel dimen.Unit) boxtree.ImageSliceHandle {
	url := parseURL(bgV["background-image"])
	if url == "" || images == nil {
		return boxtree.ImageSliceHandle{}
	}
	handle, ok := images.GetImageByURL(url)
	if !ok {
		return boxtree.ImageSliceHandle{}
	}
	dims, ok := images.Dimensions(handle)
	if !ok {
		return boxtree.ImageSliceHandle{}
	}
	decl := valuesolver.BackgroundImageDecl{
		NaturalW: dims.WidthPx, NaturalH: dims.HeightPx,
		SizeW: bgV["background-size"], SizeH: bgV["background-size"],
		PositionX: "0%", PositionY: "0%",
		RepeatX: bgV["background-repeat"], RepeatY: bgV["background-repeat"],
		Origin: bgV["background-origin"], Clip: bgV["background-clip"],
	}
	if decl.SizeW == "contain" || decl.SizeW == "cover" {
		decl.SizeKeyword = decl.SizeW
	}
	result := valuesolver.BackgroundImage(decl, s.BoxOffsets[i], s.Borders[i], s.Padding[i], unitsPerPixel)
	slot := tree.Pool.AllocBackgroundImages(1)
	tree.Pool.Set(slot.Begin, result)
	return slot
}

// parseURL extracts the quoted-or-bare argument of a `url(...)`
// function, or "" for "none"/anything else unrecognized.
func parseURL(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "url(") || !strings.HasSuffix(v, ")") {
		return ""
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(v, "url("), ")")
	inner = strings.Trim(inner, `"'`)
	return inner
}

// propagateFontColor sets an IFC's FontColor from its parent block's used
// color (spec.md §4.8's simplified font-color propagation: every glyph
// in an IFC paints with the same color rather than per-run).
func propagateFontColor(tree *boxtree.BoxTree, ifc *boxtree.IFC) {
	if !ifc.Parent.IsValid() {
		return
	}
	s := tree.Forest.At(ifc.Parent.Subtree)
	c := s.Color[ifc.Parent.Index]
	ifc.FontColor = [3]uint8{c.R, c.G, c.B}
}
