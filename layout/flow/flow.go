/*
Package flow implements normal block flow (spec.md §4.6): resolving a
block's horizontal/vertical edges per CSS 2.2 §10.3.3, the auto-margin
and auto-width distribution rules, and the main block-flow loop that
stacks children and sums their heights.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package flow

import (
	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/dimen"
)

// Edges is the resolved set of an axis's length/auto flags, shared
// between the horizontal and vertical passes of solveAllSizes.
type Edges struct {
	Start, End             dimen.Unit
	StartAuto, EndAuto     bool
	Border                 dimen.Unit
	BorderStart, BorderEnd dimen.Unit
	PaddingStart           dimen.Unit
	PaddingEnd             dimen.Unit
}

// BlockUsedSizes is the complete resolved geometry of one block,
// produced by solveAllSizes and finished by adjustWidthAndMargins.
type BlockUsedSizes struct {
	Width, Height         dimen.Unit
	WidthAuto, HeightAuto bool
	MinWidth, MaxWidth    dimen.Unit
	MinHeight, MaxHeight  dimen.Unit
	MarginLeft, MarginRight   dimen.Unit
	MarginLeftAuto, MarginRightAuto bool
	MarginTop, MarginBottom dimen.Unit
	BorderLeft, BorderRight   dimen.Unit
	BorderTop, BorderBottom   dimen.Unit
	PaddingLeft, PaddingRight dimen.Unit
	PaddingTop, PaddingBottom dimen.Unit
	Insets       boxtree.Insets
}

// AdjustWidthAndMargins applies CSS 2.2 §10.3.3's auto-margin/auto-width
// resolution to an already length-or-auto-resolved BlockUsedSizes, given
// the parent's content width.
func AdjustWidthAndMargins(u *BlockUsedSizes, containingBlockWidth dimen.Unit) {
	edgeSum := u.BorderLeft + u.BorderRight + u.PaddingLeft + u.PaddingRight
	autos := 0
	if u.WidthAuto {
		autos++
	}
	if u.MarginLeftAuto {
		autos++
	}
	if u.MarginRightAuto {
		autos++
	}

	switch {
	case autos == 0:
		// over-constrained: margin-right absorbs the slack (spec.md §4.6).
		u.MarginRight = containingBlockWidth - u.Width - edgeSum - u.MarginLeft
	case !u.WidthAuto && u.MarginLeftAuto && u.MarginRightAuto:
		slack := containingBlockWidth - u.Width - edgeSum
		if slack < 0 {
			slack = 0
		}
		half := slack / 2
		u.MarginLeft = half
		u.MarginRight = slack - half // tie-breaking bias: right absorbs the odd unit
	case !u.WidthAuto && u.MarginLeftAuto:
		u.MarginLeft = containingBlockWidth - u.Width - edgeSum - u.MarginRight
	case !u.WidthAuto && u.MarginRightAuto:
		u.MarginRight = containingBlockWidth - u.Width - edgeSum - u.MarginLeft
	case u.WidthAuto:
		if u.MarginLeftAuto {
			u.MarginLeft = 0
		}
		if u.MarginRightAuto {
			u.MarginRight = 0
		}
		u.Width = containingBlockWidth - edgeSum - u.MarginLeft - u.MarginRight
		if u.Width < 0 {
			u.Width = 0
		}
	}
	u.Width = dimen.Clamp(u.Width, u.MinWidth, u.MaxWidth)
	u.Height = dimen.Clamp(u.Height, u.MinHeight, u.MaxHeight)
}

// ShrinkToFitWidth replaces an already-auto-resolved width with CSS 2.2
// §10.3.7's shrink-to-fit formula: min(preferredWidth, available), where
// available is the containing block's width less this box's own
// margins/borders/padding. A no-op when width was not auto (spec.md
// §4.7 only ever calls this for inline-block's auto case).
func ShrinkToFitWidth(u *BlockUsedSizes, containingBlockWidth, preferredWidth dimen.Unit) {
	if !u.WidthAuto {
		return
	}
	edgeSum := u.BorderLeft + u.BorderRight + u.PaddingLeft + u.PaddingRight
	marginSum := u.MarginLeft + u.MarginRight
	available := containingBlockWidth - edgeSum - marginSum
	if available < 0 {
		available = 0
	}
	w := preferredWidth
	if w > available {
		w = available
	}
	u.Width = dimen.Clamp(w, u.MinWidth, u.MaxWidth)
}

// OffsetChildBlocks iterates the children of index (in skip order)
// within subtree, stacking each directly below the previous by setting
// its Offset.Y cumulatively, and returns the summed content-box height
// (spec.md §4.6's `offsetChildBlocks`).
func OffsetChildBlocks(s *boxtree.Subtree, index int32) dimen.Unit {
	var y dimen.Unit
	for _, c := range s.Children(index) {
		s.Offset[c] = dimen.Point{X: s.Offset[c].X, Y: y}
		marginBoxHeight := s.ContentSize[c].H +
			s.Padding[c][dimen.Top] + s.Padding[c][dimen.Bottom] +
			s.Borders[c][dimen.Top] + s.Borders[c][dimen.Bottom] +
			s.Margins[c][dimen.Top] + s.Margins[c][dimen.Bottom]
		y += marginBoxHeight
	}
	return y
}

// StackingKind mirrors solveStackingContext's three reachable outcomes
// for this core (spec.md §4.6.2): absolute/fixed/sticky are unreachable
// non-goals.
type StackingKind uint8

const (
	StackNone StackingKind = iota
	StackParentable
	StackNonParentable
)

// SolveStackingContext maps a block's position and (already-parsed)
// z-index onto the stacking-context builder's push kind.
func SolveStackingContext(position string, zIndexAuto bool, zIndex int32) (StackingKind, int32) {
	switch position {
	case "static":
		return StackNone, 0
	case "relative":
		if zIndexAuto {
			return StackNonParentable, 0
		}
		return StackParentable, zIndex
	}
	panic("flow: unreachable position in solveStackingContext: " + position)
}
