/*
Package boxtree is the layout core's output data structure (spec.md
§3.2): a columnar, skip-encoded forest of block boxes, the inline
formatting contexts they contain, the background-image pool, and the
node→generated-box map. The stacking-context tree lives in package
stacking.

Every array-of-structs the teacher's engine/frame.Box type bundles into
one struct is split here into one slice per attribute, keyed by the same
index — the "columnar storage" spec.md §9 calls for, chosen because the
cosmetic pass (§4.8) only ever touches a handful of these columns per
element and a struct-of-arrays layout keeps that pass's working set
small.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package boxtree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/vizbox/core/color"
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/env"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// SubtreeID indexes Forest.Subtrees.
type SubtreeID int32

// BlockRef addresses one block box: a subtree and an index within it.
type BlockRef struct {
	Subtree SubtreeID
	Index   int32
}

// NoBlock is the zero-value-free sentinel for "no block box".
var NoBlock = BlockRef{Subtree: -1, Index: -1}

// IsValid reports whether r addresses a real block box.
func (r BlockRef) IsValid() bool {
	return r.Subtree >= 0 && r.Index >= 0
}

// BoxKind is the `type` tag of a block-box slot.
type BoxKind uint8

const (
	KindBlock BoxKind = iota
	KindIFCContainer
	KindSubtreeProxy
)

// BoxType is a block-box slot's kind plus its payload (an IFC id for
// ifc_container, a nested SubtreeID for subtree_proxy).
type BoxType struct {
	Kind BoxKind
	Ref  int32
}

// StackingRef records the id of the stacking context a block box
// establishes, if Valid, without importing package stacking (boxtree
// must not depend on stacking; stacking depends on boxtree).
type StackingRef struct {
	Valid bool
	ID    int32
}

// Insets is the used `top/right/bottom/left` offsets for a relatively
// positioned box, with a flag per side recording whether it was `auto`.
type Insets struct {
	Values dimen.Edges
	Auto   [4]bool
}

// Background is a block box's resolved background: the clipped color
// plus a slice handle into the background-image pool.
type Background struct {
	Color  color.RGBA
	Images ImageSliceHandle
}

// Subtree is one skip-encoded, columnar forest of block boxes —
// spec.md §3.2's per-attribute columns. Index 0 is always the
// subtree's root.
type Subtree struct {
	Skip            []int32
	Type            []BoxType
	StackingContext []StackingRef
	Node            []env.NodeID
	BoxOffsets      []dimen.Rect // border-box position + size
	ContentSize     []dimen.Size
	Borders         []dimen.Edges
	BorderColors    [][4]color.RGBA
	BorderStyles    [][4]string
	Padding         []dimen.Edges
	Margins         []dimen.Edges
	Insets          []Insets
	Background      []Background
	Offset          []dimen.Point // paint-time translation, relative to containing block
	Color           []color.RGBA  // used `color`, for currentcolor propagation
}

// Len returns the number of block-box slots currently appended.
func (s *Subtree) Len() int {
	return len(s.Skip)
}

// append pushes a new block-box slot with skip=1 (a leaf until children
// are appended) and returns its index.
func (s *Subtree) append(node env.NodeID, typ BoxType) int32 {
	idx := int32(len(s.Skip))
	s.Skip = append(s.Skip, 1)
	s.Type = append(s.Type, typ)
	s.StackingContext = append(s.StackingContext, StackingRef{})
	s.Node = append(s.Node, node)
	s.BoxOffsets = append(s.BoxOffsets, dimen.Rect{})
	s.ContentSize = append(s.ContentSize, dimen.Size{})
	s.Borders = append(s.Borders, dimen.Edges{})
	s.BorderColors = append(s.BorderColors, [4]color.RGBA{})
	s.BorderStyles = append(s.BorderStyles, [4]string{"none", "none", "none", "none"})
	s.Padding = append(s.Padding, dimen.Edges{})
	s.Margins = append(s.Margins, dimen.Edges{})
	s.Insets = append(s.Insets, Insets{})
	s.Background = append(s.Background, Background{})
	s.Offset = append(s.Offset, dimen.Point{})
	s.Color = append(s.Color, color.Black)
	return idx
}

// Children iterates i's direct children (not all descendants), walking
// the skip-encoded range [i+1, i+skip[i]) at stride equal to each
// child's own skip.
func (s *Subtree) Children(i int32) []int32 {
	var kids []int32
	end := i + s.Skip[i]
	for c := i + 1; c < end; c += s.Skip[c] {
		kids = append(kids, c)
	}
	return kids
}

// CheckSkipIntegrity verifies spec.md §8.1's skip-integrity invariant
// for this subtree: every index's skip keeps it within its parent's
// range. Intended for tests, not the hot path.
func (s *Subtree) CheckSkipIntegrity() bool {
	n := int32(s.Len())
	for i := int32(0); i < n; i++ {
		if s.Skip[i] < 1 || i+s.Skip[i] > n {
			return false
		}
		end := i + s.Skip[i]
		for c := i + 1; c < end; c += s.Skip[c] {
			if c+s.Skip[c] > end {
				return false
			}
		}
	}
	return true
}

// Forest is the box tree's ordered collection of block subtrees
// (spec.md §3.2's "Subtrees").
type Forest struct {
	Subtrees []*Subtree
}

// NewSubtree appends a fresh, empty subtree and returns its id.
func (f *Forest) NewSubtree() SubtreeID {
	id := SubtreeID(len(f.Subtrees))
	f.Subtrees = append(f.Subtrees, &Subtree{})
	return id
}

// At returns the subtree for id.
func (f *Forest) At(id SubtreeID) *Subtree {
	return f.Subtrees[id]
}

// PushBlock appends a new block box as the next slot of subtree id and
// returns its BlockRef. Callers are responsible for growing ancestor
// skips as the subtree closes (see GrowSkip).
func (f *Forest) PushBlock(id SubtreeID, node env.NodeID, typ BoxType) BlockRef {
	idx := f.At(id).append(node, typ)
	return BlockRef{Subtree: id, Index: idx}
}

// GrowSkip adds delta to ref's skip count, used when a block's subtree
// gains descendants after the block itself was appended.
func (f *Forest) GrowSkip(ref BlockRef, delta int32) {
	f.At(ref.Subtree).Skip[ref.Index] += delta
}
