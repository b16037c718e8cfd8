/*
Package stacking builds the layout core's stacking-context tree: a
skip-encoded, z-index-ordered list of paint-order records (spec.md
§4.4). It mirrors boxtree's skip-encoding idiom but keeps its own file
since a stacking-context record outlives the block box it eventually
binds to (shrink-to-fit's "late block binding", spec.md §9) — the two
trees are built by different passes and only join at `set_block`.

The "incompletes" set is a gods/sets/hashset, mirroring the teacher's
own feasible-breakpoint set in engine/frame/khipu/linebreak/knuthplass.
The open-context/parentable stacks below are plain Go slices rather
than gods/stacks/arraystack: shiftIndices below needs to walk every
open frame bottom-to-top on each insertion, and arraystack exposes no
documented traversal order for that walk, so a slice keeps the
fix-up unambiguous.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package stacking

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/vizbox/boxtree"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Kind is the `kind` argument to Push (spec.md §4.4).
type Kind uint8

const (
	KindNone Kind = iota
	KindParentable
	KindNonParentable
)

// Record is one stacking-context tree entry: `(skip, id, z_index, ref,
// ifcs)` from spec.md §3.2.
type Record struct {
	Skip    int32
	ID      int32
	ZIndex  int32
	Ref     boxtree.BlockRef
	HasRef  bool
	IFCs    []boxtree.IFCID
}

// frame is the push/pop bookkeeping for one open context: its index
// into Tree.Records, and how many `push(none)` calls are pending a
// matching pop.
type frame struct {
	index    int32
	numNones int32
}

// Tree is the stacking-context tree builder and its backing storage.
// The zero value is not ready to use; call New.
type Tree struct {
	Records     []Record
	contexts    []*frame // open contexts, bottom to top
	parentables []int32  // open parentable contexts' Records indices, bottom to top
	nextID      int32
	incompletes *hashset.Set // ids awaiting set_block
}

// New returns an empty, ready-to-use stacking-context builder.
func New() *Tree {
	return &Tree{
		incompletes: hashset.New(),
	}
}

// PushInitial creates the root context at index 0 with z_index=0,
// parentable. Pre: the tree must be empty. Returns its id.
func (t *Tree) PushInitial(ref boxtree.BlockRef) int32 {
	if len(t.Records) != 0 {
		panic("stacking: PushInitial called on a non-empty tree")
	}
	id := t.nextID
	t.nextID++
	t.Records = append(t.Records, Record{Skip: 1, ID: id, ZIndex: 0, Ref: ref, HasRef: true})
	t.contexts = append(t.contexts, &frame{index: 0})
	t.parentables = append(t.parentables, 0)
	return id
}

// currentFrame returns the open context's bookkeeping frame.
func (t *Tree) currentFrame() *frame {
	if len(t.contexts) == 0 {
		panic("stacking: no open stacking context")
	}
	return t.contexts[len(t.contexts)-1]
}

// currentParentIndex returns the Records index of the innermost
// parentable (children-accepting) context.
func (t *Tree) currentParentIndex() int32 {
	if len(t.parentables) == 0 {
		panic("stacking: no open parentable stacking context")
	}
	return t.parentables[len(t.parentables)-1]
}

// Push inserts a new stacking-context record in z-order among the
// current parentable context's existing children, per spec.md §4.4.
// kind==KindNone bumps the current frame's num_nones counter (so Pop
// has a symmetric action) and returns false, ok.
func (t *Tree) Push(kind Kind, zIndex int32, ref boxtree.BlockRef) (id int32, ok bool) {
	if kind == KindNone {
		t.currentFrame().numNones++
		return 0, false
	}
	parentIdx := t.currentParentIndex()
	insertAt := t.findInsertionIndex(parentIdx, zIndex)
	id = t.nextID
	t.nextID++
	rec := Record{Skip: 1, ID: id, ZIndex: zIndex, Ref: ref, HasRef: true}
	t.insertRecord(insertAt, rec)
	t.contexts = append(t.contexts, &frame{index: insertAt})
	if kind == KindParentable {
		t.parentables = append(t.parentables, insertAt)
	} else {
		t.Records[parentIdx].Skip++
	}
	return id, true
}

// PushWithoutBlock behaves like Push but leaves Ref unset and records id
// in the incompletes set; the caller must call SetBlock before the
// owning scope closes (spec.md §4.4, §9's "late block binding").
func (t *Tree) PushWithoutBlock(kind Kind, zIndex int32) int32 {
	parentIdx := t.currentParentIndex()
	insertAt := t.findInsertionIndex(parentIdx, zIndex)
	id := t.nextID
	t.nextID++
	rec := Record{Skip: 1, ID: id, ZIndex: zIndex}
	t.insertRecord(insertAt, rec)
	t.contexts = append(t.contexts, &frame{index: insertAt})
	if kind == KindParentable {
		t.parentables = append(t.parentables, insertAt)
	} else {
		t.Records[parentIdx].Skip++
	}
	t.incompletes.Add(id)
	return id
}

// findInsertionIndex walks parent's sibling range starting at
// parentIdx+1, stopping at the first child whose z_index exceeds
// zIndex (or at the end of parent's range), preserving spec.md §3.3's
// non-decreasing z-index ordering invariant.
func (t *Tree) findInsertionIndex(parentIdx, zIndex int32) int32 {
	end := parentIdx + t.Records[parentIdx].Skip
	c := parentIdx + 1
	for c < end {
		if t.Records[c].ZIndex > zIndex {
			break
		}
		c += t.Records[c].Skip
	}
	return c
}

// insertRecord splices rec into Records at position pos, fixing up the
// index bookkeeping held by open frames and the parentables stack.
func (t *Tree) insertRecord(pos int32, rec Record) {
	t.Records = append(t.Records, Record{})
	copy(t.Records[pos+1:], t.Records[pos:])
	t.Records[pos] = rec
	t.shiftIndices(pos, 1)
}

// shiftIndices adds delta to every open frame / parentable index at or
// after pos, keeping them valid after an insertion.
func (t *Tree) shiftIndices(pos, delta int32) {
	for _, f := range t.contexts {
		if f.index >= pos {
			f.index += delta
		}
	}
	for i, idx := range t.parentables {
		if idx >= pos {
			t.parentables[i] += delta
		}
	}
}

// Pop closes the innermost open context. If a balancing `push(none)`
// is pending, it is consumed instead (spec.md §4.4).
func (t *Tree) Pop() {
	f := t.currentFrame()
	if f.numNones > 0 {
		f.numNones--
		return
	}
	t.contexts = t.contexts[:len(t.contexts)-1]
	wasParentable := false
	if n := len(t.parentables); n > 0 && t.parentables[n-1] == f.index {
		t.parentables = t.parentables[:n-1]
		wasParentable = true
	}
	if wasParentable {
		if parentIdx, ok := t.currentParentIndexSafe(); ok {
			t.Records[parentIdx].Skip += t.Records[f.index].Skip
		}
	}
}

// currentParentIndexSafe is currentParentIndex without panicking, used
// by Pop once the popped frame may have been the last parentable.
func (t *Tree) currentParentIndexSafe() (int32, bool) {
	if len(t.parentables) == 0 {
		return 0, false
	}
	return t.parentables[len(t.parentables)-1], true
}

// PopInitial asserts the tree holds exactly the root context with no
// other open parentables, then detaches it.
func (t *Tree) PopInitial() {
	if len(t.contexts) != 1 {
		panic("stacking: PopInitial called with nested contexts still open")
	}
	if len(t.parentables) != 1 {
		panic("stacking: PopInitial called with stray parentable contexts")
	}
	t.contexts = t.contexts[:0]
	t.parentables = t.parentables[:0]
}

// SetBlock completes a PushWithoutBlock record by writing its block
// reference and removing it from the incompletes set.
func (t *Tree) SetBlock(id int32, ref boxtree.BlockRef) {
	for i := range t.Records {
		if t.Records[i].ID == id {
			t.Records[i].Ref = ref
			t.Records[i].HasRef = true
			t.incompletes.Remove(id)
			return
		}
	}
	panic("stacking: SetBlock called for an unknown id")
}

// AddIFC appends ifc to the innermost open context's IFC list.
func (t *Tree) AddIFC(ifc boxtree.IFCID) {
	f := t.currentFrame()
	t.Records[f.index].IFCs = append(t.Records[f.index].IFCs, ifc)
}

// IncompleteCount reports how many PushWithoutBlock records are still
// awaiting SetBlock (spec.md §3.3 invariant 7 / §8.1's completeness
// property: this must be 0 once Layout.Run returns).
func (t *Tree) IncompleteCount() int {
	return t.incompletes.Size()
}

// CheckOrdering verifies spec.md §8.1's stacking-ordering invariant:
// every non-leaf context's children, visited in storage/insertion
// order, have non-decreasing z_index.
func (t *Tree) CheckOrdering() bool {
	n := int32(len(t.Records))
	for i := int32(0); i < n; i++ {
		end := i + t.Records[i].Skip
		var last int32 = -1 << 31
		for c := i + 1; c < end; c += t.Records[c].Skip {
			if t.Records[c].ZIndex < last {
				return false
			}
			last = t.Records[c].ZIndex
		}
	}
	return true
}
