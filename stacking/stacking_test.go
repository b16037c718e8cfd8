package stacking

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/vizbox/boxtree"
)

func TestPushInitialSeedsRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	tr := New()
	root := tr.PushInitial(boxtree.BlockRef{Subtree: 0, Index: 0})
	if root != 0 {
		t.Fatalf("expected root id 0, got %d", root)
	}
	if len(tr.Records) != 1 || tr.Records[0].Skip != 1 {
		t.Fatal("expected a single root record with skip 1")
	}
	if !tr.CheckOrdering() {
		t.Fatal("expected a fresh root to satisfy ordering")
	}
}

func TestPushOrdersByZIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	tr := New()
	tr.PushInitial(boxtree.BlockRef{})
	// scenario S6: children pushed out of order (1, -3, 2), must land
	// sorted -3, 1, 2 among the root's children.
	id1, ok := tr.Push(KindParentable, 1, boxtree.BlockRef{Subtree: 0, Index: 1})
	if !ok {
		t.Fatal("expected Push to succeed")
	}
	tr.Pop()
	id2, ok := tr.Push(KindParentable, -3, boxtree.BlockRef{Subtree: 0, Index: 2})
	if !ok {
		t.Fatal("expected Push to succeed")
	}
	tr.Pop()
	id3, ok := tr.Push(KindParentable, 2, boxtree.BlockRef{Subtree: 0, Index: 3})
	if !ok {
		t.Fatal("expected Push to succeed")
	}
	tr.Pop()

	if !tr.CheckOrdering() {
		t.Fatal("expected non-decreasing z-index ordering among root's children")
	}
	zs := make([]int32, 0, 3)
	for i := int32(1); i < int32(len(tr.Records)); i++ {
		zs = append(zs, tr.Records[i].ZIndex)
	}
	if len(zs) != 3 || zs[0] != -3 || zs[1] != 1 || zs[2] != 2 {
		t.Fatalf("expected z-index order [-3 1 2], got %v", zs)
	}
	ids := map[int32]bool{id1: true, id2: true, id3: true}
	if len(ids) != 3 {
		t.Fatal("expected three distinct ids")
	}
}

func TestPushNoneConsumedByPop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	tr := New()
	tr.PushInitial(boxtree.BlockRef{})
	_, ok := tr.Push(KindNone, 0, boxtree.BlockRef{})
	if ok {
		t.Fatal("expected push(none) to report ok=false")
	}
	if len(tr.Records) != 1 {
		t.Fatal("expected push(none) to add no record")
	}
	// the matching Pop consumes the pending none instead of closing root.
	tr.Pop()
	tr.PopInitial()
}

func TestPushWithoutBlockTracksIncomplete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	tr := New()
	tr.PushInitial(boxtree.BlockRef{})
	id := tr.PushWithoutBlock(KindNonParentable, 0)
	if tr.IncompleteCount() != 1 {
		t.Fatalf("expected one incomplete record, got %d", tr.IncompleteCount())
	}
	tr.Pop()
	tr.SetBlock(id, boxtree.BlockRef{Subtree: 0, Index: 5})
	if tr.IncompleteCount() != 0 {
		t.Fatal("expected SetBlock to clear the incomplete record")
	}
	for _, r := range tr.Records {
		if r.ID == id && !r.HasRef {
			t.Fatal("expected SetBlock to mark the record as having a ref")
		}
	}
	tr.PopInitial()
}

func TestNonParentableDoesNotAcceptChildren(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	tr := New()
	tr.PushInitial(boxtree.BlockRef{})
	tr.Push(KindNonParentable, 0, boxtree.BlockRef{Subtree: 0, Index: 1})
	// parent is still root: the non-parentable frame never joined parentables.
	if tr.currentParentIndex() != 0 {
		t.Fatal("expected root to remain the current parentable context")
	}
	tr.Pop()
	tr.PopInitial()
}

func TestAddIFCAttachesToInnermostContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	tr := New()
	tr.PushInitial(boxtree.BlockRef{})
	tr.AddIFC(boxtree.IFCID(7))
	if len(tr.Records[0].IFCs) != 1 || tr.Records[0].IFCs[0] != boxtree.IFCID(7) {
		t.Fatal("expected the IFC to attach to the root context")
	}
	tr.PopInitial()
}

func TestPopInitialRejectsNestedContexts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	tr := New()
	tr.PushInitial(boxtree.BlockRef{})
	tr.Push(KindParentable, 0, boxtree.BlockRef{Subtree: 0, Index: 1})
	defer func() {
		if recover() == nil {
			t.Fatal("expected PopInitial to panic with a still-open nested context")
		}
	}()
	tr.PopInitial()
}
