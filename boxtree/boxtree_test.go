package boxtree

import (
	"testing"

	"github.com/npillmayer/vizbox/env"
)

func TestSkipIntegrityOnFreshSubtree(t *testing.T) {
	f := &Forest{}
	id := f.NewSubtree()
	root := f.PushBlock(id, 0, BoxType{Kind: KindBlock})
	child := f.PushBlock(id, 1, BoxType{Kind: KindBlock})
	_ = child
	f.GrowSkip(root, 1)
	if !f.At(id).CheckSkipIntegrity() {
		t.Fatal("expected skip integrity to hold for a root with one child")
	}
}

func TestChildrenIteration(t *testing.T) {
	f := &Forest{}
	id := f.NewSubtree()
	root := f.PushBlock(id, 0, BoxType{Kind: KindBlock})
	f.PushBlock(id, 1, BoxType{Kind: KindBlock})
	f.PushBlock(id, 2, BoxType{Kind: KindBlock})
	f.GrowSkip(root, 2)
	kids := f.At(id).Children(root.Index)
	if len(kids) != 2 {
		t.Fatalf("expected 2 children, got %d", len(kids))
	}
}

func TestIFCRootInvariant(t *testing.T) {
	ifc := NewIFC(NoBlock)
	if len(ifc.InlineBoxes) != 1 {
		t.Fatalf("expected exactly one inline box (the root), got %d", len(ifc.InlineBoxes))
	}
	if len(ifc.Glyphs) != 2 || ifc.Glyphs[0].Index != 0 || ifc.Glyphs[1].Marker.Kind != BoxStart || ifc.Glyphs[1].Marker.Data != 0 {
		t.Fatal("expected the IFC to open with (0, BoxStart(0))")
	}
}

func TestGlyphStreamBalance(t *testing.T) {
	ifc := NewIFC(NoBlock)
	b := ifc.OpenInlineBox(1)
	ifc.PushGlyph(5)
	ifc.CloseInlineBox(b)
	if !ifc.CheckGlyphStreamBalance() {
		t.Fatal("expected a balanced BoxStart/BoxEnd stream")
	}
}

func TestGlyphStreamImbalanceDetected(t *testing.T) {
	ifc := NewIFC(NoBlock)
	ifc.pushMarker(BoxStart, 1)
	if ifc.CheckGlyphStreamBalance() {
		t.Fatal("expected an unmatched BoxStart to be detected as imbalanced")
	}
}

func TestNodeMapInjectivity(t *testing.T) {
	m := NewNodeMap()
	m.SetBlock(env.NodeID(1), BlockRef{Subtree: 0, Index: 0})
	defer func() {
		if recover() == nil {
			t.Fatal("expected setting a second box for the same node to panic")
		}
	}()
	m.SetBlock(env.NodeID(1), BlockRef{Subtree: 0, Index: 1})
}
