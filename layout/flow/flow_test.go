package flow

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/style"
)

type fakeBorderWidths struct{}

func (fakeBorderWidths) BorderWidthConstant(keyword string) dimen.Unit {
	switch keyword {
	case "thin":
		return 1
	case "medium":
		return 3
	case "thick":
		return 5
	}
	return 0
}

// S2: width:100px, margin-left/right:auto, viewport 400px wide, 60
// units per pixel.
func TestAdjustWidthAndMarginsAutoCenters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	widthEdges := style.Value{
		"width": "100px", "min-width": "0", "max-width": "none",
		"margin-left": "auto", "margin-right": "auto",
		"border-left-width": "medium", "border-right-width": "medium",
		"padding-left": "0", "padding-right": "0",
	}
	heightEdges := style.Value{
		"height": "auto", "min-height": "0", "max-height": "none",
		"margin-top": "0", "margin-bottom": "0",
		"border-top-width": "medium", "border-bottom-width": "medium",
		"padding-top": "0", "padding-bottom": "0",
	}
	borderStyles := style.Value{
		"border-left-style": "none", "border-right-style": "none",
		"border-top-style": "none", "border-bottom-style": "none",
	}
	insets := style.Value{"top": "auto", "right": "auto", "bottom": "auto", "left": "auto"}
	cbw := dimen.Round(400, 60)
	u := SolveAllSizes(widthEdges, heightEdges, borderStyles, insets, fakeBorderWidths{}, cbw, dimen.Round(400, 60), 60, "static")
	if u.Width != dimen.Round(100, 60) {
		t.Fatalf("expected width 100px, got %v", u.Width.Px(60))
	}
	if u.MarginLeft != u.MarginRight {
		t.Fatalf("expected equal auto margins, got %v / %v", u.MarginLeft.Px(60), u.MarginRight.Px(60))
	}
	if u.MarginLeft.Px(60) != 150 {
		t.Fatalf("expected 150px auto margins, got %v", u.MarginLeft.Px(60))
	}
}

// S1: root block with no declared sizes, in a 400x400 viewport: width
// resolves to auto (= containing block width since no margins/borders),
// height to 0 (no content).
func TestAdjustWidthAndMarginsAutoWidthFillsContainer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	widthEdges := style.Value{
		"width": "auto", "min-width": "0", "max-width": "none",
		"margin-left": "0", "margin-right": "0",
		"border-left-width": "medium", "border-right-width": "medium",
		"padding-left": "0", "padding-right": "0",
	}
	heightEdges := style.Value{
		"height": "auto", "min-height": "0", "max-height": "none",
		"margin-top": "0", "margin-bottom": "0",
		"border-top-width": "medium", "border-bottom-width": "medium",
		"padding-top": "0", "padding-bottom": "0",
	}
	borderStyles := style.Value{
		"border-left-style": "none", "border-right-style": "none",
		"border-top-style": "none", "border-bottom-style": "none",
	}
	insets := style.Value{"top": "auto", "right": "auto", "bottom": "auto", "left": "auto"}
	cbw := dimen.Round(400, 60)
	u := SolveAllSizes(widthEdges, heightEdges, borderStyles, insets, fakeBorderWidths{}, cbw, dimen.Round(400, 60), 60, "static")
	if u.Width != cbw {
		t.Fatalf("expected auto width to fill the 400px container, got %v", u.Width.Px(60))
	}
}

// S3: two stacked 50px-tall blocks under a common parent.
func TestOffsetChildBlocksStacksVertically(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	f := &boxtree.Forest{}
	id := f.NewSubtree()
	root := f.PushBlock(id, 0, boxtree.BoxType{Kind: boxtree.KindBlock})
	a := f.PushBlock(id, 1, boxtree.BoxType{Kind: boxtree.KindBlock})
	b := f.PushBlock(id, 2, boxtree.BoxType{Kind: boxtree.KindBlock})
	f.GrowSkip(root, 2)
	s := f.At(id)
	s.ContentSize[a.Index] = dimen.Size{W: 0, H: dimen.Round(50, 60)}
	s.ContentSize[b.Index] = dimen.Size{W: 0, H: dimen.Round(50, 60)}

	total := OffsetChildBlocks(s, root.Index)
	if total != dimen.Round(100, 60) {
		t.Fatalf("expected total height 100px, got %v", total.Px(60))
	}
	if s.Offset[a.Index].Y != 0 {
		t.Fatalf("expected A at offset.y=0, got %v", s.Offset[a.Index].Y.Px(60))
	}
	if s.Offset[b.Index].Y != dimen.Round(50, 60) {
		t.Fatalf("expected B at offset.y=50px, got %v", s.Offset[b.Index].Y.Px(60))
	}
}

func TestSolveStackingContextStaticIsNone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	kind, _ := SolveStackingContext("static", true, 0)
	if kind != StackNone {
		t.Fatal("expected static position to produce no stacking context")
	}
}

func TestSolveStackingContextRelativeAutoIsNonParentable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	kind, _ := SolveStackingContext("relative", true, 0)
	if kind != StackNonParentable {
		t.Fatal("expected relative+z-index:auto to be non-parentable")
	}
}

func TestSolveStackingContextRelativeZIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	kind, z := SolveStackingContext("relative", false, -3)
	if kind != StackParentable || z != -3 {
		t.Fatalf("expected parentable(-3), got kind=%v z=%d", kind, z)
	}
}
