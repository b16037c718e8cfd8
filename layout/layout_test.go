package layout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/core/font"
	cimage "github.com/npillmayer/vizbox/core/image"
	"github.com/npillmayer/vizbox/env"
)

// fakeEnv is a tiny in-memory node tree built directly from a map, for
// exercising Layout.Run end to end without a real DOM adapter.
type fakeEnv struct {
	root     env.NodeID
	nodes    map[env.NodeID]env.Node
	children map[env.NodeID][]env.NodeID
}

func (e *fakeEnv) RootNode() (env.NodeID, bool) { return e.root, e.root != env.NoNode }
func (e *fakeEnv) Node(id env.NodeID) env.Node  { return e.nodes[id] }
func (e *fakeEnv) Parent(id env.NodeID) (env.NodeID, bool) {
	for p, kids := range e.children {
		for _, k := range kids {
			if k == id {
				return p, true
			}
		}
	}
	return env.NoNode, false
}
func (e *fakeEnv) FirstChild(id env.NodeID) (env.NodeID, bool) {
	kids := e.children[id]
	if len(kids) == 0 {
		return env.NoNode, false
	}
	return kids[0], true
}
func (e *fakeEnv) NextSibling(id env.NodeID) (env.NodeID, bool) {
	for _, kids := range e.children {
		for i, k := range kids {
			if k == id {
				if i+1 < len(kids) {
					return kids[i+1], true
				}
				return env.NoNode, false
			}
		}
	}
	return env.NoNode, false
}

func newTestLayout(t *testing.T, e *fakeEnv, vp env.Viewport) *Layout {
	fr, err := font.NewRegistry("", 12)
	if err != nil {
		t.Fatalf("font.NewRegistry: %v", err)
	}
	ir := cimage.NewRegistry()
	return New(e, ir, fr, vp)
}

// S4: a root block containing one inline span whose text "ab" shapes
// onto a single line box.
func TestRunBlockWithInlineTextSingleLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	e := &fakeEnv{
		root: 1,
		nodes: map[env.NodeID]env.Node{
			1: {ID: 1, Category: env.ElementNode},
			2: {ID: 2, Category: env.ElementNode},
			3: {ID: 3, Category: env.TextNode, Text: "ab"},
		},
		children: map[env.NodeID][]env.NodeID{1: {2}, 2: {3}},
	}
	l := newTestLayout(t, e, env.Viewport{Width: 400, Height: 400})
	tree, st, err := l.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(tree.Forest.Subtrees) != 1 {
		t.Fatalf("expected a single subtree (no inline-block formatting roots), got %d", len(tree.Forest.Subtrees))
	}
	s := tree.Forest.At(0)
	if !s.CheckSkipIntegrity() {
		t.Fatal("expected skip-integrity to hold over the built subtree")
	}
	if len(tree.IFCs) != 1 {
		t.Fatalf("expected exactly one IFC (the span's anonymous container), got %d", len(tree.IFCs))
	}
	ifc := tree.IFCs[0]
	if !ifc.CheckGlyphStreamBalance() {
		t.Fatal("expected a balanced glyph stream")
	}
	if len(ifc.Lines) != 1 {
		t.Fatalf("expected \"ab\" to fit on a single line box, got %d", len(ifc.Lines))
	}
	if st.IncompleteCount() != 0 {
		t.Fatal("expected no PushWithoutBlock record left incomplete")
	}
}

// S5: a forced line break inside the text content splits into two line
// boxes.
func TestRunBlockWithForcedLineBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	e := &fakeEnv{
		root: 1,
		nodes: map[env.NodeID]env.Node{
			1: {ID: 1, Category: env.ElementNode},
			2: {ID: 2, Category: env.ElementNode},
			3: {ID: 3, Category: env.TextNode, Text: "a\nb"},
		},
		children: map[env.NodeID][]env.NodeID{1: {2}, 2: {3}},
	}
	l := newTestLayout(t, e, env.Viewport{Width: 400, Height: 400})
	tree, _, err := l.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	ifc := tree.IFCs[0]
	if len(ifc.Lines) != 2 {
		t.Fatalf("expected \"a\\nb\" to split into 2 line boxes, got %d", len(ifc.Lines))
	}
}

// A display:inline-block span gets its own formatting-root subtree,
// spliced back into the containing IFC through an InlineBlockMarker.
func TestRunInlineBlockGetsOwnSubtree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	e := &fakeEnv{
		root: 1,
		nodes: map[env.NodeID]env.Node{
			1: {ID: 1, Category: env.ElementNode},
			2: {ID: 2, Category: env.ElementNode, Cascaded: env.CascadedValues{
				Groups: map[env.GroupTag]env.CascadedGroup{
					env.GroupBoxStyle: {"display": env.DeclaredField("inline-block")},
				},
			}},
			3: {ID: 3, Category: env.TextNode, Text: "x"},
		},
		children: map[env.NodeID][]env.NodeID{1: {2}, 2: {3}},
	}
	l := newTestLayout(t, e, env.Viewport{Width: 400, Height: 400})
	tree, _, err := l.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(tree.Forest.Subtrees) != 2 {
		t.Fatalf("expected the inline-block to open a second subtree, got %d", len(tree.Forest.Subtrees))
	}
	ifc := tree.IFCs[0]
	found := false
	for i := 0; i < len(ifc.Glyphs); i++ {
		if ifc.Glyphs[i].Index == 0 && i+1 < len(ifc.Glyphs) && ifc.Glyphs[i+1].Marker.Kind == boxtree.InlineBlockMarker {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an InlineBlockMarker in the containing IFC's glyph stream")
	}
}

// An auto-width inline-block wrapping a narrower fixed-width block child
// shrinks to that child's width (spec.md §4.7's two-phase probe) instead
// of falling back to filling the containing block.
func TestRunInlineBlockWithBlockChildShrinksToFit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	e := &fakeEnv{
		root: 1,
		nodes: map[env.NodeID]env.Node{
			1: {ID: 1, Category: env.ElementNode},
			2: {ID: 2, Category: env.ElementNode, Cascaded: env.CascadedValues{
				Groups: map[env.GroupTag]env.CascadedGroup{
					env.GroupBoxStyle: {"display": env.DeclaredField("inline-block")},
				},
			}},
			3: {ID: 3, Category: env.ElementNode, Cascaded: env.CascadedValues{
				Groups: map[env.GroupTag]env.CascadedGroup{
					env.GroupBoxStyle:   {"display": env.DeclaredField("block")},
					env.GroupWidthEdges: {"width": env.DeclaredField("30px")},
				},
			}},
		},
		children: map[env.NodeID][]env.NodeID{1: {2}, 2: {3}},
	}
	l := newTestLayout(t, e, env.Viewport{Width: 400, Height: 400})
	tree, _, err := l.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(tree.Forest.Subtrees) != 2 {
		t.Fatalf("expected the inline-block to open its own subtree, got %d", len(tree.Forest.Subtrees))
	}
	inlineBlockSubtree := tree.Forest.At(1)
	// box 0 of subtree 1 is the inline-block's own block box.
	got := inlineBlockSubtree.ContentSize[0].W
	want, _, err := dimen.ParseDimen("30px", l.Registers.UnitsPerPixel())
	if err != nil {
		t.Fatalf("ParseDimen: %v", err)
	}
	if got != want {
		t.Fatalf("expected the inline-block to shrink to its 30px block child, got width %v want %v", got, want)
	}
}

// A relatively-positioned inline-block resolves a real stacking-context
// record (spec.md §3.3-5), not the hardcoded "static" no-context path.
func TestRunRelativeInlineBlockGetsStackingContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	e := &fakeEnv{
		root: 1,
		nodes: map[env.NodeID]env.Node{
			1: {ID: 1, Category: env.ElementNode},
			2: {ID: 2, Category: env.ElementNode, Cascaded: env.CascadedValues{
				Groups: map[env.GroupTag]env.CascadedGroup{
					env.GroupBoxStyle: {
						"display":  env.DeclaredField("inline-block"),
						"position": env.DeclaredField("relative"),
					},
				},
			}},
			3: {ID: 3, Category: env.TextNode, Text: "x"},
		},
		children: map[env.NodeID][]env.NodeID{1: {2}, 2: {3}},
	}
	l := newTestLayout(t, e, env.Viewport{Width: 400, Height: 400})
	tree, st, err := l.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.IncompleteCount() != 0 {
		t.Fatal("expected the inline-block's late-bound stacking context to be completed by SetBlock")
	}
	inlineBlockSubtree := tree.Forest.At(1)
	ref := boxtree.BlockRef{Subtree: 1, Index: 0}
	sc := inlineBlockSubtree.StackingContext[0]
	if !sc.Valid {
		t.Fatal("expected the relatively-positioned inline-block to carry a stacking-context reference")
	}
	found := false
	for _, rec := range st.Records {
		if rec.ID == sc.ID {
			if !rec.HasRef || rec.Ref != ref {
				t.Fatalf("expected record %d's Ref to resolve back to the inline-block's own block, got %+v", sc.ID, rec)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a stacking-context record with id %d", sc.ID)
	}
}

// spec.md §8.3: display:none on the root produces no block box at all,
// only the ICB.
func TestRunDisplayNoneRootProducesNoBox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	e := &fakeEnv{
		root: 1,
		nodes: map[env.NodeID]env.Node{
			1: {ID: 1, Category: env.ElementNode, Cascaded: env.CascadedValues{
				Groups: map[env.GroupTag]env.CascadedGroup{
					env.GroupBoxStyle: {"display": env.DeclaredField("none")},
				},
			}},
		},
		children: map[env.NodeID][]env.NodeID{},
	}
	l := newTestLayout(t, e, env.Viewport{Width: 400, Height: 400})
	tree, _, err := l.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := tree.Forest.At(0)
	if s.Len() != 1 {
		t.Fatalf("expected only the ICB box, got %d boxes", s.Len())
	}
}

// spec.md §8.3: a zero-sized viewport must not panic and yields a
// zero-content-size ICB.
func TestRunZeroViewport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	e := &fakeEnv{
		root: 1,
		nodes: map[env.NodeID]env.Node{
			1: {ID: 1, Category: env.ElementNode},
		},
		children: map[env.NodeID][]env.NodeID{},
	}
	l := newTestLayout(t, e, env.Viewport{Width: 0, Height: 0})
	tree, _, err := l.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := tree.Forest.At(0)
	if s.ContentSize[0].W != 0 || s.ContentSize[0].H != 0 {
		t.Fatalf("expected a zero-sized ICB, got %v", s.ContentSize[0])
	}
}

// spec.md §4.6: two sibling blocks stack vertically, the second offset
// by the first's full margin-box height.
func TestRunTwoSiblingBlocksStack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	e := &fakeEnv{
		root: 1,
		nodes: map[env.NodeID]env.Node{
			1: {ID: 1, Category: env.ElementNode},
			2: {ID: 2, Category: env.ElementNode, Cascaded: env.CascadedValues{
				Groups: map[env.GroupTag]env.CascadedGroup{
					env.GroupBoxStyle:    {"display": env.DeclaredField("block")},
					env.GroupHeightEdges: {"height": env.DeclaredField("50px")},
				},
			}},
			3: {ID: 3, Category: env.ElementNode, Cascaded: env.CascadedValues{
				Groups: map[env.GroupTag]env.CascadedGroup{
					env.GroupBoxStyle:    {"display": env.DeclaredField("block")},
					env.GroupHeightEdges: {"height": env.DeclaredField("50px")},
				},
			}},
		},
		children: map[env.NodeID][]env.NodeID{1: {2, 3}},
	}
	l := newTestLayout(t, e, env.Viewport{Width: 400, Height: 400})
	tree, _, err := l.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := tree.Forest.At(0)
	// box 0 = ICB, box 1 = root div, box 2 = first child, box 3 = second child
	if s.Offset[3].Y == 0 {
		t.Fatal("expected the second sibling to be offset below the first")
	}
	if s.Offset[3].Y != s.ContentSize[2].H {
		t.Fatalf("expected second sibling's Y offset to equal first sibling's height, got %v vs %v",
			s.Offset[3].Y.Px(60), s.ContentSize[2].H.Px(60))
	}
}
