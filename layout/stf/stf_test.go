package stf

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/core/font"
	"github.com/npillmayer/vizbox/inline"
)

func testFont(t *testing.T) *font.ShapingFont {
	r, err := font.NewRegistry("", 12)
	if err != nil {
		t.Fatalf("font.NewRegistry: %v", err)
	}
	sf, ok := r.Get(r.Query())
	if !ok {
		t.Fatal("expected the default font to resolve")
	}
	return sf
}

func TestNaturalWidthSumsOneRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	sf := testFont(t)
	ifc := boxtree.NewIFC(boxtree.NoBlock)
	inline.AppendText(ifc, sf, "ab", 8)
	inline.SolveMetrics(ifc, sf, dimen.DefaultUnitsPerPixel, nil)

	var want dimen.Unit
	for _, g := range ifc.Glyphs {
		if g.Index != 0 {
			want += g.Metrics.Advance
		}
	}
	got := NaturalWidth(ifc)
	if got != want {
		t.Fatalf("expected natural width %v, got %v", want.Px(60), got.Px(60))
	}
}

// a forced line break must not let the second segment's width add onto
// the first: the natural width is the widest single run, not their sum.
func TestNaturalWidthResetsAtForcedBreaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	sf := testFont(t)
	ifc := boxtree.NewIFC(boxtree.NoBlock)
	inline.AppendText(ifc, sf, "a", 8)
	combinedWidth := func() dimen.Unit {
		var w dimen.Unit
		clone := boxtree.NewIFC(boxtree.NoBlock)
		inline.AppendText(clone, sf, "a\na", 8)
		inline.SolveMetrics(clone, sf, dimen.DefaultUnitsPerPixel, nil)
		for _, g := range clone.Glyphs {
			if g.Index != 0 {
				w += g.Metrics.Advance
			}
		}
		return w
	}()
	inline.SolveMetrics(ifc, sf, dimen.DefaultUnitsPerPixel, nil)
	singleA := NaturalWidth(ifc)

	broken := boxtree.NewIFC(boxtree.NoBlock)
	inline.AppendText(broken, sf, "a\na", 8)
	inline.SolveMetrics(broken, sf, dimen.DefaultUnitsPerPixel, nil)
	got := NaturalWidth(broken)

	if got != singleA {
		t.Fatalf("expected \"a\\na\"'s natural width to equal a single \"a\"'s (%v), got %v (naive sum would be %v)",
			singleA.Px(60), got.Px(60), combinedWidth.Px(60))
	}
}

func TestNaturalWidthEmptyIFC(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	ifc := boxtree.NewIFC(boxtree.NoBlock)
	inline.SolveMetrics(ifc, nil, dimen.DefaultUnitsPerPixel, nil)
	if got := NaturalWidth(ifc); got != 0 {
		t.Fatalf("expected an empty IFC to have zero natural width, got %v", got.Px(60))
	}
}
