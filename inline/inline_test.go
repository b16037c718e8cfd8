package inline

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/core/font"
)

func testFont(t *testing.T) *font.ShapingFont {
	r, err := font.NewRegistry("", 12)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	sf, ok := r.Get(r.Query())
	if !ok {
		t.Fatal("expected the default font to resolve")
	}
	return sf
}

func TestAppendTextSingleRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	sf := testFont(t)
	ifc := boxtree.NewIFC(boxtree.NoBlock)
	AppendText(ifc, sf, "ab", 8)
	if len(ifc.Glyphs) != 4 { // (0,BoxStart) + 2 real glyphs
		t.Fatalf("expected 4 glyph-stream entries, got %d", len(ifc.Glyphs))
	}
	if !ifc.CheckGlyphStreamBalance() {
		t.Fatal("expected a balanced glyph stream")
	}
}

func TestAppendTextLineBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	sf := testFont(t)
	ifc := boxtree.NewIFC(boxtree.NoBlock)
	AppendText(ifc, sf, "a\nb", 8)
	SolveMetrics(ifc, sf, dimen.DefaultUnitsPerPixel, nil)
	pending := SplitLines(ifc, dimen.Infinity, nil)
	if pending != nil {
		t.Fatal("expected no pending inline-block offsets")
	}
	if len(ifc.Lines) != 2 {
		t.Fatalf("expected a\\nb to split into 2 line boxes, got %d", len(ifc.Lines))
	}
}

func TestAppendTextTabExpandsToSpaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	sf := testFont(t)
	ifc := boxtree.NewIFC(boxtree.NoBlock)
	AppendText(ifc, sf, "\t", 4)
	if !ifc.CheckGlyphStreamBalance() {
		t.Fatal("expected a balanced glyph stream")
	}
	if len(ifc.Glyphs) != 2+4 {
		t.Fatalf("expected 4 shaped space glyphs after the root BoxStart pair, got %d entries", len(ifc.Glyphs))
	}
}

func TestSolveMetricsZeroesWithoutFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	ifc := boxtree.NewIFC(boxtree.NoBlock)
	SolveMetrics(ifc, nil, dimen.DefaultUnitsPerPixel, nil)
	if ifc.Glyphs[1].Metrics != (boxtree.GlyphMetrics{}) {
		t.Fatal("expected zero metrics with no font bound")
	}
}
