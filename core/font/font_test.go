package font

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFallbackFontParses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	sc := FallbackFont()
	if sc.SFNT == nil {
		t.Fatal("expected fallback font to parse its SFNT data")
	}
}

func TestRegistryQueryAndGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	r, err := NewRegistry("", 12.0)
	if err != nil {
		t.Fatal(err)
	}
	h := r.Query()
	if h == Invalid {
		t.Fatal("expected Query to return a valid handle for a seeded registry")
	}
	sf, ok := r.Get(h)
	if !ok || sf == nil {
		t.Fatal("expected Get to resolve the handle Query returned")
	}
	if sf.PtSize() != 12.0 {
		t.Errorf("expected prepared font at 12pt, got %.1f", sf.PtSize())
	}
}

func TestRegistryInvalidHandle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vizbox.core")
	defer teardown()
	//
	r := &Registry{}
	if h := r.Query(); h != Invalid {
		t.Errorf("expected Query on an empty registry to return Invalid, got %v", h)
	}
	if _, ok := r.Get(Invalid); ok {
		t.Error("expected Get(Invalid) to report not-found")
	}
}
