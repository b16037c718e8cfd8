package image

import "testing"

func TestRegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	h := r.Register("http://example.com/a.png", Dimensions{WidthPx: 10, HeightPx: 20}, nil)
	if h == Invalid {
		t.Fatal("expected a valid handle")
	}
	got, ok := r.GetImageByURL("http://example.com/a.png")
	if !ok || got != h {
		t.Fatalf("expected GetImageByURL to resolve the registered handle, got %v, %v", got, ok)
	}
	dims, ok := r.Dimensions(h)
	if !ok {
		t.Fatal("expected Dimensions to resolve a registered handle")
	}
	if dims.WidthPx != 10 || dims.HeightPx != 20 {
		t.Errorf("unexpected dimensions %+v", dims)
	}
}

func TestUnresolvedURLIsNotAnError(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.GetImageByURL("http://example.com/missing.png"); ok {
		t.Error("expected an unregistered URL to resolve as not-found, not an error")
	}
}

func TestInvalidHandle(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Dimensions(Invalid); ok {
		t.Error("expected Dimensions(Invalid) to report not-found")
	}
}
