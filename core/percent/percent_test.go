package percent

import "testing"

func TestOf(t *testing.T) {
	p, err := FromString("20%")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Of(400); got != 80 {
		t.Errorf("expected 20%% of 400 to be 80, got %v", got)
	}
}

func TestNegativeAndOverHundredAreNotClamped(t *testing.T) {
	p, err := FromString("-50%")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Of(100); got != -50 {
		t.Errorf("expected -50%% of 100 to be -50, got %v", got)
	}
	p2, _ := FromString("250%")
	if got := p2.Of(100); got != 250 {
		t.Errorf("expected 250%% of 100 to be 250, got %v", got)
	}
}

func TestPositiveFloorsAtZero(t *testing.T) {
	p, _ := FromString("-50%")
	if got := p.Positive(100); got != 0 {
		t.Errorf("expected positive_percentage to floor negative results at 0, got %v", got)
	}
}
