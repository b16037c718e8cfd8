// Package percent implements a simple, straightforward type for CSS
// percentage values. CSS percentages (margins, insets, text-indent) are
// signed and unbounded — -50% and 250% are both legal specified values —
// so, unlike a display-only percentage, this type does not clamp to
// [0,100].
package percent

import (
	"strconv"
	"strings"
)

// Percent is a CSS percentage value, stored as its fraction (20% is 0.2).
type Percent float64

// FromFraction wraps a fraction already in 0..1-per-100% form.
func FromFraction(f float64) Percent {
	return Percent(f)
}

// FromFloat interprets f as a percentage number (20 means 20%).
func FromFloat(f float64) Percent {
	return Percent(f / 100)
}

// FromString parses a percentage literal such as "20%" or "-12.5%".
func FromString(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return FromFloat(f), nil
}

// Of resolves the percentage against a base value: `percentage(p, base)`
// from spec.md §4.1. The product is returned unrounded; callers that
// need an integer Unit round it themselves.
func (p Percent) Of(base float64) float64 {
	return base * float64(p)
}

// Positive resolves the percentage against a base value and floors the
// result at 0 (spec.md's `positive_percentage`, used for widths/heights
// which can never go negative even when the specified percentage does).
func (p Percent) Positive(base float64) float64 {
	v := p.Of(base)
	if v < 0 {
		return 0
	}
	return v
}

func (p Percent) String() string {
	return strconv.FormatFloat(float64(p)*100, 'g', -1, 64) + "%"
}
