/*
Package dimen implements the layout core's integer coordinate unit and a
handful of geometric helper types.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Unit is the layout core's coordinate unit. All lengths, once resolved to
// used values, are integers in this unit; external CSS-pixel values are
// converted at the boundary via a units-per-pixel ratio (see Round/Px).
type Unit int32

// Zero is the zero dimension.
const Zero Unit = 0

// Infinity represents `none` for max-width/max-height and similar.
const Infinity Unit = math.MaxInt32

// DefaultUnitsPerPixel is used whenever a caller does not supply its own
// ratio (core/parameters.Registers.UnitsPerPixel overrides this for a
// given layout run).
const DefaultUnitsPerPixel Unit = 60

func (d Unit) String() string {
	return fmt.Sprintf("%du", int32(d))
}

// Px converts a Unit back to CSS pixels, given the ratio in effect for the
// current layout run.
func (d Unit) Px(unitsPerPixel Unit) float64 {
	if unitsPerPixel == 0 {
		unitsPerPixel = DefaultUnitsPerPixel
	}
	return float64(d) / float64(unitsPerPixel)
}

// Round converts a CSS-pixel float to a Unit: round(f * unitsPerPixel).
// This is the core/valuesolver `length(px, f)` operation from the spec,
// factored out here since every other conversion builds on it.
func Round(f float64, unitsPerPixel Unit) Unit {
	if unitsPerPixel == 0 {
		unitsPerPixel = DefaultUnitsPerPixel
	}
	return Unit(math.Round(f * float64(unitsPerPixel)))
}

// Min returns the smaller of two dimensions.
func Min(a, b Unit) Unit {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Unit) Unit {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts v to [lo, hi] (the value solver's `clamp_size`).
func Clamp(v, lo, hi Unit) Unit {
	return Max(lo, Min(v, hi))
}

// Point is a point in the layout's coordinate space, (x, y) growing right
// and down from the initial containing block's top-left corner.
type Point struct {
	X, Y Unit
}

// Origin is the zero point.
var Origin = Point{0, 0}

// Shift translates a point by (dx, dy), in place, and returns it.
func (p *Point) Shift(dx, dy Unit) *Point {
	p.X += dx
	p.Y += dy
	return p
}

// Size is a width/height pair.
type Size struct {
	W, H Unit
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	TopL Point
	Size
}

// Side indices into Edges and any other 4-way array (padding, border
// widths, margins, insets). Values always travel clockwise starting at
// the top, matching the CSS shorthand order.
const (
	Top int = iota
	Right
	Bottom
	Left
)

// Edges holds four side values in (top, right, bottom, left) order.
type Edges [4]Unit

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+(?:\.[0-9]+)?)(%|[a-zA-Z]{2})?$`)

// ErrMalformedDimen is returned by ParseDimen for unrecognized syntax.
var ErrMalformedDimen = errors.New("format error parsing dimension")

// ParseDimen parses a CSS-unit dimension string ("12px", "2in", "20%") into
// a Unit, scaled by unitsPerPixel. If the string is a percentage, the
// second return value is true and the Unit carries the raw percentage
// number (not yet scaled against any base).
func ParseDimen(s string, unitsPerPixel Unit) (Unit, bool, error) {
	if unitsPerPixel == 0 {
		unitsPerPixel = DefaultUnitsPerPixel
	}
	m := dimenPattern.FindStringSubmatch(s)
	if len(m) < 2 {
		return 0, false, ErrMalformedDimen
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false, ErrMalformedDimen
	}
	if len(m) > 2 && m[2] == "%" {
		return Unit(n), true, nil
	}
	unit := "px"
	if len(m) > 2 && m[2] != "" {
		unit = m[2]
	}
	px, err := toPixels(n, unit)
	if err != nil {
		return 0, false, err
	}
	return Round(px, unitsPerPixel), false, nil
}

func toPixels(n float64, unit string) (float64, error) {
	switch unit {
	case "px", "PX":
		return n, nil
	case "pt", "PT":
		return n * 96 / 72, nil
	case "pc", "PC":
		return n * 16, nil
	case "in", "IN":
		return n * 96, nil
	case "cm", "CM":
		return n * 96 / 2.54, nil
	case "mm", "MM":
		return n * 96 / 25.4, nil
	default:
		return 0, ErrMalformedDimen
	}
}
