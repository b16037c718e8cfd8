/*
Package valuesolver implements the layout core's value solver: pure
functions converting specified CSS values into used geometric
quantities (spec.md §4.1). None of these functions touch the box tree
or any mutable state; they are building blocks the style computer and
the layout modes call directly.

Grounded on the teacher's own used-value helpers in engine/frame/box.go
and the DisplayMode bitflag idiom in engine/frame/display.go, adapted
from a mutable Box method set to a set of stateless functions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package valuesolver

import (
	"math"

	"github.com/npillmayer/vizbox/core/color"
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/core/percent"
)

// Length converts a CSS-pixel float to a Unit: round(f * units_per_pixel).
func Length(f float64, unitsPerPixel dimen.Unit) dimen.Unit {
	return dimen.Round(f, unitsPerPixel)
}

// PositiveLength is Length, clamped to never go below zero.
func PositiveLength(f float64, unitsPerPixel dimen.Unit) dimen.Unit {
	if f < 0 {
		f = 0
	}
	return Length(f, unitsPerPixel)
}

// Percentage resolves a percentage against a base length already in
// layout units: round(base * p).
func Percentage(p percent.Percent, base dimen.Unit) dimen.Unit {
	return dimen.Unit(math.Round(p.Of(float64(base))))
}

// PositivePercentage is Percentage, floored at zero.
func PositivePercentage(p percent.Percent, base dimen.Unit) dimen.Unit {
	return dimen.Unit(math.Round(p.Positive(float64(base))))
}

// ClampSize restricts v to [min, max].
func ClampSize(v, min, max dimen.Unit) dimen.Unit {
	return dimen.Clamp(v, min, max)
}

// BorderWidthKeyword is the CSS `thin|medium|thick` border-width
// keyword set valuesolver.BorderWidth resolves against the layout's
// parameter registers.
type BorderWidthKeyword string

const (
	Thin   BorderWidthKeyword = "thin"
	Medium BorderWidthKeyword = "medium"
	Thick  BorderWidthKeyword = "thick"
)

// BorderWidths is the subset of core/parameters.Registers valuesolver
// needs for border-width keyword resolution, kept narrow so this
// package stays free of a dependency on parameters' full API.
type BorderWidths interface {
	BorderWidthConstant(keyword string) dimen.Unit
}

// BorderWidth resolves a `thin|medium|thick` keyword (or an already
// literal length, passed through unchanged via explicit is a
// zero-keyword caller convention) to its used width, per spec.md §4.1:
// multiplied by 0 if the border style is `none`/`hidden`, else by 1.
func BorderWidth(widths BorderWidths, keyword BorderWidthKeyword, literal dimen.Unit, style string) dimen.Unit {
	var w dimen.Unit
	if keyword != "" {
		w = widths.BorderWidthConstant(string(keyword))
	} else {
		w = literal
	}
	if style == "none" || style == "hidden" {
		return 0
	}
	return w
}

// Color resolves a CSS color value to RGBA, delegating to core/color
// (spec.md §4.1's `color(css_color, current_color)`).
func Color(declared string, currentColor color.RGBA) (color.RGBA, error) {
	return color.Resolve(declared, currentColor)
}

// Outer is the used `display` outer value a box_style computation
// produces.
type Outer uint8

const (
	OuterNone Outer = iota
	OuterBlock
	OuterInline
	OuterAbsolute
)

// Position is the used CSS `position` value.
type Position uint8

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
	PositionSticky
)

// BoxStyle is the used outer/inner display classification a box_style
// computation produces for one element (spec.md §4.1).
type BoxStyle struct {
	Outer       Outer
	InnerBlock  bool // for Outer==OuterInline: true if the inline is itself block-flowed (inline-block)
	Position    Position
}

// BoxStyle implements CSS 2.2 §9.7: display:none collapses the box;
// otherwise absolute/fixed positioning and the root element blockify
// inline/inline-block to block, and float is cleared (floats are an
// explicit non-goal of this core, so the only effect here is
// blockification, not float placement).
func BoxStyle(display, position, float string, isRoot bool) BoxStyle {
	if display == "none" {
		return BoxStyle{Outer: OuterNone, Position: PositionStatic}
	}
	pos := parsePosition(position)
	blockify := isRoot || pos == PositionAbsolute || pos == PositionFixed
	if blockify && (display == "inline" || display == "inline-block") {
		display = "block"
	}
	if pos == PositionAbsolute || pos == PositionFixed {
		return BoxStyle{Outer: OuterAbsolute, Position: pos}
	}
	switch display {
	case "inline-block":
		return BoxStyle{Outer: OuterInline, InnerBlock: true, Position: pos}
	case "inline":
		return BoxStyle{Outer: OuterInline, Position: pos}
	default: // block, flow-root, list-item, and every other inner display is outer-block in this core
		return BoxStyle{Outer: OuterBlock, Position: pos}
	}
}

func parsePosition(s string) Position {
	switch s {
	case "relative":
		return PositionRelative
	case "absolute":
		return PositionAbsolute
	case "fixed":
		return PositionFixed
	case "sticky":
		return PositionSticky
	}
	return PositionStatic
}
