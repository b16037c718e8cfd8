package flow

import (
	"strconv"
	"strings"

	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/core/percent"
	"github.com/npillmayer/vizbox/core/valuesolver"
	"github.com/npillmayer/vizbox/style"
)

// resolveLengthOrAuto parses a length/percentage/auto specified value
// against base (the containing-block dimension percentages resolve
// against), per spec.md §4.1's length/percentage operations.
func resolveLengthOrAuto(v string, base dimen.Unit, unitsPerPixel dimen.Unit, positive bool) (dimen.Unit, bool) {
	if v == "auto" {
		return 0, true
	}
	u, isPct, err := dimen.ParseDimen(v, unitsPerPixel)
	if err != nil {
		return 0, false
	}
	if isPct {
		p := percent.FromFloat(float64(u))
		if positive {
			return valuesolver.PositivePercentage(p, base), false
		}
		return valuesolver.Percentage(p, base), false
	}
	return u, false
}

func resolveMax(v string, base dimen.Unit, unitsPerPixel dimen.Unit) dimen.Unit {
	if v == "none" {
		return dimen.Infinity
	}
	u, _ := resolveLengthOrAuto(v, base, unitsPerPixel, true)
	return u
}

// SolveAllSizes resolves a block's horizontal and vertical edges (spec.md
// §4.6.1). widthEdges/heightEdges/borderStyles are the style computer's
// resolved Value maps for GroupWidthEdges/GroupHeightEdges/
// GroupBorderStyle; insetsSpecified is GroupInsets; position is the used
// CSS position keyword.
func SolveAllSizes(widthEdges, heightEdges, borderStyles, insetsSpecified style.Value,
	widths valuesolver.BorderWidths, containingBlockWidth, containingBlockHeight, unitsPerPixel dimen.Unit,
	position string) BlockUsedSizes {

	var u BlockUsedSizes

	u.Width, u.WidthAuto = resolveLengthOrAuto(widthEdges["width"], containingBlockWidth, unitsPerPixel, true)
	u.MinWidth, _ = resolveLengthOrAuto(widthEdges["min-width"], containingBlockWidth, unitsPerPixel, true)
	u.MaxWidth = resolveMax(widthEdges["max-width"], containingBlockWidth, unitsPerPixel)
	u.MarginLeft, u.MarginLeftAuto = resolveLengthOrAuto(widthEdges["margin-left"], containingBlockWidth, unitsPerPixel, false)
	u.MarginRight, u.MarginRightAuto = resolveLengthOrAuto(widthEdges["margin-right"], containingBlockWidth, unitsPerPixel, false)
	u.BorderLeft = valuesolver.BorderWidth(widths, keywordOf(widthEdges["border-left-width"]), literalOf(widthEdges["border-left-width"], unitsPerPixel), borderStyles["border-left-style"])
	u.BorderRight = valuesolver.BorderWidth(widths, keywordOf(widthEdges["border-right-width"]), literalOf(widthEdges["border-right-width"], unitsPerPixel), borderStyles["border-right-style"])
	u.PaddingLeft, _ = resolveLengthOrAuto(widthEdges["padding-left"], containingBlockWidth, unitsPerPixel, true)
	u.PaddingRight, _ = resolveLengthOrAuto(widthEdges["padding-right"], containingBlockWidth, unitsPerPixel, true)

	// vertical edges: percentages on the block axis resolve against the
	// containing block's *width*, a CSS 2.2 §8.3/§10.5 quirk.
	u.Height, u.HeightAuto = resolveLengthOrAuto(heightEdges["height"], containingBlockWidth, unitsPerPixel, true)
	u.MinHeight, _ = resolveLengthOrAuto(heightEdges["min-height"], containingBlockWidth, unitsPerPixel, true)
	u.MaxHeight = resolveMax(heightEdges["max-height"], containingBlockWidth, unitsPerPixel)
	u.MarginTop, _ = resolveLengthOrAuto(heightEdges["margin-top"], containingBlockWidth, unitsPerPixel, false)
	u.MarginBottom, _ = resolveLengthOrAuto(heightEdges["margin-bottom"], containingBlockWidth, unitsPerPixel, false)
	u.BorderTop = valuesolver.BorderWidth(widths, keywordOf(heightEdges["border-top-width"]), literalOf(heightEdges["border-top-width"], unitsPerPixel), borderStyles["border-top-style"])
	u.BorderBottom = valuesolver.BorderWidth(widths, keywordOf(heightEdges["border-bottom-width"]), literalOf(heightEdges["border-bottom-width"], unitsPerPixel), borderStyles["border-bottom-style"])
	u.PaddingTop, _ = resolveLengthOrAuto(heightEdges["padding-top"], containingBlockWidth, unitsPerPixel, true)
	u.PaddingBottom, _ = resolveLengthOrAuto(heightEdges["padding-bottom"], containingBlockWidth, unitsPerPixel, true)

	u.Insets = resolveInsets(insetsSpecified, position, containingBlockWidth, containingBlockHeight, unitsPerPixel)

	AdjustWidthAndMargins(&u, containingBlockWidth)
	return u
}

// resolveInsets implements spec.md §4.6.1's insets rule: static → all
// zero; relative → resolve each side as a length or percentage,
// recording which are auto; absolute is unreachable in this core.
func resolveInsets(v style.Value, position string, cbWidth, cbHeight, unitsPerPixel dimen.Unit) boxtree.Insets {
	switch position {
	case "static":
		return boxtree.Insets{}
	case "relative":
		var ins boxtree.Insets
		ins.Values[dimen.Top], ins.Auto[dimen.Top] = resolveLengthOrAuto(v["top"], cbHeight, unitsPerPixel, false)
		ins.Values[dimen.Right], ins.Auto[dimen.Right] = resolveLengthOrAuto(v["right"], cbWidth, unitsPerPixel, false)
		ins.Values[dimen.Bottom], ins.Auto[dimen.Bottom] = resolveLengthOrAuto(v["bottom"], cbHeight, unitsPerPixel, false)
		ins.Values[dimen.Left], ins.Auto[dimen.Left] = resolveLengthOrAuto(v["left"], cbWidth, unitsPerPixel, false)
		return ins
	}
	panic("flow: unreachable position in resolveInsets: " + position)
}

// keywordOf extracts the thin/medium/thick keyword from a border-width
// specified value, or "" if it is a literal length.
func keywordOf(v string) valuesolver.BorderWidthKeyword {
	switch strings.TrimSpace(v) {
	case "thin":
		return valuesolver.Thin
	case "medium":
		return valuesolver.Medium
	case "thick":
		return valuesolver.Thick
	}
	return ""
}

// literalOf parses a border-width value that is not one of the three
// keywords as a plain length.
func literalOf(v string, unitsPerPixel dimen.Unit) dimen.Unit {
	if keywordOf(v) != "" {
		return 0
	}
	if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64); err == nil {
		return valuesolver.PositiveLength(f, unitsPerPixel)
	}
	return 0
}
