package valuesolver

import (
	"math"

	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/core/percent"
)

// RepeatMode is the used `background-repeat` value for one axis.
type RepeatMode uint8

const (
	Repeat RepeatMode = iota
	NoRepeat
	RoundRepeat
	SpaceRepeat
)

// BackgroundImageDecl is a single `background-image` layer's specified
// values, as handed to BackgroundImage (spec.md §4.1).
type BackgroundImageDecl struct {
	NaturalW, NaturalH float64 // in CSS pixels; the image's intrinsic size
	SizeKeyword        string  // "auto" | "contain" | "cover" | "" (explicit below)
	SizeW, SizeH       string  // explicit <length-percentage> or "auto", used when SizeKeyword == ""
	PositionX          string  // <length-percentage>, resolved against (box - image) width
	PositionY          string
	RepeatX, RepeatY   string // "repeat" | "no-repeat" | "round" | "space"
	Origin             string // "padding-box" | "border-box" | "content-box"
	Clip               string // "padding-box" | "border-box" | "content-box"
}

// BackgroundImageResult is the used geometry of one rendered background
// layer.
type BackgroundImageResult struct {
	Origin        dimen.Point // top-left of the positioning area
	Position      dimen.Point // chosen position within the positioning area
	Size          dimen.Size  // used tile size
	RepeatX       RepeatMode
	RepeatY       RepeatMode
	Clip          dimen.Rect
}

// BackgroundImage computes the rendered image's used origin, position,
// size (honoring contain/cover aspect preservation and round repeat
// quantization), repeat mode and clip rectangle, per spec.md §4.1.
// boxOffsets is the border-box rectangle of the element the background
// is painted on; borders/padding are the four edge widths in layout
// units (top, right, bottom, left order, matching dimen.Edges).
func BackgroundImage(decl BackgroundImageDecl, boxOffsets dimen.Rect, borders, padding dimen.Edges, unitsPerPixel dimen.Unit) BackgroundImageResult {
	clipRect := areaRect(boxOffsets, borders, padding, decl.Clip)
	originRect := areaRect(boxOffsets, borders, padding, decl.Origin)

	tileW, tileH := usedTileSize(decl, originRect.Size, unitsPerPixel)
	if decl.RepeatX == "round" && tileW > 0 && originRect.Size.W > 0 {
		n := math.Max(1, math.Round(float64(originRect.Size.W)/float64(tileW)))
		tileW = dimen.Unit(math.Round(float64(originRect.Size.W) / n))
	}
	if decl.RepeatY == "round" && tileH > 0 && originRect.Size.H > 0 {
		n := math.Max(1, math.Round(float64(originRect.Size.H)/float64(tileH)))
		tileH = dimen.Unit(math.Round(float64(originRect.Size.H) / n))
	}

	posX := resolveAxisPosition(decl.PositionX, originRect.Size.W, tileW, unitsPerPixel)
	posY := resolveAxisPosition(decl.PositionY, originRect.Size.H, tileH, unitsPerPixel)

	return BackgroundImageResult{
		Origin:  originRect.TopL,
		Position: dimen.Point{X: originRect.TopL.X + posX, Y: originRect.TopL.Y + posY},
		Size:    dimen.Size{W: tileW, H: tileH},
		RepeatX: repeatMode(decl.RepeatX),
		RepeatY: repeatMode(decl.RepeatY),
		Clip:    clipRect,
	}
}

func areaRect(boxOffsets dimen.Rect, borders, padding dimen.Edges, area string) dimen.Rect {
	r := boxOffsets
	switch area {
	case "content-box":
		r.TopL.X += borders[dimen.Left] + padding[dimen.Left]
		r.TopL.Y += borders[dimen.Top] + padding[dimen.Top]
		r.Size.W -= borders[dimen.Left] + borders[dimen.Right] + padding[dimen.Left] + padding[dimen.Right]
		r.Size.H -= borders[dimen.Top] + borders[dimen.Bottom] + padding[dimen.Top] + padding[dimen.Bottom]
	case "padding-box", "":
		r.TopL.X += borders[dimen.Left]
		r.TopL.Y += borders[dimen.Top]
		r.Size.W -= borders[dimen.Left] + borders[dimen.Right]
		r.Size.H -= borders[dimen.Top] + borders[dimen.Bottom]
	default: // "border-box"
	}
	return r
}

func usedTileSize(decl BackgroundImageDecl, area dimen.Size, unitsPerPixel dimen.Unit) (dimen.Unit, dimen.Unit) {
	natW := Length(decl.NaturalW, unitsPerPixel)
	natH := Length(decl.NaturalH, unitsPerPixel)
	switch decl.SizeKeyword {
	case "contain", "cover":
		if natW == 0 || natH == 0 {
			return area.W, area.H
		}
		scaleW := float64(area.W) / float64(natW)
		scaleH := float64(area.H) / float64(natH)
		scale := scaleW
		if decl.SizeKeyword == "contain" {
			if scaleH < scale {
				scale = scaleH
			}
		} else {
			if scaleH > scale {
				scale = scaleH
			}
		}
		return dimen.Unit(math.Round(float64(natW) * scale)), dimen.Unit(math.Round(float64(natH) * scale))
	}
	w, autoW := lengthOrAuto(decl.SizeW, area.W, unitsPerPixel)
	h, autoH := lengthOrAuto(decl.SizeH, area.H, unitsPerPixel)
	switch {
	case autoW && autoH:
		return natW, natH
	case autoW:
		if natH == 0 {
			return natW, h
		}
		return dimen.Unit(math.Round(float64(natW) * float64(h) / float64(natH))), h
	case autoH:
		if natW == 0 {
			return w, natH
		}
		return w, dimen.Unit(math.Round(float64(natH) * float64(w) / float64(natW)))
	default:
		return w, h
	}
}

func lengthOrAuto(spec string, base dimen.Unit, unitsPerPixel dimen.Unit) (dimen.Unit, bool) {
	if spec == "" || spec == "auto" {
		return 0, true
	}
	u, isPercent, err := dimen.ParseDimen(spec, unitsPerPixel)
	if err != nil {
		return 0, true
	}
	if isPercent {
		return Percentage(percent.FromFloat(float64(u)), base), false
	}
	return u, false
}

func resolveAxisPosition(spec string, area, tile dimen.Unit, unitsPerPixel dimen.Unit) dimen.Unit {
	if spec == "" {
		spec = "0%"
	}
	u, isPercent, err := dimen.ParseDimen(spec, unitsPerPixel)
	if err != nil {
		return 0
	}
	if !isPercent {
		return u
	}
	p := percent.FromFloat(float64(u))
	return dimen.Unit(math.Round(p.Of(float64(area - tile))))
}

func repeatMode(s string) RepeatMode {
	switch s {
	case "no-repeat":
		return NoRepeat
	case "round":
		return RoundRepeat
	case "space":
		return SpaceRepeat
	default:
		return Repeat
	}
}
