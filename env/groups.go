package env

// Inheritance classifies a property group as CSS-inherited or not,
// the fallback the style computer uses for `unset` (spec.md §4.2).
type Inheritance uint8

const (
	NotInherited Inheritance = iota
	Inherited
)

// GroupSchema is what the style computer needs to know about a group
// independent of any one element: its initial values and whether it
// inherits (spec.md §6.2's "each group exposes ... initial_values(),
// inheritance_type(), and a field iterator" — the field iterator is
// simply ranging over the returned map).
type GroupSchema struct {
	Initial     map[string]string
	Inheritance Inheritance
}

// Schemas is the fixed table of property groups this core understands,
// keyed by GroupTag. It is immutable after package initialization.
var Schemas = map[GroupTag]GroupSchema{
	GroupBoxStyle: {
		Inheritance: NotInherited,
		Initial: map[string]string{
			"display":  "inline",
			"position": "static",
			"float":    "none",
		},
	},
	GroupWidthEdges: {
		Inheritance: NotInherited,
		Initial: map[string]string{
			"width":              "auto",
			"min-width":          "0",
			"max-width":          "none",
			"margin-left":        "0",
			"margin-right":       "0",
			"border-left-width":  "medium",
			"border-right-width": "medium",
			"padding-left":       "0",
			"padding-right":      "0",
		},
	},
	GroupHeightEdges: {
		Inheritance: NotInherited,
		Initial: map[string]string{
			"height":              "auto",
			"min-height":          "0",
			"max-height":          "none",
			"margin-top":          "0",
			"margin-bottom":       "0",
			"border-top-width":    "medium",
			"border-bottom-width": "medium",
			"padding-top":         "0",
			"padding-bottom":      "0",
		},
	},
	GroupBorderStyle: {
		Inheritance: NotInherited,
		Initial: map[string]string{
			"border-top-style":    "none",
			"border-right-style":  "none",
			"border-bottom-style": "none",
			"border-left-style":   "none",
		},
	},
	GroupInsets: {
		Inheritance: NotInherited,
		Initial: map[string]string{
			"top": "auto", "right": "auto", "bottom": "auto", "left": "auto",
		},
	},
	GroupZIndex: {
		Inheritance: NotInherited,
		Initial:     map[string]string{"z-index": "auto"},
	},
	GroupFont: {
		Inheritance: Inherited,
		Initial:     map[string]string{"font-family": "", "font-size": "medium"},
	},
	GroupBorderColor: {
		Inheritance: NotInherited,
		Initial: map[string]string{
			"border-top-color":    "currentcolor",
			"border-right-color":  "currentcolor",
			"border-bottom-color": "currentcolor",
			"border-left-color":   "currentcolor",
		},
	},
	GroupBackgroundColor: {
		Inheritance: NotInherited,
		Initial:     map[string]string{"background-color": "transparent"},
	},
	GroupBackgroundClip: {
		Inheritance: NotInherited,
		Initial:     map[string]string{"background-clip": "border-box"},
	},
	GroupBackground: {
		Inheritance: NotInherited,
		Initial: map[string]string{
			"background-image":    "none",
			"background-position": "0% 0%",
			"background-size":     "auto",
			"background-repeat":   "repeat",
			"background-origin":   "padding-box",
			"background-clip":     "border-box",
		},
	},
	GroupColor: {
		Inheritance: Inherited,
		Initial:     map[string]string{"color": "black"},
	},
}
