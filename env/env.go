/*
Package env describes the layout core's external node-tree contract
(spec.md §6.2): the Node tree, cascaded property declarations, and the
Viewport the engine is handed for one Layout run. Everything in this
package is a read-only borrow — the engine's own state lives in
boxtree, stacking and the layout modes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package env

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// NodeID identifies a node in the external node tree. NoNode is the
// sentinel for "no such node" (used for parent-of-root, next-sibling
// past the last child, and so on).
type NodeID int32

// NoNode is the sentinel NodeID meaning "absent".
const NoNode NodeID = -1

// Category distinguishes element nodes (which carry cascaded
// declarations) from text nodes (which carry a string).
type Category uint8

const (
	ElementNode Category = iota
	TextNode
)

// Sentinel is one of the CSS keyword sentinels a cascaded field may
// still carry before the style computer resolves it (spec.md §6.2).
type Sentinel uint8

const (
	Declared Sentinel = iota
	InitialKeyword
	InheritKeyword
	UnsetKeyword
	UndeclaredKeyword
)

// CascadedField is a single declared (or keyword-sentinel) property
// value, as produced by the cascade — a stage this core does not
// implement (spec.md §1).
type CascadedField struct {
	Sentinel Sentinel
	Value    string
}

// DeclaredField constructs a CascadedField carrying a concrete value.
func DeclaredField(v string) CascadedField {
	return CascadedField{Sentinel: Declared, Value: v}
}

// GroupTag names one of the property groups the style computer
// consults (spec.md §4.2's box-gen/cosmetic stage field lists).
type GroupTag string

const (
	GroupBoxStyle        GroupTag = "box-style"
	GroupWidthEdges      GroupTag = "width-edges"
	GroupHeightEdges     GroupTag = "height-edges"
	GroupBorderStyle     GroupTag = "border-style"
	GroupInsets          GroupTag = "insets"
	GroupZIndex          GroupTag = "z-index"
	GroupFont            GroupTag = "font"
	GroupBorderColor     GroupTag = "border-color"
	GroupBackgroundColor GroupTag = "background-color"
	GroupBackgroundClip  GroupTag = "background-clip"
	GroupBackground      GroupTag = "background"
	GroupColor           GroupTag = "color"
)

// CascadedGroup is the cascaded record for one property group: one
// CascadedField per named sub-property, each independently possibly a
// keyword sentinel.
type CascadedGroup map[string]CascadedField

// CascadedValues is a node's full sparse cascade result: a map from
// group tag to cascaded record, plus an optional `all` shorthand value
// that (per spec.md §4.2) overrides every field's default fallback
// except for `direction`/`unicode-bidi`/custom properties.
type CascadedValues struct {
	Groups map[GroupTag]CascadedGroup
	All    *CascadedField
}

// Group looks up a cascaded group record; ok is false if the element
// never declared anything in that group.
func (c CascadedValues) Group(tag GroupTag) (CascadedGroup, bool) {
	g, ok := c.Groups[tag]
	return g, ok
}

// Node is one element or text node of the external tree.
type Node struct {
	ID       NodeID
	Category Category
	Text     string
	Cascaded CascadedValues
}

// Environment is the external node-tree contract the engine borrows for
// the duration of one Layout run (spec.md §6.2). Implementations are
// expected to be simple adapters over the embedding application's own
// DOM-like structure.
type Environment interface {
	RootNode() (NodeID, bool)
	Node(id NodeID) Node
	Parent(id NodeID) (NodeID, bool)
	FirstChild(id NodeID) (NodeID, bool)
	NextSibling(id NodeID) (NodeID, bool)
}

// Viewport is the layout viewport size, in CSS pixels (spec.md §3.1).
type Viewport struct {
	Width, Height float64
}
