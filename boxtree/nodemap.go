package boxtree

import "github.com/npillmayer/vizbox/env"

// GeneratedKind is the kind of generated box a node maps to (spec.md
// §3.2's "Node → generated-box map").
type GeneratedKind uint8

const (
	GeneratedBlock GeneratedKind = iota
	GeneratedInlineBox
	GeneratedText
)

// GeneratedBox is the at-most-one generated box a source node produced.
type GeneratedBox struct {
	Kind  GeneratedKind
	Block BlockRef // valid when Kind == GeneratedBlock
	IFC   IFCID    // valid when Kind != GeneratedBlock
	Index int32    // inline-box index, valid when Kind == GeneratedInlineBox
}

// NodeMap is the injective node→generated-box map: each node maps to at
// most one box, and (per spec.md §8.1) each block-ref appears in
// exactly one subtree+index pair across the whole map.
type NodeMap struct {
	boxes map[env.NodeID]GeneratedBox
}

// NewNodeMap returns an empty NodeMap.
func NewNodeMap() *NodeMap {
	return &NodeMap{boxes: make(map[env.NodeID]GeneratedBox)}
}

// SetBlock records that node generated a block box. Panics if node
// already has a generated box (spec.md §8.1 generated-box injectivity).
func (m *NodeMap) SetBlock(node env.NodeID, ref BlockRef) {
	if _, ok := m.boxes[node]; ok {
		panic("boxtree: node already has a generated box")
	}
	m.boxes[node] = GeneratedBox{Kind: GeneratedBlock, Block: ref}
}

// SetInlineBox records that node generated an inline box within ifc.
func (m *NodeMap) SetInlineBox(node env.NodeID, ifc IFCID, index int32) {
	if _, ok := m.boxes[node]; ok {
		panic("boxtree: node already has a generated box")
	}
	m.boxes[node] = GeneratedBox{Kind: GeneratedInlineBox, IFC: ifc, Index: index}
}

// SetText records that node (a text node) was shaped into ifc.
func (m *NodeMap) SetText(node env.NodeID, ifc IFCID) {
	if _, ok := m.boxes[node]; ok {
		panic("boxtree: node already has a generated box")
	}
	m.boxes[node] = GeneratedBox{Kind: GeneratedText, IFC: ifc}
}

// Get looks up node's generated box, if any.
func (m *NodeMap) Get(node env.NodeID) (GeneratedBox, bool) {
	b, ok := m.boxes[node]
	return b, ok
}
