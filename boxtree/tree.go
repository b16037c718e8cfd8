package boxtree

// BoxTree is the complete output of one Layout run (spec.md §3.2):
// the block-box forest, the inline formatting contexts, the
// background-image pool and the node→box map. The stacking-context
// tree lives in the sibling `stacking` package to avoid an import
// cycle (stacking references BlockRef, boxtree must not reference
// stacking).
type BoxTree struct {
	Forest   Forest
	IFCs     []*IFC
	Pool     BackgroundImagePool
	NodeMap  *NodeMap
	ICB      BlockRef // initial containing block: the viewport-sized root
}

// New returns an empty BoxTree, ready for a Layout run to populate.
func New() *BoxTree {
	return &BoxTree{NodeMap: NewNodeMap()}
}

// NewIFC appends a fresh IFC owned by parent and returns its id.
func (bt *BoxTree) NewIFC(parent BlockRef) IFCID {
	id := IFCID(len(bt.IFCs))
	bt.IFCs = append(bt.IFCs, NewIFC(parent))
	return id
}

// IFCAt returns the IFC for id.
func (bt *BoxTree) IFCAt(id IFCID) *IFC {
	return bt.IFCs[id]
}
