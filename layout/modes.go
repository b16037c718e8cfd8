package layout

import (
	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/dimen"
	"github.com/npillmayer/vizbox/layout/flow"
)

// ModeKind is one of the three layout modes spec.md §4.5 names. The
// `initial` meta-mode is never pushed here: Run handles the ICB's own
// one-time setup directly, then enters `flow` for the root element.
type ModeKind uint8

const (
	ModeFlow ModeKind = iota
	ModeInline
	ModeStf
)

func (k ModeKind) String() string {
	switch k {
	case ModeFlow:
		return "flow"
	case ModeInline:
		return "inline"
	case ModeStf:
		return "stf"
	}
	return "?"
}

// modeFrame is one entry of the mode stack. spec.md §4.5 names five
// parallel stacks - mode, subtree, block, block_info,
// containing_block_size - but a mode transition always pushes and pops
// all five together, so this core keeps them as one stack of combined
// frames rather than five stacks a caller could let drift out of
// lock-step.
type modeFrame struct {
	kind    ModeKind
	subtree boxtree.SubtreeID
	block   boxtree.BlockRef      // the block box this mode is filling the content of
	info    flow.BlockUsedSizes   // block's used sizes, valid once resolved
	cbSize  dimen.Size            // containing-block size this mode's children resolve percentages against
}

// beginMode pushes a new mode frame (spec.md §4.5's `beginMode(params)`).
// Every beginMode must be matched by a later endMode.
func (l *Layout) beginMode(kind ModeKind, subtree boxtree.SubtreeID, block boxtree.BlockRef, info flow.BlockUsedSizes, cbSize dimen.Size) {
	l.modes = append(l.modes, modeFrame{
		kind: kind, subtree: subtree, block: block, info: info, cbSize: cbSize,
	})
}

// currentMode returns the innermost open mode frame, or nil if the
// stack is empty (only true before the root element's mode opens, or
// after it has closed).
func (l *Layout) currentMode() *modeFrame {
	if len(l.modes) == 0 {
		return nil
	}
	return &l.modes[len(l.modes)-1]
}

// endMode pops the innermost mode frame (spec.md §4.5's `endMode`) and
// returns it so the caller can hand it to the matching afterXxxMode
// hook on whatever mode frame is now on top.
func (l *Layout) endMode() modeFrame {
	n := len(l.modes) - 1
	f := l.modes[n]
	l.modes = l.modes[:n]
	return f
}

// afterFlowMode is the re-entry hook invoked on the parent mode once a
// nested flow-mode frame (one block element's entire child list) has
// been fully exhausted and popped (spec.md §4.5's mode-transition
// table: "any mode, subtree exhausted -> pop, invoke parent's
// afterFlowMode"). The finished block's own geometry has already been
// written back by blockElement before the frame closes; there is
// nothing left for a flow or inline parent to do with a child flow
// frame's result beyond what GrowSkip already recorded at the call
// site, so this hook is a documented no-op for those parents. An stf
// parent reaches it only from phase 2 (layoutChildren); phase 1
// (measureWidth) opens no mode frames.
func (l *Layout) afterFlowMode() {
}

// afterInlineMode is the re-entry hook invoked on the parent mode once
// a nested inline-mode frame (one ifc_container's glyph stream) has
// been metrics-solved, line-split, and popped. A flow parent resumes
// its own child loop; an stf parent's measurement pass consults the
// finished IFC's natural width directly (see measureWidth) rather than
// going through this hook, since measurement never opens a real inline
// mode frame (it works off a detached IFC).
func (l *Layout) afterInlineMode() {
}

// afterStfMode is the re-entry hook invoked on the parent inline mode
// once a nested stf frame (an inline-block's two-phase shrink-to-fit
// probe) has resolved the inline-block's used width and realized its
// content; appendInlineBlockChild splices the finished box into the
// ifc's glyph stream as an InlineBlockMarker after this hook returns
// (spec.md §4.5's "stf below" and "stf"/"flow" transitions land back
// here).
func (l *Layout) afterStfMode() {
}
