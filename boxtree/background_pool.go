package boxtree

import "github.com/npillmayer/vizbox/core/valuesolver"

// ImageSliceHandle addresses a contiguous [Begin, End) run of image
// records in a BackgroundImagePool (spec.md §3.2's background-image
// pool). The zero value addresses an empty slice.
type ImageSliceHandle struct {
	Begin, End int32
}

// Len reports how many image records the slice addresses.
func (h ImageSliceHandle) Len() int32 {
	return h.End - h.Begin
}

// BackgroundImagePool is the flat append-only store of resolved
// background-image layers, shared by every box's Background.Images
// slice handle.
type BackgroundImagePool struct {
	Images []valuesolver.BackgroundImageResult
	// Present marks which slots actually resolved an image; a false
	// entry is an "empty slot" per spec.md §4.8 (URL not found, or the
	// layer was declared `none`).
	Present []bool
}

// AllocBackgroundImages reserves n contiguous slots and returns a
// handle addressing them, per spec.md §4.8's `alloc_background_images`.
// Callers fill each slot with Set.
func (p *BackgroundImagePool) AllocBackgroundImages(n int) ImageSliceHandle {
	begin := int32(len(p.Images))
	for i := 0; i < n; i++ {
		p.Images = append(p.Images, valuesolver.BackgroundImageResult{})
		p.Present = append(p.Present, false)
	}
	return ImageSliceHandle{Begin: begin, End: begin + int32(n)}
}

// Set fills slot i (relative to the pool, not the slice) with a
// resolved image.
func (p *BackgroundImagePool) Set(slot int32, img valuesolver.BackgroundImageResult) {
	p.Images[slot] = img
	p.Present[slot] = true
}

// Slice returns the resolved records addressed by h, including empty
// slots (callers check Present to distinguish them).
func (p *BackgroundImagePool) Slice(h ImageSliceHandle) []valuesolver.BackgroundImageResult {
	return p.Images[h.Begin:h.End]
}
