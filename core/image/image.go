/*
Package image holds the layout core's view of bitmap images: a small
opaque ImageHandle identifying a registered, already-decoded image, and
a Registry mapping URLs and handles to that data.

Image decoding is explicitly out of scope for this core (spec.md §1's
non-goals): the registry is handed pre-decoded pixel data and is a
read-only borrow for the whole layout run, mirroring core/font.Registry.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package image

import (
	"sync"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ImageHandle is an opaque reference to a registered image. The zero
// value is Invalid.
type ImageHandle int32

// Invalid denotes "no image" / a URL the registry could not resolve.
const Invalid ImageHandle = 0

// Dimensions is an image's natural size, in CSS pixels.
type Dimensions struct {
	WidthPx, HeightPx float64
}

// Record is a decoded image plus its natural dimensions. Pixels carries
// whatever pre-decoded pixel buffer the embedding application produced;
// this core never interprets its contents, only its dimensions.
type Record struct {
	URL    string
	Dims   Dimensions
	Pixels []byte
}

// Registry maps URLs and handles to decoded image records, per spec.md
// §6.2: "fn dimensions(ImageHandle) → {width_px, height_px}, fn
// get_image_by_url(Url) → Option<ImageHandle>".
type Registry struct {
	mu      sync.Mutex
	byURL   map[string]ImageHandle
	records map[ImageHandle]*Record
	next    ImageHandle
}

// NewRegistry returns an empty image registry.
func NewRegistry() *Registry {
	return &Registry{
		byURL:   make(map[string]ImageHandle),
		records: make(map[ImageHandle]*Record),
		next:    1,
	}
}

// Register adds a decoded image under url, returning its handle. A
// second Register call for the same URL replaces the stored record but
// keeps its handle stable.
func (r *Registry) Register(url string, dims Dimensions, pixels []byte) ImageHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.byURL[url]; ok {
		r.records[h] = &Record{URL: url, Dims: dims, Pixels: pixels}
		return h
	}
	h := r.next
	r.next++
	r.byURL[url] = h
	r.records[h] = &Record{URL: url, Dims: dims, Pixels: pixels}
	return h
}

// GetImageByURL resolves a URL to a handle. ok is false when the
// registry holds no image for that URL — the caller must treat this as
// an empty background-image slot, never an error (spec.md §7.4).
func (r *Registry) GetImageByURL(url string) (ImageHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.byURL[url]
	return h, ok
}

// Dimensions returns an image's natural size. ok is false for Invalid or
// any handle the registry does not recognize.
func (r *Registry) Dimensions(h ImageHandle) (Dimensions, bool) {
	if h == Invalid {
		return Dimensions{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[h]
	if !ok {
		return Dimensions{}, false
	}
	return rec.Dims, true
}
