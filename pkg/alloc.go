package heap

// alloc.go is the heap-facing half of the allocator contract: the single
// privileged primitive that obtains raw storage, lets a per-kind
// constructor populate it, and hands back an unsafe handle. The low-level
// bump/chunk mechanics live in internal/arena; this file owns the
// header/payload wiring and the caller obligations documented on alloc.
//
// © 2025 aurum-heap authors. MIT License.

import (
	"unsafe"

	"github.com/Voskan/aurum-heap/internal/object"
	"github.com/Voskan/aurum-heap/internal/unsafehelpers"
)

// alloc obtains payloadSize+header bytes of 8-byte-aligned storage, invokes
// init to populate the payload and produce the header value, writes that
// header, and returns an unsafe handle to the result.
//
// Caller obligations on init (unchecked — violating them is undefined
// behaviour, exactly as in the teacher's raw-pointer helpers):
//   - must not call h.alloc again (no reentrant allocation);
//   - must not panic — if construction is impossible, call OnFatal instead
//     of returning: an aborted initializer leaves a half-formed object that
//     must never be observed by the (not-yet-implemented) collector;
//   - must return a Header with every field meaningful for its Kind set.
func (h *Heap[B]) alloc(payloadSize uintptr, init func(payload unsafe.Pointer) object.Header) UnsafeHandle[B] {
	total := object.HeaderSize + payloadSize
	raw := h.arena.Alloc(total)

	payload := unsafehelpers.PayloadPointer(raw, object.HeaderSize)
	hdr := init(payload)
	*(*object.Header)(raw) = hdr

	h.metrics.incObjects(hdr.Kind)
	if h.metrics.enabled() {
		// Stats() walks every chunk (O(chunks)); skip it entirely when
		// nobody is scraping metrics so the noop sink truly costs nothing
		// on the allocation hot path.
		stats := h.arena.Stats()
		h.metrics.setArenaBytes(stats.LiveBytes)
		h.metrics.setArenaChunks(int64(stats.Chunks))
	}

	return FromPointer[B](raw)
}
