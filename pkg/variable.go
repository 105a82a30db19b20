package heap

// variable.go is the Variable half of component F: a De Bruijn index with
// no payload, interned below 16 so the common case never allocates.
//
// © 2025 aurum-heap authors. MIT License.

import (
	"unsafe"

	"github.com/Voskan/aurum-heap/internal/object"
)

// AllocVariable returns an unsafe handle to the Variable for db. For db < 16
// this returns the preallocated interned object — no allocation, never
// fails. For db >= 16 it allocates a fresh object.
func (h *Heap[B]) AllocVariable(db object.DeBruijn) UnsafeHandle[B] {
	if db < 16 {
		return h.internedVariables[db]
	}
	return h.allocVariableRaw(db)
}

// allocVariableRaw always allocates, bypassing the interning check — used
// by AllocVariable for db >= 16, and by WithNew itself while it is still
// populating internedVariables (calling AllocVariable there would just
// hand back the Dangling placeholder being replaced).
func (h *Heap[B]) allocVariableRaw(db object.DeBruijn) UnsafeHandle[B] {
	return h.alloc(0, func(unsafe.Pointer) object.Header {
		var hdr object.Header
		hdr.Kind = object.KindVariable
		hdr.SetExtraU32(uint32(db))
		hdr.FreeCache = object.EmptyFreeCache.Insert(db)
		return hdr
	})
}

// NewVariable is AllocVariable's scoped form. Infallible.
func (h *Heap[B]) NewVariable(into ScopedHandle[B], db object.DeBruijn) {
	into.AssignUnsafe(h.AllocVariable(db))
}
