package heap

// handle.go implements the three-tier handle hierarchy: unsafe handles (no
// guarantees), scoped handles (a pointer to a root-set slot the collector
// can rewrite in place), and pinned handles (a temporarily-immovable unsafe
// handle safe to borrow a payload from).
//
// The brand B is a phantom type parameter: it is never stored in any of
// these structs, only threaded through their type signatures, so the Go
// compiler rejects mixing a ScopedHandle[heapA] into a method expecting
// ScopedHandle[heapB] — the "newtype-per-call-site" substitute for a
// higher-rank invariant lifetime.
//
// © 2025 aurum-heap authors. MIT License.

import (
	"unsafe"

	"github.com/Voskan/aurum-heap/internal/object"
	"github.com/Voskan/aurum-heap/internal/unsafehelpers"
)

// UnsafeHandle is a non-null pointer to an Object, carrying no liveness
// guarantee: the referent may have been freed or relocated. Equality is
// pointer equality.
type UnsafeHandle[B any] struct {
	ptr unsafe.Pointer
}

// danglingAddr is an unmapped-but-8-byte-aligned sentinel value, the same
// choice original_source makes with its `8usize as *mut Object`. It must
// never be dereferenced; every scope slot is overwritten with the interned
// Null before it is observable, so this value never reaches a collector.
const danglingAddr = uintptr(8)

// Dangling returns a well-aligned but unmapped handle, used only to
// initialize placeholders that are guaranteed to be overwritten before
// anything reads them (e.g. the Heap's own pre-interning placeholders).
func Dangling[B any]() UnsafeHandle[B] {
	return UnsafeHandle[B]{ptr: unsafe.Pointer(danglingAddr)} //nolint:govet // sentinel, never dereferenced
}

// FromPointer wraps a raw pointer to an Object's header as an UnsafeHandle.
// The caller asserts ptr genuinely addresses a live Object of this heap.
func FromPointer[B any](ptr unsafe.Pointer) UnsafeHandle[B] {
	return UnsafeHandle[B]{ptr: ptr}
}

// AsPointer returns the raw pointer backing h.
func (h UnsafeHandle[B]) AsPointer() unsafe.Pointer { return h.ptr }

// Header returns a pointer to h's header. Valid only while the caller
// independently knows the referent is still live (e.g. inside a pin, or
// immediately after allocation).
func (h UnsafeHandle[B]) Header() *object.Header {
	return (*object.Header)(h.ptr)
}

// Payload returns the address immediately following h's header.
func (h UnsafeHandle[B]) Payload() unsafe.Pointer {
	return unsafehelpers.PayloadPointer(h.ptr, object.HeaderSize)
}

// Equal reports whether h and other address the same Object.
func (h UnsafeHandle[B]) Equal(other UnsafeHandle[B]) bool { return h.ptr == other.ptr }

// ScopedHandle is a pointer to a root-set slot — not to the object itself.
// The slot is rewritten in place by the collector on relocation; reading it
// yields a currently-valid UnsafeHandle. ScopedHandle values are produced by
// a Scope (Get/GetUnchecked/Slots), whose slots lie in a live scope frame, or
// by PinnedHandle.AsApplication, whose function handle points into the
// pinned Application's payload.
type ScopedHandle[B any] struct {
	slot *UnsafeHandle[B]
}

// Read fetches the current value of the slot.
func (s ScopedHandle[B]) Read() UnsafeHandle[B] { return *s.slot }

// CopyFrom overwrites s's slot with other's current value.
func (s ScopedHandle[B]) CopyFrom(other ScopedHandle[B]) { *s.slot = *other.slot }

// AssignUnsafe overwrites s's slot with u directly. The caller asserts u
// addresses an object reachable for as long as s's slot can observe it.
func (s ScopedHandle[B]) AssignUnsafe(u UnsafeHandle[B]) { *s.slot = u }

// HeaderSnapshot returns a by-value copy of the referent's header. Safe
// even without pinning: a scoped handle already guarantees reachability for
// the duration of the call.
func (s ScopedHandle[B]) HeaderSnapshot() object.Header {
	return *s.Read().Header()
}

// AsVariable decodes the referent as a Variable if its kind matches. Safe
// on a bare scoped handle (no pin needed) because it only reads header
// bytes by value.
func (s ScopedHandle[B]) AsVariable() (object.DeBruijn, bool) {
	hdr := s.HeaderSnapshot()
	if hdr.Kind != object.KindVariable {
		return 0, false
	}
	return object.DeBruijn(hdr.ExtraU32()), true
}

// PinnedHandle is an unsafe handle to an object whose PINNED flag is held
// for the handle's lifetime, permitting direct borrows into its payload.
type PinnedHandle[B any] struct {
	u UnsafeHandle[B]
}

// AsUnsafe downgrades p to a plain UnsafeHandle, valid only as long as the
// pin that produced p is still held.
func (p PinnedHandle[B]) AsUnsafe() UnsafeHandle[B] { return p.u }

// HeaderSnapshot returns a by-value copy of p's header.
func (p PinnedHandle[B]) HeaderSnapshot() object.Header { return *p.u.Header() }

// PayloadPointer returns p's payload address. The returned pointer's
// lifetime is bounded by the pinning frame that produced p.
func (p PinnedHandle[B]) PayloadPointer() unsafe.Pointer { return p.u.Payload() }

// WithPin pins h's current referent for the duration of then, guaranteeing
// the collector will neither move nor free it, then clears the pin on every
// exit path — including a panic unwinding through then — via defer.
//
// If the referent is already pinned (nested with_pin), then runs without
// touching the flag and without clearing it afterward: the outer pin still
// owns the bit.
//
// WithPin is a package-level function, not a method on ScopedHandle,
// because Go methods cannot introduce their own type parameters — R must
// be inferred from then at each call site.
func WithPin[B any, R any](h ScopedHandle[B], then func(PinnedHandle[B]) R) R {
	u := h.Read()
	hdr := u.Header()
	if hdr.Flags.Has(object.FlagPinned) {
		return then(PinnedHandle[B]{u: u})
	}
	hdr.Flags = hdr.Flags.Set(object.FlagPinned)
	defer func() {
		hdr.Flags = hdr.Flags.Clear(object.FlagPinned)
	}()
	return then(PinnedHandle[B]{u: u})
}
