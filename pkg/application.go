package heap

// application.go is the Application half of component F: `f(a0, ..., an-1)`
// stored as F = n+1 contiguous handle slots (function, then arguments),
// with a free-variable cache that is the UNKNOWN-absorbing union of every
// child's cache.
//
// © 2025 aurum-heap authors. MIT License.

import (
	"math"
	"unsafe"

	"github.com/Voskan/aurum-heap/internal/object"
	"github.com/Voskan/aurum-heap/internal/unsafehelpers"
)

// handleSize is sizeof(UnsafeHandle[B]) for any brand B: the struct holds a
// single unsafe.Pointer field and B contributes no storage, so this is the
// same size regardless of B. Computed once at package init rather than as a
// const to sidestep any ambiguity around unsafe.Sizeof on a generic
// instantiation in a constant expression.
var handleSize = unsafe.Sizeof(UnsafeHandle[struct{}]{})

// AllocApplication allocates an Application object whose function slot is
// function's current referent and whose argument slots are args' current
// referents, in order. Fails with ErrTooManyArguments — without allocating
// — if the field count (1+len(args)) or the resulting payload byte size
// does not fit in a uint32.
func (h *Heap[B]) AllocApplication(function ScopedHandle[B], args []ScopedHandle[B]) (UnsafeHandle[B], error) {
	n := uint64(len(args))
	if n+1 > math.MaxUint32 {
		return UnsafeHandle[B]{}, ErrTooManyArguments
	}
	fieldCount := uint32(n + 1)

	totalBytes := uint64(fieldCount) * uint64(handleSize)
	if totalBytes > math.MaxUint32 {
		return UnsafeHandle[B]{}, ErrTooManyArguments
	}

	// function/args are read inside the init closure, not before h.alloc is
	// called: alloc is the one documented suspension point where a collector
	// may run (spec §4.D, §9), and a moving collector triggered by this very
	// allocation would rewrite these scope slots in place. Reading them
	// early would capture pre-relocation UnsafeHandles and bake dangling
	// pointers into the new Application — the same reason original_source's
	// application.rs reads each field through its scoped handle inside the
	// allocation closure rather than before calling it.
	u := h.alloc(uintptr(totalBytes), func(payload unsafe.Pointer) object.Header {
		slots := unsafehelpers.PtrSlice((*UnsafeHandle[B])(payload), int(fieldCount))

		funcHandle := function.Read()
		slots[0] = funcHandle
		free := funcHandle.Header().FreeCache
		for i, a := range args {
			ah := a.Read()
			slots[i+1] = ah
			free = object.Union(free, ah.Header().FreeCache)
		}

		var hdr object.Header
		hdr.Kind = object.KindApplication
		hdr.FreeCache = free
		hdr.SetExtraU32(fieldCount)
		return hdr
	})
	return u, nil
}

// NewApplication is AllocApplication's scoped form.
func (h *Heap[B]) NewApplication(into, function ScopedHandle[B], args []ScopedHandle[B]) error {
	u, err := h.AllocApplication(function, args)
	if err != nil {
		return err
	}
	into.AssignUnsafe(u)
	return nil
}

// AsApplication decodes the referent of a pinned handle as an Application,
// if its kind matches: a scoped handle to the function slot, and a Scope
// view over the argument slots (1..F-1). Both borrow directly from the
// object's payload and are only valid while the pin is held — the
// collector treats the returned Scope exactly like any other scope for as
// long as that's true.
func (p PinnedHandle[B]) AsApplication() (ScopedHandle[B], *Scope[B], bool) {
	hdr := p.HeaderSnapshot()
	if hdr.Kind != object.KindApplication {
		return ScopedHandle[B]{}, nil, false
	}
	fieldCount := int(hdr.ExtraU32())
	slots := unsafehelpers.PtrSlice((*UnsafeHandle[B])(p.PayloadPointer()), fieldCount)

	fn := ScopedHandle[B]{slot: &slots[0]}
	argsScope := &Scope[B]{slots: slots[1:]}
	return fn, argsScope, true
}
