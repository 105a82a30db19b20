package heap

// symbol.go is the Symbol half of component F: an interned-by-usage named
// atom whose payload is its raw name bytes.
//
// © 2025 aurum-heap authors. MIT License.

import (
	"math"
	"unsafe"

	"github.com/Voskan/aurum-heap/internal/object"
	"github.com/Voskan/aurum-heap/internal/unsafehelpers"
)

// AllocSymbol allocates a Symbol object holding a copy of name and returns
// an unsafe handle to it. Fails with ErrNameTooLong rather than allocating
// if name does not fit in a uint32-counted payload.
func (h *Heap[B]) AllocSymbol(name []byte) (UnsafeHandle[B], error) {
	if uint64(len(name)) > math.MaxUint32 {
		return UnsafeHandle[B]{}, ErrNameTooLong
	}
	n := uint32(len(name))

	u := h.alloc(uintptr(n), func(payload unsafe.Pointer) object.Header {
		if n > 0 {
			dst := unsafehelpers.ByteSliceFrom(payload, uintptr(n))
			copy(dst, name)
		}
		var hdr object.Header
		hdr.Kind = object.KindSymbol
		hdr.FreeCache = object.EmptyFreeCache
		hdr.SetExtraU32(n)
		return hdr
	})
	return u, nil
}

// NewSymbol allocates a Symbol as AllocSymbol does and stores the result
// into into's slot. Leaves into untouched if name is rejected.
func (h *Heap[B]) NewSymbol(into ScopedHandle[B], name []byte) error {
	u, err := h.AllocSymbol(name)
	if err != nil {
		return err
	}
	into.AssignUnsafe(u)
	return nil
}

// AsSymbol decodes the referent of a pinned handle as a Symbol's name
// bytes, if its kind matches. The returned slice is bounded by the pin's
// lifetime — it borrows directly from arena storage, no copy.
func (p PinnedHandle[B]) AsSymbol() ([]byte, bool) {
	hdr := p.HeaderSnapshot()
	if hdr.Kind != object.KindSymbol {
		return nil, false
	}
	n := hdr.ExtraU32()
	if n == 0 {
		return []byte{}, true
	}
	return unsafehelpers.ByteSliceFrom(p.PayloadPointer(), uintptr(n)), true
}
