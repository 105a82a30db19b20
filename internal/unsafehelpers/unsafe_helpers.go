// Package unsafehelpers centralises the pointer‑arithmetic and slice‑view
// uses of the `unsafe` standard‑library package so they are easier to audit.
// Other packages still import `unsafe` directly for pointer casts and
// unsafe.Sizeof.  Every helper is documented with clear pre‑/post‑
// conditions.
//
// ⚠️  **DISCLAIMER**   These helpers deliberately break the Go memory‑safety
// model for the sake of zero‑allocation conversions.  Use ONLY inside this
// repository; they are not part of the public API and may change without
// notice.  Misuse will lead to subtle data‑races or garbage‑collector
// corruption.
//
// All functions are `go:linkname`‑free, cgo‑free and pure Go 1.24.
//
// © 2025 aurum-heap authors. MIT License.

package unsafehelpers

import "unsafe"

/* -------------------------------------------------------------------------
   1. Generic pointer → slice helpers
   ------------------------------------------------------------------------- */

// PtrSlice converts an arbitrary *T pointer + element count into a `[]T`
// without copying.  Useful when we need to treat an arena‑allocated array as a
// slice for iteration.  The slice is **still backed by arena memory** and thus
// safe from GC, but the usual rules about arena lifetime apply.
func PtrSlice[T any](ptr *T, n int) []T {
    if n == 0 {
        return nil
    }
    return unsafe.Slice(ptr, n)
}

// ByteSliceFrom returns a []byte view of raw memory starting at `ptr` with the
// given length.  Caller must ensure the memory block is at least `length`
// bytes.  Used to view a Symbol's payload as its raw name bytes.
func ByteSliceFrom(ptr unsafe.Pointer, length uintptr) []byte {
    return unsafe.Slice((*byte)(ptr), length)
}

/* -------------------------------------------------------------------------
   2. Alignment helpers
   ------------------------------------------------------------------------- */

// AlignUp rounds x up to the nearest multiple of align (which must be a power
// of two).  Fast bit‑twiddling alternative to math.Ceil for sizes.
func AlignUp(x, align uintptr) uintptr {
    return (x + align - 1) &^ (align - 1)
}

// IsPowerOfTwo returns true if x is a power of two (exactly one bit set).
func IsPowerOfTwo(x uintptr) bool {
    return x != 0 && (x&(x-1)) == 0
}

/* -------------------------------------------------------------------------
   3. Header/payload addressing

   An object's payload begins immediately after its header inside the same
   arena allocation. Centralising the offset arithmetic here keeps the
   object/heap packages free of raw `unsafe.Add` calls.
   ------------------------------------------------------------------------- */

// Add advances ptr by n bytes. Thin rename of unsafe.Add so call sites in
// this repository never import "unsafe" just for pointer arithmetic.
func Add(ptr unsafe.Pointer, n uintptr) unsafe.Pointer {
    return unsafe.Add(ptr, n)
}

// PayloadPointer returns the payload address for an object whose base
// address (the start of its header) is objPtr and whose header is
// headerSize bytes.
func PayloadPointer(objPtr unsafe.Pointer, headerSize uintptr) unsafe.Pointer {
    return Add(objPtr, headerSize)
}
