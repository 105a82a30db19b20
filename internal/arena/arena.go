// Package arena provides a thin bump-pointer allocator used as the heap's
// raw storage layer. It simplifies the allocator API for use by aurum-heap.
//
// This package wraps power-of-two-growing chunks of ordinary Go memory
// (`make([]byte, n)`) behind a tiny, stable surface:
//   • New()       – construct an empty arena.
//   • Alloc(size) – bump-allocate `size` bytes, 8-byte aligned.
//   • Reset()     – release all memory at once (O(chunks), not O(objects)).
//   • Stats()     – chunk count / live bytes, for introspection/metrics.
//
// Design history
// --------------
// An earlier draft of this package (grounded on the teacher repo) wrapped
// Go's *experimental* `arena` package behind `//go:build goexperiment.arenas`.
// That experiment was removed from the Go toolchain, so wrapping it here
// would make this module fail to build under any current compiler. This
// version instead hand-rolls the bump/chunk allocator, grounded on
// hyperpb-go's internal/arena/arena.go (other_examples): a `next`/`end`-style
// cursor into power-of-two-sized chunks, growing on overflow. Unlike
// hyperpb-go we do not fight the Go GC for noscan placement — our chunks are
// plain []byte slabs owned by *Arena, and objects are addressed by real
// pointers into them (the same "objects live inside slices held internally,
// referenced by real pointers" design used by the pack's
// fmstephe-memorymanager object store). The GC sees the slabs as ordinary
// live memory for as long as *Arena is reachable; this heap's own scope
// stack is what roots individual objects within a slab for the
// not-yet-implemented collector to walk.
//
// Concurrency
// -----------
// *Arena is *not* thread-safe; the owning Heap already guarantees
// single-mutator access (spec §5). No locking here.
//
// ⚠️  DISCLAIMER  ----------------------------------------------
// Memory returned by Alloc is only valid until the next Reset(). Objects
// allocated here must never be referenced by anything outside the owning
// heap's scope stack after Reset() is called.
// -------------------------------------------------------------
//
// © 2025 aurum-heap authors. MIT License.
package arena

import (
	"unsafe"

	"github.com/Voskan/aurum-heap/internal/unsafehelpers"
)

// Align is the alignment every allocation from this arena honours.
const Align = 8

// Chunk sizing: the first chunk is defaultChunkBytes; later chunks double,
// capped at maxChunkBytes.
const (
	defaultChunkBytes = 64 * 1024
	maxChunkBytes     = 16 * 1024 * 1024
)

// OnFatal is called when the arena cannot grow to satisfy an allocation
// (storage exhaustion). The default panics, matching spec.md
// §7's "out-of-memory is fatal, not reported to the caller" policy. Tests
// and hosting code may replace it before any Heap is constructed — it is a
// package-level hook, mirroring the layout-error-hook framing spec.md uses,
// not a per-arena option, since a process only gets to decide this once.
var OnFatal func(reason string) = defaultOnFatal

func defaultOnFatal(reason string) {
	panic("arena: fatal allocation failure: " + reason)
}

// chunk is one slab of backing storage plus simple bookkeeping. Named and
// shaped after the teacher's genring.generation (id, byte accounting) with
// the TTL/rotation machinery stripped: this arena never evicts or rotates a
// chunk out from under live objects, because no sweep pass exists yet to
// decide what's still reachable (see DESIGN.md).
type chunk struct {
	id    uint32
	bytes []byte
	next  int // allocation cursor into bytes
}

func newChunk(id uint32, size int) *chunk {
	return &chunk{id: id, bytes: make([]byte, size)}
}

func (c *chunk) remaining() int { return len(c.bytes) - c.next }

// tryAlloc attempts to bump-allocate size bytes (already aligned) from c.
// Returns nil if the chunk doesn't have room.
func (c *chunk) tryAlloc(size int) unsafe.Pointer {
	if c.remaining() < size {
		return nil
	}
	p := unsafe.Pointer(&c.bytes[c.next])
	c.next += size
	return p
}

// Arena is a bump-pointer allocator over growable chunks.
type Arena struct {
	chunks   []*chunk
	chunkIDs uint32
	nextSize int
}

// New constructs an empty arena ready for allocations.
func New() *Arena {
	return &Arena{nextSize: defaultChunkBytes}
}

// NewWithInitialSize constructs an empty arena whose first chunk will be at
// least initialBytes (rounded up internally as growth proceeds). Used by
// pkg/config.go's WithInitialChunkBytes option; callers must validate
// initialBytes is a positive power of two themselves — this constructor
// trusts its input.
func NewWithInitialSize(initialBytes int) *Arena {
	return &Arena{nextSize: initialBytes}
}

// Alloc returns size bytes of zeroed, 8-byte-aligned storage. The pointer is
// valid until the next Reset(). Callers must not call Alloc reentrantly
// from within code that Alloc itself invoked (spec §4.D's "must not
// allocate recursively").
func (a *Arena) Alloc(size uintptr) unsafe.Pointer {
	aligned := int(unsafehelpers.AlignUp(size, Align))

	if n := len(a.chunks); n > 0 {
		if p := a.chunks[n-1].tryAlloc(aligned); p != nil {
			return p
		}
	}
	a.grow(aligned)
	p := a.chunks[len(a.chunks)-1].tryAlloc(aligned)
	if p == nil {
		// A single allocation larger than our growth target; grow()
		// already sized the chunk to fit it, so this should not happen.
		OnFatal("allocation did not fit freshly grown chunk")
		return nil
	}
	return p
}

// grow appends a new chunk sized to hold at least `need` bytes.
func (a *Arena) grow(need int) {
	size := a.nextSize
	for size < need {
		size *= 2
	}
	a.chunkIDs++
	a.chunks = append(a.chunks, newChunk(a.chunkIDs, size))

	if a.nextSize < maxChunkBytes {
		a.nextSize *= 2
		if a.nextSize > maxChunkBytes {
			a.nextSize = maxChunkBytes
		}
	}
}

// Reset releases all memory allocated by the arena. After the call, any
// pointer previously returned from Alloc is invalid.
func (a *Arena) Reset() {
	a.chunks = nil
	a.nextSize = defaultChunkBytes
}

// Stats is a point-in-time snapshot of arena bookkeeping, consumed by
// pkg/metrics.go's Prometheus exporter.
type Stats struct {
	Chunks    int
	LiveBytes int64
	CapBytes  int64
}

// Stats reports chunk count and byte usage.
func (a *Arena) Stats() Stats {
	var s Stats
	s.Chunks = len(a.chunks)
	for _, c := range a.chunks {
		s.LiveBytes += int64(c.next)
		s.CapBytes += int64(len(c.bytes))
	}
	return s
}
