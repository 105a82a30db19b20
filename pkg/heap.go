package heap

// heap.go owns the allocator, the scope stack, and the two families of
// interned objects (the Null symbol and the 16 low-index Variables). A
// Heap is only ever reachable through WithNew's continuation, which is what
// lets the brand type parameter B stand in for a fresh compile-time
// identity per call: there is no other constructor that could hand a
// caller a *Heap[B] stamped with someone else's B.
//
// © 2025 aurum-heap authors. MIT License.

import (
	"go.uber.org/zap"

	"github.com/Voskan/aurum-heap/internal/arena"
	"github.com/Voskan/aurum-heap/internal/cellguard"
	"github.com/Voskan/aurum-heap/internal/object"
)

// Heap owns an arena, a scope stack, and the interned objects every freshly
// opened scope slot is initialized to. B is a phantom brand: a value never
// stored in any Heap, handle, or Scope field, only threaded through their
// type parameters, so a *Heap[B]'s handles cannot type-check against a
// different *Heap[C]'s methods.
type Heap[B any] struct {
	arena *arena.Arena

	guard  cellguard.Guard
	scopes []*Scope[B]

	internedNull      UnsafeHandle[B]
	internedVariables [16]UnsafeHandle[B]

	logger  *zap.Logger
	metrics metricsSink
}

// WithNew constructs a freshly branded heap, runs then against it, and
// tears the heap down on return (including on panic, via defer) — the only
// way to obtain a *Heap[B], which is why this takes a continuation instead
// of returning the heap directly (the same reasoning original_source gives
// for why with_new is callback-shaped rather than a plain constructor).
//
// Initialization follows seven steps:
//  1. Construct an empty heap with dangling placeholders for the Null
//     symbol and the 16 interned Variable objects.
//  2. Open a scratch scope with one slot.
//  3. Construct the Null symbol; record its handle as interned_null.
//  4. For i in 0..16, construct a non-interned Variable with De Bruijn
//     index i and record its handle as interned_variables[i].
//  5. Close the scratch scope.
//  6. Invoke then(heap).
//  7. Tear down the heap on return.
//
// During steps 2-5 nothing may trigger a collection cycle — there is no
// collector implementation yet to trigger one, but an implementation that
// adds one must preserve this ordering (see DESIGN.md).
//
// A package-level function, not a Heap method, for the same reason as
// WithPin and WithNewScope: R must vary per call site and Go methods cannot
// introduce their own type parameters.
func WithNew[B any, R any](then func(*Heap[B]) R, opts ...HeapOption[B]) R {
	cfg := defaultConfig[B]()
	if err := applyOptions(cfg, opts); err != nil {
		panic(err)
	}

	var ar *arena.Arena
	if cfg.initialChunkBytes != 0 {
		ar = arena.NewWithInitialSize(cfg.initialChunkBytes)
	} else {
		ar = arena.New()
	}

	h := &Heap[B]{
		arena:   ar,
		logger:  cfg.logger,
		metrics: newMetricsSink(cfg.registry),
	}
	for i := range h.internedVariables {
		h.internedVariables[i] = Dangling[B]()
	}
	h.internedNull = Dangling[B]()

	WithNewScope(h, 1, func(s *Scope[B]) struct{} {
		nullSlot := s.GetUnchecked(0)
		if err := h.NewSymbol(nullSlot, nil); err != nil {
			// nil/empty names always fit in a uint32 length; this would
			// only fire if NewSymbol's own contract were broken.
			panic(err)
		}
		h.internedNull = nullSlot.Read()

		for i := 0; i < 16; i++ {
			h.internedVariables[i] = h.allocVariableRaw(object.DeBruijn(i))
		}
		return struct{}{}
	})

	defer func() {
		h.logger.Debug("aurum-heap: tearing down heap", zap.Int("open_scopes", len(h.scopes)))
		h.arena.Reset()
	}()

	return then(h)
}

// InternedNull always returns the heap's single Null Symbol object.
func (h *Heap[B]) InternedNull() UnsafeHandle[B] { return h.internedNull }

// InternedVariable returns the preallocated Variable for db if db < 16.
func (h *Heap[B]) InternedVariable(db object.DeBruijn) (UnsafeHandle[B], bool) {
	if db >= 16 {
		return UnsafeHandle[B]{}, false
	}
	return h.internedVariables[db], true
}

// ScopeDepth reports how many scopes are currently open, mostly useful for
// tests and the aurum_heap_scope_depth metric.
func (h *Heap[B]) ScopeDepth() int { return len(h.scopes) }

// ArenaStats exposes the underlying arena's bookkeeping (chunk count, live
// and capacity bytes) to callers outside the package.
func (h *Heap[B]) ArenaStats() arena.Stats { return h.arena.Stats() }
