package heap

// scope.go implements the scope stack: a LIFO registry of root sets whose
// slots the (not-yet-implemented) collector must be able to enumerate and
// rewrite after relocation.
//
// The stack itself lives on Heap[B] and is mutated only by WithNewScope; a
// debug-mode checked cell (internal/cellguard) traps accidental nested
// mutation the same way teacher's internal/arena/arena.go is gated by a
// build tag rather than a runtime flag — here the tag is "aurumdebug"
// instead of "goexperiment.arenas".
//
// © 2025 aurum-heap authors. MIT License.

// Scope is a contiguous array of root slots. It is never constructed
// directly by callers — only handed to them inside a WithNewScope callback
// — so its lifetime is always bounded by that call.
type Scope[B any] struct {
	slots []UnsafeHandle[B]
}

// Len reports the number of slots in the scope.
func (s *Scope[B]) Len() int { return len(s.slots) }

// Get returns a scoped handle to slot i, or false if i is out of range.
func (s *Scope[B]) Get(i int) (ScopedHandle[B], bool) {
	if i < 0 || i >= len(s.slots) {
		return ScopedHandle[B]{}, false
	}
	return ScopedHandle[B]{slot: &s.slots[i]}, true
}

// GetUnchecked returns a scoped handle to slot i without a bounds check.
// Undefined if i is out of range; for tight inner loops where the index is
// statically known to be in range.
func (s *Scope[B]) GetUnchecked(i int) ScopedHandle[B] {
	return ScopedHandle[B]{slot: &s.slots[i]}
}

// Slots returns every slot as a scoped handle, in order. The result has
// exact-size, known-length semantics: len(result) == s.Len() always, with
// no traversal required to learn it up front.
func (s *Scope[B]) Slots() []ScopedHandle[B] {
	out := make([]ScopedHandle[B], len(s.slots))
	for i := range s.slots {
		out[i] = ScopedHandle[B]{slot: &s.slots[i]}
	}
	return out
}

// pushScope allocates a new scope frame of n slots, all initialized to the
// heap's interned Null, and pushes it onto the scope stack. Guarded against
// reentrant mutation by h.guard.
func (h *Heap[B]) pushScope(n int) *Scope[B] {
	slots := make([]UnsafeHandle[B], n)
	for i := range slots {
		slots[i] = h.internedNull
	}
	scope := &Scope[B]{slots: slots}

	h.guard.Enter()
	h.scopes = append(h.scopes, scope)
	h.guard.Leave()

	h.metrics.setScopeDepth(int64(len(h.scopes)))
	return scope
}

// popScope pops the top scope frame. Must be called exactly once per
// pushScope, in strict LIFO order — WithNewScope enforces this with defer
// so abnormal termination through then still pops correctly.
func (h *Heap[B]) popScope() {
	h.guard.Enter()
	h.scopes = h.scopes[:len(h.scopes)-1]
	h.guard.Leave()

	h.metrics.setScopeDepth(int64(len(h.scopes)))
}

// WithNewScope opens a variable-size scope of n slots on h, invokes then
// with a reference to it, and pops the scope on return — including when
// then panics, so nested scopes always unwind in strict reverse push order
// (the "Variable-size scope on the heap" shape).
//
// A package-level function rather than a Heap method for the same reason as
// WithPin: Go methods cannot introduce their own type parameters, and R
// must vary per call site.
func WithNewScope[B any, R any](h *Heap[B], n int, then func(*Scope[B]) R) R {
	scope := h.pushScope(n)
	defer h.popScope()
	return then(scope)
}

// WithNewScope2 opens a 2-slot scope and destructures it for the caller —
// the "Fixed-N scope on the mutator's own call frame" shape, specialized to
// the small arities this package's own constructors and tests actually
// need, since Go has no const generics to parameterize the array size.
func WithNewScope2[B any, R any](h *Heap[B], then func(a, b ScopedHandle[B]) R) R {
	return WithNewScope(h, 2, func(s *Scope[B]) R {
		return then(s.GetUnchecked(0), s.GetUnchecked(1))
	})
}

// WithNewScope3 is WithNewScope2 for 3 slots.
func WithNewScope3[B any, R any](h *Heap[B], then func(a, b, c ScopedHandle[B]) R) R {
	return WithNewScope(h, 3, func(s *Scope[B]) R {
		return then(s.GetUnchecked(0), s.GetUnchecked(1), s.GetUnchecked(2))
	})
}

// WithNewScope4 is WithNewScope2 for 4 slots — exactly what spec.md's
// Add(Pi, x0) end-to-end scenario needs: [add, pi, x, app].
func WithNewScope4[B any, R any](h *Heap[B], then func(a, b, c, d ScopedHandle[B]) R) R {
	return WithNewScope(h, 4, func(s *Scope[B]) R {
		return then(s.GetUnchecked(0), s.GetUnchecked(1), s.GetUnchecked(2), s.GetUnchecked(3))
	})
}
