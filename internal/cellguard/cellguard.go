// Package cellguard provides a debug-mode-checked guard for the one piece of
// interior mutability the heap's scope stack needs: "only one with_scope
// call is ever mutating the stack at a time."
//
// In a release build this compiles down to nothing — no locks, no atomics,
// matching spec.md §5's "release builds: undefined behaviour on aliased
// mutation, but zero cost". In a build tagged `aurumdebug` it panics on
// reentrant mutation, the same way teacher's internal/arena.go is selected
// by a build tag (`goexperiment.arenas`) rather than a runtime flag — a
// debug/release split belongs at compile time so the release path never
// carries the branch.
//
// © 2025 aurum-heap authors. MIT License.
package cellguard

// Guard is embedded by types that need "exclusive borrow while a callback
// runs" semantics without paying for a mutex. Enter/Leave must be paired;
// Enter panics (debug builds only) if already entered.
type Guard struct {
	guardState
}

// Enter marks the guard as borrowed. Pair with a deferred Leave.
func (g *Guard) Enter() { g.enter() }

// Leave clears the borrowed marker.
func (g *Guard) Leave() { g.leave() }
