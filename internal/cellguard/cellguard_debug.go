//go:build aurumdebug

package cellguard

// guardState is the debug-build backing for Guard: a simple boolean that
// panics on reentrant Enter. Not atomic — the heap is single-threaded by
// spec (§5); this exists to catch a mutator bug (nested with_scope
// mutation), not a data race.
type guardState struct {
	entered bool
}

func (g *guardState) enter() {
	if g.entered {
		panic("cellguard: reentrant mutation of scope stack detected")
	}
	g.entered = true
}

func (g *guardState) leave() {
	g.entered = false
}
