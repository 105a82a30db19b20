// Package bench provides reproducible micro-benchmarks for aurum-heap.
// Run via:  go test ./bench -bench=. -benchmem -cpu 1,4,16
//
// We measure:
//  1. NewSymbol      — allocate-and-store a small Symbol
//  2. NewVariable    — interned (db<16) vs allocating (db>=16)
//  3. NewApplication — building Add(Pi, x0) repeatedly
//  4. Inspect        — with_pin + as_application on a built term
//  5. MultiHeap      — many independent heaps driven concurrently via
//     errgroup, each single-threaded internally — teacher's singleflight
//     loader has no referent here (the heap is single-mutator by spec), so
//     x/sync is re-wired to errgroup for this instead.
//
// NOTE: Unit tests live in pkg/*_test.go; this file is only for
// performance.
//
// © 2025 aurum-heap authors. MIT License.
package bench

import (
	"testing"

	"golang.org/x/sync/errgroup"

	heap "github.com/Voskan/aurum-heap/pkg"
)

type benchBrand struct{}

func BenchmarkNewSymbol(b *testing.B) {
	heap.WithNew(func(h *heap.Heap[benchBrand]) struct{} {
		name := []byte("Add")
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			heap.WithNewScope(h, 1, func(s *heap.Scope[benchBrand]) struct{} {
				slot := s.GetUnchecked(0)
				_ = h.NewSymbol(slot, name)
				return struct{}{}
			})
		}
		return struct{}{}
	})
}

func BenchmarkNewVariableInterned(b *testing.B) {
	heap.WithNew(func(h *heap.Heap[benchBrand]) struct{} {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			heap.WithNewScope(h, 1, func(s *heap.Scope[benchBrand]) struct{} {
				slot := s.GetUnchecked(0)
				h.NewVariable(slot, 5)
				return struct{}{}
			})
		}
		return struct{}{}
	})
}

func BenchmarkNewVariableAllocating(b *testing.B) {
	heap.WithNew(func(h *heap.Heap[benchBrand]) struct{} {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			heap.WithNewScope(h, 1, func(s *heap.Scope[benchBrand]) struct{} {
				slot := s.GetUnchecked(0)
				h.NewVariable(slot, 1000)
				return struct{}{}
			})
		}
		return struct{}{}
	})
}

func BenchmarkNewApplication(b *testing.B) {
	heap.WithNew(func(h *heap.Heap[benchBrand]) struct{} {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			heap.WithNewScope4(h, func(add, pi, x, app heap.ScopedHandle[benchBrand]) struct{} {
				_ = h.NewSymbol(add, []byte("Add"))
				_ = h.NewSymbol(pi, []byte("Pi"))
				h.NewVariable(x, 0)
				_ = h.NewApplication(app, add, []heap.ScopedHandle[benchBrand]{pi, x})
				return struct{}{}
			})
		}
		return struct{}{}
	})
}

func BenchmarkInspectApplication(b *testing.B) {
	heap.WithNew(func(h *heap.Heap[benchBrand]) struct{} {
		heap.WithNewScope4(h, func(add, pi, x, app heap.ScopedHandle[benchBrand]) struct{} {
			_ = h.NewSymbol(add, []byte("Add"))
			_ = h.NewSymbol(pi, []byte("Pi"))
			h.NewVariable(x, 0)
			_ = h.NewApplication(app, add, []heap.ScopedHandle[benchBrand]{pi, x})

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				heap.WithPin(app, func(p heap.PinnedHandle[benchBrand]) struct{} {
					_, args, ok := p.AsApplication()
					if !ok || args.Len() != 2 {
						b.Fatal("unexpected application shape")
					}
					return struct{}{}
				})
			}
			return struct{}{}
		})
		return struct{}{}
	})
}

// BenchmarkMultiHeapConcurrent drives several independent, brand-isolated
// heaps concurrently via errgroup — each heap is itself strictly
// single-threaded, so this only demonstrates that nothing in one heap's
// bookkeeping (arena, scope stack) is shared with another's, never that a
// single Heap[B] tolerates concurrent callers. All workers share the
// benchBrand type parameter purely because Go cannot mint a fresh type per
// loop iteration; they never exchange handles, so brand isolation is
// preserved in practice even though the type system isn't asked to enforce
// it across these particular N instances (see DESIGN.md).
func BenchmarkMultiHeapConcurrent(b *testing.B) {
	const workers = 8
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var g errgroup.Group
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				heap.WithNew(func(h *heap.Heap[benchBrand]) struct{} {
					heap.WithNewScope4(h, func(add, pi, x, app heap.ScopedHandle[benchBrand]) struct{} {
						_ = h.NewSymbol(add, []byte("Add"))
						_ = h.NewSymbol(pi, []byte("Pi"))
						h.NewVariable(x, 0)
						_ = h.NewApplication(app, add, []heap.ScopedHandle[benchBrand]{pi, x})
						return struct{}{}
					})
					return struct{}{}
				})
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			b.Fatal(err)
		}
	}
}
