package heap

// config.go defines the internal configuration object and the set of
// functional options passed to WithNew, in the same shape as the teacher's
// cache.New(...Option[K,V]) did: a private config struct, a defaultConfig
// constructor, and exported With* functions that close over it.
//
// Design notes
// ------------
// • All fields get sensible defaults in defaultConfig().
// • Options never allocate unless strictly necessary — they capture
//   pointers to external objects (registry, logger).
// • The config struct itself is never exported; callers can only influence
//   behaviour via HeapOption[B], preserving forward compatibility the same
//   way teacher's Option[K,V] does.
//
// © 2025 aurum-heap authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Voskan/aurum-heap/internal/unsafehelpers"
)

// HeapOption configures a Heap[B] at construction time via WithNew.
type HeapOption[B any] func(*config[B])

// config bundles every knob influencing heap construction. Immutable once
// the Heap is built — there is no hot-reload of arena sizing, mirroring
// teacher's "we do not support live mutation from user land" stance.
type config[B any] struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	initialChunkBytes int // 0 means "use internal/arena's default"

	// partID is reserved (see the commented-out WithPartition below); no
	// option sets it, applyOptions does not validate it, and nothing reads it.
	partID int
}

func defaultConfig[B any]() *config[B] {
	return &config[B]{
		logger:   zap.NewNop(),
		registry: nil, // user must opt in to metrics
	}
}

// WithLogger plugs an external zap.Logger. The heap never logs on the hot
// path (alloc, with_pin, scope push/pop); the only event it logs is heap
// teardown, at Debug. Arena chunk growth is not logged.
func WithLogger[B any](l *zap.Logger) HeapOption[B] {
	return func(c *config[B]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics collection for the heap instance.
// Passing nil disables metrics (default).
func WithMetrics[B any](reg *prometheus.Registry) HeapOption[B] {
	return func(c *config[B]) {
		c.registry = reg
	}
}

// WithInitialChunkBytes overrides the arena's first chunk size. Must be a
// positive power of two; validated in applyOptions.
func WithInitialChunkBytes[B any](n int) HeapOption[B] {
	return func(c *config[B]) {
		c.initialChunkBytes = n
	}
}

// Reserved for a future public API — partition pinning across a pool of
// heaps sharing a process. No component in this repository consumes
// partID yet.
// func WithPartition[B any](id int) HeapOption[B] { … }

// applyOptions copies user-supplied options into cfg and validates
// invariants before any arena is constructed.
func applyOptions[B any](cfg *config[B], opts []HeapOption[B]) error {
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.initialChunkBytes != 0 {
		if cfg.initialChunkBytes <= 0 || !unsafehelpers.IsPowerOfTwo(uintptr(cfg.initialChunkBytes)) {
			return ErrInvalidChunkSize
		}
	}
	return nil
}
