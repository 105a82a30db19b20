package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAligned(t *testing.T) {
	a := New()
	for _, size := range []uintptr{1, 3, 7, 8, 9, 15, 100} {
		p := a.Alloc(size)
		require.NotNil(t, p)
		assert.Zero(t, uintptr(p)%Align, "pointer %v not %d-aligned for size %d", p, Align, size)
	}
}

func TestAllocDistinctNonOverlapping(t *testing.T) {
	a := New()
	const n = 64
	ptrs := make([]unsafe.Pointer, n)
	for i := range ptrs {
		ptrs[i] = a.Alloc(32)
	}
	seen := make(map[unsafe.Pointer]bool, n)
	for _, p := range ptrs {
		require.False(t, seen[p], "duplicate pointer returned")
		seen[p] = true
	}
}

func TestAllocGrowsAcrossChunks(t *testing.T) {
	a := New()
	before := a.Stats()
	assert.Equal(t, 0, before.Chunks)

	// Force growth past the initial chunk.
	a.Alloc(defaultChunkBytes)
	a.Alloc(defaultChunkBytes)

	after := a.Stats()
	assert.GreaterOrEqual(t, after.Chunks, 2)
	assert.GreaterOrEqual(t, after.CapBytes, int64(2*defaultChunkBytes))
}

func TestAllocLargerThanDefaultChunkFitsImmediately(t *testing.T) {
	a := New()
	p := a.Alloc(2 * defaultChunkBytes)
	assert.NotNil(t, p)
	stats := a.Stats()
	assert.Equal(t, 1, stats.Chunks)
	assert.GreaterOrEqual(t, stats.CapBytes, int64(2*defaultChunkBytes))
}

func TestStatsTracksLiveBytes(t *testing.T) {
	a := New()
	a.Alloc(16)
	a.Alloc(24)
	stats := a.Stats()
	assert.Equal(t, int64(40), stats.LiveBytes)
}

func TestResetReleasesChunks(t *testing.T) {
	a := New()
	a.Alloc(128)
	require.Equal(t, 1, a.Stats().Chunks)

	a.Reset()
	stats := a.Stats()
	assert.Equal(t, 0, stats.Chunks)
	assert.Equal(t, int64(0), stats.LiveBytes)

	// Arena is reusable after Reset.
	p := a.Alloc(16)
	assert.NotNil(t, p)
}

func TestChunkGrowthCapsAtMax(t *testing.T) {
	a := New()
	for i := 0; i < 20; i++ {
		a.Alloc(defaultChunkBytes)
	}
	assert.LessOrEqual(t, a.nextSize, maxChunkBytes)
}
