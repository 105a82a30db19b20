package object

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderSize(t *testing.T) {
	require.Equal(t, uintptr(8), unsafe.Sizeof(Header{}))
	require.Equal(t, uintptr(8), HeaderSize)
}

func TestExtraRoundTrip(t *testing.T) {
	var h Header
	h.SetExtraU32(0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), h.ExtraU32())
}

func TestFreeCacheExactnessBelow8(t *testing.T) {
	for d := DeBruijn(0); d < 8; d++ {
		c := EmptyFreeCache.Insert(d)
		assert.Equal(t, TriTrue, c.Contains(d))
		for d2 := DeBruijn(0); d2 < 8; d2++ {
			if d2 != d {
				assert.Equal(t, TriFalse, c.Contains(d2), "d=%d d2=%d", d, d2)
			}
		}
	}
}

func TestFreeCacheUnknownAbsorbing(t *testing.T) {
	for d := DeBruijn(8); d < 16; d++ {
		assert.Equal(t, UnknownFreeCache, EmptyFreeCache.Insert(d))
	}
	for d := DeBruijn(0); d < 16; d++ {
		assert.Equal(t, TriUnknown, UnknownFreeCache.Contains(d))
	}
}

func TestUnion(t *testing.T) {
	a := EmptyFreeCache.Insert(1).Insert(3)
	b := EmptyFreeCache.Insert(5)
	u := Union(a, b)
	assert.Equal(t, TriTrue, u.Contains(1))
	assert.Equal(t, TriTrue, u.Contains(3))
	assert.Equal(t, TriTrue, u.Contains(5))
	assert.Equal(t, TriFalse, u.Contains(2))

	assert.Equal(t, UnknownFreeCache, Union(a, UnknownFreeCache))
	assert.Equal(t, UnknownFreeCache, Union(UnknownFreeCache, b))
}

func TestFlags(t *testing.T) {
	var f Flags
	assert.False(t, f.Has(FlagPinned))
	f = f.Set(FlagPinned)
	assert.True(t, f.Has(FlagPinned))
	f = f.Clear(FlagPinned)
	assert.False(t, f.Has(FlagPinned))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Symbol", KindSymbol.String())
	assert.Equal(t, "Variable", KindVariable.String())
	assert.Equal(t, "Application", KindApplication.String())
}
