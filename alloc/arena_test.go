package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestArenaSpill checks that a min-block-8 arena handed two 6-byte
// allocations spills into a second, doubled block, and that a 100-byte
// allocation spills into a third block sized to fit it.
func TestArenaSpill(t *testing.T) {
	arena := NewArena(Default, 8)

	a := arena.Alloc(6, 1)
	require.Len(t, a, 6)
	assert.Equal(t, 1, arena.Blocks())

	b := arena.Alloc(6, 1)
	require.Len(t, b, 6)
	assert.Equal(t, 2, arena.Blocks(), "second 6-byte alloc should not fit the remaining 2 bytes of an 8-byte block")

	c := arena.Alloc(100, 1)
	require.Len(t, c, 100)
	assert.Equal(t, 3, arena.Blocks(), "100-byte alloc should not fit a doubled 16-byte block")

	assert.NotEqual(t, addrOf(a), addrOf(b))
	assert.NotEqual(t, addrOf(b), addrOf(c))
}

func TestArenaFreeAllReleasesEveryBlock(t *testing.T) {
	freed := 0
	tracking := &countingAllocator{Allocator: Default, onFree: func([]byte) { freed++ }}
	arena := NewArena(tracking, 8)

	arena.Alloc(6, 1)
	arena.Alloc(6, 1)
	arena.Alloc(100, 1)
	require.Equal(t, 3, arena.Blocks())

	arena.FreeAll()
	assert.Equal(t, 3, freed)
	assert.Equal(t, 0, arena.Blocks())
}

// countingAllocator wraps another Allocator, invoking onFree on every Free
// call. Alloc is delegated unchanged.
type countingAllocator struct {
	Allocator
	onFree func([]byte)
}

func (c *countingAllocator) Free(buf []byte) {
	c.onFree(buf)
	c.Allocator.Free(buf)
}
