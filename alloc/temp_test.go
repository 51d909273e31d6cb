package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempBumpAndReset(t *testing.T) {
	buf := make([]byte, 64)
	tmp := NewTemp(buf)

	a := tmp.Alloc(10, 1)
	require.Len(t, a, 10)
	mark := tmp.Mark()

	b := tmp.Alloc(10, 1)
	require.Len(t, b, 10)
	assert.Equal(t, mark+10, tmp.Len())

	tmp.Reset(mark)
	assert.Equal(t, mark, tmp.Len())

	c := tmp.Alloc(10, 1)
	require.Len(t, c, 10)
}

func TestTempAllocFailsPastCapacity(t *testing.T) {
	tmp := NewTemp(make([]byte, 8))
	require.Nil(t, tmp.Alloc(9, 1))
	require.NotNil(t, tmp.Alloc(8, 1))
	require.Nil(t, tmp.Alloc(1, 1))
}

func TestTempResetToForeignMarkPanics(t *testing.T) {
	tmp := NewTemp(make([]byte, 8))
	assert.Panics(t, func() { tmp.Reset(9) })
}
