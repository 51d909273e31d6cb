package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sliceSource struct {
	keys [][]byte
}

func (s sliceSource) Len() int          { return len(s.keys) }
func (s sliceSource) KeyAt(i int) []byte { return s.keys[i] }

func TestLinearGetFindsAndMisses(t *testing.T) {
	src := sliceSource{keys: [][]byte{[]byte("a"), []byte("b"), []byte("c")}}
	var lin Linear

	assert.Equal(t, 1, lin.Get(src, []byte("b")))
	assert.Equal(t, src.Len(), lin.Get(src, []byte("z")))
}

func TestLinearPutReportsAppendPositionOnMiss(t *testing.T) {
	src := sliceSource{keys: [][]byte{[]byte("a")}}
	var lin Linear

	assert.Equal(t, src.Len(), lin.Put(src, []byte("new")))
	assert.Equal(t, 0, lin.Put(src, []byte("a")))
}

func TestLinearSetAndFreeAreNoops(t *testing.T) {
	src := sliceSource{keys: make([][]byte, 5)}
	var lin Linear
	assert.NotPanics(t, func() {
		lin.Set(src, []byte("x"), 4)
		lin.Free()
	})
}

func TestLinearSetPanicsOnOutOfRangeIndex(t *testing.T) {
	src := sliceSource{keys: [][]byte{[]byte("a")}}
	var lin Linear
	assert.Panics(t, func() {
		lin.Set(src, []byte("x"), 4)
	})
}
