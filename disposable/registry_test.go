package disposable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureAndDisposeLIFO(t *testing.T) {
	var reg Registry
	var order []string

	reg.Secure(New(func() { order = append(order, "a") }))
	reg.Secure(New(func() { order = append(order, "b") }))
	c := New(func() { order = append(order, "c") })
	reg.Secure(c)

	reg.Dispose(c)
	assert.Equal(t, []string{"c", "b", "a"}, order)
	assert.Equal(t, 0, reg.Len())
}

func TestDisposeDownToMarkPreservesEarlierEntries(t *testing.T) {
	var reg Registry
	var order []string

	reg.Secure(New(func() { order = append(order, "a") }))
	mark := reg.Mark()

	b := New(func() { order = append(order, "b") })
	reg.Secure(b)
	reg.Secure(New(func() { order = append(order, "c") }))

	reg.Dispose(b)
	assert.Equal(t, []string{"c", "b"}, order)
	assert.Equal(t, mark, reg.Len())
}

func TestUnsecureTransfersOwnershipBack(t *testing.T) {
	var reg Registry
	called := false
	d := New(func() { called = true })

	reg.Secure(d)
	reg.Unsecure(d)
	reg.Dispose(d)

	assert.False(t, called)
}

func TestDisposeToleratesReentrantShrink(t *testing.T) {
	var reg Registry
	var order []string

	a := New(func() { order = append(order, "a") })
	reg.Secure(a)

	var b *Disposable
	b = New(func() {
		order = append(order, "b")
		reg.Unsecure(a) // reentrantly shrinks the same registry mid-dispose
	})
	reg.Secure(b)

	reg.Dispose(b)
	assert.Equal(t, []string{"b"}, order)
	require.False(t, reg.secured(a))
}

func TestSecureIsIdempotent(t *testing.T) {
	var reg Registry
	d := New(func() {})
	reg.Secure(d)
	mark := d.mark
	reg.Secure(d)
	assert.Equal(t, mark, d.mark)
	assert.Equal(t, 1, reg.Len())
}
