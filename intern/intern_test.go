package intern

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/corert/alloc"
)

// TestInternIdentity checks the intern identity invariant: intern(x) ==
// intern(y) iff bytes(x) == bytes(y).
func TestInternIdentity(t *testing.T) {
	m := NewMap(alloc.Default)
	defer m.Free()

	a := m.Intern([]byte("hello"))
	b := m.Intern([]byte("hello"))
	c := m.Intern([]byte("world"))

	require.Equal(t, a, b)
	assert.Same(t, &a[0], &b[0], "identical byte contents must return the same underlying buffer")
	assert.NotEqual(t, a, c)
}

func TestInternedBytesAreNulTerminated(t *testing.T) {
	m := NewMap(alloc.Default)
	defer m.Free()

	buf := m.Intern([]byte("name"))
	full := buf[:len(buf)+1:len(buf)+1]
	assert.Equal(t, byte(0), full[len(buf)])
}

func TestInternManyDistinctNamesStayDistinct(t *testing.T) {
	m := NewMap(alloc.Default)
	defer m.Free()

	seen := make(map[string][]byte)
	for i := 0; i < 500; i++ {
		name := fmt.Sprintf("name-%d", i)
		buf := m.Intern([]byte(name))
		seen[name] = buf
	}
	for name, buf := range seen {
		again := m.Intern([]byte(name))
		assert.Equal(t, buf, again)
	}
}

func TestInternEmptyBytes(t *testing.T) {
	m := NewMap(alloc.Default)
	defer m.Free()

	a := m.Intern([]byte{})
	b := m.Intern([]byte{})
	assert.Equal(t, 0, len(a))
	assert.Equal(t, a, b)
}

func TestFreeReleasesArenaAndArrays(t *testing.T) {
	m := NewMap(alloc.Default)
	m.Intern([]byte("x"))
	assert.NotPanics(t, func() { m.Free() })
}
