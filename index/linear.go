package index

import "bytes"

// Linear is the zero-configuration default Indexer: an O(n) scan comparing
// key-sized prefixes. It is a stateless, zero-size value: a zero-size
// struct never allocates at any call site, so there is no cost to using
// one as a shared default.
type Linear struct{}

func (Linear) Get(src Source, key []byte) int {
	return Linear{}.scan(src, key)
}

func (Linear) Put(src Source, key []byte) int {
	return Linear{}.scan(src, key)
}

func (Linear) Del(src Source, key []byte) int {
	return Linear{}.scan(src, key)
}

// Set asserts at is a valid index into src, then does nothing else: Linear
// carries no state to update.
func (Linear) Set(src Source, key []byte, at int) {
	assertf(at >= 0 && at < src.Len(), "index: linear set out-of-range at %d (len %d)", at, src.Len())
}

// Free is a no-op: Linear owns no resources to release.
func (Linear) Free() {}

func (Linear) scan(src Source, key []byte) int {
	n := src.Len()
	for i := 0; i < n; i++ {
		if bytes.Equal(src.KeyAt(i), key) {
			return i
		}
	}
	return n
}

var _ Indexer = Linear{}
