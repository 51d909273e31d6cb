// Package container provides Array, the single growable-sequence-or-map
// container the rest of this module is built on: a header-external byte
// buffer with a pluggable index.Indexer for keyed lookups, adaptively
// upgraded from a linear scan to an open-addressed hash table once the
// element count crosses a threshold.
package container
