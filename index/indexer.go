// Package index — see doc.go for the package overview.
package index

import "fmt"

// Source is the read view an Indexer scans or hashes against: the backing
// array's current length and a way to read the key-sized prefix of any
// element by position.
type Source interface {
	// Len returns the number of elements currently present.
	Len() int
	// KeyAt returns the key-sized byte prefix of element i. i must be in
	// [0, Len()).
	KeyAt(i int) []byte
}

// Indexer is the polymorphic keyed-lookup strategy container.Array
// delegates to. Get, Put, and Del all return either the located element's
// index or src.Len() to mean "not found" (Get, Del) or "append a new
// element" (Put).
type Indexer interface {
	// Get locates key, scanning/probing against src. Returns src.Len() on
	// a miss.
	Get(src Source, key []byte) int

	// Put locates key, or reports where a new element should be appended.
	// Returns src.Len() when key was not present — the caller is expected
	// to append the new key/value pair at that index and, if the Indexer
	// needs to know the final position (e.g. Hash), it already recorded it
	// during Put.
	Put(src Source, key []byte) int

	// Del locates key and marks it removed from the index's own
	// bookkeeping (not from src — the caller still owns compaction).
	// Returns src.Len() on a miss.
	Del(src Source, key []byte) int

	// Set records that key now lives at position at, e.g. after the caller
	// moved an element during a swap-delete, or while rebuilding the index
	// from scratch. at must be a valid index into src; an out-of-range at
	// is a contract violation.
	Set(src Source, key []byte, at int)

	// Free releases any resources the Indexer owns.
	Free()
}

// assertf panics with a formatted message. Used for contract violations:
// programmer errors, not recoverable runtime conditions. Mirrors alloc's
// unexported helper of the same name.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
