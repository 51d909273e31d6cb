// Package index provides the pluggable keyed-lookup strategy container.Array
// swaps between: Linear, an O(n) scan that is the zero-configuration
// default, and Hash, an open-addressed table with tombstones that
// container.Array switches to on the Put that brings an array to 32
// elements.
//
// Every lookup-shaped method returns either the element's index or
// src.Len() to signal "not found" — the same sentinel convention in every
// case, with no separate null-array case: a Source is always a live view
// over container.Array's own storage, so there is nothing else to signal.
package index
