// Package intern provides Map, a hash-of-bytes keyed table of
// arena-allocated immutable byte strings with a linear collision chain,
// built on top of container.Array and alloc.Arena.
package intern
