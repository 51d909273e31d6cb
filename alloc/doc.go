// Package alloc provides the allocator family that everything else in
// corert is built on: a uniform Allocator contract plus four concrete
// implementations (a bump allocator over a caller-owned buffer, a growing
// arena, a fixed-size-slot pool, and a delegating trace wrapper).
//
// Arena, Pool, and Trace hold a parent Allocator and compose by
// containment; Temp works over a caller-supplied buffer instead. There is no shared header struct punned across allocator
// types; a Go interface value already carries everything a caller needs.
package alloc
