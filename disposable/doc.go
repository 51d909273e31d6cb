// Package disposable provides a scoped-resource registry with deterministic,
// LIFO cleanup, and a Recovery type that layers a non-local escape on top of
// it using Go's native panic/recover instead of a hand-rolled jump buffer.
//
// A Registry is an explicit, caller-owned value rather than a hidden
// thread-local global: a goroutine that wants isolated disposal state simply
// constructs its own Registry and threads it through its own call graph.
package disposable
