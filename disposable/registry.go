package disposable

// noMark is the mark value of a Disposable that has never been secured, or
// that has been unsecured.
const noMark = -1

// Disposable is a resource with a cleanup function, registered in a
// Registry so it can be disposed deterministically and in LIFO order
// relative to whatever else was registered after it.
type Disposable struct {
	// Dispose releases the resource. It may itself Secure/Unsecure other
	// disposables, including shrinking the same Registry it is being
	// disposed from — Registry.Dispose tolerates that re-entrancy.
	Dispose func()

	mark int
}

// New returns a Disposable wrapping fn, not yet registered with any
// Registry. Call Secure to register it.
func New(fn func()) *Disposable {
	return &Disposable{Dispose: fn, mark: noMark}
}

// Registry is an ordered LIFO stack of disposables. A slot may be nil where
// an item was individually Unsecure'd without disposing the rest of the
// stack.
type Registry struct {
	stack []*Disposable
}

// Len reports the current registry length, including nil gaps.
func (r *Registry) Len() int {
	return len(r.stack)
}

// secured reports whether d's stored mark still refers back to d: a valid
// registry index whose slot points back to d itself.
func (r *Registry) secured(d *Disposable) bool {
	return d.mark >= 0 && d.mark < len(r.stack) && r.stack[d.mark] == d
}

// Secure registers d at the top of the registry if it is not already
// secured, recording the new index as d's mark. Securing an already-secured
// disposable is a no-op.
func (r *Registry) Secure(d *Disposable) {
	if r.secured(d) {
		return
	}
	d.mark = len(r.stack)
	r.stack = append(r.stack, d)
}

// Unsecure clears d's slot and invalidates its mark, transferring ownership
// of whatever d guards back to the caller. It is a no-op if d is not
// currently secured.
func (r *Registry) Unsecure(d *Disposable) {
	if !r.secured(d) {
		return
	}
	r.stack[d.mark] = nil
	d.mark = noMark
}

// Mark returns the length the registry would have if d were secured right
// now — i.e. the mark a not-yet-secured Disposable will receive on its next
// Secure call. Used to remember "everything registered from here on."
func (r *Registry) Mark() int {
	return len(r.stack)
}

// Dispose walks the registry from the top down to and including d's mark,
// invoking Dispose on every non-nil entry, then truncates the registry to
// that mark. Entries may re-entrantly shrink the registry (e.g. by disposing
// themselves or calling Unsecure); Dispose re-reads the current top on every
// iteration so that is safe.
//
// If d is not currently secured, Dispose is a no-op.
func (r *Registry) Dispose(d *Disposable) {
	if !r.secured(d) {
		return
	}
	mark := d.mark
	for len(r.stack) > mark {
		top := len(r.stack) - 1
		entry := r.stack[top]
		r.stack = r.stack[:top]
		if entry == nil {
			continue
		}
		if entry != d {
			entry.mark = noMark
		}
		entry.Dispose()
	}
	d.mark = noMark
}
