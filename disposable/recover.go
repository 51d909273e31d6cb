package disposable

// Recovery is a non-local escape point layered on a Registry. It is itself
// a disposable: everything Secure'd after a Recovery is created gets
// disposed, in LIFO order, before the Recovery's own panic unwinds past
// Try's deferred recover — the same "dispose down to a mark" contract a
// setjmp/longjmp pairing would give, expressed with Go's own panic/recover
// instead of a hand-rolled jump buffer.
type Recovery struct {
	reg *Registry
	d   *Disposable
}

// NewRecovery installs a Recovery in reg, securing it as a Disposable whose
// mark is reg's length before insertion.
func NewRecovery(reg *Registry) *Recovery {
	r := &Recovery{reg: reg}
	r.d = New(func() {})
	reg.Secure(r.d)
	return r
}

// Mark reports the registry index this Recovery occupies.
func (r *Recovery) Mark() int {
	return r.d.mark
}

// escape carries a payload through Go's panic/recover machinery so Try can
// distinguish "this Recovery was the target of a Panic call" from an
// unrelated panic passing through.
type escape struct {
	owner   *Recovery
	payload any
}

// Try arms the recovery and runs fn. If fn (directly, or transitively via
// something it calls) invokes r.Panic, Try disposes the registry down to
// r's mark — releasing r itself and everything secured after it, in LIFO
// order — and returns (payload, true) instead of letting the panic escape
// further. Any other panic propagates unchanged.
func (r *Recovery) Try(fn func()) (recovered any, panicked bool) {
	defer func() {
		if v := recover(); v != nil {
			esc, ok := v.(escape)
			if !ok || esc.owner != r {
				panic(v)
			}
			recovered, panicked = esc.payload, true
		}
	}()
	fn()
	return nil, false
}

// Panic disposes the registry down to and including r's mark, then performs
// a non-local exit back to the enclosing Try call. It never returns.
func (r *Recovery) Panic(payload any) {
	r.reg.Dispose(r.d)
	panic(escape{owner: r, payload: payload})
}
