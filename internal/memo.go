package internal

// Memo is a read-only, lazily-recomputed reaction: its value is only
// brought up to date when something pulls it (directly, or transitively
// while another reaction is being swept), and recomputing to an unchanged
// value bails out the propagation that reached it.
type Memo struct {
	*ReactiveNode

	owner *Scope // the scope Memo was created in; parents each run's inner scope
	inner *Scope // disposed and recreated on every recompute

	equal func(a, b any) bool
	value any
	ready bool
}

func (r *Runtime) NewMemo(compute func() any, equal func(a, b any) bool) *Memo {
	if equal == nil {
		equal = defaultEqual
	}

	m := &Memo{
		owner: r.CurrentScope(),
		equal: equal,
	}
	m.ReactiveNode = NewReaction(func() { r.runMemo(m, compute) })
	m.state = Dirty

	m.owner.OnCleanup(func() {
		if m.inner != nil {
			m.inner.Dispose()
		}
		m.ReactiveNode.Dispose()
	})

	r.sweep(m.ReactiveNode)

	return m
}

func (r *Runtime) runMemo(m *Memo, compute func() any) {
	if m.inner != nil {
		m.inner.Dispose()
	}
	m.inner = r.NewScope(m.owner)

	var newValue any
	r.runTracked(m.inner, m.ReactiveNode, func() {
		newValue = compute()
	})

	if m.ready && m.equal(m.value, newValue) {
		m.state = Clean
		return
	}

	m.value = newValue
	m.ready = true
	// mark direct subscribers Dirty, so they recompute even when this memo
	// was brought up to date by a read outside their own sweep
	r.propagate(m.ReactiveNode, Dirty)
	m.state = Dirty
}

// Read returns the memo's current value, recomputing first if dirty or
// maybe-dirty, and recording a dependency if called from within a running
// reaction.
func (m *Memo) Read() any {
	r := GetRuntime()
	r.Pull(m.ReactiveNode)
	return m.value
}
