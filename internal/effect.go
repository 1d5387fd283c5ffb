package internal

// Effect is a reaction run for its side effects rather than its value: it
// is queued eagerly whenever Push reaches it (see ReactiveNode.isEffect),
// and its callback may return a cleanup function, run before the next
// re-run and on disposal, exactly like the teacher's effect/cleanup
// contract.
type Effect struct {
	*ReactiveNode

	owner *Scope // the scope Effect was created in; parents each run's inner scope
	inner *Scope // disposed and recreated on every run

	fn      func() func()
	cleanup func()
}

func (r *Runtime) NewEffect(fn func() func()) *Effect {
	owner := r.CurrentScope()

	e := &Effect{
		owner: owner,
		fn:    fn,
	}
	e.ReactiveNode = NewReaction(func() { r.runEffect(e) })
	e.isEffect = true
	e.state = Dirty

	owner.OnCleanup(func() {
		if e.cleanup != nil {
			e.cleanup()
			e.cleanup = nil
		}
		if e.inner != nil {
			e.inner.Dispose()
		}
		e.ReactiveNode.Dispose()
	})

	r.sweep(e.ReactiveNode) // initial run, synchronous

	return e
}

func (r *Runtime) runEffect(e *Effect) {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	if e.inner != nil {
		e.inner.Dispose()
	}
	e.inner = r.NewScope(e.owner)

	r.runTracked(e.inner, e.ReactiveNode, func() {
		e.cleanup = e.fn()
	})

	// nothing observes an effect's "value", so it always resolves clean
	e.state = Clean
}
