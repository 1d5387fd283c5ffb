package internal

// PromiseState is a lazy promise's one-shot settlement state: it starts
// Idle, and transitions exactly once, within a single production
// activation, to either Resolved or Rejected.
type PromiseState int8

const (
	Idle PromiseState = iota
	Resolved
	Rejected
)

// LazyPromise is a pull-activated, cancellable, one-shot asynchronous
// value. Its node is a reaction whose callback starts production — it is
// pulled (and so triggered) by every subscribing effect, but only the
// first pull of an activation actually invokes the producer; resolve/reject
// push the node so every subscribing effect re-runs and dispatches.
type LazyPromise struct {
	node *ReactiveNode

	owner    *Scope
	producer func(resolve func(any), reject func(error))

	producerScope   *Scope // recreated each time production (re)starts
	producing       bool
	state           PromiseState
	value           any
	err             error
	subscriberCount int
}

func (r *Runtime) NewLazyPromise(owner *Scope, producer func(resolve func(any), reject func(error))) *LazyPromise {
	lp := &LazyPromise{owner: owner, producer: producer}
	lp.node = NewReaction(func() { r.startProduction(lp) })
	lp.node.state = Dirty
	return lp
}

// NewNeverLazyPromise returns a lazy promise whose producer never resolves
// or rejects — the distinguished "never" value.
func (r *Runtime) NewNeverLazyPromise(owner *Scope) *LazyPromise {
	return r.NewLazyPromise(owner, func(func(any), func(error)) {})
}

func (r *Runtime) startProduction(lp *LazyPromise) {
	if lp.producing {
		lp.node.state = Clean
		return
	}
	lp.producing = true
	lp.producerScope = r.NewScope(lp.owner)

	resolve := func(v any) {
		if lp.state != Idle {
			panic(ErrDuplicateSettlement)
		}
		lp.state = Resolved
		lp.value = v
		r.Push(lp.node)
	}
	reject := func(e error) {
		if lp.state != Idle {
			panic(ErrDuplicateSettlement)
		}
		lp.state = Rejected
		lp.err = e
		r.Push(lp.node)
	}

	r.runTracked(lp.producerScope, nil, func() {
		lp.producer(resolve, reject)
	})

	lp.node.state = Clean
}

// State returns the promise's current state and its value/error, for
// callers that want to inspect settlement without subscribing (e.g. the
// Eager bridge).
func (lp *LazyPromise) State() (PromiseState, any, error) {
	return lp.state, lp.value, lp.err
}

// Subscribe registers onResolve/onReject against lp, creating an effect
// bound to the calling goroutine's current scope. Production starts (if it
// hasn't already) the first time this effect runs. An unhandled rejection
// (onReject == nil while lp rejects) panics into the subscribing effect's
// own scope, per the promise's unhandled-rejection contract.
func (r *Runtime) Subscribe(lp *LazyPromise, onResolve func(any), onReject func(error)) *Effect {
	owner := r.CurrentScope()
	lp.subscriberCount++

	e := r.NewEffect(func() func() {
		r.Pull(lp.node)

		switch lp.state {
		case Resolved:
			if onResolve != nil {
				onResolve(lp.value)
			}
		case Rejected:
			if onReject != nil {
				onReject(lp.err)
			} else {
				panic(lp.err)
			}
		}

		return nil
	})

	owner.OnCleanup(func() {
		lp.subscriberCount--
		if lp.subscriberCount == 0 {
			r.cancelProduction(lp)
		}
	})

	return e
}

// cancelProduction tears down the in-flight production (running the
// producer's own onDispose hooks, if any) and resets the promise to Idle
// so a future subscriber restarts production from scratch.
func (r *Runtime) cancelProduction(lp *LazyPromise) {
	if !lp.producing {
		return
	}

	if lp.producerScope != nil {
		lp.producerScope.Dispose()
		lp.producerScope = nil
	}

	lp.producing = false
	lp.state = Idle
	lp.value = nil
	lp.err = nil
	lp.node.state = Dirty
}
