package flux

import "sync"

// Promise is a read-only, eagerly-settling view of a LazyPromise: unlike
// LazyPromise, which only produces once subscribed, a Promise is started
// the moment Eager creates it and settles independently of whether
// anything ever reads it.
type Promise[V any] struct {
	mu       sync.Mutex
	state    PromiseState
	value    V
	err      error
	channels []chan struct{}
}

// Eager activates lp's production immediately, in a fresh root scope owned
// by the returned promise, and bridges its settlement (including any
// uncaught error escaping that scope) into a Promise. Dispose the returned
// promise's Scope to cancel production early.
func Eager[V any](lp *LazyPromise[V]) (*Promise[V], *Scope) {
	scope := NewRootScope()
	p := &Promise[V]{}

	scope.OnError(func(err error) {
		p.settleReject(err)
	})

	scope.Run(func() {
		lp.Subscribe(p.settleResolve, p.settleReject)
	})

	return p, scope
}

func (p *Promise[V]) settleResolve(v V) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Idle {
		return
	}
	p.state = Resolved
	p.value = v
	p.fanOut()
}

func (p *Promise[V]) settleReject(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Idle {
		return
	}
	p.state = Rejected
	p.err = err
	p.fanOut()
}

// fanOut must be called with p.mu held.
func (p *Promise[V]) fanOut() {
	for _, ch := range p.channels {
		close(ch)
	}
	p.channels = nil
}

// State reports the promise's current settlement.
func (p *Promise[V]) State() PromiseState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Result returns the settled value and error; both are zero while Idle.
func (p *Promise[V]) Result() (V, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.err
}

// ToChannel returns a channel closed once the promise settles, for
// blocking on a result with select/context cancellation.
func (p *Promise[V]) ToChannel() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan struct{})
	if p.state != Idle {
		close(ch)
		return ch
	}
	p.channels = append(p.channels, ch)
	return ch
}
