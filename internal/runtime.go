package internal

import (
	"fmt"
	"os"
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// GetRuntime returns the calling goroutine's Runtime, creating one on first
// use. Keying by goroutine id (via goid) gives every goroutine its own
// current-scope/current-reaction slot and its own effect queue, so a
// process can run many independent reactive graphs concurrently with no
// locking inside a single Runtime — the same trick the teacher repo uses
// to get single-threaded, cooperative semantics per logical thread.
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// Runtime is the per-goroutine reactive engine: current tracking state,
// the pending effect queue, the batch depth counter, and the pluggable
// logger/deferred-error hook.
type Runtime struct {
	root *Scope

	currentScope    *Scope
	currentReaction *ReactiveNode
	cursor          int

	effectQueue []*ReactiveNode
	batchDepth  int

	logger      Logger
	deferError  func(error)
}

func NewRuntime() *Runtime {
	rt := &Runtime{
		root:       NewScope(),
		logger:     noopLogger{},
		deferError: defaultDeferError,
	}
	rt.root.rt = rt
	return rt
}

// CurrentScope returns the scope currently installed by runTracked/Scope.Run,
// or the runtime's root scope if nothing narrower is active.
func (rt *Runtime) CurrentScope() *Scope {
	if rt.currentScope != nil {
		return rt.currentScope
	}
	return rt.root
}

// CurrentReaction returns the reaction node currently being (re)run, or nil
// outside of any reaction body.
func (rt *Runtime) CurrentReaction() *ReactiveNode {
	return rt.currentReaction
}

// SetLogger installs a structured logger for this runtime.
func (rt *Runtime) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	rt.logger = l
}

// SetDeferErrorHook installs the function invoked when a reaction panics
// and no ancestor scope has an error listener.
func (rt *Runtime) SetDeferErrorHook(fn func(error)) {
	if fn == nil {
		fn = defaultDeferError
	}
	rt.deferError = fn
}

// OnCleanup registers fn against the current scope, as a convenience for
// callers that only have a Runtime handle.
func (rt *Runtime) OnCleanup(fn func()) {
	rt.CurrentScope().OnCleanup(fn)
}

// NewScope creates a scope as a child of parent (or of the current scope,
// if parent is nil).
func (rt *Runtime) NewScope(parent *Scope) *Scope {
	if parent == nil {
		parent = rt.CurrentScope()
	}
	child := NewScope()
	child.rt = rt
	parent.AddChild(child)
	rt.logger.Debugf("scope created, parent=%p child=%p", parent, child)
	return child
}

// NewRootScope creates a parentless scope, for top-level work or eager
// bridges that must be disposed explicitly.
func (rt *Runtime) NewRootScope() *Scope {
	root := NewScope()
	root.rt = rt
	rt.logger.Debugf("root scope created, scope=%p", root)
	return root
}

// runTracked executes body with scope and node installed as the current
// scope/reaction, reconciling node's dependency list against the pulls
// body performs (see ReactiveNode.ClearDepsFrom / Pull's prefix matching).
func (rt *Runtime) runTracked(scope *Scope, node *ReactiveNode, body func()) {
	prevScope, prevReaction, prevCursor := rt.currentScope, rt.currentReaction, rt.cursor
	rt.currentScope, rt.currentReaction, rt.cursor = scope, node, 0
	defer func() {
		if node != nil {
			node.ClearDepsFrom(rt.cursor)
		}
		rt.currentScope, rt.currentReaction, rt.cursor = prevScope, prevReaction, prevCursor
	}()

	scope.Run(body)
}

// Pull reads through n: if n is a reaction, it is brought up to date first
// (recomputed if dirty/maybe-dirty); if a reaction is currently running, n
// is recorded as one of its dependencies, reusing the existing link when
// the prefix of previously pulled dependencies still matches (the O(1)
// amortized path for stable dependency patterns) and otherwise truncating
// and relinking from the point of divergence.
func (rt *Runtime) Pull(n *ReactiveNode) {
	if rt.currentReaction == n {
		panic(ErrSelfDependency)
	}

	if n.IsReaction() {
		rt.sweep(n)
	}

	if rt.currentReaction == nil {
		return
	}

	if dep := rt.currentReaction.DepAt(rt.cursor); dep == n {
		rt.cursor++
		return
	}

	rt.currentReaction.ClearDepsFrom(rt.cursor)
	rt.currentReaction.Link(n)
	rt.cursor++
}

// Push marks n's subscribers dirty (or maybe-dirty) and, outside of a
// batch, drains the effect queue immediately.
func (rt *Runtime) Push(n *ReactiveNode) {
	rt.propagate(n, Dirty)

	if rt.batchDepth == 0 {
		rt.drainEffects()
	}
}

// propagate is the mark phase of the three-color algorithm: direct
// subscribers of n receive state, and everything beyond that first hop
// receives Check (the value of a signal is known to have changed, but
// whether an indirect observer actually needs to re-run is only known once
// any intervening memo has recomputed). Nodes already marked at least as
// strongly as state are left alone, which is what keeps diamond-shaped
// graphs linear instead of exponential. Every effect reached here, direct
// or behind any number of memos, is queued: sweep is what later decides
// whether it actually needs to rerun, not this mark phase.
func (rt *Runtime) propagate(n *ReactiveNode, state State) {
	for sub := range n.Subs() {
		if sub.disposed || sub.state >= state {
			continue
		}

		sub.state = state
		if sub.isEffect {
			rt.enqueueEffect(sub)
		}

		rt.propagate(sub, Check)
	}
}

// sweep brings n up to date without assuming it needs to re-run: a Check
// node walks its own dependencies (recursively sweeping any that are
// themselves reactions) and only reruns if one of them actually changed
// value, per the bool each sweep/rerun reports — never by reading a
// dependency's state after the fact, since a reaction's own state is
// always normalized back to Clean before sweep returns (see rerun). This
// is the bailout path: a memo that recomputes to an unchanged value
// reports no change, so dependents that only observed it stop here
// instead of rerunning.
func (rt *Runtime) sweep(n *ReactiveNode) bool {
	if n.disposed {
		n.state = Clean
		return false
	}

	switch n.state {
	case Clean:
		return false
	case Check:
		changed := false
		for dep := range n.Deps() {
			if dep.IsReaction() {
				if rt.sweep(dep) {
					changed = true
					break
				}
			} else if dep.state == Dirty {
				changed = true
				break
			}
		}
		if !changed {
			n.state = Clean
			return false
		}
	}

	return rt.rerun(n)
}

// rerun invokes n's callback, which leaves n.state in Dirty if a memo's
// value changed, or Clean if a memo recomputed to an unchanged value or n
// is an effect (see runEffect). That state is read here and then immediately reset
// to Clean: it is only ever a same-pass signal to this call's caller
// (reported via the returned bool), never a mark that should still be
// sitting on the node by the time some later, independent Pull finds it
// — leaving it dirty across passes would make the next sweep recompute
// the reaction again even though nothing fed it a new value.
func (rt *Runtime) rerun(n *ReactiveNode) bool {
	if n.fn == nil {
		n.state = Clean
		return false
	}
	n.fn()
	changed := n.state == Dirty
	n.state = Clean
	return changed
}

func (rt *Runtime) enqueueEffect(n *ReactiveNode) {
	if n.inQueue || n.disposed {
		return
	}
	n.inQueue = true
	rt.effectQueue = append(rt.effectQueue, n)
}

// drainEffects runs every queued effect to completion, including any that
// get enqueued by effects that run earlier in the same drain (e.g. an
// effect writing to another signal). An effect disposed before its turn
// (including by an earlier effect in this same drain) is skipped rather
// than re-run, which is what keeps disposal race-free under cooperative
// single-threaded scheduling.
func (rt *Runtime) drainEffects() {
	if len(rt.effectQueue) > 0 {
		rt.logger.Debugf("draining effect queue, depth=%d", len(rt.effectQueue))
	}
	for len(rt.effectQueue) > 0 {
		n := rt.effectQueue[0]
		rt.effectQueue = rt.effectQueue[1:]
		n.inQueue = false

		if n.disposed {
			continue
		}

		rt.runQueuedEffect(n)
	}
}

// runQueuedEffect sweeps a single queued reaction, forwarding to the
// deferred-error hook any panic that escapes every enclosing scope's error
// listeners, instead of crashing the goroutine draining the queue.
func (rt *Runtime) runQueuedEffect(n *ReactiveNode) {
	defer func() {
		if r := recover(); r != nil {
			err := toError(r)
			rt.logger.Errorf("flux: unhandled error from effect: %v", err)
			rt.deferError(err)
		}
	}()

	rt.sweep(n)
}

// Batch coalesces writes made during fn into a single settle pass: pushes
// still mark state eagerly, but the effect queue is only drained once
// batch depth returns to zero.
func (rt *Runtime) Batch(fn func()) {
	rt.batchDepth++
	defer func() {
		rt.batchDepth--
		if rt.batchDepth == 0 {
			rt.drainEffects()
		}
	}()

	fn()
}

// Untrack runs fn with dependency recording suspended: nested Pull calls
// still bring reactions up to date, they just aren't recorded against
// whatever reaction is currently running.
func (rt *Runtime) Untrack(fn func()) {
	prev := rt.currentReaction
	rt.currentReaction = nil
	defer func() { rt.currentReaction = prev }()

	fn()
}

// defaultDeferError is the out-of-the-box behavior for an error that no
// scope's OnError handled: log it on a spawned goroutine rather than crash
// the goroutine that was draining the effect queue. Callers wanting
// stricter behavior (e.g. crash the process, matching a JS unhandled-
// rejection default) install their own hook via WithDeferredErrorHandler.
func defaultDeferError(err error) {
	go func() {
		fmt.Fprintln(os.Stderr, "flux: deferred error:", err)
	}()
}
