package flux

import "github.com/wireframe-dev/flux/internal"

// Scope is a node in the lifetime tree: it owns disposables (LIFO), an
// optional error handler, and context values, and disposing it tears down
// everything created within it — memos and effects register their
// graph-severing cleanup against the scope active when they were created,
// and a lazy promise's production runs in a child of its owner scope.
// Signals register nothing and are not torn down by any scope.
type Scope struct {
	scope *internal.Scope
}

// NewScope creates a scope as a child of the calling goroutine's current
// scope (its runtime's root scope, if nothing narrower is active).
func NewScope() *Scope {
	r := internal.GetRuntime()
	return &Scope{scope: r.NewScope(nil)}
}

// NewRootScope creates a scope with no parent, for top-level work or eager
// bridges. It must be disposed explicitly to reclaim its resources.
func NewRootScope() *Scope {
	r := internal.GetRuntime()
	return &Scope{scope: r.NewRootScope()}
}

// Run executes fn with s installed as the current scope. If fn panics, s is
// disposed before control reaches any error handler; the nearest ancestor
// scope with a registered OnError listener is invoked with the error, and
// if none exists (or the listener itself panics), the error continues
// propagating to the next enclosing Run on the call stack.
func (s *Scope) Run(fn func()) {
	s.scope.Run(fn)
}

// RunInScope executes f with scope installed as the current scope and
// returns its result, the generic counterpart of Scope.Run for callers
// that want a value back out.
func RunInScope[R any](scope *Scope, f func() R) R {
	var result R
	scope.Run(func() { result = f() })
	return result
}

// Dispose tears down this scope: children dispose first (most recently
// created first), then this scope's own disposables run in reverse
// registration order. Dispose is idempotent; disposing a running scope
// panics with ErrScopeRunning.
func (s *Scope) Dispose() {
	s.scope.Dispose()
}

// IsDisposed reports whether Dispose has already run on this scope.
func (s *Scope) IsDisposed() bool {
	return s.scope.IsDisposed()
}

// IsRunning reports whether this scope's Run is currently on the call
// stack.
func (s *Scope) IsRunning() bool {
	return s.scope.IsRunning()
}

// IsAncestor reports whether s is an ancestor of (or equal to) other.
func (s *Scope) IsAncestor(other *Scope) bool {
	return s.scope.IsAncestor(other.scope)
}

// IsDescendant reports whether s is a descendant of (or equal to) other.
func (s *Scope) IsDescendant(other *Scope) bool {
	return s.scope.IsDescendant(other.scope)
}

// OnDispose registers fn as a disposable on s, run when s is disposed.
func (s *Scope) OnDispose(fn func()) {
	s.scope.OnCleanup(fn)
}

// OnError registers fn as s's error handler.
func (s *Scope) OnError(fn func(error)) {
	s.scope.OnError(fn)
}

// currentScope returns the calling goroutine's current scope, wrapped.
func currentScope() *Scope {
	return &Scope{scope: internal.GetRuntime().CurrentScope()}
}

// OnDispose registers fn as a disposable on the current scope (the
// goroutine's root scope outside any Run). Panics with ErrScopeDisposed if
// the current scope has been disposed.
func OnDispose(fn func()) {
	currentScope().OnDispose(fn)
}

// OnCleanup is an alias for OnDispose, matching the teacher's naming for a
// single-shot cleanup registered against the current scope.
func OnCleanup(fn func()) {
	currentScope().OnDispose(fn)
}

// OnError registers fn as the current scope's error handler.
func OnError(fn func(error)) {
	currentScope().OnError(fn)
}
