package flux

import "github.com/wireframe-dev/flux/internal"

// Sentinel errors usable with errors.Is, covering the disposition table in
// the error-handling design: operating on a disposed or already-running
// scope, a reaction observing its own output, and a lazy promise settled
// twice within one activation. ErrNoActiveScope is never raised: hooks
// registered outside any scope go to the goroutine's root scope.
var (
	ErrScopeDisposed       = internal.ErrScopeDisposed
	ErrScopeRunning        = internal.ErrScopeRunning
	ErrNoActiveScope       = internal.ErrNoActiveScope
	ErrSelfDependency      = internal.ErrSelfDependency
	ErrDuplicateSettlement = internal.ErrDuplicateSettlement
)
