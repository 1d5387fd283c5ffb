package flux

import "github.com/wireframe-dev/flux/internal"

// Context is a scope-inherited value: Value walks the current scope's
// ancestors for the nearest one that has called Set, falling back to the
// value the context was created with.
type Context[T any] struct {
	ctx *internal.Context
}

// NewContext creates a context whose default value is initial.
func NewContext[T any](initial T) *Context[T] {
	return &Context[T]{
		ctx: internal.GetRuntime().NewContext(initial),
	}
}

// Value returns the nearest enclosing scope's value for this context, or
// its default if no scope in the chain has set one.
func (c *Context[T]) Value() T {
	return as[T](c.ctx.Value())
}

// Set stores value for this context in the current scope.
func (c *Context[T]) Set(value T) {
	c.ctx.Set(value)
}
