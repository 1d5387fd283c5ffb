package internal

// Context is a scope-inherited value cell: Value looks up the nearest
// enclosing scope (walking ancestors) that has ever called Set with this
// Context's key, falling back to the value it was created with.
type Context struct {
	key     *int // pointer identity is the map key; value is irrelevant
	initial any
}

func (r *Runtime) NewContext(initial any) *Context {
	return &Context{
		key:     new(int),
		initial: initial,
	}
}

// Value returns the nearest enclosing scope's value for this context, or
// the context's initial value if no scope in the chain has set one.
func (c *Context) Value() any {
	r := GetRuntime()
	if v, ok := r.CurrentScope().ContextValue(c.key); ok {
		return v
	}
	return c.initial
}

// Set stores value for this context in the current scope.
func (c *Context) Set(value any) {
	r := GetRuntime()
	r.CurrentScope().SetContextValue(c.key, value)
}
