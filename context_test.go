package flux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext(t *testing.T) {
	t.Run("store value", func(t *testing.T) {
		ctx := NewContext(0)
		assert.Equal(t, 0, ctx.Value())

		// outside any explicit scope, Set/Value both resolve against the
		// calling goroutine's root scope, so the value sticks.
		ctx.Set(42)
		assert.Equal(t, 42, ctx.Value())
	})

	t.Run("inherit value from parent scope", func(t *testing.T) {
		ctx := NewContext("default")

		parent := NewScope()
		parent.Run(func() {
			ctx.Set("parent value")

			NewScope().Run(func() {
				assert.Equal(t, "parent value", ctx.Value())
			})
		})

		assert.Equal(t, "default", ctx.Value())
	})
}
