package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("thing must be created via NewThing")

	t.Run("constructed guard passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		require.NoError(t, g.Validate(errNotConstructed))
	})

	t.Run("zero value guard fails with supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		err := g.Validate(errNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero value guard falls back to default error", func(t *testing.T) {
		var g guard.ConstructorGuard
		err := g.Validate(nil)
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}
