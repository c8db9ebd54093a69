package contract_test

import (
	"pinto/contract"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomized(t *testing.T) {
	t.Run("fills every selected field", func(t *testing.T) {
		p := contract.Randomized[*Point]().WithSeed(9).MustGet(t)

		assert.NotEmpty(t, p.Label)
		assert.NotEmpty(t, p.Tags)
		assert.Contains(t, Shape(0).Values(), p.Kind)
		require.NotNil(t, p.Scale)
	})

	t.Run("consecutive instances differ", func(t *testing.T) {
		r := contract.Randomized[*Point]()

		a := r.MustGet(t)
		b := r.MustGet(t)

		assert.NotSame(t, a, b)
		assert.NotEqual(t, a.X, b.X)
		assert.NotEqual(t, a.Label, b.Label)
	})

	t.Run("include restricts the filled fields", func(t *testing.T) {
		p := contract.Randomized[*Point]().IncludeFields("Label").MustGet(t)

		assert.NotEmpty(t, p.Label)
		assert.Zero(t, p.X)
		assert.Nil(t, p.Tags)
	})

	t.Run("enumeration fields take every constant", func(t *testing.T) {
		r := contract.Randomized[*Point]().WithSeed(3)
		seen := map[Shape]bool{}
		for range 200 {
			seen[r.MustGet(t).Kind] = true
		}

		assert.Len(t, seen, 3)
	})

	t.Run("same seed reproduces the same instances", func(t *testing.T) {
		a := contract.Randomized[*Point]().WithSeed(1234)
		b := contract.Randomized[*Point]().WithSeed(1234)

		for range 5 {
			assert.Equal(t, a.MustGet(t), b.MustGet(t))
		}
	})

	t.Run("unexported fields and supplier values", func(t *testing.T) {
		acc := contract.RandomizedFor(func() *Account { return &Account{owner: "kept"} }).
			WithComplexTypeSupplier(moneyFactory()).
			ExcludeFields("owner").
			MustGet(t)

		assert.Equal(t, "kept", acc.owner)
		assert.NotZero(t, acc.opened)
		assert.NotEmpty(t, acc.balance.Currency)
	})

	t.Run("supplier returning the same pointer", func(t *testing.T) {
		p := &Point{}

		_, err := contract.RandomizedFor(func() *Point { return p }).Get()

		assert.ErrorIs(t, err, contract.ErrConfiguration)
	})

	t.Run("unregistered field type", func(t *testing.T) {
		_, err := contract.Randomized[*Wire]().Get()

		assert.ErrorIs(t, err, contract.ErrMissingFactory)
		assert.Contains(t, err.Error(), "field ch")
	})
}
