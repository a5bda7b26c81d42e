package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvidal/divvy/internal/expense/split"
)

func TestParseConfig(t *testing.T) {
	t.Run("equal", func(t *testing.T) {
		strategy, err := split.ParseConfig(split.Config{Type: split.SplitTypeEqual})
		require.NoError(t, err)
		assert.Equal(t, split.SplitTypeEqual, strategy.Type())
	})

	t.Run("exact", func(t *testing.T) {
		strategy, err := split.ParseConfig(split.Config{
			Type:        split.SplitTypeExact,
			ExactConfig: &split.ExactConfig{Amounts: map[string]float64{"a": 10.00}},
		})
		require.NoError(t, err)

		exact, ok := strategy.(split.Exact)
		require.True(t, ok)
		assert.Equal(t, 10.00, exact.Amounts["a"])
	})

	t.Run("itemized", func(t *testing.T) {
		strategy, err := split.ParseConfig(split.Config{
			Type: split.SplitTypeItemized,
			ItemizedConfig: &split.ItemizedConfig{
				Items: []split.Item{{ID: "i1", Description: "x", Amount: 10.00, AssignedTo: []string{"a"}}},
			},
		})
		require.NoError(t, err)

		itemized, ok := strategy.(split.Itemized)
		require.True(t, ok)
		assert.Len(t, itemized.Items, 1)
	})

	t.Run("exact without payload is rejected", func(t *testing.T) {
		_, err := split.ParseConfig(split.Config{Type: split.SplitTypeExact})
		assert.ErrorIs(t, err, split.ErrMissingConfig)
	})

	t.Run("itemized without payload is rejected", func(t *testing.T) {
		_, err := split.ParseConfig(split.Config{Type: split.SplitTypeItemized})
		assert.ErrorIs(t, err, split.ErrMissingConfig)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := split.ParseConfig(split.Config{Type: "percentage"})
		assert.ErrorIs(t, err, split.ErrUnknownSplitType)
	})
}
