package split_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvidal/divvy/internal/expense/split"
	"github.com/dvidal/divvy/internal/money"
)

func TestComputeGuards(t *testing.T) {
	participants := []string{"a", "b"}

	assert.Nil(t, split.Compute(0, participants, split.Equal{}))
	assert.Nil(t, split.Compute(-10, participants, split.Equal{}))
	assert.Nil(t, split.Compute(50, nil, split.Equal{}))
	assert.Nil(t, split.Compute(50, participants, nil))
}

func TestEqualSplit(t *testing.T) {
	for _, tt := range []struct {
		name         string
		total        float64
		participants []string
		share        float64
	}{
		{name: "divides evenly", total: 90.00, participants: []string{"a", "b", "c"}, share: 30.00},
		{name: "rounds repeating thirds", total: 100.00, participants: []string{"a", "b", "c"}, share: 33.33},
		{name: "single participant", total: 25.50, participants: []string{"a"}, share: 25.50},
		{name: "sub-cent total", total: 0.01, participants: []string{"a", "b"}, share: 0.01},
	} {
		t.Run(tt.name, func(t *testing.T) {
			entries := split.Compute(tt.total, tt.participants, split.Equal{})

			require.Len(t, entries, len(tt.participants))
			for i, entry := range entries {
				assert.Equal(t, tt.participants[i], entry.UserID)
				assert.Equal(t, tt.share, entry.AmountOwed)
			}
		})
	}
}

// The equal strategy rounds each share independently and does not
// redistribute the remainder, so the entry sum may drift from the total by
// up to half a cent per participant. 100.00 over three people is the
// canonical case: 3 x 33.33 = 99.99.
func TestEqualSplitAcceptedDrift(t *testing.T) {
	entries := split.Compute(100.00, []string{"a", "b", "c"}, split.Equal{})

	var sum float64
	for _, entry := range entries {
		sum += entry.AmountOwed
	}
	assert.Equal(t, 99.99, money.Round2(sum))
}

func TestEqualSplitDriftBound(t *testing.T) {
	totals := []float64{0.01, 0.10, 1.00, 7.77, 33.33, 99.99, 100.00, 123.45, 1000.01}

	for _, total := range totals {
		for n := 1; n <= 9; n++ {
			participants := make([]string, n)
			for i := range participants {
				participants[i] = fmt.Sprintf("u%d", i)
			}

			entries := split.Compute(total, participants, split.Equal{})
			require.Len(t, entries, n)

			var sum float64
			for _, entry := range entries {
				sum += entry.AmountOwed
			}
			drift := math.Abs(sum - total)
			assert.LessOrEqualf(t, drift, 0.005*float64(n)+1e-9,
				"total=%v participants=%d sum=%v", total, n, sum)
		}
	}
}

func TestExactSplit(t *testing.T) {
	participants := []string{"a", "b", "c"}

	t.Run("balanced config yields one entry per member", func(t *testing.T) {
		strategy := split.Exact{Amounts: map[string]float64{"a": 30.00, "b": 30.00, "c": 30.00}}

		rec := split.Reconcile(90.00, strategy.Sum())
		assert.True(t, rec.IsValid)

		entries := split.Compute(90.00, participants, strategy)
		assert.Equal(t, []split.Entry{
			{UserID: "a", AmountOwed: 30.00},
			{UserID: "b", AmountOwed: 30.00},
			{UserID: "c", AmountOwed: 30.00},
		}, entries)
	})

	t.Run("zero amount excludes the member", func(t *testing.T) {
		strategy := split.Exact{Amounts: map[string]float64{"a": 50.00, "b": 0, "c": 40.00}}

		entries := split.Compute(90.00, participants, strategy)
		assert.Equal(t, []split.Entry{
			{UserID: "a", AmountOwed: 50.00},
			{UserID: "c", AmountOwed: 40.00},
		}, entries)
	})

	t.Run("absent member defaults to zero and is excluded", func(t *testing.T) {
		strategy := split.Exact{Amounts: map[string]float64{"a": 90.00}}

		entries := split.Compute(90.00, participants, strategy)
		assert.Equal(t, []split.Entry{{UserID: "a", AmountOwed: 90.00}}, entries)
	})

	t.Run("negative amount is excluded", func(t *testing.T) {
		strategy := split.Exact{Amounts: map[string]float64{"a": 95.00, "b": -5.00}}

		entries := split.Compute(90.00, participants, strategy)
		assert.Equal(t, []split.Entry{{UserID: "a", AmountOwed: 95.00}}, entries)
	})
}

func TestItemizedSplit(t *testing.T) {
	participants := []string{"a", "b", "c"}

	t.Run("shares accumulate across items", func(t *testing.T) {
		strategy := split.Itemized{Items: []split.Item{
			{ID: "i1", Description: "starter", Amount: 30.00, AssignedTo: []string{"a", "b"}},
			{ID: "i2", Description: "dessert", Amount: 20.00, AssignedTo: []string{"b", "c"}},
		}}

		rec := split.Reconcile(50.00, strategy.Sum())
		assert.True(t, rec.IsValid)

		entries := split.Compute(50.00, participants, strategy)
		assert.Equal(t, []split.Entry{
			{UserID: "a", AmountOwed: 15.00},
			{UserID: "b", AmountOwed: 25.00},
			{UserID: "c", AmountOwed: 10.00},
		}, entries)
	})

	t.Run("zero-amount and unassigned items are skipped", func(t *testing.T) {
		strategy := split.Itemized{Items: []split.Item{
			{ID: "i1", Description: "comped", Amount: 0, AssignedTo: []string{"a"}},
			{ID: "i2", Description: "orphan", Amount: 10.00, AssignedTo: nil},
			{ID: "i3", Description: "shared", Amount: 30.00, AssignedTo: []string{"a", "b", "c"}},
		}}

		entries := split.Compute(40.00, participants, strategy)
		assert.Equal(t, []split.Entry{
			{UserID: "a", AmountOwed: 10.00},
			{UserID: "b", AmountOwed: 10.00},
			{UserID: "c", AmountOwed: 10.00},
		}, entries)
	})

	t.Run("rounds after accumulation", func(t *testing.T) {
		// Each item is 10.00 over three people: 3.333... per head. The
		// per-member share accumulates unrounded and is rounded once, so
		// two items yield 6.67 each, not 2 x 3.33 = 6.66.
		strategy := split.Itemized{Items: []split.Item{
			{ID: "i1", Description: "round one", Amount: 10.00, AssignedTo: participants},
			{ID: "i2", Description: "round two", Amount: 10.00, AssignedTo: participants},
		}}

		entries := split.Compute(20.00, participants, strategy)
		assert.Equal(t, []split.Entry{
			{UserID: "a", AmountOwed: 6.67},
			{UserID: "b", AmountOwed: 6.67},
			{UserID: "c", AmountOwed: 6.67},
		}, entries)
	})

	t.Run("entry sum reconciles with the item total", func(t *testing.T) {
		strategy := split.Itemized{Items: []split.Item{
			{ID: "i1", Description: "mains", Amount: 43.70, AssignedTo: []string{"a", "b"}},
			{ID: "i2", Description: "drinks", Amount: 18.30, AssignedTo: []string{"b", "c"}},
			{ID: "i3", Description: "tip", Amount: 9.00, AssignedTo: participants},
		}}

		entries := split.Compute(71.00, participants, strategy)

		var sum float64
		for _, entry := range entries {
			sum += entry.AmountOwed
		}
		assert.True(t, money.EqualsAtCent(money.Round2(strategy.Sum()), sum))
	})

	t.Run("no items yields no entries", func(t *testing.T) {
		entries := split.Compute(50.00, participants, split.Itemized{})
		assert.Empty(t, entries)
	})
}

func TestComputeIsIdempotent(t *testing.T) {
	participants := []string{"a", "b", "c"}
	strategies := []split.Strategy{
		split.Equal{},
		split.Exact{Amounts: map[string]float64{"a": 20.00, "b": 30.00, "c": 50.00}},
		split.Itemized{Items: []split.Item{
			{ID: "i1", Description: "x", Amount: 60.00, AssignedTo: []string{"a", "b"}},
			{ID: "i2", Description: "y", Amount: 40.00, AssignedTo: []string{"c"}},
		}},
	}

	for _, strategy := range strategies {
		t.Run(string(strategy.Type()), func(t *testing.T) {
			first := split.Compute(100.00, participants, strategy)
			second := split.Compute(100.00, participants, strategy)
			assert.Equal(t, first, second)
		})
	}
}
