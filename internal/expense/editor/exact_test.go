package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvidal/divvy/internal/expense/editor"
	"github.com/dvidal/divvy/internal/expense/split"
)

func TestExactEditorSeedsEvenShares(t *testing.T) {
	ed := editor.NewExactEditor(90.00, []string{"a", "b", "c"}, nil)

	assert.Equal(t, "30.00", ed.Amount("a"))
	assert.Equal(t, "30.00", ed.Amount("b"))
	assert.Equal(t, "30.00", ed.Amount("c"))
	assert.True(t, ed.CanConfirm())
}

// An indivisible total seeds shares that deliberately do not reconcile;
// the user is nudged toward the one edit that balances the breakdown.
func TestExactEditorSeedMayNotReconcile(t *testing.T) {
	ed := editor.NewExactEditor(100.00, []string{"a", "b", "c"}, nil)

	assert.Equal(t, "33.33", ed.Amount("a"))

	rec := ed.Reconcile()
	assert.False(t, rec.IsValid)
	assert.Equal(t, -0.01, rec.Difference)
	assert.False(t, ed.CanConfirm())

	_, ok := ed.Confirm()
	assert.False(t, ok)

	// One cent added to any member balances it.
	ed.SetAmount("a", "33.34")
	require.True(t, ed.CanConfirm())

	strategy, ok := ed.Confirm()
	require.True(t, ok)
	assert.Equal(t, 33.34, strategy.Amounts["a"])
	assert.Equal(t, 33.33, strategy.Amounts["b"])
}

func TestExactEditorSeedsFromPriorConfig(t *testing.T) {
	prior := &split.Exact{Amounts: map[string]float64{"a": 60.00, "b": 30.00}}
	ed := editor.NewExactEditor(90.00, []string{"a", "b"}, prior)

	assert.Equal(t, "60.00", ed.Amount("a"))
	assert.Equal(t, "30.00", ed.Amount("b"))
	assert.True(t, ed.CanConfirm())
}

func TestExactEditorSanitizesInput(t *testing.T) {
	ed := editor.NewExactEditor(50.00, []string{"a", "b"}, nil)

	ed.SetAmount("a", "$30.509")
	assert.Equal(t, "30.50", ed.Amount("a"))

	ed.SetAmount("b", "junk")
	assert.Equal(t, "", ed.Amount("b"))
	assert.Equal(t, 30.50, ed.Sum())
}

func TestExactEditorZeroMemberExcludedFromSplit(t *testing.T) {
	ed := editor.NewExactEditor(90.00, []string{"a", "b", "c"}, nil)
	ed.SetAmount("a", "45")
	ed.SetAmount("b", "45")
	ed.SetAmount("c", "0")

	require.True(t, ed.CanConfirm())
	strategy, ok := ed.Confirm()
	require.True(t, ok)

	entries := split.Compute(90.00, []string{"a", "b", "c"}, strategy)
	assert.Equal(t, []split.Entry{
		{UserID: "a", AmountOwed: 45.00},
		{UserID: "b", AmountOwed: 45.00},
	}, entries)
}
