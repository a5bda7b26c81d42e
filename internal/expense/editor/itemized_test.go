package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvidal/divvy/internal/expense/editor"
	"github.com/dvidal/divvy/internal/expense/split"
)

func TestItemizedEditorSeedsOneBlankItem(t *testing.T) {
	ed := editor.NewItemizedEditor(50.00, []string{"a", "b"}, nil)

	items := ed.Items()
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].ID)
	assert.Empty(t, items[0].Description)
	assert.Empty(t, items[0].AmountText())
	assert.Equal(t, []string{"a", "b"}, items[0].AssignedTo())
	assert.False(t, ed.CanConfirm())
}

func TestItemizedEditorSeedsFromPriorConfig(t *testing.T) {
	prior := &split.Itemized{Items: []split.Item{
		{ID: "i1", Description: "starter", Amount: 30.00, AssignedTo: []string{"a", "b"}},
		{ID: "i2", Description: "dessert", Amount: 20.00, AssignedTo: []string{"b"}},
	}}
	ed := editor.NewItemizedEditor(50.00, []string{"a", "b"}, prior)

	items := ed.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "starter", items[0].Description)
	assert.Equal(t, "30.00", items[0].AmountText())
	assert.True(t, ed.CanConfirm())
}

func TestItemizedEditorLastItemCannotBeRemoved(t *testing.T) {
	ed := editor.NewItemizedEditor(50.00, []string{"a"}, nil)

	only := ed.Items()[0]
	ed.RemoveItem(only.ID)
	require.Len(t, ed.Items(), 1)

	added := ed.AddItem()
	require.Len(t, ed.Items(), 2)

	ed.RemoveItem(added.ID)
	require.Len(t, ed.Items(), 1)
	assert.Equal(t, only.ID, ed.Items()[0].ID)
}

func TestItemizedEditorToggleAssignee(t *testing.T) {
	ed := editor.NewItemizedEditor(50.00, []string{"a", "b", "c"}, nil)
	item := ed.Items()[0]

	ed.ToggleAssignee(item.ID, "b")
	assert.Equal(t, []string{"a", "c"}, item.AssignedTo())

	ed.ToggleAssignee(item.ID, "b")
	assert.Equal(t, []string{"a", "c", "b"}, item.AssignedTo())
}

func TestItemizedEditorConfirmGate(t *testing.T) {
	ed := editor.NewItemizedEditor(50.00, []string{"a", "b", "c"}, nil)
	first := ed.Items()[0]

	ed.SetDescription(first.ID, "mains")
	ed.SetAmount(first.ID, "30")
	ed.ToggleAssignee(first.ID, "c")

	second := ed.AddItem()
	ed.SetAmount(second.ID, "20")
	ed.ToggleAssignee(second.ID, "a")

	// Sums reconcile but the second item has no description yet.
	assert.True(t, ed.Reconcile().IsValid)
	assert.False(t, ed.CanConfirm())
	_, ok := ed.Confirm()
	assert.False(t, ok)

	ed.SetDescription(second.ID, "dessert")
	require.True(t, ed.CanConfirm())

	strategy, ok := ed.Confirm()
	require.True(t, ok)

	entries := split.Compute(50.00, []string{"a", "b", "c"}, strategy)
	assert.Equal(t, []split.Entry{
		{UserID: "a", AmountOwed: 15.00},
		{UserID: "b", AmountOwed: 25.00},
		{UserID: "c", AmountOwed: 10.00},
	}, entries)
}

func TestItemizedEditorUnreconciledBlocksConfirm(t *testing.T) {
	ed := editor.NewItemizedEditor(50.00, []string{"a", "b"}, nil)
	item := ed.Items()[0]

	ed.SetDescription(item.ID, "mains")
	ed.SetAmount(item.ID, "45")

	rec := ed.Reconcile()
	assert.False(t, rec.IsValid)
	assert.Equal(t, -5.00, rec.Difference)
	assert.False(t, ed.CanConfirm())
}

func TestItemizedEditorSanitizesAmounts(t *testing.T) {
	ed := editor.NewItemizedEditor(50.00, []string{"a"}, nil)
	item := ed.Items()[0]

	ed.SetAmount(item.ID, "49.999")
	assert.Equal(t, "49.99", item.AmountText())
	assert.Equal(t, 49.99, item.Amount())
}
