package editor

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dvidal/divvy/internal/expense/split"
)

// ItemDraft is one row of the itemized editor: a described amount, kept as
// sanitized text while editing, and the ordered set of members it is
// assigned to.
type ItemDraft struct {
	ID          string
	Description string

	amountText string
	assignedTo []string
}

// Amount is the numeric value of the draft's amount text.
func (d *ItemDraft) Amount() float64 {
	return ParseAmount(d.amountText)
}

// AmountText returns the text currently shown in the amount field.
func (d *ItemDraft) AmountText() string {
	return d.amountText
}

// AssignedTo returns a copy of the member IDs the item is assigned to.
func (d *ItemDraft) AssignedTo() []string {
	return append([]string(nil), d.assignedTo...)
}

// ItemizedEditor manages the ordered working item list while a user edits
// an itemized split.
type ItemizedEditor struct {
	total     float64
	memberIDs []string
	items     []*ItemDraft
}

// NewItemizedEditor seeds the item list from a prior itemized config when
// re-opening an edit, or with a single blank item assigned to every
// participant.
func NewItemizedEditor(total float64, memberIDs []string, prior *split.Itemized) *ItemizedEditor {
	ed := &ItemizedEditor{
		total:     total,
		memberIDs: append([]string(nil), memberIDs...),
	}

	if prior != nil && len(prior.Items) > 0 {
		for _, item := range prior.Items {
			ed.items = append(ed.items, &ItemDraft{
				ID:          item.ID,
				Description: item.Description,
				amountText:  formatAmount(item.Amount),
				assignedTo:  append([]string(nil), item.AssignedTo...),
			})
		}
		return ed
	}

	ed.items = []*ItemDraft{ed.newDraft()}
	return ed
}

func (ed *ItemizedEditor) newDraft() *ItemDraft {
	return &ItemDraft{
		ID:         uuid.NewString(),
		assignedTo: append([]string(nil), ed.memberIDs...),
	}
}

// Items returns the working drafts in order.
func (ed *ItemizedEditor) Items() []*ItemDraft {
	return ed.items
}

// AddItem appends a blank item assigned to all participants.
func (ed *ItemizedEditor) AddItem() *ItemDraft {
	draft := ed.newDraft()
	ed.items = append(ed.items, draft)
	return draft
}

// RemoveItem deletes an item by ID. At least one item always remains, so
// removing the last one is a no-op.
func (ed *ItemizedEditor) RemoveItem(id string) {
	if len(ed.items) <= 1 {
		return
	}
	for i, item := range ed.items {
		if item.ID == id {
			ed.items = append(ed.items[:i], ed.items[i+1:]...)
			return
		}
	}
}

// SetDescription updates an item's description.
func (ed *ItemizedEditor) SetDescription(id, description string) {
	if item := ed.find(id); item != nil {
		item.Description = description
	}
}

// SetAmount stores an item's amount text after sanitization.
func (ed *ItemizedEditor) SetAmount(id, raw string) {
	if item := ed.find(id); item != nil {
		item.amountText = SanitizeAmount(raw)
	}
}

// ToggleAssignee adds the member to the item's assignee set, or removes
// them when already present.
func (ed *ItemizedEditor) ToggleAssignee(itemID, memberID string) {
	item := ed.find(itemID)
	if item == nil {
		return
	}
	for i, id := range item.assignedTo {
		if id == memberID {
			item.assignedTo = append(item.assignedTo[:i], item.assignedTo[i+1:]...)
			return
		}
	}
	item.assignedTo = append(item.assignedTo, memberID)
}

func (ed *ItemizedEditor) find(id string) *ItemDraft {
	for _, item := range ed.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Sum is the numeric total across all items.
func (ed *ItemizedEditor) Sum() float64 {
	var sum float64
	for _, item := range ed.items {
		sum += item.Amount()
	}
	return sum
}

// Reconcile reports whether the item total matches the expense total.
func (ed *ItemizedEditor) Reconcile() split.Reconciliation {
	return split.Reconcile(ed.total, ed.Sum())
}

// CanConfirm reports whether the breakdown may be submitted: the item
// total must reconcile, and every item needs a description, a positive
// amount and at least one assignee.
func (ed *ItemizedEditor) CanConfirm() bool {
	if !ed.Reconcile().IsValid {
		return false
	}
	for _, item := range ed.items {
		if strings.TrimSpace(item.Description) == "" {
			return false
		}
		if item.Amount() <= 0 || len(item.assignedTo) == 0 {
			return false
		}
	}
	return true
}

// Confirm converts the working items into an Itemized strategy. The
// engine re-derives per-member totals from the items; the editor never
// precomputes them. Returns false while the validity gate fails.
func (ed *ItemizedEditor) Confirm() (split.Itemized, bool) {
	if !ed.CanConfirm() {
		return split.Itemized{}, false
	}

	items := make([]split.Item, len(ed.items))
	for i, draft := range ed.items {
		items[i] = split.Item{
			ID:          draft.ID,
			Description: draft.Description,
			Amount:      draft.Amount(),
			AssignedTo:  append([]string(nil), draft.assignedTo...),
		}
	}
	return split.Itemized{Items: items}, true
}
