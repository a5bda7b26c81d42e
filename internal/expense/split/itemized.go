package split

import "github.com/dvidal/divvy/internal/money"

// Item is a named sub-amount of an expense assignable to a subset of
// participants.
type Item struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	AssignedTo  []string `json:"assigned_to"`
}

// Itemized splits each item's amount evenly among the members assigned to
// it. A member can appear on several items; their shares accumulate.
type Itemized struct {
	Items []Item
}

// Type returns the wire identifier for this strategy.
func (Itemized) Type() SplitType { return SplitTypeItemized }

// Sum is the total across all items, for reconciliation against the
// expense total.
func (it Itemized) Sum() float64 {
	var sum float64
	for _, item := range it.Items {
		sum += item.Amount
	}
	return sum
}

// compute accumulates each member's share across items, then rounds once
// at the end. Items with no assignees or a non-positive amount contribute
// nothing. Output follows first-seen member order across the item list,
// which keeps the result stable for a given input.
func (it Itemized) compute(total float64, participantIDs []string) []Entry {
	totals := make(map[string]float64)
	var order []string

	for _, item := range it.Items {
		if item.Amount <= 0 || len(item.AssignedTo) == 0 {
			continue
		}
		perMember := item.Amount / float64(len(item.AssignedTo))
		for _, id := range item.AssignedTo {
			if _, seen := totals[id]; !seen {
				order = append(order, id)
			}
			totals[id] += perMember
		}
	}

	entries := make([]Entry, 0, len(order))
	for _, id := range order {
		owed := money.Round2(totals[id])
		if owed <= 0 {
			continue
		}
		entries = append(entries, Entry{UserID: id, AmountOwed: owed})
	}
	return entries
}
