package editor

import (
	"github.com/dvidal/divvy/internal/expense/split"
	"github.com/dvidal/divvy/internal/money"
)

// ExactEditor manages the working per-member amount texts while a user
// edits an exact split.
type ExactEditor struct {
	total     float64
	memberIDs []string
	amounts   map[string]string
}

// NewExactEditor seeds the working amounts, either from a prior exact
// config when re-opening an edit or from an even share of the total.
//
// The even seed is rounded per member independently, so it may not
// reconcile when the total does not divide evenly. That is intended: the
// user sees the discrepancy immediately and makes the one edit needed to
// balance at the cent.
func NewExactEditor(total float64, memberIDs []string, prior *split.Exact) *ExactEditor {
	ed := &ExactEditor{
		total:     total,
		memberIDs: append([]string(nil), memberIDs...),
		amounts:   make(map[string]string, len(memberIDs)),
	}

	if prior != nil {
		for id, amount := range prior.Amounts {
			ed.amounts[id] = formatAmount(amount)
		}
		return ed
	}

	if len(memberIDs) > 0 {
		share := money.Round2(total / float64(len(memberIDs)))
		for _, id := range memberIDs {
			ed.amounts[id] = formatAmount(share)
		}
	}
	return ed
}

// SetAmount stores a member's amount text after sanitization.
func (ed *ExactEditor) SetAmount(memberID, raw string) {
	ed.amounts[memberID] = SanitizeAmount(raw)
}

// Amount returns the current text for a member, empty when unset.
func (ed *ExactEditor) Amount(memberID string) string {
	return ed.amounts[memberID]
}

// Sum is the numeric total of all entered amounts.
func (ed *ExactEditor) Sum() float64 {
	var sum float64
	for _, text := range ed.amounts {
		sum += ParseAmount(text)
	}
	return sum
}

// Reconcile reports whether the entered amounts match the expense total
// and by how much they miss it. It is recomputed on every edit.
func (ed *ExactEditor) Reconcile() split.Reconciliation {
	return split.Reconcile(ed.total, ed.Sum())
}

// CanConfirm reports whether the breakdown may be submitted.
func (ed *ExactEditor) CanConfirm() bool {
	return ed.Reconcile().IsValid
}

// Confirm converts the working amounts into an Exact strategy. It returns
// false while the amounts do not reconcile with the total; submission must
// stay blocked in that state.
func (ed *ExactEditor) Confirm() (split.Exact, bool) {
	if !ed.CanConfirm() {
		return split.Exact{}, false
	}

	amounts := make(map[string]float64, len(ed.amounts))
	for id, text := range ed.amounts {
		amounts[id] = ParseAmount(text)
	}
	return split.Exact{Amounts: amounts}, true
}
