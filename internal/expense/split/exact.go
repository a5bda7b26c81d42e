package split

import "github.com/dvidal/divvy/internal/money"

// Exact assigns an explicit amount to each member.
type Exact struct {
	Amounts map[string]float64
}

// Type returns the wire identifier for this strategy.
func (Exact) Type() SplitType { return SplitTypeExact }

// Sum is the total of all configured amounts, for reconciliation against
// the expense total.
func (e Exact) Sum() float64 {
	var sum float64
	for _, amount := range e.Amounts {
		sum += amount
	}
	return sum
}

// compute looks up each participant's configured amount, treating an absent
// entry as zero. Members whose amount is zero or negative owe nothing and
// are dropped from the result. Output follows participant order.
func (e Exact) compute(total float64, participantIDs []string) []Entry {
	entries := make([]Entry, 0, len(participantIDs))
	for _, id := range participantIDs {
		owed := money.Round2(e.Amounts[id])
		if owed <= 0 {
			continue
		}
		entries = append(entries, Entry{UserID: id, AmountOwed: owed})
	}
	return entries
}
