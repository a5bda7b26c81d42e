package split

import "github.com/dvidal/divvy/internal/money"

// Equal divides the total evenly across all participants.
//
// Each share is rounded to the cent independently, so the shares can add up
// to slightly less or more than the total (at most half a cent per
// participant, e.g. 100.00 over three people yields 3 x 33.33 = 99.99).
// The remainder is not redistributed; the equal path never goes through
// reconciliation.
type Equal struct{}

// Type returns the wire identifier for this strategy.
func (Equal) Type() SplitType { return SplitTypeEqual }

func (Equal) compute(total float64, participantIDs []string) []Entry {
	share := money.Round2(total / float64(len(participantIDs)))

	entries := make([]Entry, len(participantIDs))
	for i, id := range participantIDs {
		entries[i] = Entry{UserID: id, AmountOwed: share}
	}
	return entries
}
