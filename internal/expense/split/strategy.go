package split

// SplitType identifies a split strategy on the wire.
type SplitType string

const (
	SplitTypeEqual    SplitType = "equal"
	SplitTypeExact    SplitType = "exact"
	SplitTypeItemized SplitType = "itemized"
)

// Entry is the final (member, amount owed) pair produced for persistence.
// An entry's AmountOwed is always positive; members who owe nothing are
// never represented downstream.
type Entry struct {
	UserID     string  `json:"user_id"`
	AmountOwed float64 `json:"amount_owed"`
}

// Strategy is the closed set of split strategies: Equal, Exact and
// Itemized. The unexported method seals the set, so a value of one variant
// can never carry payload belonging to another.
type Strategy interface {
	// Type returns the wire identifier for this strategy.
	Type() SplitType

	compute(total float64, participantIDs []string) []Entry
}

// Compute derives the per-member breakdown for an expense total.
//
// A non-positive total or an empty participant set yields no entries; the
// caller is expected to block submission in that state rather than rely on
// an error here. Compute is a pure function: identical inputs always yield
// value-equal output, and nothing persists between calls.
func Compute(total float64, participantIDs []string, strategy Strategy) []Entry {
	if total <= 0 || len(participantIDs) == 0 || strategy == nil {
		return nil
	}
	return strategy.compute(total, participantIDs)
}
