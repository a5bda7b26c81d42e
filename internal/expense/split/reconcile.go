package split

import "github.com/dvidal/divvy/internal/money"

// Reconciliation is the result of checking an edited exact or itemized
// breakdown against the expense total.
type Reconciliation struct {
	IsValid    bool    `json:"is_valid"`
	Difference float64 `json:"difference"`
}

// Reconcile compares the sum of an in-progress breakdown with the expense
// total. Difference is positive when the breakdown exceeds the total and
// negative when it falls short. Reconcile never mutates anything and is
// cheap enough to run on every edit.
func Reconcile(target, currentSum float64) Reconciliation {
	return Reconciliation{
		IsValid:    money.EqualsAtCent(target, currentSum),
		Difference: money.Round2(currentSum - target),
	}
}
