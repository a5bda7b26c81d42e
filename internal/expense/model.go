package expense

import "time"

// SplitStatus represents the status of a split
type SplitStatus string

const (
	SplitStatusPending   SplitStatus = "PENDING"
	SplitStatusPaid      SplitStatus = "PAID"
	SplitStatusConfirmed SplitStatus = "CONFIRMED"
	SplitStatusDisputed  SplitStatus = "DISPUTED"
)

// Expense represents an expense in the system
type Expense struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"group_id"`
	PayerID      string    `json:"payer_id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	CurrencyCode string    `json:"currency_code"`
	Category     *string   `json:"category,omitempty"`
	ExpenseDate  time.Time `json:"expense_date"`
	SplitType    string    `json:"split_type"` // equal, exact, itemized
	CreatedAt    time.Time `json:"created_at"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}

// Split represents an individual debt from an expense
type Split struct {
	ID            string      `json:"id"`
	ExpenseID     string      `json:"expense_id"`
	BorrowerID    string      `json:"borrower_id"`
	AmountOwed    float64     `json:"amount_owed"`
	Status        SplitStatus `json:"status"`
	DisputeReason *string     `json:"dispute_reason,omitempty"`
	SettlementID  *string     `json:"settlement_id,omitempty"` // Optional: locked to settlement
	UpdatedAt     time.Time   `json:"updated_at"`

	// Populated via JOIN
	BorrowerUsername string `json:"borrower_username,omitempty"`
}

// ExpenseWithSplits combines an expense with its calculated splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}
