package expense

import (
	"time"

	"github.com/dvidal/divvy/internal/expense/split"
)

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	GroupID        string       `json:"group_id" validate:"required"`
	Description    string       `json:"description" validate:"required,min=1,max=255"`
	Amount         float64      `json:"amount" validate:"required,gt=0"`
	CurrencyCode   string       `json:"currency_code" validate:"required,len=3"`
	Category       *string      `json:"category,omitempty"`
	ExpenseDate    time.Time    `json:"expense_date"`
	ParticipantIDs []string     `json:"participant_ids" validate:"required,min=1"`
	Split          split.Config `json:"split"`
}

// UpdateExpenseRequest represents the request to update an expense.
// When any of amount, participants or split config changes, all three are
// required together and every split row is recomputed from scratch.
type UpdateExpenseRequest struct {
	Description    *string       `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Category       *string       `json:"category,omitempty"`
	ExpenseDate    *time.Time    `json:"expense_date,omitempty"`
	Amount         *float64      `json:"amount,omitempty" validate:"omitempty,gt=0"`
	ParticipantIDs []string      `json:"participant_ids,omitempty"`
	Split          *split.Config `json:"split,omitempty"`
}

// DisputeSplitRequest represents the request to dispute a split
type DisputeSplitRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID            string           `json:"id"`
	GroupID       string           `json:"group_id"`
	PayerID       string           `json:"payer_id"`
	PayerUsername string           `json:"payer_username,omitempty"`
	Description   string           `json:"description"`
	Amount        float64          `json:"amount"`
	CurrencyCode  string           `json:"currency_code"`
	Category      *string          `json:"category,omitempty"`
	ExpenseDate   string           `json:"expense_date"`
	SplitType     string           `json:"split_type"`
	CreatedAt     string           `json:"created_at"`
	Splits        []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID               string      `json:"id"`
	ExpenseID        string      `json:"expense_id"`
	BorrowerID       string      `json:"borrower_id"`
	BorrowerUsername string      `json:"borrower_username,omitempty"`
	AmountOwed       float64     `json:"amount_owed"`
	Status           SplitStatus `json:"status"`
	DisputeReason    *string     `json:"dispute_reason,omitempty"`
	SettlementID     *string     `json:"settlement_id,omitempty"`
	UpdatedAt        string      `json:"updated_at"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		GroupID:       e.GroupID,
		PayerID:       e.PayerID,
		PayerUsername: e.PayerUsername,
		Description:   e.Description,
		Amount:        e.Amount,
		CurrencyCode:  e.CurrencyCode,
		Category:      e.Category,
		ExpenseDate:   e.ExpenseDate.Format("2006-01-02"),
		SplitType:     e.SplitType,
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:               s.ID,
		ExpenseID:        s.ExpenseID,
		BorrowerID:       s.BorrowerID,
		BorrowerUsername: s.BorrowerUsername,
		AmountOwed:       s.AmountOwed,
		Status:           s.Status,
		DisputeReason:    s.DisputeReason,
		SettlementID:     s.SettlementID,
		UpdatedAt:        s.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
