package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/dvidal/divvy/internal/expense/split"
)

// Common errors
var (
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrSplitNotFound       = errors.New("split not found")
	ErrSplitLocked         = errors.New("split is locked to a settlement")
	ErrNotBorrower         = errors.New("only the borrower can mark as paid")
	ErrNotPayer            = errors.New("only the payer can perform this action")
	ErrInvalidStatusChange = errors.New("invalid status change")
	ErrCannotDeleteExpense = errors.New("cannot delete expense with paid/confirmed splits")
	ErrCannotEditExpense   = errors.New("cannot edit splits once payments have started")
	ErrNothingToSplit      = errors.New("expense produced no splits")
	ErrSplitMismatch       = errors.New("split breakdown does not match expense total")
)

// Service handles expense business logic
type Service struct {
	repo *Repository
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// checkReconciled gates exact and itemized configs on matching the expense
// total to the cent. Equal splits skip the gate: each share is rounded
// independently and the sub-cent drift is accepted, not corrected.
func checkReconciled(total float64, strategy split.Strategy) error {
	var sum float64
	switch s := strategy.(type) {
	case split.Exact:
		sum = s.Sum()
	case split.Itemized:
		sum = s.Sum()
	default:
		return nil
	}

	if rec := split.Reconcile(total, sum); !rec.IsValid {
		return fmt.Errorf("%w: off by %+.2f", ErrSplitMismatch, rec.Difference)
	}
	return nil
}

// CreateExpense creates a new expense, derives its splits with the chosen
// strategy and persists one split row per entry.
func (s *Service) CreateExpense(ctx context.Context, payerID string, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	strategy, err := split.ParseConfig(req.Split)
	if err != nil {
		return nil, err
	}

	if err := checkReconciled(req.Amount, strategy); err != nil {
		return nil, err
	}

	entries := split.Compute(req.Amount, req.ParticipantIDs, strategy)
	if len(entries) == 0 {
		return nil, ErrNothingToSplit
	}

	expense, err := s.repo.CreateExpense(ctx, payerID, req)
	if err != nil {
		return nil, err
	}

	splits := make([]*Split, len(entries))
	for i, entry := range entries {
		row, err := s.repo.CreateSplit(ctx, expense.ID, entry.UserID, entry.AmountOwed)
		if err != nil {
			// TODO: Should rollback expense creation in a transaction
			return nil, err
		}
		splits[i] = row
	}

	return &ExpenseWithSplits{
		Expense: expense,
		Splits:  splits,
	}, nil
}

// UpdateExpense modifies an expense. Metadata edits (description, category,
// date) are always allowed; changing the amount, participants or split
// config replaces every split row with a fresh computation, and is refused
// once any split has progressed past PENDING.
func (s *Service) UpdateExpense(ctx context.Context, id, userID string, req *UpdateExpenseRequest) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	if expense.PayerID != userID {
		return nil, ErrNotPayer
	}

	recompute := req.Amount != nil || req.Split != nil || len(req.ParticipantIDs) > 0
	if recompute {
		if req.Amount == nil || req.Split == nil || len(req.ParticipantIDs) == 0 {
			return nil, fmt.Errorf("%w: amount, participants and split config must be updated together", ErrSplitMismatch)
		}

		existing, err := s.repo.GetSplitsByExpenseID(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, row := range existing {
			if row.Status != SplitStatusPending || row.SettlementID != nil {
				return nil, ErrCannotEditExpense
			}
		}

		strategy, err := split.ParseConfig(*req.Split)
		if err != nil {
			return nil, err
		}
		if err := checkReconciled(*req.Amount, strategy); err != nil {
			return nil, err
		}

		entries := split.Compute(*req.Amount, req.ParticipantIDs, strategy)
		if len(entries) == 0 {
			return nil, ErrNothingToSplit
		}

		expense, err = s.repo.UpdateExpense(ctx, id, req, string(strategy.Type()))
		if err != nil {
			return nil, err
		}

		if err := s.repo.DeleteSplitsByExpenseID(ctx, id); err != nil {
			return nil, err
		}
		splits := make([]*Split, len(entries))
		for i, entry := range entries {
			row, err := s.repo.CreateSplit(ctx, id, entry.UserID, entry.AmountOwed)
			if err != nil {
				return nil, err
			}
			splits[i] = row
		}

		return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
	}

	expense, err = s.repo.UpdateExpense(ctx, id, req, expense.SplitType)
	if err != nil {
		return nil, err
	}
	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// GetExpenseByID retrieves an expense with its splits
func (s *Service) GetExpenseByID(ctx context.Context, id string) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{
		Expense: expense,
		Splits:  splits,
	}, nil
}

// ListExpensesByGroupID retrieves expenses for a group
func (s *Service) ListExpensesByGroupID(ctx context.Context, groupID string, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListExpensesByGroupID(ctx, groupID, perPage, offset)
}

// MarkSplitAsPaid allows the borrower to mark their split as paid
func (s *Service) MarkSplitAsPaid(ctx context.Context, splitID, borrowerID string) (*Split, error) {
	row, err := s.repo.GetSplitByID(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrSplitNotFound
	}

	if row.BorrowerID != borrowerID {
		return nil, ErrNotBorrower
	}
	if row.SettlementID != nil {
		return nil, ErrSplitLocked
	}
	if row.Status != SplitStatusPending {
		return nil, ErrInvalidStatusChange
	}

	return s.repo.UpdateSplitStatus(ctx, splitID, SplitStatusPaid, nil)
}

// ConfirmSplitPayment allows the payer to confirm they received the payment
func (s *Service) ConfirmSplitPayment(ctx context.Context, splitID, payerID string) (*Split, error) {
	row, err := s.repo.GetSplitByID(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrSplitNotFound
	}

	expense, err := s.repo.GetExpenseByID(ctx, row.ExpenseID)
	if err != nil {
		return nil, err
	}
	if expense.PayerID != payerID {
		return nil, ErrNotPayer
	}

	if row.SettlementID != nil {
		return nil, ErrSplitLocked
	}
	if row.Status != SplitStatusPaid {
		return nil, ErrInvalidStatusChange
	}

	return s.repo.UpdateSplitStatus(ctx, splitID, SplitStatusConfirmed, nil)
}

// DisputeSplit allows the borrower to dispute a split
func (s *Service) DisputeSplit(ctx context.Context, splitID, borrowerID, reason string) (*Split, error) {
	row, err := s.repo.GetSplitByID(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrSplitNotFound
	}

	if row.BorrowerID != borrowerID {
		return nil, ErrNotBorrower
	}
	if row.Status != SplitStatusPending && row.Status != SplitStatusPaid {
		return nil, ErrInvalidStatusChange
	}

	return s.repo.UpdateSplitStatus(ctx, splitID, SplitStatusDisputed, &reason)
}

// DeleteExpense deletes an expense if no splits are paid/confirmed
func (s *Service) DeleteExpense(ctx context.Context, id, userID string) error {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	if expense.PayerID != userID {
		return ErrNotPayer
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return err
	}
	for _, row := range splits {
		if row.Status == SplitStatusPaid || row.Status == SplitStatusConfirmed {
			return ErrCannotDeleteExpense
		}
	}

	return s.repo.DeleteExpense(ctx, id)
}
