package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/agency_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var maxRate = decimal.NewFromInt(100)

func checkRate(verr *apperrors.ValidationError, field string, rate decimal.Decimal) {
	if rate.IsNegative() || rate.GreaterThan(maxRate) {
		verr.Add(field, "must be between 0 and 100")
	}
}

// validateDraft checks values that need no store access.
func validateDraft(draft domain.Transaction) error {
	verr := &apperrors.ValidationError{}
	if err := draft.Validate(); err != nil {
		verr.Add("kind", err.Error())
		return verr
	}
	if strings.TrimSpace(draft.Description) == "" {
		verr.Add("description", "is required")
	}
	if strings.TrimSpace(draft.Category) == "" {
		verr.Add("category", "is required")
	}
	if draft.Date.IsZero() {
		verr.Add("date", "is required")
	}

	switch draft.Kind {
	case domain.Income:
		if len(draft.Income.Items) == 0 {
			verr.Add("items", "an income transaction needs at least one line item")
		}
		for i, it := range draft.Income.Items {
			p := fmt.Sprintf("items[%d].", i)
			if it.Subtotal.IsNegative() {
				verr.Add(p+"subtotal", "must not be negative")
			}
			if it.LegalCosts.IsNegative() {
				verr.Add(p+"legalCosts", "must not be negative")
			}
			if it.CollaboratorFee.IsNegative() {
				verr.Add(p+"collaboratorFee", "must not be negative")
			}
			if it.CollaboratorFee.IsPositive() && it.CollaboratorID == nil {
				verr.Add(p+"collaboratorId", "is required when a collaborator fee is set")
			}
			if it.EmployeeID == "" {
				verr.Add(p+"employeeId", "is required")
			}
			checkRate(verr, p+"vatRate", it.VATRate)
			checkRate(verr, p+"commissionRate", it.CommissionRate)
		}
		for i, pay := range draft.Income.Payments {
			p := fmt.Sprintf("payments[%d].", i)
			if !pay.Amount.IsPositive() {
				verr.Add(p+"amount", "must be positive")
			}
			if pay.AccountID == "" {
				verr.Add(p+"accountId", "is required")
			}
		}
	case domain.Expense:
		if !draft.Amount.IsPositive() {
			verr.Add("amount", "must be positive")
		}
		if draft.Expense.EmployeeID != nil && draft.Expense.CollaboratorID != nil {
			verr.Add("collaboratorId", "an expense is paid to an employee or a collaborator, not both")
		}
	}
	return verr.OrNil()
}

// resolveReferences verifies every id the draft points at.
func resolveReferences(ctx context.Context, r portsrepo.LedgerReader, draft domain.Transaction) error {
	if draft.ProjectID != nil {
		if _, err := r.FindProjectByID(ctx, *draft.ProjectID); err != nil {
			return err
		}
	}
	switch draft.Kind {
	case domain.Income:
		if draft.Income.CustomerID != nil {
			if _, err := r.FindCustomerByID(ctx, *draft.Income.CustomerID); err != nil {
				return err
			}
		}
		for _, it := range draft.Income.Items {
			if _, err := r.FindEmployeeByID(ctx, it.EmployeeID); err != nil {
				return err
			}
			if it.CollaboratorID != nil {
				if _, err := r.FindCollaboratorByID(ctx, *it.CollaboratorID); err != nil {
					return err
				}
			}
		}
		for _, p := range draft.Income.Payments {
			if err := requireActiveAccount(ctx, r, p.AccountID); err != nil {
				return err
			}
		}
	case domain.Expense:
		if draft.Expense.AccountID != nil {
			if err := requireActiveAccount(ctx, r, *draft.Expense.AccountID); err != nil {
				return err
			}
		}
		if draft.Expense.EmployeeID != nil {
			if _, err := r.FindEmployeeByID(ctx, *draft.Expense.EmployeeID); err != nil {
				return err
			}
		}
		if draft.Expense.CollaboratorID != nil {
			if _, err := r.FindCollaboratorByID(ctx, *draft.Expense.CollaboratorID); err != nil {
				return err
			}
		}
	}
	return nil
}

func requireActiveAccount(ctx context.Context, r portsrepo.AccountReader, accountID string) error {
	acc, err := r.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !acc.IsActive() {
		return fmt.Errorf("%w: account %s is deleted", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// prepareTransaction validates a draft, assigns child ids and recomputes derived fields.
func prepareTransaction(ctx context.Context, r portsrepo.LedgerReader, draft domain.Transaction) (domain.Transaction, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Transaction{}, err
	}
	if err := resolveReferences(ctx, r, draft); err != nil {
		return domain.Transaction{}, err
	}
	txn := accounting.DeriveTransaction(draft)
	txn.Date = domain.DateOnly(txn.Date)
	if txn.Income != nil {
		for i := range txn.Income.Items {
			if txn.Income.Items[i].LineItemID == "" {
				txn.Income.Items[i].LineItemID = uuid.NewString()
			}
		}
		for i := range txn.Income.Payments {
			if txn.Income.Payments[i].PaymentID == "" {
				txn.Income.Payments[i].PaymentID = uuid.NewString()
			}
			txn.Income.Payments[i].Date = domain.DateOnly(txn.Income.Payments[i].Date)
		}
	}
	return txn, nil
}

// isValidation reports whether err should be surfaced with field detail.
func isValidation(err error) bool {
	var verr *apperrors.ValidationError
	return errors.As(err, &verr)
}
