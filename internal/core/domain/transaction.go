package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether money came in or went out.
type TransactionKind string

const (
	Income  TransactionKind = "Income"
	Expense TransactionKind = "Expense"
)

// ApprovalStatus is the approval workflow state of a persisted transaction.
type ApprovalStatus string

const (
	Pending  ApprovalStatus = "Pending"
	Approved ApprovalStatus = "Approved"
)

// PaymentStatus is derived from an income total and its payments.
type PaymentStatus string

const (
	Paid    PaymentStatus = "Paid"
	Partial PaymentStatus = "Partial"
	Due     PaymentStatus = "Due"
)

// CategoryInternalTransfer marks both legs of a fund transfer.
const CategoryInternalTransfer = "Internal Transfer"

// Payout categories recorded by manual employee/collaborator payments.
const (
	CategoryEmployeePayment     = "Employee Payment"
	CategoryCollaboratorPayment = "Collaborator Payment"
)

// LineItem is one priced service entry within an income transaction.
// VATAmount and CommissionAmount are derived and never trusted as input.
type LineItem struct {
	LineItemID       string          `json:"id"`
	ServiceID        string          `json:"serviceId"`
	Description      string          `json:"description"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	LegalCosts       decimal.Decimal `json:"legalCosts"`
	VATRate          decimal.Decimal `json:"vatRate"`
	VATAmount        decimal.Decimal `json:"vatAmount"`
	EmployeeID       string          `json:"employeeId"`
	CommissionRate   decimal.Decimal `json:"commissionRate"`
	CommissionAmount decimal.Decimal `json:"commissionAmount"`
	CollaboratorID   *string         `json:"collaboratorId,omitempty"`
	CollaboratorFee  decimal.Decimal `json:"collaboratorFee"`
}

// Payment is a partial or full receipt against an income transaction.
type Payment struct {
	PaymentID string          `json:"id"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"accountId"`
}

// IncomeDetails holds the fields that only exist on income transactions.
type IncomeDetails struct {
	CustomerID    *string       `json:"customerId,omitempty"`
	Items         []LineItem    `json:"items"`
	Payments      []Payment     `json:"payments"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

// ExpenseDetails holds the fields that only exist on expense transactions.
// SettlesOutstanding marks a payout that also reduces the paid-to party's
// outstanding balance.
type ExpenseDetails struct {
	AccountID          *string `json:"accountId,omitempty"`
	EmployeeID         *string `json:"employeeId,omitempty"`
	CollaboratorID     *string `json:"collaboratorId,omitempty"`
	SettlesOutstanding bool    `json:"settlesOutstanding,omitempty"`
}

// Transaction is an income or expense entry. Exactly one of Income or Expense
// is set, matching Kind.
type Transaction struct {
	TransactionID  string          `json:"id"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Kind           TransactionKind `json:"kind"`
	Category       string          `json:"category"`
	InternalNotes  string          `json:"internalNotes,omitempty"`
	ApprovalStatus ApprovalStatus  `json:"approvalStatus"`
	ProjectID      *string         `json:"projectId,omitempty"`
	Income         *IncomeDetails  `json:"income,omitempty"`
	Expense        *ExpenseDetails `json:"expense,omitempty"`
	AuditFields
}

var errVariantMismatch = errors.New("transaction variant does not match kind")

// Validate checks the kind-dependent shape of the transaction.
func (t Transaction) Validate() error {
	switch t.Kind {
	case Income:
		if t.Income == nil || t.Expense != nil {
			return fmt.Errorf("%w: income transaction requires income details only", errVariantMismatch)
		}
	case Expense:
		if t.Expense == nil || t.Income != nil {
			return fmt.Errorf("%w: expense transaction requires expense details only", errVariantMismatch)
		}
	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	return nil
}

// IsApproved reports whether effects of t are applied to the ledger.
func (t Transaction) IsApproved() bool {
	return t.ApprovalStatus == Approved
}

// IsLocked reports whether t falls on or before the given financial lock date.
func (t Transaction) IsLocked(lockDate *time.Time) bool {
	if lockDate == nil {
		return false
	}
	return !DateOnly(t.Date).After(DateOnly(*lockDate))
}

// PaidTotal returns the sum of all payments on an income transaction.
func (t Transaction) PaidTotal() decimal.Decimal {
	total := decimal.Zero
	if t.Income == nil {
		return total
	}
	for _, p := range t.Income.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// ReferencesAccount reports whether t moves money through accountID.
func (t Transaction) ReferencesAccount(accountID string) bool {
	if t.Expense != nil && t.Expense.AccountID != nil && *t.Expense.AccountID == accountID {
		return true
	}
	if t.Income != nil {
		for _, p := range t.Income.Payments {
			if p.AccountID == accountID {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of t so callers can mutate it freely.
func (t Transaction) Clone() Transaction {
	c := t
	if t.ProjectID != nil {
		c.ProjectID = strPtr(*t.ProjectID)
	}
	if t.Income != nil {
		inc := *t.Income
		inc.CustomerID = clonePtr(t.Income.CustomerID)
		inc.Items = make([]LineItem, len(t.Income.Items))
		for i, it := range t.Income.Items {
			it.CollaboratorID = clonePtr(it.CollaboratorID)
			inc.Items[i] = it
		}
		inc.Payments = append([]Payment(nil), t.Income.Payments...)
		c.Income = &inc
	}
	if t.Expense != nil {
		exp := *t.Expense
		exp.AccountID = clonePtr(t.Expense.AccountID)
		exp.EmployeeID = clonePtr(t.Expense.EmployeeID)
		exp.CollaboratorID = clonePtr(t.Expense.CollaboratorID)
		c.Expense = &exp
	}
	return c
}

// TransactionFilter narrows ListTransactions results. Zero values match everything.
type TransactionFilter struct {
	Kind           *TransactionKind
	ApprovalStatus *ApprovalStatus
	CustomerID     *string
	AccountID      *string
	CreatedBy      *string
	From           *time.Time
	To             *time.Time
}

// Matches reports whether t satisfies every set criterion of f.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.Kind != nil && t.Kind != *f.Kind {
		return false
	}
	if f.ApprovalStatus != nil && t.ApprovalStatus != *f.ApprovalStatus {
		return false
	}
	if f.CustomerID != nil && (t.Income == nil || t.Income.CustomerID == nil || *t.Income.CustomerID != *f.CustomerID) {
		return false
	}
	if f.AccountID != nil && !t.ReferencesAccount(*f.AccountID) {
		return false
	}
	if f.CreatedBy != nil && t.CreatedBy != *f.CreatedBy {
		return false
	}
	if f.From != nil && DateOnly(t.Date).Before(DateOnly(*f.From)) {
		return false
	}
	if f.To != nil && DateOnly(t.Date).After(DateOnly(*f.To)) {
		return false
	}
	return true
}

// TransactionOutcome is the result of a lifecycle transition.
// Warnings carry non-blocking notices such as an overdrawn account.
type TransactionOutcome struct {
	Transaction Transaction `json:"transaction"`
	Warnings    []string    `json:"warnings,omitempty"`
}

func strPtr(s string) *string { return &s }

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	return strPtr(*p)
}
