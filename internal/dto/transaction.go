package dto

import (
	"strconv"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one service line of an income transaction.
// VAT and commission amounts are derived server-side and not accepted.
type LineItemRequest struct {
	ServiceID       string          `json:"serviceId"`
	Description     string          `json:"description" binding:"required"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	LegalCosts      decimal.Decimal `json:"legalCosts"`
	VATRate         decimal.Decimal `json:"vatRate"`
	EmployeeID      string          `json:"employeeId" binding:"required"`
	CommissionRate  decimal.Decimal `json:"commissionRate"`
	CollaboratorID  *string         `json:"collaboratorId"`
	CollaboratorFee decimal.Decimal `json:"collaboratorFee"`
}

// PaymentRequest is one receipt against an income transaction.
type PaymentRequest struct {
	Date      string          `json:"date" binding:"required,datetime=2006-01-02"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"accountId" binding:"required"`
}

// TransactionRequest is the body of create and update calls.
// Income uses CustomerID, Items and Payments; Expense uses Amount and AccountID.
type TransactionRequest struct {
	Date           string                 `json:"date" binding:"required,datetime=2006-01-02"`
	Description    string                 `json:"description" binding:"required,max=500"`
	Kind           domain.TransactionKind `json:"kind" binding:"required,oneof=Income Expense"`
	Category       string                 `json:"category" binding:"required,max=100"`
	InternalNotes  string                 `json:"internalNotes"`
	ProjectID      *string                `json:"projectId"`
	CustomerID     *string                `json:"customerId"`
	Items          []LineItemRequest      `json:"items" binding:"dive"`
	Payments       []PaymentRequest       `json:"payments" binding:"dive"`
	Amount         decimal.Decimal        `json:"amount"`
	AccountID      *string                `json:"accountId"`
	EmployeeID     *string                `json:"employeeId"`
	CollaboratorID *string                `json:"collaboratorId"`
}

// ToDomain converts the request into an unsaved transaction draft.
// Derived fields are left for the calculator.
func (r TransactionRequest) ToDomain() (domain.Transaction, error) {
	verr := &apperrors.ValidationError{}
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		verr.Add("date", "must be a YYYY-MM-DD date")
	}

	txn := domain.Transaction{
		Date:          date,
		Description:   r.Description,
		Kind:          r.Kind,
		Category:      r.Category,
		InternalNotes: r.InternalNotes,
		ProjectID:     r.ProjectID,
	}
	switch r.Kind {
	case domain.Income:
		inc := &domain.IncomeDetails{CustomerID: r.CustomerID}
		for _, it := range r.Items {
			inc.Items = append(inc.Items, domain.LineItem{
				ServiceID:       it.ServiceID,
				Description:     it.Description,
				Subtotal:        it.Subtotal,
				LegalCosts:      it.LegalCosts,
				VATRate:         it.VATRate,
				EmployeeID:      it.EmployeeID,
				CommissionRate:  it.CommissionRate,
				CollaboratorID:  it.CollaboratorID,
				CollaboratorFee: it.CollaboratorFee,
			})
		}
		for i, p := range r.Payments {
			pd, err := domain.ParseDate(p.Date)
			if err != nil {
				verr.Add("payments["+strconv.Itoa(i)+"].date", "must be a YYYY-MM-DD date")
			}
			inc.Payments = append(inc.Payments, domain.Payment{Date: pd, Amount: p.Amount, AccountID: p.AccountID})
		}
		txn.Income = inc
	case domain.Expense:
		txn.Amount = r.Amount
		txn.Expense = &domain.ExpenseDetails{
			AccountID:      r.AccountID,
			EmployeeID:     r.EmployeeID,
			CollaboratorID: r.CollaboratorID,
		}
	default:
		verr.Add("kind", "must be Income or Expense")
	}
	if err := verr.OrNil(); err != nil {
		return domain.Transaction{}, err
	}
	return txn, nil
}

// ApprovalRequest decides a pending transaction.
type ApprovalRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}

// ListTransactionsParams are the query filters of the list endpoint.
type ListTransactionsParams struct {
	Kind           string `form:"kind" binding:"omitempty,oneof=Income Expense"`
	ApprovalStatus string `form:"status" binding:"omitempty,oneof=Pending Approved"`
	CustomerID     string `form:"customerId"`
	AccountID      string `form:"accountId"`
	From           string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To             string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit          int    `form:"limit,default=50" binding:"min=1,max=500"`
	NextToken      string `form:"nextToken"`
}

// ToFilter converts query params into a domain filter. Dates are pre-validated by binding.
func (p ListTransactionsParams) ToFilter() domain.TransactionFilter {
	var f domain.TransactionFilter
	if p.Kind != "" {
		k := domain.TransactionKind(p.Kind)
		f.Kind = &k
	}
	if p.ApprovalStatus != "" {
		s := domain.ApprovalStatus(p.ApprovalStatus)
		f.ApprovalStatus = &s
	}
	if p.CustomerID != "" {
		f.CustomerID = &p.CustomerID
	}
	if p.AccountID != "" {
		f.AccountID = &p.AccountID
	}
	if d, err := domain.ParseDate(p.From); err == nil && p.From != "" {
		f.From = &d
	}
	if d, err := domain.ParseDate(p.To); err == nil && p.To != "" {
		f.To = &d
	}
	return f
}

// TransactionResponse wraps a transaction with any non-blocking warnings.
type TransactionResponse struct {
	domain.Transaction
	Warnings []string `json:"warnings,omitempty"`
}

// ToTransactionResponse converts a lifecycle outcome for the wire.
func ToTransactionResponse(out domain.TransactionOutcome) TransactionResponse {
	return TransactionResponse{Transaction: out.Transaction, Warnings: out.Warnings}
}

// ListTransactionsResponse wraps a page of transactions.
// NextToken is empty on the last page.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextToken    string               `json:"nextToken,omitempty"`
}

// TransferRequest moves money between two accounts.
// ExchangeRate is required only when the account currencies differ.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountId" binding:"required"`
	ToAccountID   string          `json:"toAccountId" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	Date          string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description   string          `json:"description" binding:"max=500"`
}

// TransferResponse returns both legs of a completed transfer.
type TransferResponse struct {
	Outgoing domain.Transaction `json:"outgoing"`
	Incoming domain.Transaction `json:"incoming"`
}
