package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table. Income and expense columns
// share the table; the ones of the other kind stay NULL.
type Transaction struct {
	TransactionID      string          `db:"transaction_id"`
	TxnDate            time.Time       `db:"txn_date"`
	Description        string          `db:"description"`
	Amount             decimal.Decimal `db:"amount"`
	Kind               string          `db:"kind"`
	Category           string          `db:"category"`
	InternalNotes      string          `db:"internal_notes"`
	ApprovalStatus     string          `db:"approval_status"`
	ProjectID          *string         `db:"project_id"`
	CustomerID         *string         `db:"customer_id"`    // Income only
	PaymentStatus      *string         `db:"payment_status"` // Income only
	AccountID          *string         `db:"account_id"`     // Expense only
	EmployeeID         *string         `db:"employee_id"`    // Expense only
	CollaboratorID     *string         `db:"collaborator_id"`
	SettlesOutstanding bool            `db:"settles_outstanding"`
	AuditFields
}

// LineItem is a row of the line_items table. Position keeps input order.
type LineItem struct {
	LineItemID       string          `db:"line_item_id"`
	TransactionID    string          `db:"transaction_id"`
	Position         int             `db:"position"`
	ServiceID        string          `db:"service_id"`
	Description      string          `db:"description"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	LegalCosts       decimal.Decimal `db:"legal_costs"`
	VATRate          decimal.Decimal `db:"vat_rate"`
	VATAmount        decimal.Decimal `db:"vat_amount"`
	EmployeeID       string          `db:"employee_id"`
	CommissionRate   decimal.Decimal `db:"commission_rate"`
	CommissionAmount decimal.Decimal `db:"commission_amount"`
	CollaboratorID   *string         `db:"collaborator_id"`
	CollaboratorFee  decimal.Decimal `db:"collaborator_fee"`
}

// Payment is a row of the payments table.
type Payment struct {
	PaymentID     string          `db:"payment_id"`
	TransactionID string          `db:"transaction_id"`
	Position      int             `db:"position"`
	PaymentDate   time.Time       `db:"payment_date"`
	Amount        decimal.Decimal `db:"amount"`
	AccountID     string          `db:"account_id"`
}
