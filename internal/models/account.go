package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields mirrors the audit columns every table carries.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Account is a row of the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	Name          string          `db:"name"`
	Kind          string          `db:"kind"`
	Currency      string          `db:"currency"`
	Balance       decimal.Decimal `db:"balance"`
	OwnerID       *string         `db:"owner_id"`       // Nullable, references employees
	AccountNumber *string         `db:"account_number"` // Nullable
	DeletedAt     *time.Time      `db:"deleted_at"`
	AuditFields
}
