package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind distinguishes bank accounts from cash wallets.
type AccountKind string

const (
	AccountBank AccountKind = "Bank"
	AccountCash AccountKind = "Cash"
)

// Account is a bank account or cash wallet holding company money.
// Balance is the running sum of all applied effects and is only mutated by
// the effect engine or a transfer.
type Account struct {
	AccountID     string          `json:"id"`
	Name          string          `json:"name"`
	Kind          AccountKind     `json:"kind"`
	Currency      CurrencyCode    `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	OwnerID       *string         `json:"ownerId,omitempty"`       // Employee owning a cash wallet
	AccountNumber *string         `json:"accountNumber,omitempty"` // IBAN or external number
	DeletedAt     *time.Time      `json:"deletedAt,omitempty"`
	AuditFields
}

// IsActive reports whether the account has not been soft-deleted.
func (a Account) IsActive() bool {
	return a.DeletedAt == nil
}
