package dto

import (
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new bank account or cash wallet.
type CreateAccountRequest struct {
	Name           string              `json:"name" binding:"required,max=100"`
	Kind           domain.AccountKind  `json:"kind" binding:"required,oneof=Bank Cash"`
	Currency       domain.CurrencyCode `json:"currency" binding:"required,oneof=TRY USD EUR"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	OwnerID        *string             `json:"ownerId"`       // Optional employee owning a cash wallet
	AccountNumber  *string             `json:"accountNumber"` // Optional IBAN
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=100"`
	AccountNumber *string `json:"accountNumber"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []domain.Account `json:"accounts"`
}
