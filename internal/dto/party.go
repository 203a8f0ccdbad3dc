package dto

import (
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest defines the data needed to register an employee.
type CreateEmployeeRequest struct {
	Name                  string          `json:"name" binding:"required,max=100"`
	Role                  domain.Role     `json:"role" binding:"required,oneof=Manager Employee"`
	DefaultCommissionRate decimal.Decimal `json:"defaultCommissionRate"`
	MonthlySalary         decimal.Decimal `json:"monthlySalary"`
}

// CreateCollaboratorRequest defines the data needed to register a broker or translator.
type CreateCollaboratorRequest struct {
	Name  string                  `json:"name" binding:"required,max=100"`
	Kind  domain.CollaboratorKind `json:"kind" binding:"required,oneof=Broker Translator"`
	Phone string                  `json:"phone" binding:"max=30"`
}

// CreateCustomerRequest defines the data needed to register a customer.
type CreateCustomerRequest struct {
	Name      string `json:"name" binding:"required,max=150"`
	Phone     string `json:"phone" binding:"max=30"`
	Email     string `json:"email" binding:"omitempty,email"`
	Address   string `json:"address" binding:"max=300"`
	TaxNumber string `json:"taxNumber" binding:"max=30"`
}

// PayoutRequest settles part of an employee's or collaborator's outstanding balance.
type PayoutRequest struct {
	AccountID   string          `json:"accountId" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description string          `json:"description" binding:"max=500"`
}

// CustomerDebtResponse is the derived amount a customer still owes.
type CustomerDebtResponse struct {
	CustomerID string          `json:"customerId"`
	Debt       decimal.Decimal `json:"debt"`
}
