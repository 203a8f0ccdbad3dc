package models

import "github.com/shopspring/decimal"

// Employee is a row of the employees table.
type Employee struct {
	EmployeeID            string          `db:"employee_id"`
	Name                  string          `db:"name"`
	Role                  string          `db:"role"`
	DefaultCommissionRate decimal.Decimal `db:"default_commission_rate"`
	MonthlySalary         decimal.Decimal `db:"monthly_salary"`
	CashAccountID         *string         `db:"cash_account_id"`
	OutstandingBalance    decimal.Decimal `db:"outstanding_balance"`
	AuditFields
}

// Collaborator is a row of the collaborators table.
type Collaborator struct {
	CollaboratorID     string          `db:"collaborator_id"`
	Name               string          `db:"name"`
	Kind               string          `db:"kind"`
	Phone              string          `db:"phone"`
	OutstandingBalance decimal.Decimal `db:"outstanding_balance"`
	AuditFields
}

// Customer is a row of the customers table.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	Email      string `db:"email"`
	Address    string `db:"address"`
	TaxNumber  string `db:"tax_number"`
	AuditFields
}
