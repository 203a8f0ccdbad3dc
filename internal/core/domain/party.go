package domain

import "github.com/shopspring/decimal"

// Role is the role of an actor or employee within the agency.
type Role string

const (
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleEmployee
}

// Employee is a staff member earning commission on income line items.
// OutstandingBalance is positive when the company owes the employee.
type Employee struct {
	EmployeeID            string          `json:"id"`
	Name                  string          `json:"name"`
	Role                  Role            `json:"role"`
	DefaultCommissionRate decimal.Decimal `json:"defaultCommissionRate"`
	MonthlySalary         decimal.Decimal `json:"monthlySalary"`
	CashAccountID         string          `json:"cashAccountId"`
	OutstandingBalance    decimal.Decimal `json:"outstandingBalance"`
	AuditFields
}

// CollaboratorKind is the kind of external collaborator.
type CollaboratorKind string

const (
	CollaboratorBroker     CollaboratorKind = "Broker"
	CollaboratorTranslator CollaboratorKind = "Translator"
)

// Collaborator is an external broker or translator paid a fixed fee per line item.
// OutstandingBalance follows the same sign convention as Employee.
type Collaborator struct {
	CollaboratorID     string           `json:"id"`
	Name               string           `json:"name"`
	Kind               CollaboratorKind `json:"kind"`
	Phone              string           `json:"phone,omitempty"`
	OutstandingBalance decimal.Decimal  `json:"outstandingBalance"`
	AuditFields
}

// Customer is a client of the agency. It has no stored balance; debt is derived.
type Customer struct {
	CustomerID string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	TaxNumber  string `json:"taxNumber,omitempty"`
	AuditFields
}

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// IsManager reports whether the actor holds the manager role.
func (a Actor) IsManager() bool {
	return a.Role == RoleManager
}
