package domain

import "github.com/shopspring/decimal"

// BalanceChanges is a staged set of signed deltas keyed by entity ID.
type BalanceChanges struct {
	Accounts      map[string]decimal.Decimal
	Employees     map[string]decimal.Decimal
	Collaborators map[string]decimal.Decimal
}

// NewBalanceChanges returns an empty, ready-to-use set of changes.
func NewBalanceChanges() BalanceChanges {
	return BalanceChanges{
		Accounts:      make(map[string]decimal.Decimal),
		Employees:     make(map[string]decimal.Decimal),
		Collaborators: make(map[string]decimal.Decimal),
	}
}

// AddAccount stages delta against an account.
func (c BalanceChanges) AddAccount(id string, delta decimal.Decimal) {
	c.Accounts[id] = c.Accounts[id].Add(delta)
}

// AddEmployee stages delta against an employee's outstanding balance.
func (c BalanceChanges) AddEmployee(id string, delta decimal.Decimal) {
	c.Employees[id] = c.Employees[id].Add(delta)
}

// AddCollaborator stages delta against a collaborator's outstanding balance.
func (c BalanceChanges) AddCollaborator(id string, delta decimal.Decimal) {
	c.Collaborators[id] = c.Collaborators[id].Add(delta)
}

// Merge adds every delta of other into c.
func (c BalanceChanges) Merge(other BalanceChanges) {
	for id, d := range other.Accounts {
		c.AddAccount(id, d)
	}
	for id, d := range other.Employees {
		c.AddEmployee(id, d)
	}
	for id, d := range other.Collaborators {
		c.AddCollaborator(id, d)
	}
}

// IsEmpty reports whether no entity is touched.
func (c BalanceChanges) IsEmpty() bool {
	return len(c.Accounts) == 0 && len(c.Employees) == 0 && len(c.Collaborators) == 0
}
