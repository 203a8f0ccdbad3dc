package accounting

import (
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Direction selects whether effects are applied or reversed.
type Direction int

const (
	Apply   Direction = 1
	Reverse Direction = -1
)

// ComputeEffects stages the balance deltas an approved transaction causes.
// Reverse yields the exact negation of Apply over the same traversal.
func ComputeEffects(txn domain.Transaction, dir Direction) domain.BalanceChanges {
	changes := domain.NewBalanceChanges()
	sign := decimal.NewFromInt(int64(dir))

	switch txn.Kind {
	case domain.Income:
		if txn.Income == nil {
			return changes
		}
		for _, p := range txn.Income.Payments {
			changes.AddAccount(p.AccountID, p.Amount.Mul(sign))
		}
		for _, it := range txn.Income.Items {
			if it.EmployeeID != "" {
				changes.AddEmployee(it.EmployeeID, it.CommissionAmount.Mul(sign))
			}
			if it.CollaboratorID != nil && it.CollaboratorFee.IsPositive() {
				changes.AddCollaborator(*it.CollaboratorID, it.CollaboratorFee.Mul(sign))
			}
		}
	case domain.Expense:
		if txn.Expense == nil {
			return changes
		}
		if txn.Expense.AccountID != nil {
			changes.AddAccount(*txn.Expense.AccountID, txn.Amount.Neg().Mul(sign))
		}
		if txn.Expense.SettlesOutstanding {
			if txn.Expense.EmployeeID != nil {
				changes.AddEmployee(*txn.Expense.EmployeeID, txn.Amount.Neg().Mul(sign))
			}
			if txn.Expense.CollaboratorID != nil {
				changes.AddCollaborator(*txn.Expense.CollaboratorID, txn.Amount.Neg().Mul(sign))
			}
		}
	}
	return changes
}
