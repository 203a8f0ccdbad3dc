package mapping

import (
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/models"
)

// ToModelTransaction flattens a domain Transaction into its header row and
// the child rows of an income transaction.
func ToModelTransaction(d domain.Transaction) (models.Transaction, []models.LineItem, []models.Payment) {
	m := models.Transaction{
		TransactionID:  d.TransactionID,
		TxnDate:        domain.DateOnly(d.Date),
		Description:    d.Description,
		Amount:         d.Amount,
		Kind:           string(d.Kind),
		Category:       d.Category,
		InternalNotes:  d.InternalNotes,
		ApprovalStatus: string(d.ApprovalStatus),
		ProjectID:      d.ProjectID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}

	var items []models.LineItem
	var payments []models.Payment
	if inc := d.Income; inc != nil {
		status := string(inc.PaymentStatus)
		m.CustomerID = inc.CustomerID
		m.PaymentStatus = &status
		for i, it := range inc.Items {
			items = append(items, models.LineItem{
				LineItemID:       it.LineItemID,
				TransactionID:    d.TransactionID,
				Position:         i,
				ServiceID:        it.ServiceID,
				Description:      it.Description,
				Subtotal:         it.Subtotal,
				LegalCosts:       it.LegalCosts,
				VATRate:          it.VATRate,
				VATAmount:        it.VATAmount,
				EmployeeID:       it.EmployeeID,
				CommissionRate:   it.CommissionRate,
				CommissionAmount: it.CommissionAmount,
				CollaboratorID:   it.CollaboratorID,
				CollaboratorFee:  it.CollaboratorFee,
			})
		}
		for i, p := range inc.Payments {
			payments = append(payments, models.Payment{
				PaymentID:     p.PaymentID,
				TransactionID: d.TransactionID,
				Position:      i,
				PaymentDate:   domain.DateOnly(p.Date),
				Amount:        p.Amount,
				AccountID:     p.AccountID,
			})
		}
	}
	if exp := d.Expense; exp != nil {
		m.AccountID = exp.AccountID
		m.EmployeeID = exp.EmployeeID
		m.CollaboratorID = exp.CollaboratorID
		m.SettlesOutstanding = exp.SettlesOutstanding
	}
	return m, items, payments
}

// ToDomainTransaction rebuilds a domain Transaction from its rows. Items and
// payments must already be ordered by position.
func ToDomainTransaction(m models.Transaction, items []models.LineItem, payments []models.Payment) domain.Transaction {
	d := domain.Transaction{
		TransactionID:  m.TransactionID,
		Date:           domain.DateOnly(m.TxnDate),
		Description:    m.Description,
		Amount:         m.Amount,
		Kind:           domain.TransactionKind(m.Kind),
		Category:       m.Category,
		InternalNotes:  m.InternalNotes,
		ApprovalStatus: domain.ApprovalStatus(m.ApprovalStatus),
		ProjectID:      m.ProjectID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}

	switch d.Kind {
	case domain.Income:
		inc := &domain.IncomeDetails{
			CustomerID:    m.CustomerID,
			PaymentStatus: domain.PaymentStatus(deref(m.PaymentStatus)),
			Items:         make([]domain.LineItem, 0, len(items)),
			Payments:      make([]domain.Payment, 0, len(payments)),
		}
		for _, it := range items {
			inc.Items = append(inc.Items, domain.LineItem{
				LineItemID:       it.LineItemID,
				ServiceID:        it.ServiceID,
				Description:      it.Description,
				Subtotal:         it.Subtotal,
				LegalCosts:       it.LegalCosts,
				VATRate:          it.VATRate,
				VATAmount:        it.VATAmount,
				EmployeeID:       it.EmployeeID,
				CommissionRate:   it.CommissionRate,
				CommissionAmount: it.CommissionAmount,
				CollaboratorID:   it.CollaboratorID,
				CollaboratorFee:  it.CollaboratorFee,
			})
		}
		for _, p := range payments {
			inc.Payments = append(inc.Payments, domain.Payment{
				PaymentID: p.PaymentID,
				Date:      domain.DateOnly(p.PaymentDate),
				Amount:    p.Amount,
				AccountID: p.AccountID,
			})
		}
		d.Income = inc
	case domain.Expense:
		d.Expense = &domain.ExpenseDetails{
			AccountID:          m.AccountID,
			EmployeeID:         m.EmployeeID,
			CollaboratorID:     m.CollaboratorID,
			SettlesOutstanding: m.SettlesOutstanding,
		}
	}
	return d
}
