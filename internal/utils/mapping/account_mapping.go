package mapping

import (
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		Name:          d.Name,
		Kind:          string(d.Kind),
		Currency:      string(d.Currency),
		Balance:       d.Balance,
		OwnerID:       d.OwnerID,
		AccountNumber: d.AccountNumber,
		DeletedAt:     d.DeletedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		Name:          m.Name,
		Kind:          domain.AccountKind(m.Kind),
		Currency:      domain.CurrencyCode(m.Currency),
		Balance:       m.Balance,
		OwnerID:       m.OwnerID,
		AccountNumber: m.AccountNumber,
		DeletedAt:     m.DeletedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccounts converts a slice of model Accounts to domain Accounts
func ToDomainAccounts(ms []models.Account) []domain.Account {
	if ms == nil {
		return nil
	}
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
