package mapping

import (
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/models"
)

// ToModelSettings converts domain Settings to the settings row
func ToModelSettings(d domain.Settings) models.Settings {
	categories := d.ExpenseCategories
	if categories == nil {
		categories = []string{}
	}
	return models.Settings{
		FinancialLockDate: d.FinancialLockDate,
		CompanyName:       d.CompanyInfo.Name,
		CompanyAddress:    d.CompanyInfo.Address,
		CompanyPhone:      d.CompanyInfo.Phone,
		CompanyEmail:      d.CompanyInfo.Email,
		CompanyTaxNumber:  d.CompanyInfo.TaxNumber,
		CompanyTaxOffice:  d.CompanyInfo.TaxOffice,
		ExpenseCategories: categories,
	}
}

// ToDomainSettings converts the settings row to domain Settings
func ToDomainSettings(m models.Settings) domain.Settings {
	d := domain.Settings{
		CompanyInfo: domain.CompanyInfo{
			Name:      m.CompanyName,
			Address:   m.CompanyAddress,
			Phone:     m.CompanyPhone,
			Email:     m.CompanyEmail,
			TaxNumber: m.CompanyTaxNumber,
			TaxOffice: m.CompanyTaxOffice,
		},
		ExpenseCategories: m.ExpenseCategories,
	}
	if m.FinancialLockDate != nil {
		lock := domain.DateOnly(*m.FinancialLockDate)
		d.FinancialLockDate = &lock
	}
	return d
}

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		CustomerID:  d.CustomerID,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		CustomerID:  m.CustomerID,
		Status:      domain.ProjectStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		AuditID:       d.AuditID,
		ActorID:       d.ActorID,
		ActorName:     d.ActorName,
		Description:   d.Description,
		TransactionID: d.TransactionID,
		Timestamp:     d.Timestamp,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:       m.AuditID,
		ActorID:       m.ActorID,
		ActorName:     m.ActorName,
		Description:   m.Description,
		TransactionID: m.TransactionID,
		Timestamp:     m.Timestamp.UTC(),
	}
}

// ToModelNotification converts a domain Notification to a model Notification
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		Message:        d.Message,
		TransactionID:  d.TransactionID,
		IsRead:         d.Read,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainNotification converts a model Notification to a domain Notification
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		Message:        m.Message,
		TransactionID:  m.TransactionID,
		Read:           m.IsRead,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}
