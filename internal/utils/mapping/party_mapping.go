package mapping

import (
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:            d.EmployeeID,
		Name:                  d.Name,
		Role:                  string(d.Role),
		DefaultCommissionRate: d.DefaultCommissionRate,
		MonthlySalary:         d.MonthlySalary,
		CashAccountID:         optional(d.CashAccountID),
		OutstandingBalance:    d.OutstandingBalance,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:            m.EmployeeID,
		Name:                  m.Name,
		Role:                  domain.Role(m.Role),
		DefaultCommissionRate: m.DefaultCommissionRate,
		MonthlySalary:         m.MonthlySalary,
		CashAccountID:         deref(m.CashAccountID),
		OutstandingBalance:    m.OutstandingBalance,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCollaborator converts a domain Collaborator to a model Collaborator
func ToModelCollaborator(d domain.Collaborator) models.Collaborator {
	return models.Collaborator{
		CollaboratorID:     d.CollaboratorID,
		Name:               d.Name,
		Kind:               string(d.Kind),
		Phone:              d.Phone,
		OutstandingBalance: d.OutstandingBalance,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCollaborator converts a model Collaborator to a domain Collaborator
func ToDomainCollaborator(m models.Collaborator) domain.Collaborator {
	return domain.Collaborator{
		CollaboratorID:     m.CollaboratorID,
		Name:               m.Name,
		Kind:               domain.CollaboratorKind(m.Kind),
		Phone:              m.Phone,
		OutstandingBalance: m.OutstandingBalance,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		Name:        d.Name,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		TaxNumber:   d.TaxNumber,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		TaxNumber:   m.TaxNumber,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
