package dto

import "github.com/SscSPs/agency_ledger/internal/core/domain"

// LockDateRequest sets or clears the financial lock date. An empty date clears it.
type LockDateRequest struct {
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// CompanyInfoRequest replaces the company letterhead data.
type CompanyInfoRequest struct {
	Name      string `json:"name" binding:"required,max=150"`
	Address   string `json:"address" binding:"max=300"`
	Phone     string `json:"phone" binding:"max=30"`
	Email     string `json:"email" binding:"omitempty,email"`
	TaxNumber string `json:"taxNumber" binding:"max=30"`
	TaxOffice string `json:"taxOffice" binding:"max=100"`
}

// ToDomain converts the request into company info.
func (r CompanyInfoRequest) ToDomain() domain.CompanyInfo {
	return domain.CompanyInfo{
		Name:      r.Name,
		Address:   r.Address,
		Phone:     r.Phone,
		Email:     r.Email,
		TaxNumber: r.TaxNumber,
		TaxOffice: r.TaxOffice,
	}
}

// ExpenseCategoryRequest adds a selectable expense category.
type ExpenseCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateProjectRequest opens a project, optionally for a customer.
type CreateProjectRequest struct {
	Name       string  `json:"name" binding:"required,max=150"`
	CustomerID *string `json:"customerId"`
}

// ListAuditParams bounds the audit log listing.
type ListAuditParams struct {
	Limit int `form:"limit,default=100" binding:"min=1,max=1000"`
}

// ListNotificationsParams filters notifications.
type ListNotificationsParams struct {
	UnreadOnly bool `form:"unread"`
}
