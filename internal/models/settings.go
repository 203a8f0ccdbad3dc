package models

import "time"

// Settings is the single row of the settings table.
type Settings struct {
	FinancialLockDate *time.Time `db:"financial_lock_date"`
	CompanyName       string     `db:"company_name"`
	CompanyAddress    string     `db:"company_address"`
	CompanyPhone      string     `db:"company_phone"`
	CompanyEmail      string     `db:"company_email"`
	CompanyTaxNumber  string     `db:"company_tax_number"`
	CompanyTaxOffice  string     `db:"company_tax_office"`
	ExpenseCategories []string   `db:"expense_categories"` // text[]
}

// Project is a row of the projects table.
type Project struct {
	ProjectID  string  `db:"project_id"`
	Name       string  `db:"name"`
	CustomerID *string `db:"customer_id"`
	Status     string  `db:"status"`
	AuditFields
}

// AuditEntry is a row of the audit_log table.
type AuditEntry struct {
	AuditID       string    `db:"audit_id"`
	ActorID       string    `db:"actor_id"`
	ActorName     string    `db:"actor_name"`
	Description   string    `db:"description"`
	TransactionID *string   `db:"transaction_id"`
	Timestamp     time.Time `db:"logged_at"`
}

// Notification is a row of the notifications table.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	Message        string    `db:"message"`
	TransactionID  *string   `db:"transaction_id"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
}
