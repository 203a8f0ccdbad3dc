package domain

import "time"

// CompanyInfo is the letterhead data of the agency.
type CompanyInfo struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	TaxNumber string `json:"taxNumber,omitempty"`
	TaxOffice string `json:"taxOffice,omitempty"`
}

// Settings is the process-wide aggregate owning the financial lock date.
// A nil FinancialLockDate means no period is closed.
type Settings struct {
	FinancialLockDate *time.Time  `json:"financialLockDate,omitempty"`
	CompanyInfo       CompanyInfo `json:"companyInfo"`
	ExpenseCategories []string    `json:"expenseCategories"`
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	c := s
	if s.FinancialLockDate != nil {
		d := *s.FinancialLockDate
		c.FinancialLockDate = &d
	}
	c.ExpenseCategories = append([]string(nil), s.ExpenseCategories...)
	return c
}

// ProjectStatus tracks whether a project still accepts work.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
)

// Project groups transactions done for one customer engagement.
type Project struct {
	ProjectID  string        `json:"id"`
	Name       string        `json:"name"`
	CustomerID *string       `json:"customerId,omitempty"`
	Status     ProjectStatus `json:"status"`
	AuditFields
}

// AuditEntry records who did what, and when.
type AuditEntry struct {
	AuditID       string    `json:"id"`
	ActorID       string    `json:"actorId"`
	ActorName     string    `json:"actorName"`
	Description   string    `json:"description"`
	TransactionID *string   `json:"transactionId,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Notification is addressed to managers, e.g. when a transaction awaits approval.
type Notification struct {
	NotificationID string    `json:"id"`
	Message        string    `json:"message"`
	TransactionID  *string   `json:"transactionId,omitempty"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Snapshot is the full backup document. Restoring it trusts every value as-is.
type Snapshot struct {
	Accounts          []Account      `json:"accounts"`
	Employees         []Employee     `json:"employees"`
	Collaborators     []Collaborator `json:"collaborators"`
	Customers         []Customer     `json:"customers"`
	Transactions      []Transaction  `json:"transactions"`
	CompanyInfo       CompanyInfo    `json:"companyInfo"`
	ExpenseCategories []string       `json:"expenseCategories"`
	Projects          []Project      `json:"projects"`
	Notifications     []Notification `json:"notifications"`
	AuditLog          []AuditEntry   `json:"auditLog"`
	FinancialLockDate *time.Time     `json:"financialLockDate,omitempty"`
}
