package repositories

import (
	"context"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account, including soft-deleted ones.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all active accounts ordered by name.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// PartyReader defines read operations for employees, collaborators and customers
type PartyReader interface {
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	FindCollaboratorByID(ctx context.Context, collaboratorID string) (*domain.Collaborator, error)
	ListCollaborators(ctx context.Context) ([]domain.Collaborator, error)
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// TransactionReader defines read operations for ledger transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its items and payments.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching filter, newest first.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// SettingsReader defines read operations for the settings aggregate and projects
type SettingsReader interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
}

// LedgerReader combines every read operation of the ledger store
type LedgerReader interface {
	AccountReader
	PartyReader
	TransactionReader
	SettingsReader
}

// LedgerWriter defines write operations available inside a unit of work
type LedgerWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	SaveCollaborator(ctx context.Context, collaborator domain.Collaborator) error
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	SaveProject(ctx context.Context, project domain.Project) error
	SaveSettings(ctx context.Context, settings domain.Settings) error

	// SaveTransaction upserts a transaction together with its items and payments.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// RemoveTransaction hard-removes a transaction from the active collection.
	RemoveTransaction(ctx context.Context, transactionID string) error

	// ApplyBalanceChanges adds every staged delta to its target balance.
	// All referenced IDs are verified before any balance is touched; a missing
	// ID fails with apperrors.ErrNotFound and nothing is mutated.
	ApplyBalanceChanges(ctx context.Context, changes domain.BalanceChanges) error
}

// LedgerTx is the unit-of-work view handed to Transact callbacks
type LedgerTx interface {
	LedgerReader
	LedgerWriter
}

// TransactionManager runs a function atomically
type TransactionManager interface {
	// Transact commits everything fn wrote if it returns nil, and nothing otherwise.
	Transact(ctx context.Context, fn func(tx LedgerTx) error) error
}

// AuditRepository persists audit entries and notifications
type AuditRepository interface {
	AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error
	ListAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error)
	AppendNotification(ctx context.Context, notification domain.Notification) error
	ListNotifications(ctx context.Context, unreadOnly bool) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
}

// SnapshotStore exports and replaces the full entity set
type SnapshotStore interface {
	ExportSnapshot(ctx context.Context) (domain.Snapshot, error)

	// RestoreSnapshot replaces all state with snap verbatim, atomically.
	RestoreSnapshot(ctx context.Context, snap domain.Snapshot) error
}

// LedgerRepository is the full persistence port consumed by the services
type LedgerRepository interface {
	LedgerReader
	TransactionManager
	AuditRepository
	SnapshotStore
}
