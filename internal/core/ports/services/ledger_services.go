package services

import (
	"context"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AuditLogger records who did what. Failures never abort the calling operation.
type AuditLogger interface {
	Record(ctx context.Context, actor domain.Actor, description string, transactionID *string)
}

// Notifier raises notifications for managers.
type Notifier interface {
	Notify(ctx context.Context, message string, transactionID *string)
}

// TransactionSvcFacade drives the approval-gated transaction lifecycle
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, actor domain.Actor, req dto.TransactionRequest) (*domain.TransactionOutcome, error)
	UpdateTransaction(ctx context.Context, actor domain.Actor, transactionID string, req dto.TransactionRequest) (*domain.TransactionOutcome, error)
	ApproveTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.TransactionOutcome, error)
	RejectTransaction(ctx context.Context, actor domain.Actor, transactionID string) error
	DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID string) error
	GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, actor domain.Actor, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// TransferSvcFacade moves money between accounts
type TransferSvcFacade interface {
	Transfer(ctx context.Context, actor domain.Actor, req dto.TransferRequest) (*dto.TransferResponse, error)
}

// AccountSvcFacade manages bank accounts and cash wallets
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, actor domain.Actor, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, actor domain.Actor, accountID string) error
}

// EmployeeSvcFacade manages employees and their payouts
type EmployeeSvcFacade interface {
	CreateEmployee(ctx context.Context, actor domain.Actor, req dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	PayEmployee(ctx context.Context, actor domain.Actor, employeeID string, req dto.PayoutRequest) (*domain.Transaction, error)
}

// CollaboratorSvcFacade manages brokers and translators and their payouts
type CollaboratorSvcFacade interface {
	CreateCollaborator(ctx context.Context, actor domain.Actor, req dto.CreateCollaboratorRequest) (*domain.Collaborator, error)
	GetCollaboratorByID(ctx context.Context, collaboratorID string) (*domain.Collaborator, error)
	ListCollaborators(ctx context.Context) ([]domain.Collaborator, error)
	PayCollaborator(ctx context.Context, actor domain.Actor, collaboratorID string, req dto.PayoutRequest) (*domain.Transaction, error)
}

// CustomerSvcFacade manages customers and their derived debt
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, actor domain.Actor, req dto.CreateCustomerRequest) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomerDebt(ctx context.Context, customerID string) (decimal.Decimal, error)
}

// SettingsSvcFacade manages the settings aggregate and projects
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	SetFinancialLockDate(ctx context.Context, actor domain.Actor, req dto.LockDateRequest) (domain.Settings, error)
	UpdateCompanyInfo(ctx context.Context, actor domain.Actor, req dto.CompanyInfoRequest) (domain.Settings, error)
	AddExpenseCategory(ctx context.Context, actor domain.Actor, req dto.ExpenseCategoryRequest) (domain.Settings, error)
	CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateProjectRequest) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
}

// AuditSvcFacade exposes the audit trail and notifications
type AuditSvcFacade interface {
	AuditLogger
	Notifier
	ListAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error)
	ListNotifications(ctx context.Context, unreadOnly bool) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
}

// BackupSvcFacade exports and restores the full snapshot
type BackupSvcFacade interface {
	Export(ctx context.Context) (domain.Snapshot, error)
	Restore(ctx context.Context, actor domain.Actor, snap domain.Snapshot) error
}

// ServiceContainer holds all service facades
type ServiceContainer struct {
	Transaction  TransactionSvcFacade
	Transfer     TransferSvcFacade
	Account      AccountSvcFacade
	Employee     EmployeeSvcFacade
	Collaborator CollaboratorSvcFacade
	Customer     CustomerSvcFacade
	Settings     SettingsSvcFacade
	Audit        AuditSvcFacade
	Backup       BackupSvcFacade
}
