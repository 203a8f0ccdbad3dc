package services

import (
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/platform/lock"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repo portsrepo.LedgerRepository, locker lock.Locker, opts ...ServiceOption) *portssvc.ServiceContainer {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	container := &portssvc.ServiceContainer{}

	// Audit first: every other service writes through it
	container.Audit = NewAuditService(repo, opts...)

	shared := append([]ServiceOption{
		WithAuditLogger(container.Audit),
		WithNotifier(container.Audit),
	}, opts...)

	engine := NewEffectEngine(shared...)

	container.Transaction = NewTransactionService(repo, engine, locker, shared...)
	container.Transfer = NewTransferService(repo, engine, locker, shared...)
	container.Account = NewAccountService(repo, shared...)
	container.Employee = NewEmployeeService(repo, engine, locker, shared...)
	container.Collaborator = NewCollaboratorService(repo, engine, locker, shared...)
	container.Customer = NewCustomerService(repo, shared...)
	container.Settings = NewSettingsService(repo, shared...)
	container.Backup = NewBackupService(repo, shared...)

	return container
}
