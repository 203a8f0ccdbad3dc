// Package memory provides an in-process LedgerRepository.
//
// Committed state is an immutable snapshot. Writers are serialized; each
// Transact call works on a deep clone and publishes it only when the callback
// succeeds, so readers never observe a half-applied transition.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
)

// LedgerRepository is an in-memory, versioned implementation of portsrepo.LedgerRepository.
type LedgerRepository struct {
	writeMu sync.Mutex // serialises writers

	mu        sync.RWMutex // guards committed and version
	committed *state
	version   uint64

	auditMu       sync.RWMutex
	audit         []domain.AuditEntry
	notifications []domain.Notification
}

// NewLedgerRepository creates an empty repository.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{committed: newState()}
}

var _ portsrepo.LedgerRepository = (*LedgerRepository)(nil)

// Version returns the number of committed units of work.
func (r *LedgerRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *LedgerRepository) current() view {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return view{s: r.committed}
}

// Transact runs fn against a private clone and publishes it on success.
func (r *LedgerRepository) Transact(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	work := r.current().s.clone()
	if err := fn(view{s: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.committed = work
	r.version++
	r.mu.Unlock()
	return nil
}

func (r *LedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.current().FindAccountByID(ctx, accountID)
}

func (r *LedgerRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return r.current().ListAccounts(ctx)
}

func (r *LedgerRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return r.current().FindEmployeeByID(ctx, employeeID)
}

func (r *LedgerRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return r.current().ListEmployees(ctx)
}

func (r *LedgerRepository) FindCollaboratorByID(ctx context.Context, collaboratorID string) (*domain.Collaborator, error) {
	return r.current().FindCollaboratorByID(ctx, collaboratorID)
}

func (r *LedgerRepository) ListCollaborators(ctx context.Context) ([]domain.Collaborator, error) {
	return r.current().ListCollaborators(ctx)
}

func (r *LedgerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return r.current().FindCustomerByID(ctx, customerID)
}

func (r *LedgerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return r.current().ListCustomers(ctx)
}

func (r *LedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.current().FindTransactionByID(ctx, transactionID)
}

func (r *LedgerRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	return r.current().ListTransactions(ctx, filter)
}

func (r *LedgerRepository) GetSettings(ctx context.Context) (domain.Settings, error) {
	return r.current().GetSettings(ctx)
}

func (r *LedgerRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return r.current().FindProjectByID(ctx, projectID)
}

func (r *LedgerRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return r.current().ListProjects(ctx)
}

// AppendAuditEntry appends to the audit log. Append-only.
func (r *LedgerRepository) AppendAuditEntry(_ context.Context, entry domain.AuditEntry) error {
	r.auditMu.Lock()
	defer r.auditMu.Unlock()
	r.audit = append(r.audit, entry)
	return nil
}

// ListAuditEntries returns the newest entries first. limit <= 0 returns all.
func (r *LedgerRepository) ListAuditEntries(_ context.Context, limit int) ([]domain.AuditEntry, error) {
	r.auditMu.RLock()
	defer r.auditMu.RUnlock()
	n := len(r.audit)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.AuditEntry, 0, n)
	for i := len(r.audit) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.audit[i])
	}
	return out, nil
}

func (r *LedgerRepository) AppendNotification(_ context.Context, n domain.Notification) error {
	r.auditMu.Lock()
	defer r.auditMu.Unlock()
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *LedgerRepository) ListNotifications(_ context.Context, unreadOnly bool) ([]domain.Notification, error) {
	r.auditMu.RLock()
	defer r.auditMu.RUnlock()
	out := make([]domain.Notification, 0, len(r.notifications))
	for i := len(r.notifications) - 1; i >= 0; i-- {
		n := r.notifications[i]
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *LedgerRepository) MarkNotificationRead(_ context.Context, notificationID string) error {
	r.auditMu.Lock()
	defer r.auditMu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].NotificationID == notificationID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return fmt.Errorf("%w: notification %s", apperrors.ErrNotFound, notificationID)
}

// ExportSnapshot returns the committed state together with audit data.
func (r *LedgerRepository) ExportSnapshot(ctx context.Context) (domain.Snapshot, error) {
	v := r.current()
	snap := domain.Snapshot{}
	snap.Accounts = sortedValues(v.s.accounts, func(a domain.Account) string { return a.AccountID })
	snap.Employees = sortedValues(v.s.employees, func(e domain.Employee) string { return e.EmployeeID })
	snap.Collaborators = sortedValues(v.s.collaborators, func(c domain.Collaborator) string { return c.CollaboratorID })
	snap.Customers = sortedValues(v.s.customers, func(c domain.Customer) string { return c.CustomerID })
	snap.Projects = sortedValues(v.s.projects, func(p domain.Project) string { return p.ProjectID })
	txns, err := v.ListTransactions(ctx, domain.TransactionFilter{})
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap.Transactions = txns
	settings := v.s.settings.Clone()
	snap.CompanyInfo = settings.CompanyInfo
	snap.ExpenseCategories = settings.ExpenseCategories
	snap.FinancialLockDate = settings.FinancialLockDate

	r.auditMu.RLock()
	snap.AuditLog = append([]domain.AuditEntry(nil), r.audit...)
	snap.Notifications = append([]domain.Notification(nil), r.notifications...)
	r.auditMu.RUnlock()
	return snap, nil
}

// RestoreSnapshot replaces every collection with the contents of snap.
func (r *LedgerRepository) RestoreSnapshot(ctx context.Context, snap domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	s := newState()
	for _, a := range snap.Accounts {
		s.accounts[a.AccountID] = a
	}
	for _, e := range snap.Employees {
		s.employees[e.EmployeeID] = e
	}
	for _, c := range snap.Collaborators {
		s.collaborators[c.CollaboratorID] = c
	}
	for _, c := range snap.Customers {
		s.customers[c.CustomerID] = c
	}
	for _, p := range snap.Projects {
		s.projects[p.ProjectID] = p
	}
	for _, t := range snap.Transactions {
		s.transactions[t.TransactionID] = t.Clone()
	}
	s.settings = domain.Settings{
		FinancialLockDate: snap.FinancialLockDate,
		CompanyInfo:       snap.CompanyInfo,
		ExpenseCategories: snap.ExpenseCategories,
	}.Clone()

	r.auditMu.Lock()
	r.audit = append([]domain.AuditEntry(nil), snap.AuditLog...)
	r.notifications = append([]domain.Notification(nil), snap.Notifications...)
	r.auditMu.Unlock()

	r.mu.Lock()
	r.committed = s
	r.version++
	r.mu.Unlock()
	return nil
}

func sortedValues[T any](m map[string]T, id func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}
