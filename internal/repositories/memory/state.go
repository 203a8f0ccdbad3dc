package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
)

type state struct {
	accounts      map[string]domain.Account
	employees     map[string]domain.Employee
	collaborators map[string]domain.Collaborator
	customers     map[string]domain.Customer
	projects      map[string]domain.Project
	transactions  map[string]domain.Transaction
	settings      domain.Settings
}

func newState() *state {
	return &state{
		accounts:      make(map[string]domain.Account),
		employees:     make(map[string]domain.Employee),
		collaborators: make(map[string]domain.Collaborator),
		customers:     make(map[string]domain.Customer),
		projects:      make(map[string]domain.Project),
		transactions:  make(map[string]domain.Transaction),
	}
}

// clone deep-copies s. Value entities only need a map copy; transactions and
// settings carry slices and pointers and are cloned individually.
func (s *state) clone() *state {
	c := &state{
		accounts:      copyMap(s.accounts),
		employees:     copyMap(s.employees),
		collaborators: copyMap(s.collaborators),
		customers:     copyMap(s.customers),
		projects:      copyMap(s.projects),
		transactions:  make(map[string]domain.Transaction, len(s.transactions)),
		settings:      s.settings.Clone(),
	}
	for id, t := range s.transactions {
		c.transactions[id] = t.Clone()
	}
	return c
}

func copyMap[T any](m map[string]T) map[string]T {
	out := make(map[string]T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// view serves reads from a state and, inside Transact, writes to it.
type view struct {
	s *state
}

var _ portsrepo.LedgerTx = view{}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
}

func (v view) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	a, ok := v.s.accounts[accountID]
	if !ok {
		return nil, notFound("account", accountID)
	}
	return &a, nil
}

func (v view) ListAccounts(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(v.s.accounts))
	for _, a := range v.s.accounts {
		if a.IsActive() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}

func (v view) FindEmployeeByID(_ context.Context, employeeID string) (*domain.Employee, error) {
	e, ok := v.s.employees[employeeID]
	if !ok {
		return nil, notFound("employee", employeeID)
	}
	return &e, nil
}

func (v view) ListEmployees(_ context.Context) ([]domain.Employee, error) {
	out := make([]domain.Employee, 0, len(v.s.employees))
	for _, e := range v.s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v view) FindCollaboratorByID(_ context.Context, collaboratorID string) (*domain.Collaborator, error) {
	c, ok := v.s.collaborators[collaboratorID]
	if !ok {
		return nil, notFound("collaborator", collaboratorID)
	}
	return &c, nil
}

func (v view) ListCollaborators(_ context.Context) ([]domain.Collaborator, error) {
	out := make([]domain.Collaborator, 0, len(v.s.collaborators))
	for _, c := range v.s.collaborators {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v view) FindCustomerByID(_ context.Context, customerID string) (*domain.Customer, error) {
	c, ok := v.s.customers[customerID]
	if !ok {
		return nil, notFound("customer", customerID)
	}
	return &c, nil
}

func (v view) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(v.s.customers))
	for _, c := range v.s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v view) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	t, ok := v.s.transactions[transactionID]
	if !ok {
		return nil, notFound("transaction", transactionID)
	}
	c := t.Clone()
	return &c, nil
}

func (v view) ListTransactions(_ context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0, len(v.s.transactions))
	for _, t := range v.s.transactions {
		if filter.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.TransactionID < b.TransactionID
	})
	return out, nil
}

func (v view) GetSettings(_ context.Context) (domain.Settings, error) {
	return v.s.settings.Clone(), nil
}

func (v view) FindProjectByID(_ context.Context, projectID string) (*domain.Project, error) {
	p, ok := v.s.projects[projectID]
	if !ok {
		return nil, notFound("project", projectID)
	}
	return &p, nil
}

func (v view) ListProjects(_ context.Context) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(v.s.projects))
	for _, p := range v.s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v view) SaveAccount(_ context.Context, account domain.Account) error {
	v.s.accounts[account.AccountID] = account
	return nil
}

func (v view) SaveEmployee(_ context.Context, employee domain.Employee) error {
	v.s.employees[employee.EmployeeID] = employee
	return nil
}

func (v view) SaveCollaborator(_ context.Context, collaborator domain.Collaborator) error {
	v.s.collaborators[collaborator.CollaboratorID] = collaborator
	return nil
}

func (v view) SaveCustomer(_ context.Context, customer domain.Customer) error {
	v.s.customers[customer.CustomerID] = customer
	return nil
}

func (v view) SaveProject(_ context.Context, project domain.Project) error {
	v.s.projects[project.ProjectID] = project
	return nil
}

func (v view) SaveSettings(_ context.Context, settings domain.Settings) error {
	v.s.settings = settings.Clone()
	return nil
}

func (v view) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	v.s.transactions[txn.TransactionID] = txn.Clone()
	return nil
}

func (v view) RemoveTransaction(_ context.Context, transactionID string) error {
	if _, ok := v.s.transactions[transactionID]; !ok {
		return notFound("transaction", transactionID)
	}
	delete(v.s.transactions, transactionID)
	return nil
}

func (v view) ApplyBalanceChanges(_ context.Context, changes domain.BalanceChanges) error {
	for id := range changes.Accounts {
		if _, ok := v.s.accounts[id]; !ok {
			return notFound("account", id)
		}
	}
	for id := range changes.Employees {
		if _, ok := v.s.employees[id]; !ok {
			return notFound("employee", id)
		}
	}
	for id := range changes.Collaborators {
		if _, ok := v.s.collaborators[id]; !ok {
			return notFound("collaborator", id)
		}
	}

	for id, delta := range changes.Accounts {
		a := v.s.accounts[id]
		a.Balance = a.Balance.Add(delta)
		v.s.accounts[id] = a
	}
	for id, delta := range changes.Employees {
		e := v.s.employees[id]
		e.OutstandingBalance = e.OutstandingBalance.Add(delta)
		v.s.employees[id] = e
	}
	for id, delta := range changes.Collaborators {
		c := v.s.collaborators[id]
		c.OutstandingBalance = c.OutstandingBalance.Add(delta)
		v.s.collaborators[id] = c
	}
	return nil
}
