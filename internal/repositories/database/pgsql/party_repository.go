package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/models"
	"github.com/SscSPs/agency_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `employee_id, name, role, default_commission_rate, monthly_salary, cash_account_id, outstanding_balance,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.Name,
		&m.Role,
		&m.DefaultCommissionRate,
		&m.MonthlySalary,
		&m.CashAccountID,
		&m.OutstandingBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (s *ledgerStore) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1` + s.suffix()
	m, err := scanEmployee(s.q.QueryRow(ctx, query, employeeID))
	if err != nil {
		return nil, notFoundOr(err, "employee", employeeID)
	}
	e := mapping.ToDomainEmployee(m)
	return &e, nil
}

func (s *ledgerStore) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := s.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name, employee_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	ms, err := collect(rows, scanEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to scan employees: %w", err)
	}
	out := make([]domain.Employee, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainEmployee(m)
	}
	return out, nil
}

func (s *ledgerStore) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			default_commission_rate = EXCLUDED.default_commission_rate,
			monthly_salary = EXCLUDED.monthly_salary,
			cash_account_id = EXCLUDED.cash_account_id,
			outstanding_balance = EXCLUDED.outstanding_balance,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := s.q.Exec(ctx, query,
		m.EmployeeID,
		m.Name,
		m.Role,
		m.DefaultCommissionRate,
		m.MonthlySalary,
		m.CashAccountID,
		m.OutstandingBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return writeErr(err, "employee", m.EmployeeID)
	}
	return nil
}

const collaboratorColumns = `collaborator_id, name, kind, phone, outstanding_balance,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCollaborator(row pgx.Row) (models.Collaborator, error) {
	var m models.Collaborator
	err := row.Scan(
		&m.CollaboratorID,
		&m.Name,
		&m.Kind,
		&m.Phone,
		&m.OutstandingBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (s *ledgerStore) FindCollaboratorByID(ctx context.Context, collaboratorID string) (*domain.Collaborator, error) {
	query := `SELECT ` + collaboratorColumns + ` FROM collaborators WHERE collaborator_id = $1` + s.suffix()
	m, err := scanCollaborator(s.q.QueryRow(ctx, query, collaboratorID))
	if err != nil {
		return nil, notFoundOr(err, "collaborator", collaboratorID)
	}
	c := mapping.ToDomainCollaborator(m)
	return &c, nil
}

func (s *ledgerStore) ListCollaborators(ctx context.Context) ([]domain.Collaborator, error) {
	rows, err := s.q.Query(ctx, `SELECT `+collaboratorColumns+` FROM collaborators ORDER BY name, collaborator_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	ms, err := collect(rows, scanCollaborator)
	if err != nil {
		return nil, fmt.Errorf("failed to scan collaborators: %w", err)
	}
	out := make([]domain.Collaborator, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainCollaborator(m)
	}
	return out, nil
}

func (s *ledgerStore) SaveCollaborator(ctx context.Context, collaborator domain.Collaborator) error {
	m := mapping.ToModelCollaborator(collaborator)
	query := `
		INSERT INTO collaborators (` + collaboratorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (collaborator_id) DO UPDATE SET
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			phone = EXCLUDED.phone,
			outstanding_balance = EXCLUDED.outstanding_balance,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := s.q.Exec(ctx, query,
		m.CollaboratorID,
		m.Name,
		m.Kind,
		m.Phone,
		m.OutstandingBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return writeErr(err, "collaborator", m.CollaboratorID)
	}
	return nil
}

const customerColumns = `customer_id, name, phone, email, address, tax_number,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.TaxNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (s *ledgerStore) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	m, err := scanCustomer(s.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, customerID))
	if err != nil {
		return nil, notFoundOr(err, "customer", customerID)
	}
	c := mapping.ToDomainCustomer(m)
	return &c, nil
}

func (s *ledgerStore) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.q.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name, customer_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	ms, err := collect(rows, scanCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to scan customers: %w", err)
	}
	out := make([]domain.Customer, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainCustomer(m)
	}
	return out, nil
}

func (s *ledgerStore) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (customer_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			tax_number = EXCLUDED.tax_number,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := s.q.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.Phone,
		m.Email,
		m.Address,
		m.TaxNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return writeErr(err, "customer", m.CustomerID)
	}
	return nil
}
