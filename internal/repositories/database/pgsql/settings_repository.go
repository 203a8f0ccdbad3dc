package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/models"
	"github.com/SscSPs/agency_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// settingsRowID is the primary key of the single settings row.
const settingsRowID = 1

// GetSettings reads the settings aggregate. Inside a transaction the row lock
// serializes every transition that consults the financial lock date.
func (s *ledgerStore) GetSettings(ctx context.Context) (domain.Settings, error) {
	query := `
		SELECT financial_lock_date, company_name, company_address, company_phone, company_email,
			company_tax_number, company_tax_office, expense_categories
		FROM settings WHERE settings_id = $1` + s.suffix()
	var m models.Settings
	err := s.q.QueryRow(ctx, query, settingsRowID).Scan(
		&m.FinancialLockDate,
		&m.CompanyName,
		&m.CompanyAddress,
		&m.CompanyPhone,
		&m.CompanyEmail,
		&m.CompanyTaxNumber,
		&m.CompanyTaxOffice,
		&m.ExpenseCategories,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Settings{}, nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return mapping.ToDomainSettings(m), nil
}

func (s *ledgerStore) SaveSettings(ctx context.Context, settings domain.Settings) error {
	m := mapping.ToModelSettings(settings)
	query := `
		INSERT INTO settings (settings_id, financial_lock_date, company_name, company_address, company_phone,
			company_email, company_tax_number, company_tax_office, expense_categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (settings_id) DO UPDATE SET
			financial_lock_date = EXCLUDED.financial_lock_date,
			company_name = EXCLUDED.company_name,
			company_address = EXCLUDED.company_address,
			company_phone = EXCLUDED.company_phone,
			company_email = EXCLUDED.company_email,
			company_tax_number = EXCLUDED.company_tax_number,
			company_tax_office = EXCLUDED.company_tax_office,
			expense_categories = EXCLUDED.expense_categories;
	`
	_, err := s.q.Exec(ctx, query,
		settingsRowID,
		m.FinancialLockDate,
		m.CompanyName,
		m.CompanyAddress,
		m.CompanyPhone,
		m.CompanyEmail,
		m.CompanyTaxNumber,
		m.CompanyTaxOffice,
		m.ExpenseCategories,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

const projectColumns = `project_id, name, customer_id, status, created_at, created_by, last_updated_at, last_updated_by`

func scanProject(row pgx.Row) (models.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID,
		&m.Name,
		&m.CustomerID,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (s *ledgerStore) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	m, err := scanProject(s.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE project_id = $1`, projectID))
	if err != nil {
		return nil, notFoundOr(err, "project", projectID)
	}
	p := mapping.ToDomainProject(m)
	return &p, nil
}

func (s *ledgerStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.q.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY name, project_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	ms, err := collect(rows, scanProject)
	if err != nil {
		return nil, fmt.Errorf("failed to scan projects: %w", err)
	}
	out := make([]domain.Project, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainProject(m)
	}
	return out, nil
}

func (s *ledgerStore) SaveProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (project_id) DO UPDATE SET
			name = EXCLUDED.name,
			customer_id = EXCLUDED.customer_id,
			status = EXCLUDED.status,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := s.q.Exec(ctx, query,
		m.ProjectID,
		m.Name,
		m.CustomerID,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return writeErr(err, "project", m.ProjectID)
	}
	return nil
}
