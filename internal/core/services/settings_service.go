package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/google/uuid"
)

// settingsService implements the SettingsSvcFacade interface
type settingsService struct {
	BaseService
	repo portsrepo.LedgerRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo portsrepo.LedgerRepository, opts ...ServiceOption) portssvc.SettingsSvcFacade {
	s := &settingsService{repo: repo}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context) (domain.Settings, error) {
	return s.repo.GetSettings(ctx)
}

// mutate applies fn to the settings aggregate inside one unit of work.
func (s *settingsService) mutate(ctx context.Context, fn func(*domain.Settings) error) (domain.Settings, error) {
	var out domain.Settings
	err := s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
		settings, err := tx.GetSettings(ctx)
		if err != nil {
			return err
		}
		if err := fn(&settings); err != nil {
			return err
		}
		out = settings
		return tx.SaveSettings(ctx, settings)
	})
	return out, err
}

// SetFinancialLockDate closes every period on or before the date. An empty date reopens all periods.
func (s *settingsService) SetFinancialLockDate(ctx context.Context, actor domain.Actor, req dto.LockDateRequest) (domain.Settings, error) {
	if err := s.RequireManager(ctx, actor, "change the financial lock date"); err != nil {
		return domain.Settings{}, err
	}
	var lockDate *time.Time
	if req.Date != "" {
		d, err := domain.ParseDate(req.Date)
		if err != nil {
			return domain.Settings{}, apperrors.NewValidationError("date", "must be a YYYY-MM-DD date")
		}
		lockDate = &d
	}

	settings, err := s.mutate(ctx, func(st *domain.Settings) error {
		st.FinancialLockDate = lockDate
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to set financial lock date")
		return domain.Settings{}, err
	}

	desc := "Cleared financial lock date"
	if lockDate != nil {
		desc = "Set financial lock date to " + lockDate.Format(domain.DateLayout)
	}
	s.LogInfo(ctx, desc, slog.String("actor_id", actor.ID))
	s.RecordAudit(ctx, actor, desc, nil)
	return settings, nil
}

func (s *settingsService) UpdateCompanyInfo(ctx context.Context, actor domain.Actor, req dto.CompanyInfoRequest) (domain.Settings, error) {
	if err := s.RequireManager(ctx, actor, "update company info"); err != nil {
		return domain.Settings{}, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return domain.Settings{}, apperrors.NewValidationError("name", "is required")
	}
	settings, err := s.mutate(ctx, func(st *domain.Settings) error {
		st.CompanyInfo = req.ToDomain()
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update company info")
		return domain.Settings{}, err
	}
	s.RecordAudit(ctx, actor, "Updated company info", nil)
	return settings, nil
}

func (s *settingsService) AddExpenseCategory(ctx context.Context, actor domain.Actor, req dto.ExpenseCategoryRequest) (domain.Settings, error) {
	if err := s.RequireManager(ctx, actor, "manage expense categories"); err != nil {
		return domain.Settings{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Settings{}, apperrors.NewValidationError("name", "is required")
	}
	settings, err := s.mutate(ctx, func(st *domain.Settings) error {
		if slices.ContainsFunc(st.ExpenseCategories, func(c string) bool { return strings.EqualFold(c, name) }) {
			return fmt.Errorf("%w: expense category %q", apperrors.ErrDuplicate, name)
		}
		st.ExpenseCategories = append(st.ExpenseCategories, name)
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to add expense category", slog.String("name", name))
		return domain.Settings{}, err
	}
	s.RecordAudit(ctx, actor, fmt.Sprintf("Added expense category %q", name), nil)
	return settings, nil
}

func (s *settingsService) CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateProjectRequest) (*domain.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	now := s.CurrentTime()
	p := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		CustomerID:  req.CustomerID,
		Status:      domain.ProjectActive,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actor.ID, LastUpdatedAt: now, LastUpdatedBy: actor.ID},
	}
	err := s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
		if p.CustomerID != nil {
			if _, err := tx.FindCustomerByID(ctx, *p.CustomerID); err != nil {
				return err
			}
		}
		return tx.SaveProject(ctx, p)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create project", slog.String("name", p.Name))
		return nil, err
	}
	s.RecordAudit(ctx, actor, fmt.Sprintf("Created project %q", p.Name), nil)
	return &p, nil
}

func (s *settingsService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.repo.ListProjects(ctx)
}
