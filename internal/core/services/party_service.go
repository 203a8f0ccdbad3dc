package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/SscSPs/agency_ledger/internal/platform/lock"
	"github.com/SscSPs/agency_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// payouts records manual payments that settle an outstanding balance. A payout
// is an approved expense flagged SettlesOutstanding, so deleting it later
// restores both the account and the outstanding balance.
type payouts struct {
	BaseService
	repo   portsrepo.LedgerRepository
	engine *EffectEngine
	locker lock.Locker
}

type payee struct {
	employeeID     *string
	collaboratorID *string
	name           string
	category       string
}

func (p *payouts) record(ctx context.Context, actor domain.Actor, req dto.PayoutRequest, resolve func(tx portsrepo.LedgerReader) (payee, error)) (*domain.Transaction, error) {
	if err := p.RequireManager(ctx, actor, "record payouts"); err != nil {
		return nil, err
	}
	verr := &apperrors.ValidationError{}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		verr.Add("date", "must be a YYYY-MM-DD date")
	}
	amount := accounting.Round2(req.Amount)
	if !amount.IsPositive() {
		verr.Add("amount", "must be positive")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var txn domain.Transaction
	var warnings []string
	err = holdLock(ctx, &p.BaseService, p.locker, lock.AccountKey(req.AccountID), func() error {
		return p.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
			settings, err := tx.GetSettings(ctx)
			if err != nil {
				return err
			}
			if settings.FinancialLockDate != nil && !date.After(domain.DateOnly(*settings.FinancialLockDate)) {
				return fmt.Errorf("%w: payout dated %s", apperrors.ErrLockedPeriod, req.Date)
			}
			if err := requireActiveAccount(ctx, tx, req.AccountID); err != nil {
				return err
			}
			to, err := resolve(tx)
			if err != nil {
				return err
			}

			desc := strings.TrimSpace(req.Description)
			if desc == "" {
				desc = "Payment to " + to.name
			}
			now := p.CurrentTime()
			accountID := req.AccountID
			txn = domain.Transaction{
				TransactionID:  uuid.NewString(),
				Date:           date,
				Description:    desc,
				Amount:         amount,
				Kind:           domain.Expense,
				Category:       to.category,
				ApprovalStatus: domain.Approved,
				Expense: &domain.ExpenseDetails{
					AccountID:          &accountID,
					EmployeeID:         to.employeeID,
					CollaboratorID:     to.collaboratorID,
					SettlesOutstanding: true,
				},
				AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actor.ID, LastUpdatedAt: now, LastUpdatedBy: actor.ID},
			}
			if err := tx.SaveTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to save payout: %w", err)
			}
			warnings, err = p.engine.Apply(ctx, tx, txn)
			return err
		})
	})
	if err != nil {
		p.LogFailure(ctx, err, "Failed to record payout", slog.String("account_id", req.AccountID))
		return nil, err
	}

	for _, w := range warnings {
		p.LogWarn(ctx, "Payout left an account overdrawn", slog.String("transaction_id", txn.TransactionID), slog.String("warning", w))
	}
	p.LogInfo(ctx, "Payout recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("category", txn.Category),
		slog.String("amount", txn.Amount.String()))
	p.RecordAudit(ctx, actor, fmt.Sprintf("Recorded %s of %s: %s", strings.ToLower(txn.Category), txn.Amount.StringFixed(2), txn.Description), &txn.TransactionID)
	return &txn, nil
}

// employeeService implements the EmployeeSvcFacade interface
type employeeService struct {
	BaseService
	repo    portsrepo.LedgerRepository
	payouts *payouts
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(repo portsrepo.LedgerRepository, engine *EffectEngine, locker lock.Locker, opts ...ServiceOption) portssvc.EmployeeSvcFacade {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	s := &employeeService{repo: repo, payouts: &payouts{repo: repo, engine: engine, locker: locker}}
	applyOptions(&s.BaseService, opts)
	applyOptions(&s.payouts.BaseService, opts)
	return s
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// CreateEmployee registers an employee together with a personal TRY cash wallet.
func (s *employeeService) CreateEmployee(ctx context.Context, actor domain.Actor, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if err := s.RequireManager(ctx, actor, "create employees"); err != nil {
		return nil, err
	}
	verr := &apperrors.ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		verr.Add("name", "is required")
	}
	if !req.Role.IsValid() {
		verr.Add("role", "must be Manager or Employee")
	}
	checkRate(verr, "defaultCommissionRate", req.DefaultCommissionRate)
	if req.MonthlySalary.IsNegative() {
		verr.Add("monthlySalary", "must not be negative")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actor.ID, LastUpdatedAt: now, LastUpdatedBy: actor.ID}
	employee := domain.Employee{
		EmployeeID:            uuid.NewString(),
		Name:                  strings.TrimSpace(req.Name),
		Role:                  req.Role,
		DefaultCommissionRate: req.DefaultCommissionRate,
		MonthlySalary:         accounting.Round2(req.MonthlySalary),
		AuditFields:           audit,
	}
	wallet := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        employee.Name + " Cash",
		Kind:        domain.AccountCash,
		Currency:    domain.TRY,
		OwnerID:     &employee.EmployeeID,
		AuditFields: audit,
	}
	employee.CashAccountID = wallet.AccountID

	err := s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
		if err := tx.SaveEmployee(ctx, employee); err != nil {
			return err
		}
		return tx.SaveAccount(ctx, wallet)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create employee", slog.String("name", employee.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Employee created",
		slog.String("employee_id", employee.EmployeeID),
		slog.String("cash_account_id", wallet.AccountID))
	s.RecordAudit(ctx, actor, fmt.Sprintf("Created employee %q", employee.Name), nil)
	return &employee, nil
}

func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return s.repo.FindEmployeeByID(ctx, employeeID)
}

func (s *employeeService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.ListEmployees(ctx)
}

// PayEmployee pays an employee from accountID and reduces what the company owes them.
func (s *employeeService) PayEmployee(ctx context.Context, actor domain.Actor, employeeID string, req dto.PayoutRequest) (*domain.Transaction, error) {
	return s.payouts.record(ctx, actor, req, func(tx portsrepo.LedgerReader) (payee, error) {
		e, err := tx.FindEmployeeByID(ctx, employeeID)
		if err != nil {
			return payee{}, err
		}
		id := e.EmployeeID
		return payee{employeeID: &id, name: e.Name, category: domain.CategoryEmployeePayment}, nil
	})
}

// collaboratorService implements the CollaboratorSvcFacade interface
type collaboratorService struct {
	BaseService
	repo    portsrepo.LedgerRepository
	payouts *payouts
}

// NewCollaboratorService creates a new CollaboratorService.
func NewCollaboratorService(repo portsrepo.LedgerRepository, engine *EffectEngine, locker lock.Locker, opts ...ServiceOption) portssvc.CollaboratorSvcFacade {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	s := &collaboratorService{repo: repo, payouts: &payouts{repo: repo, engine: engine, locker: locker}}
	applyOptions(&s.BaseService, opts)
	applyOptions(&s.payouts.BaseService, opts)
	return s
}

var _ portssvc.CollaboratorSvcFacade = (*collaboratorService)(nil)

func (s *collaboratorService) CreateCollaborator(ctx context.Context, actor domain.Actor, req dto.CreateCollaboratorRequest) (*domain.Collaborator, error) {
	if err := s.RequireManager(ctx, actor, "create collaborators"); err != nil {
		return nil, err
	}
	verr := &apperrors.ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		verr.Add("name", "is required")
	}
	if req.Kind != domain.CollaboratorBroker && req.Kind != domain.CollaboratorTranslator {
		verr.Add("kind", "must be Broker or Translator")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	c := domain.Collaborator{
		CollaboratorID: uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		Kind:           req.Kind,
		Phone:          req.Phone,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: actor.ID, LastUpdatedAt: now, LastUpdatedBy: actor.ID},
	}
	err := s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
		return tx.SaveCollaborator(ctx, c)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create collaborator", slog.String("name", c.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Collaborator created", slog.String("collaborator_id", c.CollaboratorID))
	s.RecordAudit(ctx, actor, fmt.Sprintf("Created %s %q", strings.ToLower(string(c.Kind)), c.Name), nil)
	return &c, nil
}

func (s *collaboratorService) GetCollaboratorByID(ctx context.Context, collaboratorID string) (*domain.Collaborator, error) {
	return s.repo.FindCollaboratorByID(ctx, collaboratorID)
}

func (s *collaboratorService) ListCollaborators(ctx context.Context) ([]domain.Collaborator, error) {
	return s.repo.ListCollaborators(ctx)
}

// PayCollaborator pays a collaborator from accountID and reduces their outstanding fees.
func (s *collaboratorService) PayCollaborator(ctx context.Context, actor domain.Actor, collaboratorID string, req dto.PayoutRequest) (*domain.Transaction, error) {
	return s.payouts.record(ctx, actor, req, func(tx portsrepo.LedgerReader) (payee, error) {
		c, err := tx.FindCollaboratorByID(ctx, collaboratorID)
		if err != nil {
			return payee{}, err
		}
		id := c.CollaboratorID
		return payee{collaboratorID: &id, name: c.Name, category: domain.CategoryCollaboratorPayment}, nil
	})
}
