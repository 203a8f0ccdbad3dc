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
	"github.com/SscSPs/agency_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	repo portsrepo.LedgerRepository
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.LedgerRepository, opts ...ServiceOption) portssvc.AccountSvcFacade {
	s := &accountService{repo: repo}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := s.RequireManager(ctx, actor, "create accounts"); err != nil {
		return nil, err
	}
	verr := &apperrors.ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		verr.Add("name", "is required")
	}
	if !req.Currency.IsValid() {
		verr.Add("currency", "must be one of TRY, USD, EUR")
	}
	if req.Kind != domain.AccountBank && req.Kind != domain.AccountCash {
		verr.Add("kind", "must be Bank or Cash")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Kind:          req.Kind,
		Currency:      req.Currency,
		Balance:       accounting.Round2(req.OpeningBalance),
		OwnerID:       req.OwnerID,
		AccountNumber: req.AccountNumber,
		AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: actor.ID, LastUpdatedAt: now, LastUpdatedBy: actor.ID},
	}

	err := s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
		if account.OwnerID != nil {
			if _, err := tx.FindEmployeeByID(ctx, *account.OwnerID); err != nil {
				return err
			}
		}
		return tx.SaveAccount(ctx, account)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create account", slog.String("name", account.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("kind", string(account.Kind)),
		slog.String("currency", string(account.Currency)))
	s.RecordAudit(ctx, actor, fmt.Sprintf("Created %s account %q", account.Kind, account.Name), nil)
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.FindAccountByID(ctx, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

// UpdateAccount changes descriptive fields only; balances move through transactions.
func (s *accountService) UpdateAccount(ctx context.Context, actor domain.Actor, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if err := s.RequireManager(ctx, actor, "update accounts"); err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, apperrors.NewValidationError("name", "must not be empty")
	}

	var updated domain.Account
	err := s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
		acc, err := tx.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		if !acc.IsActive() {
			return fmt.Errorf("%w: account %s is deleted", apperrors.ErrNotFound, accountID)
		}
		if req.Name != nil {
			acc.Name = strings.TrimSpace(*req.Name)
		}
		if req.AccountNumber != nil {
			acc.AccountNumber = req.AccountNumber
		}
		acc.LastUpdatedAt = s.CurrentTime()
		acc.LastUpdatedBy = actor.ID
		updated = *acc
		return tx.SaveAccount(ctx, *acc)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	s.RecordAudit(ctx, actor, fmt.Sprintf("Updated account %q", updated.Name), nil)
	return &updated, nil
}

// DeleteAccount soft-deletes an account that no transaction references.
func (s *accountService) DeleteAccount(ctx context.Context, actor domain.Actor, accountID string) error {
	if err := s.RequireManager(ctx, actor, "delete accounts"); err != nil {
		return err
	}

	var name string
	err := s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
		acc, err := tx.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		if !acc.IsActive() {
			return fmt.Errorf("%w: account %s is deleted", apperrors.ErrNotFound, accountID)
		}
		refs, err := tx.ListTransactions(ctx, domain.TransactionFilter{AccountID: &accountID})
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return fmt.Errorf("%w: account %q is referenced by %d transactions", apperrors.ErrConflict, acc.Name, len(refs))
		}
		now := s.CurrentTime()
		acc.DeletedAt = &now
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = actor.ID
		name = acc.Name
		return tx.SaveAccount(ctx, *acc)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	s.RecordAudit(ctx, actor, fmt.Sprintf("Deleted account %q", name), nil)
	return nil
}
