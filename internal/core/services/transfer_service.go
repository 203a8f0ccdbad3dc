package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/SscSPs/agency_ledger/internal/platform/lock"
	"github.com/SscSPs/agency_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// transferService moves money between two accounts as a linked expense/income pair.
type transferService struct {
	BaseService
	repo   portsrepo.LedgerRepository
	engine *EffectEngine
	locker lock.Locker
}

// NewTransferService creates a new TransferService.
func NewTransferService(repo portsrepo.LedgerRepository, engine *EffectEngine, locker lock.Locker, opts ...ServiceOption) portssvc.TransferSvcFacade {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	s := &transferService{repo: repo, engine: engine, locker: locker}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer debits the source and credits the destination. Across currencies
// the destination receives amount*rate, rounded to cents. Unlike a regular
// expense, a transfer never overdraws its source.
func (s *transferService) Transfer(ctx context.Context, actor domain.Actor, req dto.TransferRequest) (*dto.TransferResponse, error) {
	if err := s.RequireManager(ctx, actor, "transfer funds"); err != nil {
		return nil, err
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, apperrors.ErrSameAccount
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

	var resp dto.TransferResponse
	err = holdLock(ctx, &s.BaseService, s.locker, lock.AccountKey(req.FromAccountID), func() error {
		return s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
			settings, err := tx.GetSettings(ctx)
			if err != nil {
				return err
			}
			if settings.FinancialLockDate != nil && !date.After(domain.DateOnly(*settings.FinancialLockDate)) {
				return fmt.Errorf("%w: transfer dated %s", apperrors.ErrLockedPeriod, req.Date)
			}

			from, err := tx.FindAccountByID(ctx, req.FromAccountID)
			if err != nil {
				return err
			}
			to, err := tx.FindAccountByID(ctx, req.ToAccountID)
			if err != nil {
				return err
			}
			if !from.IsActive() || !to.IsActive() {
				return fmt.Errorf("%w: transfers require active accounts", apperrors.ErrNotFound)
			}

			received := amount
			if from.Currency != to.Currency {
				if !req.ExchangeRate.IsPositive() {
					return apperrors.NewValidationError("exchangeRate", "must be positive when currencies differ")
				}
				received = accounting.Round2(amount.Mul(req.ExchangeRate))
			}
			if from.Balance.LessThan(amount) {
				return fmt.Errorf("%w: %s holds %s %s, transfer needs %s", apperrors.ErrInsufficientFunds,
					from.Name, from.Balance.StringFixed(2), from.Currency, amount.StringFixed(2))
			}

			desc := req.Description
			if desc == "" {
				desc = fmt.Sprintf("Transfer from %s to %s", from.Name, to.Name)
			}
			now := s.CurrentTime()
			audit := domain.AuditFields{CreatedAt: now, CreatedBy: actor.ID, LastUpdatedAt: now, LastUpdatedBy: actor.ID}

			outgoing := domain.Transaction{
				TransactionID:  uuid.NewString(),
				Date:           date,
				Description:    desc,
				Amount:         amount,
				Kind:           domain.Expense,
				Category:       domain.CategoryInternalTransfer,
				ApprovalStatus: domain.Approved,
				Expense:        &domain.ExpenseDetails{AccountID: &from.AccountID},
				AuditFields:    audit,
			}
			incoming := domain.Transaction{
				TransactionID:  uuid.NewString(),
				Date:           date,
				Description:    desc,
				Amount:         received,
				Kind:           domain.Income,
				Category:       domain.CategoryInternalTransfer,
				ApprovalStatus: domain.Approved,
				Income: &domain.IncomeDetails{
					Payments:      []domain.Payment{{PaymentID: uuid.NewString(), Date: date, Amount: received, AccountID: to.AccountID}},
					PaymentStatus: domain.Paid,
				},
				AuditFields: audit,
			}

			for _, leg := range []domain.Transaction{outgoing, incoming} {
				if err := tx.SaveTransaction(ctx, leg); err != nil {
					return fmt.Errorf("failed to save transfer leg: %w", err)
				}
				if _, err := s.engine.Apply(ctx, tx, leg); err != nil {
					return err
				}
			}
			resp = dto.TransferResponse{Outgoing: outgoing, Incoming: incoming}
			return nil
		})
	})
	if err != nil {
		s.LogFailure(ctx, err, "Transfer failed",
			slog.String("from_account_id", req.FromAccountID),
			slog.String("to_account_id", req.ToAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Funds transferred",
		slog.String("outgoing_id", resp.Outgoing.TransactionID),
		slog.String("incoming_id", resp.Incoming.TransactionID),
		slog.String("amount", resp.Outgoing.Amount.String()),
		slog.String("received", resp.Incoming.Amount.String()))
	s.RecordAudit(ctx, actor, fmt.Sprintf("Transferred %s (%s received): %s",
		resp.Outgoing.Amount.StringFixed(2), resp.Incoming.Amount.StringFixed(2), resp.Outgoing.Description), &resp.Outgoing.TransactionID)
	return &resp, nil
}
