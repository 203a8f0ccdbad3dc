package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/SscSPs/agency_ledger/internal/platform/lock"
	"github.com/google/uuid"
)

// transactionService implements the approval-gated lifecycle. Every transition
// holds the per-transaction lock and runs in exactly one unit of work.
type transactionService struct {
	BaseService
	repo   portsrepo.LedgerRepository
	engine *EffectEngine
	locker lock.Locker
}

// NewTransactionService creates a new TransactionService. A nil locker falls
// back to an in-process one.
func NewTransactionService(repo portsrepo.LedgerRepository, engine *EffectEngine, locker lock.Locker, opts ...ServiceOption) portssvc.TransactionSvcFacade {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	s := &transactionService{repo: repo, engine: engine, locker: locker}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func statusFor(actor domain.Actor) domain.ApprovalStatus {
	if actor.IsManager() {
		return domain.Approved
	}
	return domain.Pending
}

// withLock holds the lock for transactionID while fn runs.
func (s *transactionService) withLock(ctx context.Context, transactionID string, fn func() error) error {
	return holdLock(ctx, &s.BaseService, s.locker, lock.TransactionKey(transactionID), fn)
}

func holdLock(ctx context.Context, base *BaseService, locker lock.Locker, key string, fn func() error) error {
	rel, err := locker.Obtain(ctx, key)
	if err != nil {
		base.LogWarn(ctx, "Failed to obtain lock", slog.String("key", key), slog.String("error", err.Error()))
		return err
	}
	defer func() {
		err := rel.Release(context.WithoutCancel(ctx))
		switch {
		case errors.Is(err, lock.ErrLockExpired):
			base.LogWarn(ctx, "Lock expired before the operation finished", slog.String("key", key))
		case err != nil:
			base.LogError(ctx, err, "Failed to release lock", slog.String("key", key))
		}
	}()
	return fn()
}

// authorizeMutation enforces ownership: employees may change only their own
// transactions, and only while they are still pending.
func (s *transactionService) authorizeMutation(ctx context.Context, actor domain.Actor, txn domain.Transaction, action string) error {
	if actor.IsManager() {
		return nil
	}
	if txn.CreatedBy != actor.ID {
		s.LogWarn(ctx, "Employee attempted to modify another user's transaction",
			slog.String("actor_id", actor.ID),
			slog.String("transaction_id", txn.TransactionID),
			slog.String("action", action))
		return fmt.Errorf("%w: employees may only %s their own transactions", apperrors.ErrPermissionDenied, action)
	}
	if txn.IsApproved() {
		return fmt.Errorf("%w: approved transactions may only be changed by a manager", apperrors.ErrPermissionDenied)
	}
	return nil
}

func lockedErr(txn domain.Transaction, lockDate *time.Time) error {
	return fmt.Errorf("%w: %s is on or before %s", apperrors.ErrLockedPeriod,
		txn.Date.Format(domain.DateLayout), lockDate.Format(domain.DateLayout))
}

// keepSettlement carries a payout's settlement flag onto its edited draft.
// The settled party is fixed; edits may change the amount, date or account.
func keepSettlement(old domain.Transaction, draft *domain.Transaction) error {
	if old.Expense == nil || !old.Expense.SettlesOutstanding || draft.Expense == nil {
		return nil
	}
	if !sameID(old.Expense.EmployeeID, draft.Expense.EmployeeID) ||
		!sameID(old.Expense.CollaboratorID, draft.Expense.CollaboratorID) {
		return fmt.Errorf("%w: a payout must keep the party it settles", apperrors.ErrConflict)
	}
	draft.Expense.SettlesOutstanding = true
	return nil
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func describe(txn domain.Transaction) string {
	return fmt.Sprintf("%s transaction %q (%s)", txn.Kind, txn.Description, txn.Amount.StringFixed(2))
}

// CreateTransaction persists a new transaction. Managers create approved
// transactions and their effects apply at once; employees create pending ones.
func (s *transactionService) CreateTransaction(ctx context.Context, actor domain.Actor, req dto.TransactionRequest) (*domain.TransactionOutcome, error) {
	draft, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()

	var out domain.TransactionOutcome
	err = s.withLock(ctx, id, func() error {
		return s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
			settings, err := tx.GetSettings(ctx)
			if err != nil {
				return err
			}
			if draft.IsLocked(settings.FinancialLockDate) {
				return lockedErr(draft, settings.FinancialLockDate)
			}
			txn, err := prepareTransaction(ctx, tx, draft)
			if err != nil {
				return err
			}

			now := s.CurrentTime()
			txn.TransactionID = id
			txn.ApprovalStatus = statusFor(actor)
			txn.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: actor.ID, LastUpdatedAt: now, LastUpdatedBy: actor.ID}
			if err := tx.SaveTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}
			out = domain.TransactionOutcome{Transaction: txn}
			if txn.IsApproved() {
				warnings, err := s.engine.Apply(ctx, tx, txn)
				if err != nil {
					return err
				}
				out.Warnings = warnings
			}
			return nil
		})
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create transaction", slog.String("actor_id", actor.ID))
		return nil, err
	}

	s.afterCommit(ctx, actor, out, "Created")
	if !out.Transaction.IsApproved() {
		s.NotifyManagers(ctx, fmt.Sprintf("%s submitted %s for approval", actor.Name, describe(out.Transaction)), &out.Transaction.TransactionID)
	}
	return &out, nil
}

// UpdateTransaction replaces a transaction's contents. The status is recomputed
// from the actor's role and approved effects are swapped in one balance update.
func (s *transactionService) UpdateTransaction(ctx context.Context, actor domain.Actor, transactionID string, req dto.TransactionRequest) (*domain.TransactionOutcome, error) {
	draft, err := req.ToDomain()
	if err != nil {
		return nil, err
	}

	var out domain.TransactionOutcome
	err = s.withLock(ctx, transactionID, func() error {
		return s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
			old, err := tx.FindTransactionByID(ctx, transactionID)
			if err != nil {
				return err
			}
			if err := s.authorizeMutation(ctx, actor, *old, "update"); err != nil {
				return err
			}
			settings, err := tx.GetSettings(ctx)
			if err != nil {
				return err
			}
			if old.IsLocked(settings.FinancialLockDate) {
				return lockedErr(*old, settings.FinancialLockDate)
			}
			if draft.IsLocked(settings.FinancialLockDate) {
				return lockedErr(draft, settings.FinancialLockDate)
			}
			if old.Category == domain.CategoryInternalTransfer {
				return fmt.Errorf("%w: transfer legs cannot be edited, delete the leg and record the transfer again", apperrors.ErrConflict)
			}
			if draft.Kind != old.Kind {
				return apperrors.NewValidationError("kind", "the kind of an existing transaction cannot change")
			}
			if err := keepSettlement(*old, &draft); err != nil {
				return err
			}
			txn, err := prepareTransaction(ctx, tx, draft)
			if err != nil {
				return err
			}

			txn.TransactionID = old.TransactionID
			txn.AuditFields = old.AuditFields
			txn.LastUpdatedAt = s.CurrentTime()
			txn.LastUpdatedBy = actor.ID
			txn.ApprovalStatus = statusFor(actor)
			if err := tx.SaveTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}
			warnings, err := s.engine.Replace(ctx, tx, *old, txn)
			if err != nil {
				return err
			}
			out.Warnings = warnings
			out.Transaction = txn
			return nil
		})
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.afterCommit(ctx, actor, out, "Updated")
	if !out.Transaction.IsApproved() {
		s.NotifyManagers(ctx, fmt.Sprintf("%s updated %s, awaiting approval", actor.Name, describe(out.Transaction)), &out.Transaction.TransactionID)
	}
	return &out, nil
}

// ApproveTransaction moves a pending transaction to approved and applies its effects.
func (s *transactionService) ApproveTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.TransactionOutcome, error) {
	if err := s.RequireManager(ctx, actor, "approve transactions"); err != nil {
		return nil, err
	}

	var out domain.TransactionOutcome
	err := s.withLock(ctx, transactionID, func() error {
		return s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
			txn, err := s.pendingForDecision(ctx, tx, transactionID)
			if err != nil {
				return err
			}
			txn.ApprovalStatus = domain.Approved
			txn.LastUpdatedAt = s.CurrentTime()
			txn.LastUpdatedBy = actor.ID
			if err := tx.SaveTransaction(ctx, *txn); err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}
			warnings, err := s.engine.Apply(ctx, tx, *txn)
			if err != nil {
				return err
			}
			out = domain.TransactionOutcome{Transaction: *txn, Warnings: warnings}
			return nil
		})
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to approve transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.afterCommit(ctx, actor, out, "Approved")
	return &out, nil
}

// RejectTransaction discards a pending transaction. It never had effects, so nothing is reversed.
func (s *transactionService) RejectTransaction(ctx context.Context, actor domain.Actor, transactionID string) error {
	if err := s.RequireManager(ctx, actor, "reject transactions"); err != nil {
		return err
	}

	var rejected domain.Transaction
	err := s.withLock(ctx, transactionID, func() error {
		return s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
			txn, err := s.pendingForDecision(ctx, tx, transactionID)
			if err != nil {
				return err
			}
			rejected = *txn
			return tx.RemoveTransaction(ctx, transactionID)
		})
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to reject transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction rejected", slog.String("transaction_id", transactionID))
	s.RecordAudit(ctx, actor, "Rejected "+describe(rejected), &rejected.TransactionID)
	return nil
}

// pendingForDecision loads a transaction an approve/reject can act on.
func (s *transactionService) pendingForDecision(ctx context.Context, tx portsrepo.LedgerReader, transactionID string) (*domain.Transaction, error) {
	txn, err := tx.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	settings, err := tx.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if txn.IsLocked(settings.FinancialLockDate) {
		return nil, lockedErr(*txn, settings.FinancialLockDate)
	}
	if txn.ApprovalStatus != domain.Pending {
		return nil, fmt.Errorf("%w: transaction %s is %s", apperrors.ErrNotPending, transactionID, txn.ApprovalStatus)
	}
	return txn, nil
}

// DeleteTransaction removes a transaction, reversing its effects if it was approved.
func (s *transactionService) DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID string) error {
	var deleted domain.Transaction
	var warnings []string
	err := s.withLock(ctx, transactionID, func() error {
		return s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
			txn, err := tx.FindTransactionByID(ctx, transactionID)
			if err != nil {
				return err
			}
			if err := s.authorizeMutation(ctx, actor, *txn, "delete"); err != nil {
				return err
			}
			settings, err := tx.GetSettings(ctx)
			if err != nil {
				return err
			}
			if txn.IsLocked(settings.FinancialLockDate) {
				return lockedErr(*txn, settings.FinancialLockDate)
			}
			if txn.IsApproved() {
				if warnings, err = s.engine.Reverse(ctx, tx, *txn); err != nil {
					return err
				}
			}
			deleted = *txn
			return tx.RemoveTransaction(ctx, transactionID)
		})
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	for _, w := range warnings {
		s.LogWarn(ctx, "Deletion left an account overdrawn", slog.String("transaction_id", transactionID), slog.String("warning", w))
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	s.RecordAudit(ctx, actor, "Deleted "+describe(deleted), &deleted.TransactionID)
	return nil
}

// GetTransaction returns one transaction. Employees only see their own.
func (s *transactionService) GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	txn, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() && txn.CreatedBy != actor.ID {
		return nil, fmt.Errorf("%w: employees may only view their own transactions", apperrors.ErrPermissionDenied)
	}
	return txn, nil
}

// ListTransactions returns transactions matching filter, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, actor domain.Actor, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if !actor.IsManager() {
		id := actor.ID
		filter.CreatedBy = &id
	}
	txns, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, err
	}
	return txns, nil
}

// afterCommit logs warnings and writes the audit entry of a committed transition.
func (s *transactionService) afterCommit(ctx context.Context, actor domain.Actor, out domain.TransactionOutcome, verb string) {
	txn := out.Transaction
	for _, w := range out.Warnings {
		s.LogWarn(ctx, "Transaction left an account overdrawn",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("warning", w))
	}
	s.LogInfo(ctx, "Transaction "+verb,
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.String("status", string(txn.ApprovalStatus)),
		slog.String("amount", txn.Amount.String()))
	s.RecordAudit(ctx, actor, verb+" "+describe(txn), &txn.TransactionID)
}
