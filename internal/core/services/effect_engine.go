package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/agency_ledger/internal/utils/accounting"
)

// EffectEngine turns approved transactions into balance mutations.
// It never touches approval status, the audit trail or notifications.
type EffectEngine struct {
	BaseService
}

// NewEffectEngine creates an EffectEngine.
func NewEffectEngine(opts ...ServiceOption) *EffectEngine {
	e := &EffectEngine{}
	applyOptions(&e.BaseService, opts)
	return e
}

// Apply adds the effects of an approved transaction inside tx.
// The returned warnings name accounts left with a negative balance.
func (e *EffectEngine) Apply(ctx context.Context, tx portsrepo.LedgerTx, txn domain.Transaction) ([]string, error) {
	return e.run(ctx, tx, txn, accounting.Apply)
}

// Reverse removes exactly what Apply added for the same transaction.
func (e *EffectEngine) Reverse(ctx context.Context, tx portsrepo.LedgerTx, txn domain.Transaction) ([]string, error) {
	return e.run(ctx, tx, txn, accounting.Reverse)
}

// Replace swaps the effects of old for those of updated in one balance update,
// so intermediate states of an edit are never observed or warned about.
// Either side contributes nothing unless it is approved.
func (e *EffectEngine) Replace(ctx context.Context, tx portsrepo.LedgerTx, old, updated domain.Transaction) ([]string, error) {
	changes := domain.NewBalanceChanges()
	if old.IsApproved() {
		changes.Merge(accounting.ComputeEffects(old, accounting.Reverse))
	}
	if updated.IsApproved() {
		changes.Merge(accounting.ComputeEffects(updated, accounting.Apply))
	}
	return e.commit(ctx, tx, updated.TransactionID, changes)
}

func (e *EffectEngine) run(ctx context.Context, tx portsrepo.LedgerTx, txn domain.Transaction, dir accounting.Direction) ([]string, error) {
	if !txn.IsApproved() {
		return nil, fmt.Errorf("%w: effects exist only for approved transactions, %s is %s",
			apperrors.ErrValidation, txn.TransactionID, txn.ApprovalStatus)
	}
	return e.commit(ctx, tx, txn.TransactionID, accounting.ComputeEffects(txn, dir))
}

func (e *EffectEngine) commit(ctx context.Context, tx portsrepo.LedgerTx, transactionID string, changes domain.BalanceChanges) ([]string, error) {
	if changes.IsEmpty() {
		return nil, nil
	}
	if err := tx.ApplyBalanceChanges(ctx, changes); err != nil {
		e.LogError(ctx, err, "Failed to apply balance changes", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to apply effects of transaction %s: %w", transactionID, err)
	}
	return e.overdrafts(ctx, tx, changes)
}

// overdrafts reports accounts that a negative delta drove below zero.
func (e *EffectEngine) overdrafts(ctx context.Context, tx portsrepo.LedgerReader, changes domain.BalanceChanges) ([]string, error) {
	ids := make([]string, 0, len(changes.Accounts))
	for id, delta := range changes.Accounts {
		if delta.IsNegative() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var warnings []string
	for _, id := range ids {
		acc, err := tx.FindAccountByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if acc.Balance.IsNegative() {
			warnings = append(warnings, fmt.Sprintf("account %q balance is negative: %s %s",
				acc.Name, acc.Balance.StringFixed(2), acc.Currency))
		}
	}
	return warnings, nil
}
