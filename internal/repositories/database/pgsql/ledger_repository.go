package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ledgerStore runs ledger reads and writes against a pool or an open
// transaction. Inside a transaction, single-row reads take row locks so the
// read-modify-write of a lifecycle transition cannot interleave.
type ledgerStore struct {
	q        querier
	lockRows bool
}

// suffix returns the locking clause for single-row reads.
func (s *ledgerStore) suffix() string {
	if s.lockRows {
		return " FOR UPDATE"
	}
	return ""
}

var _ portsrepo.LedgerTx = (*ledgerStore)(nil)

// PgxLedgerRepository is the PostgreSQL implementation of LedgerRepository.
type PgxLedgerRepository struct {
	BaseRepository
	*ledgerStore
}

// NewLedgerRepository creates a ledger repository backed by pool.
func NewLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerStore:    &ledgerStore{q: pool},
	}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// Transact runs fn inside one database transaction. It commits only if fn
// returns nil; any error rolls back every write fn made.
func (r *PgxLedgerRepository) Transact(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(context.WithoutCancel(ctx), tx) // No-op once committed

	if err := fn(&ledgerStore{q: tx, lockRows: true}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
