package pgsql

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/models"
	"github.com/SscSPs/agency_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, kind, currency, balance, owner_id, account_number, deleted_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.Kind,
		&m.Currency,
		&m.Balance,
		&m.OwnerID,
		&m.AccountNumber,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindAccountByID retrieves an account by its ID, including soft-deleted ones.
func (s *ledgerStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1` + s.suffix()
	m, err := scanAccount(s.q.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, notFoundOr(err, "account", accountID)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListAccounts retrieves all active accounts ordered by name.
func (s *ledgerStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.listAccounts(ctx, `WHERE deleted_at IS NULL`)
}

func (s *ledgerStore) listAccounts(ctx context.Context, where string) ([]domain.Account, error) {
	rows, err := s.q.Query(ctx, `SELECT `+accountColumns+` FROM accounts `+where+` ORDER BY name, account_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	ms, err := collect(rows, scanAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccounts(ms), nil
}

// SaveAccount upserts an account.
func (s *ledgerStore) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (account_id) DO UPDATE SET
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			currency = EXCLUDED.currency,
			balance = EXCLUDED.balance,
			owner_id = EXCLUDED.owner_id,
			account_number = EXCLUDED.account_number,
			deleted_at = EXCLUDED.deleted_at,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := s.q.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Kind,
		m.Currency,
		m.Balance,
		m.OwnerID,
		m.AccountNumber,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return writeErr(err, "account", m.AccountID)
	}
	return nil
}

// balanceTargets maps each balance-carrying table to its key column and balance column.
var balanceTargets = []struct {
	table, key, column, kind string
	pick                     func(domain.BalanceChanges) map[string]decimal.Decimal
}{
	{"accounts", "account_id", "balance", "account", func(c domain.BalanceChanges) map[string]decimal.Decimal { return c.Accounts }},
	{"employees", "employee_id", "outstanding_balance", "employee", func(c domain.BalanceChanges) map[string]decimal.Decimal { return c.Employees }},
	{"collaborators", "collaborator_id", "outstanding_balance", "collaborator", func(c domain.BalanceChanges) map[string]decimal.Decimal { return c.Collaborators }},
}

// ApplyBalanceChanges locks every target row in a stable order, verifies that
// none is missing, then adds all deltas in one batch.
func (s *ledgerStore) ApplyBalanceChanges(ctx context.Context, changes domain.BalanceChanges) error {
	batch := &pgx.Batch{}
	for _, t := range balanceTargets {
		deltas := t.pick(changes)
		if len(deltas) == 0 {
			continue
		}
		ids := make([]string, 0, len(deltas))
		for id := range deltas {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		if err := s.lockExisting(ctx, t.table, t.key, t.kind, ids); err != nil {
			return err
		}
		update := fmt.Sprintf(`UPDATE %s SET %s = %s + $2 WHERE %s = $1`, t.table, t.column, t.column, t.key)
		for _, id := range ids {
			batch.Queue(update, id, deltas[id])
		}
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := s.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to apply balance changes: %w", err)
	}
	return nil
}

func (s *ledgerStore) lockExisting(ctx context.Context, table, key, kind string, ids []string) error {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) ORDER BY %s`, key, table, key, key) + s.suffix()
	rows, err := s.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to lock %s rows: %w", table, err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to lock %s rows: %w", table, err)
	}
	if len(found) == len(ids) {
		return nil
	}
	have := make(map[string]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
		}
	}
	return nil
}
