package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/models"
	"github.com/SscSPs/agency_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `transaction_id, txn_date, description, amount, kind, category, internal_notes, approval_status,
	project_id, customer_id, payment_status, account_id, employee_id, collaborator_id, settles_outstanding,
	created_at, created_by, last_updated_at, last_updated_by`

const lineItemColumns = `line_item_id, transaction_id, position, service_id, description, subtotal, legal_costs,
	vat_rate, vat_amount, employee_id, commission_rate, commission_amount, collaborator_id, collaborator_fee`

const paymentColumns = `payment_id, transaction_id, position, payment_date, amount, account_id`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TxnDate,
		&m.Description,
		&m.Amount,
		&m.Kind,
		&m.Category,
		&m.InternalNotes,
		&m.ApprovalStatus,
		&m.ProjectID,
		&m.CustomerID,
		&m.PaymentStatus,
		&m.AccountID,
		&m.EmployeeID,
		&m.CollaboratorID,
		&m.SettlesOutstanding,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLineItem(row pgx.Row) (models.LineItem, error) {
	var m models.LineItem
	err := row.Scan(
		&m.LineItemID,
		&m.TransactionID,
		&m.Position,
		&m.ServiceID,
		&m.Description,
		&m.Subtotal,
		&m.LegalCosts,
		&m.VATRate,
		&m.VATAmount,
		&m.EmployeeID,
		&m.CommissionRate,
		&m.CommissionAmount,
		&m.CollaboratorID,
		&m.CollaboratorFee,
	)
	return m, err
}

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(&m.PaymentID, &m.TransactionID, &m.Position, &m.PaymentDate, &m.Amount, &m.AccountID)
	return m, err
}

// FindTransactionByID retrieves a transaction with its items and payments.
func (s *ledgerStore) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1` + s.suffix()
	header, err := scanTransaction(s.q.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, notFoundOr(err, "transaction", transactionID)
	}
	txns, err := s.attachChildren(ctx, []models.Transaction{header})
	if err != nil {
		return nil, err
	}
	return &txns[0], nil
}

// ListTransactions retrieves transactions matching filter, newest first.
func (s *ledgerStore) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	where, args := transactionWhere(filter)
	query := `SELECT ` + transactionColumns + ` FROM transactions t` + where +
		` ORDER BY t.txn_date DESC, t.created_at DESC, t.transaction_id`
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	headers, err := collect(rows, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return s.attachChildren(ctx, headers)
}

// transactionWhere renders filter as a WHERE clause over alias t.
func transactionWhere(f domain.TransactionFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Kind != nil {
		add("t.kind = $%d", string(*f.Kind))
	}
	if f.ApprovalStatus != nil {
		add("t.approval_status = $%d", string(*f.ApprovalStatus))
	}
	if f.CustomerID != nil {
		add("t.customer_id = $%d", *f.CustomerID)
	}
	if f.AccountID != nil {
		add(`(t.account_id = $%[1]d OR EXISTS (
			SELECT 1 FROM payments p WHERE p.transaction_id = t.transaction_id AND p.account_id = $%[1]d))`, *f.AccountID)
	}
	if f.CreatedBy != nil {
		add("t.created_by = $%d", *f.CreatedBy)
	}
	if f.From != nil {
		add("t.txn_date >= $%d", domain.DateOnly(*f.From))
	}
	if f.To != nil {
		add("t.txn_date <= $%d", domain.DateOnly(*f.To))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// attachChildren loads items and payments for headers in two queries.
func (s *ledgerStore) attachChildren(ctx context.Context, headers []models.Transaction) ([]domain.Transaction, error) {
	if len(headers) == 0 {
		return []domain.Transaction{}, nil
	}
	var incomeIDs []string
	for _, h := range headers {
		if h.Kind == string(domain.Income) {
			incomeIDs = append(incomeIDs, h.TransactionID)
		}
	}

	items := map[string][]models.LineItem{}
	payments := map[string][]models.Payment{}
	if len(incomeIDs) > 0 {
		rows, err := s.q.Query(ctx, `SELECT `+lineItemColumns+` FROM line_items WHERE transaction_id = ANY($1) ORDER BY transaction_id, position`, incomeIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load line items: %w", err)
		}
		lis, err := collect(rows, scanLineItem)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line items: %w", err)
		}
		for _, li := range lis {
			items[li.TransactionID] = append(items[li.TransactionID], li)
		}

		rows, err = s.q.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE transaction_id = ANY($1) ORDER BY transaction_id, position`, incomeIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load payments: %w", err)
		}
		ps, err := collect(rows, scanPayment)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payments: %w", err)
		}
		for _, p := range ps {
			payments[p.TransactionID] = append(payments[p.TransactionID], p)
		}
	}

	out := make([]domain.Transaction, len(headers))
	for i, h := range headers {
		out[i] = mapping.ToDomainTransaction(h, items[h.TransactionID], payments[h.TransactionID])
	}
	return out, nil
}

// SaveTransaction upserts the header and replaces all child rows.
func (s *ledgerStore) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m, items, payments := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (transaction_id) DO UPDATE SET
			txn_date = EXCLUDED.txn_date,
			description = EXCLUDED.description,
			amount = EXCLUDED.amount,
			kind = EXCLUDED.kind,
			category = EXCLUDED.category,
			internal_notes = EXCLUDED.internal_notes,
			approval_status = EXCLUDED.approval_status,
			project_id = EXCLUDED.project_id,
			customer_id = EXCLUDED.customer_id,
			payment_status = EXCLUDED.payment_status,
			account_id = EXCLUDED.account_id,
			employee_id = EXCLUDED.employee_id,
			collaborator_id = EXCLUDED.collaborator_id,
			settles_outstanding = EXCLUDED.settles_outstanding,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	batch := &pgx.Batch{}
	batch.Queue(query,
		m.TransactionID,
		m.TxnDate,
		m.Description,
		m.Amount,
		m.Kind,
		m.Category,
		m.InternalNotes,
		m.ApprovalStatus,
		m.ProjectID,
		m.CustomerID,
		m.PaymentStatus,
		m.AccountID,
		m.EmployeeID,
		m.CollaboratorID,
		m.SettlesOutstanding,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	batch.Queue(`DELETE FROM line_items WHERE transaction_id = $1`, m.TransactionID)
	batch.Queue(`DELETE FROM payments WHERE transaction_id = $1`, m.TransactionID)
	for _, li := range items {
		batch.Queue(`INSERT INTO line_items (`+lineItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			li.LineItemID,
			li.TransactionID,
			li.Position,
			li.ServiceID,
			li.Description,
			li.Subtotal,
			li.LegalCosts,
			li.VATRate,
			li.VATAmount,
			li.EmployeeID,
			li.CommissionRate,
			li.CommissionAmount,
			li.CollaboratorID,
			li.CollaboratorFee,
		)
	}
	for _, p := range payments {
		batch.Queue(`INSERT INTO payments (`+paymentColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
			p.PaymentID, p.TransactionID, p.Position, p.PaymentDate, p.Amount, p.AccountID)
	}

	// Close reports the first failing statement
	if err := s.q.SendBatch(ctx, batch).Close(); err != nil {
		return writeErr(err, "transaction", m.TransactionID)
	}
	return nil
}

// RemoveTransaction hard-deletes a transaction; children cascade.
func (s *ledgerStore) RemoveTransaction(ctx context.Context, transactionID string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to remove transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}
