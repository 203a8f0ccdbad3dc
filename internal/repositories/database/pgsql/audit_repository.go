package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/models"
	"github.com/SscSPs/agency_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	auditColumns        = `audit_id, actor_id, actor_name, description, transaction_id, logged_at`
	notificationColumns = `notification_id, message, transaction_id, is_read, created_at`

	insertAudit        = `INSERT INTO audit_log (` + auditColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	insertNotification = `INSERT INTO notifications (` + notificationColumns + `) VALUES ($1, $2, $3, $4, $5)`
)

func scanAuditEntry(row pgx.Row) (models.AuditEntry, error) {
	var m models.AuditEntry
	err := row.Scan(&m.AuditID, &m.ActorID, &m.ActorName, &m.Description, &m.TransactionID, &m.Timestamp)
	return m, err
}

func scanNotification(row pgx.Row) (models.Notification, error) {
	var m models.Notification
	err := row.Scan(&m.NotificationID, &m.Message, &m.TransactionID, &m.IsRead, &m.CreatedAt)
	return m, err
}

// AppendAuditEntry appends to the audit log outside any ledger transaction.
func (r *PgxLedgerRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	if _, err := r.Pool.Exec(ctx, insertAudit, m.AuditID, m.ActorID, m.ActorName, m.Description, m.TransactionID, m.Timestamp); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// ListAuditEntries returns the newest entries first. limit <= 0 returns all.
func (r *PgxLedgerRepository) ListAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log ORDER BY logged_at DESC, audit_id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	return r.listAudit(ctx, query, args...)
}

func (r *PgxLedgerRepository) listAudit(ctx context.Context, query string, args ...any) ([]domain.AuditEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	ms, err := collect(rows, scanAuditEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit entries: %w", err)
	}
	out := make([]domain.AuditEntry, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainAuditEntry(m)
	}
	return out, nil
}

func (r *PgxLedgerRepository) AppendNotification(ctx context.Context, n domain.Notification) error {
	m := mapping.ToModelNotification(n)
	if _, err := r.Pool.Exec(ctx, insertNotification, m.NotificationID, m.Message, m.TransactionID, m.IsRead, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	return nil
}

// ListNotifications returns notifications newest first.
func (r *PgxLedgerRepository) ListNotifications(ctx context.Context, unreadOnly bool) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications`
	if unreadOnly {
		query += ` WHERE NOT is_read`
	}
	return r.listNotifications(ctx, query+` ORDER BY created_at DESC, notification_id DESC`)
}

func (r *PgxLedgerRepository) listNotifications(ctx context.Context, query string) ([]domain.Notification, error) {
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	ms, err := collect(rows, scanNotification)
	if err != nil {
		return nil, fmt.Errorf("failed to scan notifications: %w", err)
	}
	out := make([]domain.Notification, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainNotification(m)
	}
	return out, nil
}

func (r *PgxLedgerRepository) MarkNotificationRead(ctx context.Context, notificationID string) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE notification_id = $1`, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notification %s", apperrors.ErrNotFound, notificationID)
	}
	return nil
}
