package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/agency_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// ExportSnapshot reads every table from one consistent read-only snapshot.
func (r *PgxLedgerRepository) ExportSnapshot(ctx context.Context) (domain.Snapshot, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer r.Rollback(context.WithoutCancel(ctx), tx)
	store := &ledgerStore{q: tx}

	var snap domain.Snapshot
	if snap.Accounts, err = store.listAccounts(ctx, ""); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Employees, err = store.ListEmployees(ctx); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Collaborators, err = store.ListCollaborators(ctx); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Customers, err = store.ListCustomers(ctx); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Projects, err = store.ListProjects(ctx); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Transactions, err = store.ListTransactions(ctx, domain.TransactionFilter{}); err != nil {
		return domain.Snapshot{}, err
	}
	settings, err := store.GetSettings(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap.CompanyInfo = settings.CompanyInfo
	snap.ExpenseCategories = settings.ExpenseCategories
	snap.FinancialLockDate = settings.FinancialLockDate

	rows, err := tx.Query(ctx, `SELECT `+auditColumns+` FROM audit_log ORDER BY logged_at, audit_id`)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to export audit log: %w", err)
	}
	audit, err := collect(rows, scanAuditEntry)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to export audit log: %w", err)
	}
	for _, m := range audit {
		snap.AuditLog = append(snap.AuditLog, mapping.ToDomainAuditEntry(m))
	}

	rows, err = tx.Query(ctx, `SELECT `+notificationColumns+` FROM notifications ORDER BY created_at, notification_id`)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to export notifications: %w", err)
	}
	notes, err := collect(rows, scanNotification)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to export notifications: %w", err)
	}
	for _, m := range notes {
		snap.Notifications = append(snap.Notifications, mapping.ToDomainNotification(m))
	}
	return snap, nil
}

// RestoreSnapshot truncates every table and loads snap verbatim in one transaction.
func (r *PgxLedgerRepository) RestoreSnapshot(ctx context.Context, snap domain.Snapshot) error {
	return r.Transact(ctx, func(ltx portsrepo.LedgerTx) error {
		store := ltx.(*ledgerStore)
		if _, err := store.q.Exec(ctx, `TRUNCATE payments, line_items, transactions, projects, customers,
			collaborators, accounts, employees, audit_log, notifications`); err != nil {
			return fmt.Errorf("failed to clear tables: %w", err)
		}

		for _, e := range snap.Employees {
			if err := store.SaveEmployee(ctx, e); err != nil {
				return err
			}
		}
		for _, a := range snap.Accounts {
			if err := store.SaveAccount(ctx, a); err != nil {
				return err
			}
		}
		for _, c := range snap.Collaborators {
			if err := store.SaveCollaborator(ctx, c); err != nil {
				return err
			}
		}
		for _, c := range snap.Customers {
			if err := store.SaveCustomer(ctx, c); err != nil {
				return err
			}
		}
		for _, p := range snap.Projects {
			if err := store.SaveProject(ctx, p); err != nil {
				return err
			}
		}
		for _, t := range snap.Transactions {
			if err := store.SaveTransaction(ctx, t); err != nil {
				return err
			}
		}
		err := store.SaveSettings(ctx, domain.Settings{
			FinancialLockDate: snap.FinancialLockDate,
			CompanyInfo:       snap.CompanyInfo,
			ExpenseCategories: snap.ExpenseCategories,
		})
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, e := range snap.AuditLog {
			m := mapping.ToModelAuditEntry(e)
			batch.Queue(insertAudit, m.AuditID, m.ActorID, m.ActorName, m.Description, m.TransactionID, m.Timestamp)
		}
		for _, n := range snap.Notifications {
			m := mapping.ToModelNotification(n)
			batch.Queue(insertNotification, m.NotificationID, m.Message, m.TransactionID, m.IsRead, m.CreatedAt)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := store.q.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to restore audit data: %w", err)
		}
		return nil
	})
}
