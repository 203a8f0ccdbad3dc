package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
)

// backupService implements the BackupSvcFacade interface
type backupService struct {
	BaseService
	store portsrepo.SnapshotStore
}

// NewBackupService creates a new BackupService.
func NewBackupService(store portsrepo.SnapshotStore, opts ...ServiceOption) portssvc.BackupSvcFacade {
	s := &backupService{store: store}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.BackupSvcFacade = (*backupService)(nil)

func (s *backupService) Export(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.store.ExportSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to export snapshot")
		return domain.Snapshot{}, err
	}
	s.LogInfo(ctx, "Snapshot exported",
		slog.Int("transactions", len(snap.Transactions)),
		slog.Int("accounts", len(snap.Accounts)))
	return snap, nil
}

// Restore replaces all state with snap verbatim. Balances and derived
// fields are trusted as-is; nothing is recomputed.
func (s *backupService) Restore(ctx context.Context, actor domain.Actor, snap domain.Snapshot) error {
	if err := s.RequireManager(ctx, actor, "restore backups"); err != nil {
		return err
	}
	if err := s.store.RestoreSnapshot(ctx, snap); err != nil {
		s.LogError(ctx, err, "Failed to restore snapshot")
		return err
	}
	s.LogInfo(ctx, "Snapshot restored",
		slog.String("actor_id", actor.ID),
		slog.Int("transactions", len(snap.Transactions)))
	s.RecordAudit(ctx, actor, "Restored data from backup", nil)
	return nil
}
