package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

// auditService persists the audit trail and manager notifications.
// Record and Notify swallow store errors; a lost entry never fails a transition.
type auditService struct {
	BaseService
	repo portsrepo.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo portsrepo.AuditRepository, opts ...ServiceOption) portssvc.AuditSvcFacade {
	s := &auditService{repo: repo}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) Record(ctx context.Context, actor domain.Actor, description string, transactionID *string) {
	entry := domain.AuditEntry{
		AuditID:       uuid.NewString(),
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Description:   description,
		TransactionID: transactionID,
		Timestamp:     s.CurrentTime(),
	}
	if err := s.repo.AppendAuditEntry(context.WithoutCancel(ctx), entry); err != nil {
		s.LogError(ctx, err, "Failed to append audit entry", slog.String("description", description))
	}
}

func (s *auditService) Notify(ctx context.Context, message string, transactionID *string) {
	n := domain.Notification{
		NotificationID: uuid.NewString(),
		Message:        message,
		TransactionID:  transactionID,
		CreatedAt:      s.CurrentTime(),
	}
	if err := s.repo.AppendNotification(context.WithoutCancel(ctx), n); err != nil {
		s.LogError(ctx, err, "Failed to append notification", slog.String("message", message))
	}
}

func (s *auditService) ListAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return s.repo.ListAuditEntries(ctx, limit)
}

func (s *auditService) ListNotifications(ctx context.Context, unreadOnly bool) ([]domain.Notification, error) {
	return s.repo.ListNotifications(ctx, unreadOnly)
}

func (s *auditService) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return s.repo.MarkNotificationRead(ctx, notificationID)
}
