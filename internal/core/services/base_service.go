package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Auditor  portssvc.AuditLogger
	Notifier portssvc.Notifier
	Now      func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogFailure logs expected domain rejections at info level and anything else as an error.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isValidation(err) || errors.Is(err, apperrors.ErrPermissionDenied) || errors.Is(err, apperrors.ErrLockedPeriod) ||
		errors.Is(err, apperrors.ErrNotPending) || errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrInsufficientFunds) || errors.Is(err, apperrors.ErrSameAccount) ||
		errors.Is(err, apperrors.ErrConflict) {
		s.LogInfo(ctx, msg, append([]any{slog.String("reason", err.Error())}, keyvals...)...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// CurrentTime returns the service clock in UTC.
func (s *BaseService) CurrentTime() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RequireManager fails with ErrPermissionDenied unless actor is a manager.
func (s *BaseService) RequireManager(ctx context.Context, actor domain.Actor, action string) error {
	if actor.IsManager() {
		return nil
	}
	s.LogWarn(ctx, "Permission denied",
		slog.String("actor_id", actor.ID),
		slog.String("role", string(actor.Role)),
		slog.String("action", action))
	return fmt.Errorf("%w: only managers may %s", apperrors.ErrPermissionDenied, action)
}

// RecordAudit appends to the audit trail if an auditor is configured.
func (s *BaseService) RecordAudit(ctx context.Context, actor domain.Actor, description string, transactionID *string) {
	if s.Auditor == nil {
		s.LogDebug(ctx, "No audit logger configured, entry dropped", slog.String("description", description))
		return
	}
	s.Auditor.Record(ctx, actor, description, transactionID)
}

// NotifyManagers raises a manager notification if a notifier is configured.
func (s *BaseService) NotifyManagers(ctx context.Context, message string, transactionID *string) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(ctx, message, transactionID)
}

// ServiceOption configures the shared BaseService of any service.
type ServiceOption func(*BaseService)

// WithAuditLogger sets the audit trail sink.
func WithAuditLogger(a portssvc.AuditLogger) ServiceOption {
	return func(s *BaseService) {
		s.Auditor = a
	}
}

// WithNotifier sets the manager notification sink.
func WithNotifier(n portssvc.Notifier) ServiceOption {
	return func(s *BaseService) {
		s.Notifier = n
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Now = now
	}
}

func applyOptions(base *BaseService, opts []ServiceOption) {
	for _, opt := range opts {
		opt(base)
	}
}
