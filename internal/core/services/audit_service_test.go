package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuditRepository is a mock type for the AuditRepository interface
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

func (m *MockAuditRepository) AppendNotification(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockAuditRepository) ListNotifications(ctx context.Context, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockAuditRepository) MarkNotificationRead(ctx context.Context, notificationID string) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func TestAuditService_RecordStampsEntry(t *testing.T) {
	repo := new(MockAuditRepository)
	svc := services.NewAuditService(repo, services.WithClock(func() time.Time { return fixedNow }))
	txnID := "txn-1"
	actor := domain.Actor{ID: "emp-1", Name: "Ayse", Role: domain.RoleEmployee}

	repo.On("AppendAuditEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.AuditID != "" && e.ActorID == "emp-1" && e.ActorName == "Ayse" &&
			e.Description == "Created expense" && e.TransactionID == &txnID && e.Timestamp.Equal(fixedNow)
	})).Return(nil).Once()

	svc.Record(context.Background(), actor, "Created expense", &txnID)
	repo.AssertExpectations(t)
}

func TestAuditService_StoreFailuresAreSwallowed(t *testing.T) {
	repo := new(MockAuditRepository)
	svc := services.NewAuditService(repo)
	repo.On("AppendAuditEntry", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	repo.On("AppendNotification", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), domain.Actor{ID: "m-1", Role: domain.RoleManager}, "Deleted", nil)
		svc.Notify(context.Background(), "New expense awaiting approval", nil)
	})
	repo.AssertExpectations(t)
}

func TestAuditService_MarkNotificationReadPassesThroughNotFound(t *testing.T) {
	repo := new(MockAuditRepository)
	svc := services.NewAuditService(repo)
	repo.On("MarkNotificationRead", mock.Anything, "missing").Return(apperrors.ErrNotFound).Once()

	err := svc.MarkNotificationRead(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertExpectations(t)
}
