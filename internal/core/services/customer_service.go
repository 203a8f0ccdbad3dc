package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// customerService implements the CustomerSvcFacade interface
type customerService struct {
	BaseService
	repo portsrepo.LedgerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo portsrepo.LedgerRepository, opts ...ServiceOption) portssvc.CustomerSvcFacade {
	s := &customerService{repo: repo}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer is open to every role; employees register the customers they serve.
func (s *customerService) CreateCustomer(ctx context.Context, actor domain.Actor, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	now := s.CurrentTime()
	c := domain.Customer{
		CustomerID:  uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		TaxNumber:   req.TaxNumber,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actor.ID, LastUpdatedAt: now, LastUpdatedBy: actor.ID},
	}
	err := s.repo.Transact(ctx, func(tx portsrepo.LedgerTx) error {
		return tx.SaveCustomer(ctx, c)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create customer", slog.String("name", c.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Customer created", slog.String("customer_id", c.CustomerID))
	s.RecordAudit(ctx, actor, fmt.Sprintf("Created customer %q", c.Name), nil)
	return &c, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.repo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// GetCustomerDebt sums what is still unpaid on the customer's approved income.
// Overpayment on one transaction does not offset debt on another.
func (s *customerService) GetCustomerDebt(ctx context.Context, customerID string) (decimal.Decimal, error) {
	if _, err := s.repo.FindCustomerByID(ctx, customerID); err != nil {
		return decimal.Zero, err
	}
	income := domain.Income
	approved := domain.Approved
	txns, err := s.repo.ListTransactions(ctx, domain.TransactionFilter{
		Kind:           &income,
		ApprovalStatus: &approved,
		CustomerID:     &customerID,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list customer transactions", slog.String("customer_id", customerID))
		return decimal.Zero, err
	}

	debt := decimal.Zero
	for _, t := range txns {
		if open := t.Amount.Sub(t.PaidTotal()); open.IsPositive() {
			debt = debt.Add(open)
		}
	}
	return debt, nil
}
