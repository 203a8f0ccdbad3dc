package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/agency_ledger/internal/core/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/SscSPs/agency_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAuditLogger is a mock type for the AuditLogger interface
type MockAuditLogger struct {
	mock.Mock
}

func (m *MockAuditLogger) Record(ctx context.Context, actor domain.Actor, description string, transactionID *string) {
	m.Called(ctx, actor, description, transactionID)
}

// MockNotifier is a mock type for the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, message string, transactionID *string) {
	m.Called(ctx, message, transactionID)
}

var fixedNow = time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)

const (
	bankTRY  = "acc-bank-try"
	bankUSD  = "acc-bank-usd"
	cashTRY  = "acc-cash-try"
	empAyse  = "emp-ayse"
	empMehm  = "emp-mehmet"
	brokerID = "col-broker"
	custID   = "cus-1"
)

var (
	manager  = domain.Actor{ID: "mgr-1", Name: "Selin", Role: domain.RoleManager}
	employee = domain.Actor{ID: empAyse, Name: "Ayse", Role: domain.RoleEmployee}
	other    = domain.Actor{ID: empMehm, Name: "Mehmet", Role: domain.RoleEmployee}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ledgerSuite wires every service against an in-memory store with a seeded
// agency: three accounts, two employees, one broker and one customer.
type ledgerSuite struct {
	suite.Suite
	ctx      context.Context
	repo     *memory.LedgerRepository
	auditor  *MockAuditLogger
	notifier *MockNotifier
	opts     []services.ServiceOption
	engine   *services.EffectEngine
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = memory.NewLedgerRepository()
	s.auditor = new(MockAuditLogger)
	s.notifier = new(MockNotifier)
	s.auditor.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	s.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	s.opts = []services.ServiceOption{
		services.WithAuditLogger(s.auditor),
		services.WithNotifier(s.notifier),
		services.WithClock(func() time.Time { return fixedNow }),
	}
	s.engine = services.NewEffectEngine(s.opts...)

	err := s.repo.Transact(s.ctx, func(tx portsrepo.LedgerTx) error {
		for _, a := range []domain.Account{
			{AccountID: bankTRY, Name: "Garanti TRY", Kind: domain.AccountBank, Currency: domain.TRY, Balance: dec("5000")},
			{AccountID: bankUSD, Name: "Garanti USD", Kind: domain.AccountBank, Currency: domain.USD},
			{AccountID: cashTRY, Name: "Office Cash", Kind: domain.AccountCash, Currency: domain.TRY, Balance: dec("50")},
		} {
			if err := tx.SaveAccount(s.ctx, a); err != nil {
				return err
			}
		}
		for _, e := range []domain.Employee{
			{EmployeeID: empAyse, Name: "Ayse", Role: domain.RoleEmployee, DefaultCommissionRate: dec("10")},
			{EmployeeID: empMehm, Name: "Mehmet", Role: domain.RoleEmployee},
		} {
			if err := tx.SaveEmployee(s.ctx, e); err != nil {
				return err
			}
		}
		if err := tx.SaveCollaborator(s.ctx, domain.Collaborator{CollaboratorID: brokerID, Name: "Kemal", Kind: domain.CollaboratorBroker}); err != nil {
			return err
		}
		return tx.SaveCustomer(s.ctx, domain.Customer{CustomerID: custID, Name: "Ivanov"})
	})
	s.Require().NoError(err)
}

func (s *ledgerSuite) accountBalance(id string) decimal.Decimal {
	acc, err := s.repo.FindAccountByID(s.ctx, id)
	s.Require().NoError(err)
	return acc.Balance
}

func (s *ledgerSuite) employeeBalance(id string) decimal.Decimal {
	e, err := s.repo.FindEmployeeByID(s.ctx, id)
	s.Require().NoError(err)
	return e.OutstandingBalance
}

func (s *ledgerSuite) collaboratorBalance(id string) decimal.Decimal {
	c, err := s.repo.FindCollaboratorByID(s.ctx, id)
	s.Require().NoError(err)
	return c.OutstandingBalance
}

func (s *ledgerSuite) assertDecimal(want string, got decimal.Decimal, msgAndArgs ...any) {
	s.Truef(dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func (s *ledgerSuite) setLockDate(date string) {
	_, err := services.NewSettingsService(s.repo, s.opts...).SetFinancialLockDate(s.ctx, manager, dto.LockDateRequest{Date: date})
	s.Require().NoError(err)
}

// incomeRequest is one fully paid line: 1000 + 20% VAT, 10% commission.
func incomeRequest(date string) dto.TransactionRequest {
	customer := custID
	return dto.TransactionRequest{
		Date:        date,
		Description: "Residence permit application",
		Kind:        domain.Income,
		Category:    "Residence Permit",
		CustomerID:  &customer,
		Items: []dto.LineItemRequest{{
			Description:    "Permit filing",
			Subtotal:       dec("1000"),
			LegalCosts:     dec("0"),
			VATRate:        dec("20"),
			EmployeeID:     empAyse,
			CommissionRate: dec("10"),
		}},
		Payments: []dto.PaymentRequest{{Date: date, Amount: dec("1200"), AccountID: bankTRY}},
	}
}

func expenseRequest(date, accountID, amount string) dto.TransactionRequest {
	return dto.TransactionRequest{
		Date:        date,
		Description: "Office rent",
		Kind:        domain.Expense,
		Category:    "Rent",
		Amount:      dec(amount),
		AccountID:   &accountID,
	}
}
