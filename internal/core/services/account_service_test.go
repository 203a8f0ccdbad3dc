package services_test

import (
	"testing"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/core/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	ledgerSuite
	service portssvc.AccountSvcFacade
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.service = services.NewAccountService(s.repo, s.opts...)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) TestCreateAccount_Success() {
	iban := "TR330006100519786457841326"
	acc, err := s.service.CreateAccount(s.ctx, manager, dto.CreateAccountRequest{
		Name:           "Ziraat EUR",
		Kind:           domain.AccountBank,
		Currency:       domain.EUR,
		OpeningBalance: dec("1000.005"),
		AccountNumber:  &iban,
	})
	s.Require().NoError(err)
	s.NotEmpty(acc.AccountID)
	s.assertDecimal("1000.01", acc.Balance)
	s.True(acc.IsActive())
	s.Equal(manager.ID, acc.CreatedBy)
	s.Equal(fixedNow, acc.CreatedAt)
	s.auditor.AssertCalled(s.T(), "Record", mock.Anything, manager, `Created Bank account "Ziraat EUR"`, (*string)(nil))
}

func (s *AccountServiceTestSuite) TestCreateAccount_Rejections() {
	_, err := s.service.CreateAccount(s.ctx, employee, dto.CreateAccountRequest{Name: "X", Kind: domain.AccountCash, Currency: domain.TRY})
	s.ErrorIs(err, apperrors.ErrPermissionDenied)

	_, err = s.service.CreateAccount(s.ctx, manager, dto.CreateAccountRequest{Name: "X", Kind: "Vault", Currency: "GBP"})
	s.ErrorIs(err, apperrors.ErrValidation)

	owner := "emp-missing"
	_, err = s.service.CreateAccount(s.ctx, manager, dto.CreateAccountRequest{Name: "X", Kind: domain.AccountCash, Currency: domain.TRY, OwnerID: &owner})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_ChangesNameOnly() {
	name := "Garanti Main"
	acc, err := s.service.UpdateAccount(s.ctx, manager, bankTRY, dto.UpdateAccountRequest{Name: &name})
	s.Require().NoError(err)
	s.Equal(name, acc.Name)
	s.assertDecimal("5000", acc.Balance)
	s.Equal(domain.TRY, acc.Currency)
}

func (s *AccountServiceTestSuite) TestDeleteAccount_BlockedWhileReferenced() {
	txnSvc := services.NewTransactionService(s.repo, s.engine, nil, s.opts...)
	_, err := txnSvc.CreateTransaction(s.ctx, manager, expenseRequest("2024-01-10", cashTRY, "10"))
	s.Require().NoError(err)

	err = s.service.DeleteAccount(s.ctx, manager, cashTRY)
	s.ErrorIs(err, apperrors.ErrConflict)

	s.Require().NoError(s.service.DeleteAccount(s.ctx, manager, bankUSD))
	accounts, err := s.service.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(accounts, 2)

	deleted, err := s.service.GetAccountByID(s.ctx, bankUSD)
	s.Require().NoError(err)
	s.False(deleted.IsActive())

	err = s.service.DeleteAccount(s.ctx, manager, bankUSD)
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = txnSvc.CreateTransaction(s.ctx, manager, expenseRequest("2024-01-10", bankUSD, "10"))
	s.ErrorIs(err, apperrors.ErrNotFound)
}
