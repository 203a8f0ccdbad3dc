package services_test

import (
	"testing"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/core/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type TransferServiceTestSuite struct {
	ledgerSuite
	service portssvc.TransferSvcFacade
}

func (s *TransferServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.service = services.NewTransferService(s.repo, s.engine, nil, s.opts...)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}

func (s *TransferServiceTestSuite) TestTransfer_CrossCurrency() {
	resp, err := s.service.Transfer(s.ctx, manager, dto.TransferRequest{
		FromAccountID: bankTRY,
		ToAccountID:   bankUSD,
		Amount:        dec("100"),
		ExchangeRate:  dec("0.03"),
		Date:          "2024-01-20",
	})
	s.Require().NoError(err)

	s.assertDecimal("4900", s.accountBalance(bankTRY))
	s.assertDecimal("3", s.accountBalance(bankUSD))

	out, in := resp.Outgoing, resp.Incoming
	s.Equal(domain.Expense, out.Kind)
	s.Equal(domain.Income, in.Kind)
	for _, leg := range []domain.Transaction{out, in} {
		s.Equal(domain.Approved, leg.ApprovalStatus)
		s.Equal(domain.CategoryInternalTransfer, leg.Category)
		s.Equal("Transfer from Garanti TRY to Garanti USD", leg.Description)
	}
	s.assertDecimal("100", out.Amount)
	s.assertDecimal("3", in.Amount)
	s.Equal(domain.Paid, in.Income.PaymentStatus)
	s.Require().Len(in.Income.Payments, 1)
	s.Equal(bankUSD, in.Income.Payments[0].AccountID)

	txns, err := s.repo.ListTransactions(s.ctx, domain.TransactionFilter{})
	s.Require().NoError(err)
	s.Len(txns, 2)
}

func (s *TransferServiceTestSuite) TestTransfer_SameCurrencyIgnoresRate() {
	_, err := s.service.Transfer(s.ctx, manager, dto.TransferRequest{
		FromAccountID: bankTRY,
		ToAccountID:   cashTRY,
		Amount:        dec("250.5"),
		ExchangeRate:  dec("7"),
		Date:          "2024-01-20",
		Description:   "Petty cash top-up",
	})
	s.Require().NoError(err)
	s.assertDecimal("4749.5", s.accountBalance(bankTRY))
	s.assertDecimal("300.5", s.accountBalance(cashTRY))
}

func (s *TransferServiceTestSuite) TestTransfer_Rejections() {
	cases := []struct {
		name string
		req  dto.TransferRequest
		want error
	}{
		{"same account", dto.TransferRequest{FromAccountID: bankTRY, ToAccountID: bankTRY, Amount: dec("10"), Date: "2024-01-20"}, apperrors.ErrSameAccount},
		{"insufficient funds", dto.TransferRequest{FromAccountID: cashTRY, ToAccountID: bankTRY, Amount: dec("50.01"), Date: "2024-01-20"}, apperrors.ErrInsufficientFunds},
		{"missing rate", dto.TransferRequest{FromAccountID: bankTRY, ToAccountID: bankUSD, Amount: dec("10"), Date: "2024-01-20"}, apperrors.ErrValidation},
		{"non-positive amount", dto.TransferRequest{FromAccountID: bankTRY, ToAccountID: cashTRY, Amount: dec("0"), Date: "2024-01-20"}, apperrors.ErrValidation},
		{"unknown destination", dto.TransferRequest{FromAccountID: bankTRY, ToAccountID: "acc-missing", Amount: dec("10"), Date: "2024-01-20"}, apperrors.ErrNotFound},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.Transfer(s.ctx, manager, tc.req)
			s.ErrorIs(err, tc.want)
		})
	}
	s.assertDecimal("5000", s.accountBalance(bankTRY))
	s.assertDecimal("50", s.accountBalance(cashTRY))
	s.assertDecimal("0", s.accountBalance(bankUSD))
}

func (s *TransferServiceTestSuite) TestTransfer_ManagerOnly() {
	_, err := s.service.Transfer(s.ctx, employee, dto.TransferRequest{FromAccountID: bankTRY, ToAccountID: cashTRY, Amount: dec("10"), Date: "2024-01-20"})
	s.ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (s *TransferServiceTestSuite) TestTransfer_LockedPeriod() {
	s.setLockDate("2024-01-31")
	_, err := s.service.Transfer(s.ctx, manager, dto.TransferRequest{FromAccountID: bankTRY, ToAccountID: cashTRY, Amount: dec("10"), Date: "2024-01-20"})
	s.ErrorIs(err, apperrors.ErrLockedPeriod)
	s.assertDecimal("5000", s.accountBalance(bankTRY))
}

func (s *TransferServiceTestSuite) TestTransfer_LegsReverseOnDelete() {
	resp, err := s.service.Transfer(s.ctx, manager, dto.TransferRequest{FromAccountID: bankTRY, ToAccountID: cashTRY, Amount: dec("100"), Date: "2024-01-20"})
	s.Require().NoError(err)

	txnSvc := services.NewTransactionService(s.repo, s.engine, nil, s.opts...)
	s.Require().NoError(txnSvc.DeleteTransaction(s.ctx, manager, resp.Outgoing.TransactionID))
	s.Require().NoError(txnSvc.DeleteTransaction(s.ctx, manager, resp.Incoming.TransactionID))
	s.assertDecimal("5000", s.accountBalance(bankTRY))
	s.assertDecimal("50", s.accountBalance(cashTRY))
}

func (s *TransferServiceTestSuite) TestTransfer_LegsCannotBeEdited() {
	resp, err := s.service.Transfer(s.ctx, manager, dto.TransferRequest{
		FromAccountID: bankTRY,
		ToAccountID:   cashTRY,
		Amount:        dec("100"),
		Date:          "2024-01-20",
	})
	s.Require().NoError(err)
	txnSvc := services.NewTransactionService(s.repo, s.engine, nil, s.opts...)

	edit := expenseRequest("2024-01-20", bankTRY, "150")
	edit.Category = domain.CategoryInternalTransfer
	_, err = txnSvc.UpdateTransaction(s.ctx, manager, resp.Outgoing.TransactionID, edit)
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = txnSvc.UpdateTransaction(s.ctx, manager, resp.Incoming.TransactionID, incomeRequest("2024-01-20"))
	s.ErrorIs(err, apperrors.ErrConflict)

	s.assertDecimal("4900", s.accountBalance(bankTRY))
	s.assertDecimal("150", s.accountBalance(cashTRY))

	s.Require().NoError(txnSvc.DeleteTransaction(s.ctx, manager, resp.Outgoing.TransactionID))
	s.assertDecimal("5000", s.accountBalance(bankTRY))
}
