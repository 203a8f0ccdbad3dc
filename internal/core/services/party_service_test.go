package services_test

import (
	"testing"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/core/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type PartyServiceTestSuite struct {
	ledgerSuite
}

func TestPartyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}

func (s *PartyServiceTestSuite) TestCreateEmployee_OpensCashWallet() {
	svc := services.NewEmployeeService(s.repo, s.engine, nil, s.opts...)
	e, err := svc.CreateEmployee(s.ctx, manager, dto.CreateEmployeeRequest{
		Name:                  "Zeynep",
		Role:                  domain.RoleEmployee,
		DefaultCommissionRate: dec("12.5"),
		MonthlySalary:         dec("30000"),
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(e.CashAccountID)

	wallet, err := s.repo.FindAccountByID(s.ctx, e.CashAccountID)
	s.Require().NoError(err)
	s.Equal("Zeynep Cash", wallet.Name)
	s.Equal(domain.AccountCash, wallet.Kind)
	s.Equal(domain.TRY, wallet.Currency)
	s.Require().NotNil(wallet.OwnerID)
	s.Equal(e.EmployeeID, *wallet.OwnerID)
}

func (s *PartyServiceTestSuite) TestCreateEmployee_Validation() {
	svc := services.NewEmployeeService(s.repo, s.engine, nil, s.opts...)

	_, err := svc.CreateEmployee(s.ctx, manager, dto.CreateEmployeeRequest{Name: " ", Role: "Intern", DefaultCommissionRate: dec("101")})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
	var verr *apperrors.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Len(verr.Fields, 3)

	_, err = svc.CreateEmployee(s.ctx, employee, dto.CreateEmployeeRequest{Name: "Zeynep", Role: domain.RoleEmployee})
	s.ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (s *PartyServiceTestSuite) TestPayEmployee_SettlesAndReverses() {
	txnSvc := services.NewTransactionService(s.repo, s.engine, nil, s.opts...)
	_, err := txnSvc.CreateTransaction(s.ctx, manager, incomeRequest("2024-01-10"))
	s.Require().NoError(err)
	s.assertDecimal("100", s.employeeBalance(empAyse))

	svc := services.NewEmployeeService(s.repo, s.engine, nil, s.opts...)
	payout, err := svc.PayEmployee(s.ctx, manager, empAyse, dto.PayoutRequest{AccountID: bankTRY, Amount: dec("60"), Date: "2024-01-31"})
	s.Require().NoError(err)
	s.Equal(domain.CategoryEmployeePayment, payout.Category)
	s.Equal("Payment to Ayse", payout.Description)
	s.True(payout.Expense.SettlesOutstanding)
	s.assertDecimal("40", s.employeeBalance(empAyse))
	s.assertDecimal("6140", s.accountBalance(bankTRY))

	s.Require().NoError(txnSvc.DeleteTransaction(s.ctx, manager, payout.TransactionID))
	s.assertDecimal("100", s.employeeBalance(empAyse))
	s.assertDecimal("6200", s.accountBalance(bankTRY))
}

func (s *PartyServiceTestSuite) TestPayEmployee_EditKeepsSettlement() {
	txnSvc := services.NewTransactionService(s.repo, s.engine, nil, s.opts...)
	_, err := txnSvc.CreateTransaction(s.ctx, manager, incomeRequest("2024-01-10"))
	s.Require().NoError(err)

	svc := services.NewEmployeeService(s.repo, s.engine, nil, s.opts...)
	payout, err := svc.PayEmployee(s.ctx, manager, empAyse, dto.PayoutRequest{AccountID: bankTRY, Amount: dec("60"), Date: "2024-01-31"})
	s.Require().NoError(err)

	edit := expenseRequest("2024-01-31", bankTRY, "70")
	edit.Description = payout.Description
	edit.Category = domain.CategoryEmployeePayment
	ayse := empAyse
	edit.EmployeeID = &ayse
	out, err := txnSvc.UpdateTransaction(s.ctx, manager, payout.TransactionID, edit)
	s.Require().NoError(err)
	s.True(out.Transaction.Expense.SettlesOutstanding)
	s.assertDecimal("30", s.employeeBalance(empAyse))
	s.assertDecimal("6130", s.accountBalance(bankTRY))

	mehmet := empMehm
	edit.EmployeeID = &mehmet
	_, err = txnSvc.UpdateTransaction(s.ctx, manager, payout.TransactionID, edit)
	s.ErrorIs(err, apperrors.ErrConflict)
	edit.EmployeeID = nil
	_, err = txnSvc.UpdateTransaction(s.ctx, manager, payout.TransactionID, edit)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.assertDecimal("30", s.employeeBalance(empAyse))
	s.assertDecimal("0", s.employeeBalance(empMehm))
	s.assertDecimal("6130", s.accountBalance(bankTRY))

	s.Require().NoError(txnSvc.DeleteTransaction(s.ctx, manager, payout.TransactionID))
	s.assertDecimal("100", s.employeeBalance(empAyse))
	s.assertDecimal("6200", s.accountBalance(bankTRY))
}

func (s *PartyServiceTestSuite) TestPayCollaborator() {
	svc := services.NewCollaboratorService(s.repo, s.engine, nil, s.opts...)
	payout, err := svc.PayCollaborator(s.ctx, manager, brokerID, dto.PayoutRequest{AccountID: cashTRY, Amount: dec("20"), Date: "2024-01-31", Description: "Referral fee"})
	s.Require().NoError(err)

	s.Equal(domain.CategoryCollaboratorPayment, payout.Category)
	s.Equal("Referral fee", payout.Description)
	s.assertDecimal("-20", s.collaboratorBalance(brokerID))
	s.assertDecimal("30", s.accountBalance(cashTRY))
}

func (s *PartyServiceTestSuite) TestPayout_Rejections() {
	svc := services.NewEmployeeService(s.repo, s.engine, nil, s.opts...)

	_, err := svc.PayEmployee(s.ctx, employee, empAyse, dto.PayoutRequest{AccountID: bankTRY, Amount: dec("10"), Date: "2024-01-31"})
	s.ErrorIs(err, apperrors.ErrPermissionDenied)
	_, err = svc.PayEmployee(s.ctx, manager, "emp-missing", dto.PayoutRequest{AccountID: bankTRY, Amount: dec("10"), Date: "2024-01-31"})
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = svc.PayEmployee(s.ctx, manager, empAyse, dto.PayoutRequest{AccountID: bankTRY, Amount: dec("-1"), Date: "2024-01-31"})
	s.ErrorIs(err, apperrors.ErrValidation)

	s.setLockDate("2024-01-31")
	_, err = svc.PayEmployee(s.ctx, manager, empAyse, dto.PayoutRequest{AccountID: bankTRY, Amount: dec("10"), Date: "2024-01-31"})
	s.ErrorIs(err, apperrors.ErrLockedPeriod)
	s.assertDecimal("5000", s.accountBalance(bankTRY))
}

func (s *PartyServiceTestSuite) TestCreateCollaborator() {
	svc := services.NewCollaboratorService(s.repo, s.engine, nil, s.opts...)
	c, err := svc.CreateCollaborator(s.ctx, manager, dto.CreateCollaboratorRequest{Name: "Elena", Kind: domain.CollaboratorTranslator})
	s.Require().NoError(err)

	list, err := svc.ListCollaborators(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 2)
	got, err := svc.GetCollaboratorByID(s.ctx, c.CollaboratorID)
	s.Require().NoError(err)
	s.Equal("Elena", got.Name)
}

func (s *PartyServiceTestSuite) TestCustomerDebt() {
	customers := services.NewCustomerService(s.repo, s.opts...)
	txnSvc := services.NewTransactionService(s.repo, s.engine, nil, s.opts...)

	partial := incomeRequest("2024-01-10")
	partial.Payments[0].Amount = dec("200")
	_, err := txnSvc.CreateTransaction(s.ctx, manager, partial)
	s.Require().NoError(err)

	overpaid := incomeRequest("2024-01-11")
	overpaid.Payments[0].Amount = dec("1500")
	_, err = txnSvc.CreateTransaction(s.ctx, manager, overpaid)
	s.Require().NoError(err)

	pending := incomeRequest("2024-01-12")
	pending.Payments = nil
	_, err = txnSvc.CreateTransaction(s.ctx, employee, pending)
	s.Require().NoError(err)

	debt, err := customers.GetCustomerDebt(s.ctx, custID)
	s.Require().NoError(err)
	s.assertDecimal("1000", debt)

	_, err = customers.GetCustomerDebt(s.ctx, "cus-missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PartyServiceTestSuite) TestCreateCustomer_AnyRole() {
	customers := services.NewCustomerService(s.repo, s.opts...)
	c, err := customers.CreateCustomer(s.ctx, employee, dto.CreateCustomerRequest{Name: " Petrova "})
	s.Require().NoError(err)
	s.Equal("Petrova", c.Name)
	s.Equal(employee.ID, c.CreatedBy)

	_, err = customers.CreateCustomer(s.ctx, employee, dto.CreateCustomerRequest{})
	s.ErrorIs(err, apperrors.ErrValidation)
}
