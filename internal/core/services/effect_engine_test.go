package services_test

import (
	"testing"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/agency_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/suite"
)

type EffectEngineTestSuite struct {
	ledgerSuite
}

func TestEffectEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EffectEngineTestSuite))
}

func approvedIncome() domain.Transaction {
	broker := brokerID
	return domain.Transaction{
		TransactionID:  "txn-1",
		Kind:           domain.Income,
		ApprovalStatus: domain.Approved,
		Amount:         dec("1200"),
		Income: &domain.IncomeDetails{
			Items: []domain.LineItem{
				{EmployeeID: empAyse, CommissionAmount: dec("100"), CollaboratorID: &broker, CollaboratorFee: dec("40")},
				{EmployeeID: empAyse, CommissionAmount: dec("33.33")},
			},
			Payments: []domain.Payment{
				{Amount: dec("700"), AccountID: bankTRY},
				{Amount: dec("500"), AccountID: bankTRY},
				{Amount: dec("0.01"), AccountID: cashTRY},
			},
		},
	}
}

func (s *EffectEngineTestSuite) TestApplyThenReverse_RestoresState() {
	txn := approvedIncome()
	err := s.repo.Transact(s.ctx, func(tx portsrepo.LedgerTx) error {
		_, err := s.engine.Apply(s.ctx, tx, txn)
		return err
	})
	s.Require().NoError(err)
	s.assertDecimal("6200", s.accountBalance(bankTRY))
	s.assertDecimal("50.01", s.accountBalance(cashTRY))
	s.assertDecimal("133.33", s.employeeBalance(empAyse))
	s.assertDecimal("40", s.collaboratorBalance(brokerID))

	err = s.repo.Transact(s.ctx, func(tx portsrepo.LedgerTx) error {
		_, err := s.engine.Reverse(s.ctx, tx, txn)
		return err
	})
	s.Require().NoError(err)
	s.assertDecimal("5000", s.accountBalance(bankTRY))
	s.assertDecimal("50", s.accountBalance(cashTRY))
	s.assertDecimal("0", s.employeeBalance(empAyse))
	s.assertDecimal("0", s.collaboratorBalance(brokerID))
}

func (s *EffectEngineTestSuite) TestApply_PendingIsRefused() {
	txn := approvedIncome()
	txn.ApprovalStatus = domain.Pending
	err := s.repo.Transact(s.ctx, func(tx portsrepo.LedgerTx) error {
		_, err := s.engine.Apply(s.ctx, tx, txn)
		return err
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.assertDecimal("5000", s.accountBalance(bankTRY))
}

func (s *EffectEngineTestSuite) TestApply_UnknownReferenceIsAllOrNothing() {
	txn := approvedIncome()
	txn.Income.Items[1].EmployeeID = "emp-missing"
	err := s.repo.Transact(s.ctx, func(tx portsrepo.LedgerTx) error {
		_, err := s.engine.Apply(s.ctx, tx, txn)
		return err
	})
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.assertDecimal("5000", s.accountBalance(bankTRY))
	s.assertDecimal("0", s.employeeBalance(empAyse))
	s.assertDecimal("0", s.collaboratorBalance(brokerID))
}

func (s *EffectEngineTestSuite) TestReplace_NetsBothSides() {
	old := domain.Transaction{
		TransactionID:  "txn-2",
		Kind:           domain.Expense,
		ApprovalStatus: domain.Approved,
		Amount:         dec("40"),
		Expense:        &domain.ExpenseDetails{AccountID: strRef(cashTRY)},
	}
	err := s.repo.Transact(s.ctx, func(tx portsrepo.LedgerTx) error {
		_, err := s.engine.Apply(s.ctx, tx, old)
		return err
	})
	s.Require().NoError(err)
	s.assertDecimal("10", s.accountBalance(cashTRY))

	updated := old.Clone()
	updated.Amount = dec("45")
	var warnings []string
	err = s.repo.Transact(s.ctx, func(tx portsrepo.LedgerTx) error {
		var err error
		warnings, err = s.engine.Replace(s.ctx, tx, old, updated)
		return err
	})
	s.Require().NoError(err)
	s.Empty(warnings)
	s.assertDecimal("5", s.accountBalance(cashTRY))
}

func strRef(s string) *string { return &s }
