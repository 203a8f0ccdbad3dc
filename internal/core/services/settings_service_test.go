package services_test

import (
	"testing"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/core/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/SscSPs/agency_ledger/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceTestSuite struct {
	ledgerSuite
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}

func (s *SettingsServiceTestSuite) TestLockDate_SetAndClear() {
	svc := services.NewSettingsService(s.repo, s.opts...)

	st, err := svc.SetFinancialLockDate(s.ctx, manager, dto.LockDateRequest{Date: "2024-03-31"})
	s.Require().NoError(err)
	s.Require().NotNil(st.FinancialLockDate)
	s.Equal("2024-03-31", st.FinancialLockDate.Format(domain.DateLayout))

	st, err = svc.SetFinancialLockDate(s.ctx, manager, dto.LockDateRequest{})
	s.Require().NoError(err)
	s.Nil(st.FinancialLockDate)

	_, err = svc.SetFinancialLockDate(s.ctx, employee, dto.LockDateRequest{Date: "2024-03-31"})
	s.ErrorIs(err, apperrors.ErrPermissionDenied)
	_, err = svc.SetFinancialLockDate(s.ctx, manager, dto.LockDateRequest{Date: "31/03/2024"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SettingsServiceTestSuite) TestExpenseCategories_NoDuplicates() {
	svc := services.NewSettingsService(s.repo, s.opts...)

	_, err := svc.AddExpenseCategory(s.ctx, manager, dto.ExpenseCategoryRequest{Name: "Notary"})
	s.Require().NoError(err)
	_, err = svc.AddExpenseCategory(s.ctx, manager, dto.ExpenseCategoryRequest{Name: "notary"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	st, err := svc.GetSettings(s.ctx)
	s.Require().NoError(err)
	s.Contains(st.ExpenseCategories, "Notary")
}

func (s *SettingsServiceTestSuite) TestCompanyInfo() {
	svc := services.NewSettingsService(s.repo, s.opts...)

	st, err := svc.UpdateCompanyInfo(s.ctx, manager, dto.CompanyInfoRequest{Name: "Bosphorus Consulting", TaxOffice: "Kadikoy"})
	s.Require().NoError(err)
	s.Equal("Bosphorus Consulting", st.CompanyInfo.Name)

	_, err = svc.UpdateCompanyInfo(s.ctx, manager, dto.CompanyInfoRequest{})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SettingsServiceTestSuite) TestProjects() {
	svc := services.NewSettingsService(s.repo, s.opts...)
	customer := custID

	p, err := svc.CreateProject(s.ctx, employee, dto.CreateProjectRequest{Name: "Citizenship", CustomerID: &customer})
	s.Require().NoError(err)
	s.Equal(domain.ProjectActive, p.Status)

	missing := "cus-missing"
	_, err = svc.CreateProject(s.ctx, employee, dto.CreateProjectRequest{Name: "Orphan", CustomerID: &missing})
	s.ErrorIs(err, apperrors.ErrNotFound)

	projects, err := svc.ListProjects(s.ctx)
	s.Require().NoError(err)
	s.Len(projects, 1)

	req := incomeRequest("2024-01-10")
	req.ProjectID = &p.ProjectID
	out, err := services.NewTransactionService(s.repo, s.engine, nil, s.opts...).CreateTransaction(s.ctx, manager, req)
	s.Require().NoError(err)
	s.Equal(p.ProjectID, *out.Transaction.ProjectID)
}

func (s *SettingsServiceTestSuite) TestBackup_RoundTrip() {
	txnSvc := services.NewTransactionService(s.repo, s.engine, nil, s.opts...)
	_, err := txnSvc.CreateTransaction(s.ctx, manager, incomeRequest("2024-01-10"))
	s.Require().NoError(err)
	s.setLockDate("2024-01-05")

	backup := services.NewBackupService(s.repo, s.opts...)
	snap, err := backup.Export(s.ctx)
	s.Require().NoError(err)
	s.Len(snap.Transactions, 1)
	s.Len(snap.Accounts, 3)
	s.Require().NotNil(snap.FinancialLockDate)

	fresh := memory.NewLedgerRepository()
	restore := services.NewBackupService(fresh, s.opts...)
	s.Require().ErrorIs(restore.Restore(s.ctx, employee, snap), apperrors.ErrPermissionDenied)
	s.Require().NoError(restore.Restore(s.ctx, manager, snap))

	acc, err := fresh.FindAccountByID(s.ctx, bankTRY)
	s.Require().NoError(err)
	s.assertDecimal("6200", acc.Balance)
	again, err := restore.Export(s.ctx)
	s.Require().NoError(err)
	s.Equal(snap.Transactions, again.Transactions)
	s.Equal(snap.FinancialLockDate, again.FinancialLockDate)
}

func TestAuditService_RecordsAndNotifies(t *testing.T) {
	repo := memory.NewLedgerRepository()
	audit := services.NewAuditService(repo)
	container := services.NewServiceContainer(repo, nil)
	ctx := t.Context()

	txnID := "txn-1"
	audit.Record(ctx, manager, "Approved something", &txnID)
	audit.Notify(ctx, "Ayse submitted a transaction", &txnID)

	entries, err := container.Audit.ListAuditEntries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, manager.Name, entries[0].ActorName)
	assert.Equal(t, &txnID, entries[0].TransactionID)

	unread, err := container.Audit.ListNotifications(ctx, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.NoError(t, container.Audit.MarkNotificationRead(ctx, unread[0].NotificationID))
	unread, err = container.Audit.ListNotifications(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	assert.ErrorIs(t, container.Audit.MarkNotificationRead(ctx, "missing"), apperrors.ErrNotFound)
}

func TestServiceContainer_EmployeeSubmissionReachesManagers(t *testing.T) {
	repo := memory.NewLedgerRepository()
	container := services.NewServiceContainer(repo, nil)
	ctx := t.Context()

	e, err := container.Employee.CreateEmployee(ctx, manager, dto.CreateEmployeeRequest{Name: "Ayse", Role: domain.RoleEmployee})
	require.NoError(t, err)
	actor := domain.Actor{ID: e.EmployeeID, Name: e.Name, Role: domain.RoleEmployee}

	out, err := container.Transaction.CreateTransaction(ctx, actor, dto.TransactionRequest{
		Date:        "2024-01-10",
		Description: "Taxi to notary",
		Kind:        domain.Expense,
		Category:    "Transport",
		Amount:      dec("150"),
		AccountID:   &e.CashAccountID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Pending, out.Transaction.ApprovalStatus)

	notes, err := container.Audit.ListNotifications(ctx, true)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, &out.Transaction.TransactionID, notes[0].TransactionID)

	_, err = container.Transaction.ApproveTransaction(ctx, manager, out.Transaction.TransactionID)
	require.NoError(t, err)
	wallet, err := container.Account.GetAccountByID(ctx, e.CashAccountID)
	require.NoError(t, err)
	assert.True(t, dec("-150").Equal(wallet.Balance))

	entries, err := container.Audit.ListAuditEntries(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
