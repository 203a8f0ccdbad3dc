package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionMapping_IncomeKeepsChildOrder(t *testing.T) {
	customer := "cus-1"
	broker := "col-1"
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	in := domain.Transaction{
		TransactionID:  "txn-1",
		Date:           date,
		Kind:           domain.Income,
		ApprovalStatus: domain.Approved,
		Amount:         decimal.NewFromInt(1200),
		Income: &domain.IncomeDetails{
			CustomerID:    &customer,
			PaymentStatus: domain.Partial,
			Items: []domain.LineItem{
				{LineItemID: "li-b", EmployeeID: "E1", Subtotal: decimal.NewFromInt(700)},
				{LineItemID: "li-a", EmployeeID: "E2", CollaboratorID: &broker, CollaboratorFee: decimal.NewFromInt(50)},
			},
			Payments: []domain.Payment{{PaymentID: "p-1", Date: date, Amount: decimal.NewFromInt(100), AccountID: "A1"}},
		},
	}

	header, items, payments := mapping.ToModelTransaction(in)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, "li-b", items[0].LineItemID)
	assert.Equal(t, 1, items[1].Position)
	require.NotNil(t, header.PaymentStatus)
	assert.Equal(t, "Partial", *header.PaymentStatus)
	assert.Nil(t, header.AccountID)

	out := mapping.ToDomainTransaction(header, items, payments)
	assert.Equal(t, in, out)
}

func TestTransactionMapping_ExpenseHasNoIncomeColumns(t *testing.T) {
	acc := "A1"
	emp := "E1"
	in := domain.Transaction{
		TransactionID:  "txn-2",
		Date:           time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Kind:           domain.Expense,
		ApprovalStatus: domain.Approved,
		Amount:         decimal.NewFromInt(60),
		Expense:        &domain.ExpenseDetails{AccountID: &acc, EmployeeID: &emp, SettlesOutstanding: true},
	}

	header, items, payments := mapping.ToModelTransaction(in)
	assert.Nil(t, header.PaymentStatus)
	assert.Nil(t, header.CustomerID)
	assert.Empty(t, items)
	assert.Empty(t, payments)
	assert.True(t, header.SettlesOutstanding)

	out := mapping.ToDomainTransaction(header, items, payments)
	assert.Equal(t, in, out)
}
