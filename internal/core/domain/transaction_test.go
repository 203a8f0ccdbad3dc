package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid income",
			tx:      domain.Transaction{Kind: domain.Income, Income: &domain.IncomeDetails{}},
			wantErr: false,
		},
		{
			name:    "valid expense",
			tx:      domain.Transaction{Kind: domain.Expense, Expense: &domain.ExpenseDetails{}},
			wantErr: false,
		},
		{
			name:    "income missing details",
			tx:      domain.Transaction{Kind: domain.Income},
			wantErr: true,
			errMsg:  "income details only",
		},
		{
			name: "expense carrying income details",
			tx: domain.Transaction{
				Kind:    domain.Expense,
				Expense: &domain.ExpenseDetails{},
				Income:  &domain.IncomeDetails{},
			},
			wantErr: true,
			errMsg:  "expense details only",
		},
		{
			name:    "unknown kind",
			tx:      domain.Transaction{Kind: "Refund"},
			wantErr: true,
			errMsg:  "unknown transaction kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_IsLocked(t *testing.T) {
	lock := date("2024-01-15")
	tests := []struct {
		name     string
		txDate   time.Time
		lockDate *time.Time
		want     bool
	}{
		{name: "no lock date", txDate: date("2024-01-10"), lockDate: nil, want: false},
		{name: "before lock date", txDate: date("2024-01-10"), lockDate: &lock, want: true},
		{name: "on lock date", txDate: date("2024-01-15"), lockDate: &lock, want: true},
		{name: "later same day clock time", txDate: date("2024-01-15").Add(20 * time.Hour), lockDate: &lock, want: true},
		{name: "after lock date", txDate: date("2024-01-16"), lockDate: &lock, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := domain.Transaction{Date: tt.txDate}
			assert.Equal(t, tt.want, tx.IsLocked(tt.lockDate))
		})
	}
}

func TestTransaction_CloneIsDeep(t *testing.T) {
	collab := "c1"
	orig := domain.Transaction{
		Kind: domain.Income,
		Income: &domain.IncomeDetails{
			Items:    []domain.LineItem{{EmployeeID: "e1", CollaboratorID: &collab}},
			Payments: []domain.Payment{{AccountID: "a1", Amount: decimal.NewFromInt(10)}},
		},
	}

	c := orig.Clone()
	c.Income.Items[0].EmployeeID = "e2"
	*c.Income.Items[0].CollaboratorID = "c2"
	c.Income.Payments[0].Amount = decimal.NewFromInt(99)

	assert.Equal(t, "e1", orig.Income.Items[0].EmployeeID)
	assert.Equal(t, "c1", *orig.Income.Items[0].CollaboratorID)
	assert.True(t, orig.Income.Payments[0].Amount.Equal(decimal.NewFromInt(10)))
}

func TestTransactionFilter_Matches(t *testing.T) {
	customer := "cust1"
	account := "acc1"
	income := domain.Transaction{
		Kind:           domain.Income,
		Date:           date("2024-02-01"),
		ApprovalStatus: domain.Approved,
		Income: &domain.IncomeDetails{
			CustomerID: &customer,
			Payments:   []domain.Payment{{AccountID: account}},
		},
		AuditFields: domain.AuditFields{CreatedBy: "u1"},
	}

	kindExpense := domain.Expense
	pending := domain.Pending
	other := "other"
	from := date("2024-02-02")

	assert.True(t, domain.TransactionFilter{}.Matches(income))
	assert.True(t, domain.TransactionFilter{CustomerID: &customer, AccountID: &account}.Matches(income))
	assert.False(t, domain.TransactionFilter{Kind: &kindExpense}.Matches(income))
	assert.False(t, domain.TransactionFilter{ApprovalStatus: &pending}.Matches(income))
	assert.False(t, domain.TransactionFilter{CreatedBy: &other}.Matches(income))
	assert.False(t, domain.TransactionFilter{From: &from}.Matches(income))
}

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
