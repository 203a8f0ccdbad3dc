package accounting_test

import (
	"testing"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/SscSPs/agency_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDeriveLineItem(t *testing.T) {
	tests := []struct {
		name           string
		item           domain.LineItem
		wantVAT        string
		wantCommission string
	}{
		{
			name:           "plain service",
			item:           domain.LineItem{Subtotal: dec("1000"), VATRate: dec("20"), CommissionRate: dec("10")},
			wantVAT:        "200",
			wantCommission: "100",
		},
		{
			name:           "legal costs are taxable but not commissionable",
			item:           domain.LineItem{Subtotal: dec("500"), LegalCosts: dec("250"), VATRate: dec("20"), CommissionRate: dec("10")},
			wantVAT:        "150",
			wantCommission: "50",
		},
		{
			name:           "rounds half away from zero",
			item:           domain.LineItem{Subtotal: dec("10.25"), VATRate: dec("10"), CommissionRate: dec("5")},
			wantVAT:        "1.03",
			wantCommission: "0.51",
		},
		{
			name:           "zero rates",
			item:           domain.LineItem{Subtotal: dec("99.99")},
			wantVAT:        "0",
			wantCommission: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.DeriveLineItem(tt.item)
			assert.True(t, dec(tt.wantVAT).Equal(got.VATAmount), "vat: got %s", got.VATAmount)
			assert.True(t, dec(tt.wantCommission).Equal(got.CommissionAmount), "commission: got %s", got.CommissionAmount)
		})
	}
}

func TestDeriveLineItem_IgnoresSuppliedDerivedFields(t *testing.T) {
	in := domain.LineItem{
		Subtotal:         dec("100"),
		VATRate:          dec("20"),
		VATAmount:        dec("999"),
		CommissionRate:   dec("10"),
		CommissionAmount: dec("999"),
	}

	got := accounting.DeriveLineItem(in)

	assert.True(t, dec("20").Equal(got.VATAmount))
	assert.True(t, dec("10").Equal(got.CommissionAmount))
	assert.True(t, dec("999").Equal(in.VATAmount), "input must not be mutated")
}

func TestDeriveIncomeTotal(t *testing.T) {
	items := []domain.LineItem{
		{Subtotal: dec("1000"), VATRate: dec("20")},
		{Subtotal: dec("200"), LegalCosts: dec("50"), VATRate: dec("10")},
	}

	total := accounting.DeriveIncomeTotal(items)

	// 1000 + 200 + (200+50) + 25
	assert.True(t, dec("1475").Equal(total), "got %s", total)
}

func TestDerivePaymentStatus(t *testing.T) {
	pay := func(amounts ...string) []domain.Payment {
		out := make([]domain.Payment, len(amounts))
		for i, a := range amounts {
			out[i] = domain.Payment{Amount: dec(a)}
		}
		return out
	}

	tests := []struct {
		name     string
		total    string
		payments []domain.Payment
		want     domain.PaymentStatus
	}{
		{name: "zero total is paid", total: "0", payments: nil, want: domain.Paid},
		{name: "no payments is due", total: "100", payments: nil, want: domain.Due},
		{name: "partial", total: "100", payments: pay("40"), want: domain.Partial},
		{name: "installments cover total", total: "100", payments: pay("40", "60"), want: domain.Paid},
		{name: "overpaid", total: "100", payments: pay("150"), want: domain.Paid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.DerivePaymentStatus(dec(tt.total), tt.payments))
		})
	}
}

func TestDerivePaymentStatus_Monotonic(t *testing.T) {
	rank := map[domain.PaymentStatus]int{domain.Due: 0, domain.Partial: 1, domain.Paid: 2}
	total := dec("120")

	var payments []domain.Payment
	prev := accounting.DerivePaymentStatus(total, payments)
	for i := 0; i < 15; i++ {
		payments = append(payments, domain.Payment{Amount: dec("10")})
		cur := accounting.DerivePaymentStatus(total, payments)
		require.GreaterOrEqual(t, rank[cur], rank[prev], "status moved backwards after payment %d", i)
		prev = cur
	}
	assert.Equal(t, domain.Paid, prev)
}

func TestDeriveTransaction_Income(t *testing.T) {
	txn := domain.Transaction{
		Kind:   domain.Income,
		Amount: dec("1"), // ignored, recomputed
		Income: &domain.IncomeDetails{
			Items:    []domain.LineItem{{Subtotal: dec("1000"), VATRate: dec("20"), CommissionRate: dec("10"), EmployeeID: "E1"}},
			Payments: []domain.Payment{{Amount: dec("1200"), AccountID: "A1"}},
		},
	}

	got := accounting.DeriveTransaction(txn)

	assert.True(t, dec("1200").Equal(got.Amount))
	assert.Equal(t, domain.Paid, got.Income.PaymentStatus)
	assert.True(t, dec("200").Equal(got.Income.Items[0].VATAmount))
	assert.True(t, dec("1").Equal(txn.Amount), "input must not be mutated")
}

func TestComputeEffects_IncomeAndReverse(t *testing.T) {
	collab := "C1"
	txn := accounting.DeriveTransaction(domain.Transaction{
		Kind: domain.Income,
		Income: &domain.IncomeDetails{
			Items: []domain.LineItem{
				{Subtotal: dec("1000"), VATRate: dec("20"), CommissionRate: dec("10"), EmployeeID: "E1", CollaboratorID: &collab, CollaboratorFee: dec("75")},
				{Subtotal: dec("500"), CommissionRate: dec("5"), EmployeeID: "E1"},
			},
			Payments: []domain.Payment{{Amount: dec("1000"), AccountID: "A1"}, {Amount: dec("700"), AccountID: "A1"}},
		},
	})

	applied := accounting.ComputeEffects(txn, accounting.Apply)
	assert.True(t, dec("1700").Equal(applied.Accounts["A1"]))
	assert.True(t, dec("125").Equal(applied.Employees["E1"]))
	assert.True(t, dec("75").Equal(applied.Collaborators["C1"]))

	reversed := accounting.ComputeEffects(txn, accounting.Reverse)
	sum := domain.NewBalanceChanges()
	sum.Merge(applied)
	sum.Merge(reversed)
	for id, d := range sum.Accounts {
		assert.True(t, d.IsZero(), "account %s not restored", id)
	}
	for id, d := range sum.Employees {
		assert.True(t, d.IsZero(), "employee %s not restored", id)
	}
	for id, d := range sum.Collaborators {
		assert.True(t, d.IsZero(), "collaborator %s not restored", id)
	}
}

func TestComputeEffects_Expense(t *testing.T) {
	acc := "A1"
	emp := "E1"

	plain := domain.Transaction{Kind: domain.Expense, Amount: dec("300"), Expense: &domain.ExpenseDetails{AccountID: &acc, EmployeeID: &emp}}
	changes := accounting.ComputeEffects(plain, accounting.Apply)
	assert.True(t, dec("-300").Equal(changes.Accounts["A1"]))
	assert.Empty(t, changes.Employees, "a plain expense never touches outstanding balances")

	payout := plain.Clone()
	payout.Expense.SettlesOutstanding = true
	changes = accounting.ComputeEffects(payout, accounting.Apply)
	assert.True(t, dec("-300").Equal(changes.Accounts["A1"]))
	assert.True(t, dec("-300").Equal(changes.Employees["E1"]))

	noAccount := domain.Transaction{Kind: domain.Expense, Amount: dec("300"), Expense: &domain.ExpenseDetails{}}
	assert.True(t, accounting.ComputeEffects(noAccount, accounting.Apply).IsEmpty())
}
