package accounting

import (
	"github.com/SscSPs/agency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds a currency amount to 2 decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// DeriveLineItem recomputes VAT and commission from their rate fields.
// The input is never mutated.
func DeriveLineItem(item domain.LineItem) domain.LineItem {
	out := item
	if item.CollaboratorID != nil {
		id := *item.CollaboratorID
		out.CollaboratorID = &id
	}
	taxable := item.Subtotal.Add(item.LegalCosts)
	out.VATAmount = Round2(taxable.Mul(item.VATRate).Div(hundred))
	out.CommissionAmount = Round2(item.Subtotal.Mul(item.CommissionRate).Div(hundred))
	out.CollaboratorFee = Round2(item.CollaboratorFee)
	return out
}

// DeriveIncomeTotal sums subtotal, legal costs and VAT over derived items.
func DeriveIncomeTotal(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		d := DeriveLineItem(it)
		total = total.Add(d.Subtotal).Add(d.LegalCosts).Add(d.VATAmount)
	}
	return Round2(total)
}

// DerivePaymentStatus classifies how much of total has been received.
func DerivePaymentStatus(total decimal.Decimal, payments []domain.Payment) domain.PaymentStatus {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	switch {
	case total.IsZero():
		return domain.Paid
	case paid.GreaterThanOrEqual(total):
		return domain.Paid
	case paid.IsPositive():
		return domain.Partial
	default:
		return domain.Due
	}
}

// DeriveTransaction returns a copy of txn with all derived fields recomputed.
// For income this covers item VAT/commission, amount and payment status.
func DeriveTransaction(txn domain.Transaction) domain.Transaction {
	out := txn.Clone()
	if out.Kind == domain.Income && out.Income != nil {
		for i, it := range out.Income.Items {
			out.Income.Items[i] = DeriveLineItem(it)
		}
		for i, p := range out.Income.Payments {
			out.Income.Payments[i].Amount = Round2(p.Amount)
		}
		out.Amount = DeriveIncomeTotal(out.Income.Items)
		out.Income.PaymentStatus = DerivePaymentStatus(out.Amount, out.Income.Payments)
		return out
	}
	out.Amount = Round2(out.Amount)
	return out
}
