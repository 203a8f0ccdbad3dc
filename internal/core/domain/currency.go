package domain

// CurrencyCode is one of the currencies the agency books in.
type CurrencyCode string

const (
	TRY CurrencyCode = "TRY"
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
)

// IsValid reports whether c is a supported currency.
func (c CurrencyCode) IsValid() bool {
	switch c {
	case TRY, USD, EUR:
		return true
	}
	return false
}
