package value

import (
	"fmt"
	"strings"
)

// Currency is an ISO-4217 style display currency code. The set of currencies
// the storefront actually quotes in comes from the pricing rate table; this
// type only guards the shape.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyAED Currency = "AED"
)

const currencyCodeLen = 3

func (c Currency) String() string {
	return string(c)
}

func ParseCurrency(s string) (Currency, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	if len(s) != currencyCodeLen {
		return "", fmt.Errorf("currency code must be %d letters, got %q", currencyCodeLen, s)
	}

	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("currency code must be alphabetic, got %q", s)
		}
	}

	return Currency(s), nil
}
