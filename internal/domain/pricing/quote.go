package pricing

import (
	"github.com/shopspring/decimal"

	"avenqor/internal/domain/value"
)

// displayDecimals is fixed for every currency. Currencies with other
// conventional decimal counts are deliberately flattened to two: the rate
// table is a display convenience, not a compliance feature.
const displayDecimals = 2

// Quoter converts token counts into display prices using the static rate
// table. Quotes are pure functions of their inputs.
type Quoter struct {
	rates           map[value.Currency]Rate
	defaultCurrency value.Currency
}

func NewQuoter(cfg Config) Quoter {
	return Quoter{
		rates:           cfg.Rates,
		defaultCurrency: cfg.DefaultCurrency,
	}
}

// Resolve normalizes a requested currency onto a supported one. Unknown or
// empty codes fall back to the default currency instead of failing: a stale
// preference cookie must never break a price render.
func (q Quoter) Resolve(currency value.Currency) value.Currency {
	if _, ok := q.rates[currency]; ok {
		return currency
	}

	return q.defaultCurrency
}

// PriceForTokens converts a token count into an amount of the given
// currency, rounded half-up to two decimals. Zero tokens quote as zero in
// every currency.
func (q Quoter) PriceForTokens(tokens int64, currency value.Currency) decimal.Decimal {
	rate := q.rates[q.Resolve(currency)]

	return decimal.NewFromInt(tokens).Mul(rate.PerToken).Round(displayDecimals)
}

// FormatPrice renders an amount with the currency symbol and exactly two
// decimal digits.
func (q Quoter) FormatPrice(amount decimal.Decimal, currency value.Currency) string {
	rate := q.rates[q.Resolve(currency)]

	return rate.Symbol + amount.StringFixed(displayDecimals)
}

// QuoteTokens is the PriceForTokens + FormatPrice pair most callers want.
func (q Quoter) QuoteTokens(tokens int64, currency value.Currency) (decimal.Decimal, string) {
	resolved := q.Resolve(currency)
	amount := q.PriceForTokens(tokens, resolved)

	return amount, q.FormatPrice(amount, resolved)
}

// Supported lists the currencies present in the rate table.
func (q Quoter) Supported() []value.Currency {
	currencies := make([]value.Currency, 0, len(q.rates))
	for currency := range q.rates {
		currencies = append(currencies, currency)
	}

	return currencies
}

// DefaultCurrency is the baseline used when no valid preference is set.
func (q Quoter) DefaultCurrency() value.Currency {
	return q.defaultCurrency
}
