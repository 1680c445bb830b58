package server

import (
	"time"

	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/pricing"
	"avenqor/internal/domain/service/cart"
	"avenqor/internal/domain/service/request"
	"avenqor/internal/domain/value"
	"avenqor/pkg/lox"
	"avenqor/pkg/rest"
)

func newRESTQuote(q request.Quote) rest.QuoteResponse {
	return rest.QuoteResponse{
		Tokens:         q.Tokens,
		Currency:       q.Currency.String(),
		Amount:         q.Amount.StringFixed(2),
		FormattedPrice: q.Formatted,
	}
}

func newRESTCourse(c entity.Course, quoter pricing.Quoter, currency value.Currency) rest.Course {
	resolved := quoter.Resolve(currency)
	_, formatted := quoter.QuoteTokens(c.TokenPrice, resolved)

	return rest.Course{
		Slug:           c.Slug,
		Title:          c.Title,
		Level:          c.Level,
		Tokens:         c.TokenPrice,
		Currency:       resolved.String(),
		FormattedPrice: formatted,
	}
}

func newRESTTokenPack(p entity.TokenPack, quoter pricing.Quoter, currency value.Currency) rest.TokenPack {
	resolved := quoter.Resolve(currency)
	_, formatted := quoter.QuoteTokens(p.PriceTokens, resolved)

	return rest.TokenPack{
		ID:             p.ID,
		Name:           p.Name,
		Tokens:         p.Tokens,
		BonusTokens:    p.BonusTokens,
		Currency:       resolved.String(),
		FormattedPrice: formatted,
	}
}

func newRESTCart(c entity.Cart, totals cart.Totals) rest.Cart {
	return rest.Cart{
		Lines: lox.Map(c.Lines, func(line entity.CartLine) rest.CartLine {
			return rest.CartLine{
				Slug:   line.Slug,
				Title:  line.Title,
				Tokens: line.Tokens,
			}
		}),
		TotalTokens:    totals.TotalTokens,
		Currency:       totals.Currency.String(),
		TotalAmount:    totals.Amount.StringFixed(2),
		FormattedTotal: totals.Formatted,
	}
}

func newRESTSubmittedRequest(req entity.ServiceRequest, balance int64) rest.SubmittedRequest {
	return rest.SubmittedRequest{
		ID:        req.ID,
		Kind:      string(req.Kind),
		Status:    string(req.Status),
		Tokens:    req.Tokens,
		Balance:   balance,
		CreatedAt: req.CreatedAt.Format(time.RFC3339),
	}
}

func newRESTUser(u entity.User) rest.User {
	return rest.User{
		ID:      u.ID,
		Email:   u.Email,
		Locale:  u.Locale.String(),
		Balance: u.Balance,
	}
}

func newRESTWallet(balance int64, entries []entity.WalletEntry) rest.Wallet {
	return rest.Wallet{
		Balance: balance,
		Entries: lox.Map(entries, func(e entity.WalletEntry) rest.WalletEntry {
			return rest.WalletEntry{
				Tokens:    e.Tokens,
				Reference: e.Reference,
				CreatedAt: e.CreatedAt.Format(time.RFC3339),
			}
		}),
	}
}

func newDomainCourseSelection(sel rest.CourseSelection) value.CourseSelection {
	return value.CourseSelection{
		Experience: value.ExperienceTier(sel.Experience),
		Deposit:    value.DepositBracket(sel.Deposit),
		Risk:       value.RiskTolerance(sel.Risk),
		Markets:    lox.Map(sel.Markets, func(s string) value.Market { return value.Market(s) }),
		Style:      value.TradingStyle(sel.Style),
		Weekdays:   lox.Map(sel.Weekdays, func(s string) value.Weekday { return value.Weekday(s) }),
		Platforms:  lox.Map(sel.Platforms, func(s string) value.Platform { return value.Platform(s) }),
		Languages:  sel.Languages,
	}
}

func newDomainStrategySelection(sel rest.StrategySelection) value.StrategySelection {
	return value.StrategySelection{
		Experience:     value.ExperienceTier(sel.Experience),
		Deposit:        value.DepositBracket(sel.Deposit),
		Risk:           value.RiskTolerance(sel.Risk),
		Markets:        lox.Map(sel.Markets, func(s string) value.Market { return value.Market(s) }),
		Style:          value.TradingStyle(sel.Style),
		TimeCommitment: value.TimeCommitment(sel.TimeCommitment),
		Platforms:      lox.Map(sel.Platforms, func(s string) value.Platform { return value.Platform(s) }),
		Languages:      sel.Languages,
	}
}
