package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/pricing"
	"avenqor/internal/domain/value"
	"avenqor/pkg/errcodes"
)

// Store persists carts for the lifetime of a browsing session.
type Store interface {
	Get(ctx context.Context, cartID string) (entity.Cart, error)
	Save(ctx context.Context, cart entity.Cart) error
	Delete(ctx context.Context, cartID string) error
}

type CourseCatalog interface {
	GetCourse(ctx context.Context, slug string) (entity.Course, error)
}

type Wallet interface {
	Debit(ctx context.Context, userID string, tokens int64, reference string) (int64, error)
}

// Totals is the cart aggregate: tokens summed across lines, converted to a
// display price exactly once.
type Totals struct {
	TotalTokens int64
	Currency    value.Currency
	Amount      decimal.Decimal
	Formatted   string
}

type Service struct {
	store   Store
	catalog CourseCatalog
	wallet  Wallet
	quoter  pricing.Quoter
}

func NewService(store Store, catalog CourseCatalog, wallet Wallet, quoter pricing.Quoter) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		wallet:  wallet,
		quoter:  quoter,
	}
}

// Get returns the cart, empty if the session has none yet.
func (s *Service) Get(ctx context.Context, cartID string) (entity.Cart, error) {
	cart, err := s.store.Get(ctx, cartID)
	if err != nil {
		if domain.HasCode(err, errcodes.CartNotFound) {
			return entity.Cart{ID: cartID}, nil
		}

		return entity.Cart{}, fmt.Errorf("store.Get: %w", err)
	}

	return cart, nil
}

// Add puts a catalog course into the cart, freezing its token price at add
// time. Re-adding the same slug replaces the existing line.
func (s *Service) Add(ctx context.Context, cartID, slug string) (entity.Cart, error) {
	course, err := s.catalog.GetCourse(ctx, slug)
	if err != nil {
		return entity.Cart{}, fmt.Errorf("catalog.GetCourse: %w", err)
	}

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return entity.Cart{}, err
	}

	cart.Upsert(entity.CartLine{
		Slug:    course.Slug,
		Title:   course.Title,
		Tokens:  course.TokenPrice,
		AddedAt: time.Now(),
	})
	cart.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, cart); err != nil {
		return entity.Cart{}, fmt.Errorf("store.Save: %w", err)
	}

	return cart, nil
}

// Remove drops a line by slug. Removing an absent slug is not an error.
func (s *Service) Remove(ctx context.Context, cartID, slug string) (entity.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return entity.Cart{}, err
	}

	if !cart.Remove(slug) {
		return cart, nil
	}

	cart.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, cart); err != nil {
		return entity.Cart{}, fmt.Errorf("store.Save: %w", err)
	}

	return cart, nil
}

// Clear empties the session cart.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	if err := s.store.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("store.Delete: %w", err)
	}

	return nil
}

// Total converts the summed token cost once via the quoter. Repeated calls
// over an unchanged cart return identical totals.
func (s *Service) Total(cart entity.Cart, currency value.Currency) Totals {
	resolved := s.quoter.Resolve(currency)
	tokens := cart.TotalTokens()
	amount, formatted := s.quoter.QuoteTokens(tokens, resolved)

	return Totals{
		TotalTokens: tokens,
		Currency:    resolved,
		Amount:      amount,
		Formatted:   formatted,
	}
}

// Checkout debits the signed-in user's wallet for the cart total and
// destroys the cart. The wallet enforces the balance rule.
func (s *Service) Checkout(ctx context.Context, cartID, userID string) (spent, balance int64, err error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return 0, 0, err
	}

	if cart.Empty() {
		return 0, 0, domain.NewError(errcodes.CartEmpty, "cart is empty")
	}

	tokens := cart.TotalTokens()

	balance, err = s.wallet.Debit(ctx, userID, tokens, "checkout:"+cartID)
	if err != nil {
		return 0, 0, fmt.Errorf("wallet.Debit: %w", err)
	}

	if err := s.store.Delete(ctx, cartID); err != nil {
		// The purchase went through; a stale cart is recoverable.
		logger(ctx).Error("store.Delete after checkout", "cart_id", cartID, "error", err)
	}

	return tokens, balance, nil
}
