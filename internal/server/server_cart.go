package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/xid"

	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/service/cart"
	"avenqor/internal/domain/value"
	"avenqor/pkg/contextx"
	"avenqor/pkg/httpx/reply"
	"avenqor/pkg/httpx/req"
	"avenqor/pkg/rest"
)

type cartService interface {
	Get(ctx context.Context, cartID string) (entity.Cart, error)
	Add(ctx context.Context, cartID, slug string) (entity.Cart, error)
	Remove(ctx context.Context, cartID, slug string) (entity.Cart, error)
	Clear(ctx context.Context, cartID string) error
	Total(c entity.Cart, currency value.Currency) cart.Totals
	Checkout(ctx context.Context, cartID, userID string) (spent, balance int64, err error)
}

type CartServer struct {
	cartService cartService
}

func NewCartServer(cartService cartService) CartServer {
	return CartServer{cartService: cartService}
}

// CartCookie puts the cart ID from the cookie into the context, minting a
// fresh ID (and cookie) for first-time visitors.
func (s CartServer) CartCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cartID string

		if cookie, err := r.Cookie(cookieCart); err == nil && cookie.Value != "" {
			cartID = cookie.Value
		} else {
			cartID = xid.New().String()
			setCartCookie(w, cartID)
		}

		ctx := contextx.WithCartID(r.Context(), contextx.CartID(cartID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s CartServer) getCart(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	cartID, err := contextx.CartIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.CartIDFromContext: %w", err)
	}

	c, err := s.cartService.Get(ctx, cartID.String())
	if err != nil {
		return fmt.Errorf("cartService.Get: %w", err)
	}

	s.replyCart(w, r, c)

	return nil
}

func (s CartServer) postCartItem(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	cartID, err := contextx.CartIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.CartIDFromContext: %w", err)
	}

	var request rest.AddCartItemRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	c, err := s.cartService.Add(ctx, cartID.String(), request.Slug)
	if err != nil {
		return fmt.Errorf("cartService.Add: %w", err)
	}

	s.replyCart(w, r, c)

	return nil
}

func (s CartServer) deleteCartItem(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	cartID, err := contextx.CartIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.CartIDFromContext: %w", err)
	}

	c, err := s.cartService.Remove(ctx, cartID.String(), r.PathValue("slug"))
	if err != nil {
		return fmt.Errorf("cartService.Remove: %w", err)
	}

	s.replyCart(w, r, c)

	return nil
}

func (s CartServer) deleteCart(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	cartID, err := contextx.CartIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.CartIDFromContext: %w", err)
	}

	if err := s.cartService.Clear(ctx, cartID.String()); err != nil {
		return fmt.Errorf("cartService.Clear: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.OK{Success: true})

	return nil
}

func (s CartServer) postCheckout(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	cartID, err := contextx.CartIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.CartIDFromContext: %w", err)
	}

	userID, err := contextx.UserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.UserIDFromContext: %w", err)
	}

	spent, balance, err := s.cartService.Checkout(ctx, cartID.String(), userID.String())
	if err != nil {
		return fmt.Errorf("cartService.Checkout: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.CheckoutResponse{
		SpentTokens: spent,
		Balance:     balance,
	})

	return nil
}

func (s CartServer) replyCart(w http.ResponseWriter, r *http.Request, c entity.Cart) {
	totals := s.cartService.Total(c, currencyFromRequest(r))
	reply.JSON(r.Context(), w, http.StatusOK, newRESTCart(c, totals))
}
