package contextx

import (
	"context"
	"fmt"
)

// CartID identifies the browsing-session cart. It travels in a cookie and is
// minted by the cart middleware on first use.
type CartID string

type contextKeyCartID struct{}

func (c CartID) String() string {
	return string(c)
}

func WithCartID(ctx context.Context, cartID CartID) context.Context {
	return context.WithValue(ctx, contextKeyCartID{}, cartID)
}

func CartIDFromContext(ctx context.Context) (CartID, error) {
	cartID, ok := ctx.Value(contextKeyCartID{}).(CartID)
	if !ok {
		return "", fmt.Errorf("cart id: %w", ErrNoValue)
	}

	return cartID, nil
}
