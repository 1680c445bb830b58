package server

import (
	"context"
	"fmt"
	"net/http"

	"avenqor/internal/domain/entity"
	"avenqor/pkg/contextx"
	"avenqor/pkg/httpx/reply"
	"avenqor/pkg/httpx/req"
	"avenqor/pkg/rest"
)

type walletService interface {
	Balance(ctx context.Context, userID string) (int64, error)
	TopUp(ctx context.Context, userID, packID string) (int64, error)
	Entries(ctx context.Context, userID string) ([]entity.WalletEntry, error)
}

type WalletServer struct {
	walletService walletService
}

func NewWalletServer(walletService walletService) WalletServer {
	return WalletServer{walletService: walletService}
}

func (s WalletServer) getWallet(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := contextx.UserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.UserIDFromContext: %w", err)
	}

	balance, err := s.walletService.Balance(ctx, userID.String())
	if err != nil {
		return fmt.Errorf("walletService.Balance: %w", err)
	}

	entries, err := s.walletService.Entries(ctx, userID.String())
	if err != nil {
		return fmt.Errorf("walletService.Entries: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTWallet(balance, entries))

	return nil
}

// postTopUp credits a token pack. Payment capture itself is out of scope;
// the pack purchase arrives here already settled.
func (s WalletServer) postTopUp(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := contextx.UserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.UserIDFromContext: %w", err)
	}

	var request rest.TopUpRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	balance, err := s.walletService.TopUp(ctx, userID.String(), request.PackID)
	if err != nil {
		return fmt.Errorf("walletService.TopUp: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Wallet{Balance: balance})

	return nil
}
