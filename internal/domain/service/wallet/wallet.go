package wallet

import (
	"context"
	"fmt"

	"avenqor/internal/domain/entity"
)

type Repository interface {
	// Adjust applies a signed token delta atomically, records a ledger entry
	// and returns the resulting balance. Implementations must reject deltas
	// that would drive the balance negative.
	Adjust(ctx context.Context, userID string, delta int64, reference string) (int64, error)
	Balance(ctx context.Context, userID string) (int64, error)
	Entries(ctx context.Context, userID string, limit int) ([]entity.WalletEntry, error)
}

type PackCatalog interface {
	GetTokenPack(ctx context.Context, id string) (entity.TokenPack, error)
}

const defaultEntriesLimit = 50

// Service is the token wallet. Every balance change goes through Adjust so
// the ledger stays complete.
type Service struct {
	repo  Repository
	packs PackCatalog
}

func NewService(repo Repository, packs PackCatalog) *Service {
	return &Service{repo: repo, packs: packs}
}

func (s *Service) Balance(ctx context.Context, userID string) (int64, error) {
	balance, err := s.repo.Balance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("repo.Balance: %w", err)
	}

	return balance, nil
}

func (s *Service) Credit(ctx context.Context, userID string, tokens int64, reference string) (int64, error) {
	balance, err := s.repo.Adjust(ctx, userID, tokens, reference)
	if err != nil {
		return 0, fmt.Errorf("repo.Adjust: %w", err)
	}

	logger(ctx).Info("wallet credited",
		"user_id", userID, "tokens", tokens, "reference", reference)

	return balance, nil
}

func (s *Service) Debit(ctx context.Context, userID string, tokens int64, reference string) (int64, error) {
	balance, err := s.repo.Adjust(ctx, userID, -tokens, reference)
	if err != nil {
		return 0, fmt.Errorf("repo.Adjust: %w", err)
	}

	logger(ctx).Info("wallet debited",
		"user_id", userID, "tokens", tokens, "reference", reference)

	return balance, nil
}

// TopUp credits a purchased token pack, bonus tokens included.
func (s *Service) TopUp(ctx context.Context, userID, packID string) (int64, error) {
	pack, err := s.packs.GetTokenPack(ctx, packID)
	if err != nil {
		return 0, fmt.Errorf("packs.GetTokenPack: %w", err)
	}

	return s.Credit(ctx, userID, pack.Tokens+pack.BonusTokens, "topup:"+pack.ID)
}

func (s *Service) Entries(ctx context.Context, userID string) ([]entity.WalletEntry, error) {
	entries, err := s.repo.Entries(ctx, userID, defaultEntriesLimit)
	if err != nil {
		return nil, fmt.Errorf("repo.Entries: %w", err)
	}

	return entries, nil
}
