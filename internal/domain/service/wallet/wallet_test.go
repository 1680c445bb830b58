package wallet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/service/wallet"
	"avenqor/pkg/errcodes"
)

type fakeRepo struct {
	balances map[string]int64
	entries  []entity.WalletEntry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{balances: make(map[string]int64)}
}

func (f *fakeRepo) Adjust(_ context.Context, userID string, delta int64, reference string) (int64, error) {
	if f.balances[userID]+delta < 0 {
		return 0, domain.NewError(errcodes.InsufficientTokenBalance, "insufficient token balance")
	}

	f.balances[userID] += delta
	f.entries = append(f.entries, entity.WalletEntry{
		UserID:    userID,
		Tokens:    delta,
		Reference: reference,
		CreatedAt: time.Now(),
	})

	return f.balances[userID], nil
}

func (f *fakeRepo) Balance(_ context.Context, userID string) (int64, error) {
	return f.balances[userID], nil
}

func (f *fakeRepo) Entries(_ context.Context, userID string, _ int) ([]entity.WalletEntry, error) {
	var out []entity.WalletEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}

	return out, nil
}

type fakePacks struct{}

func (fakePacks) GetTokenPack(_ context.Context, id string) (entity.TokenPack, error) {
	if id != "starter" {
		return entity.TokenPack{}, domain.NewError(errcodes.PackNotFound, "token pack not found")
	}

	return entity.TokenPack{ID: "starter", Tokens: 5000, BonusTokens: 500}, nil
}

func TestCreditAndDebit(t *testing.T) {
	rq := require.New(t)

	repo := newFakeRepo()
	svc := wallet.NewService(repo, fakePacks{})
	ctx := context.Background()

	balance, err := svc.Credit(ctx, "u-1", 1000, "topup:test")
	rq.NoError(err)
	rq.EqualValues(1000, balance)

	balance, err = svc.Debit(ctx, "u-1", 400, "checkout:c-1")
	rq.NoError(err)
	rq.EqualValues(600, balance)

	entries, err := svc.Entries(ctx, "u-1")
	rq.NoError(err)
	rq.Len(entries, 2)
	rq.EqualValues(-400, entries[1].Tokens)
}

func TestDebitBelowZero(t *testing.T) {
	rq := require.New(t)

	svc := wallet.NewService(newFakeRepo(), fakePacks{})

	_, err := svc.Debit(context.Background(), "u-1", 1, "checkout:c-1")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.InsufficientTokenBalance))
}

func TestTopUpIncludesBonus(t *testing.T) {
	rq := require.New(t)

	repo := newFakeRepo()
	svc := wallet.NewService(repo, fakePacks{})
	ctx := context.Background()

	balance, err := svc.TopUp(ctx, "u-1", "starter")
	rq.NoError(err)
	rq.EqualValues(5500, balance)

	_, err = svc.TopUp(ctx, "u-1", "missing")
	rq.True(domain.HasCode(err, errcodes.PackNotFound))
}
