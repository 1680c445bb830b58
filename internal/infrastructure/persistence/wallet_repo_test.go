package persistence_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/value"
	"avenqor/internal/infrastructure/persistence"
	"avenqor/pkg/dbtest"
	"avenqor/pkg/errcodes"
)

// openTestDB connects to the database named by TEST_POSTGRES_DSN and applies
// the schema. Skips when the variable is unset so the suite stays runnable
// without infrastructure.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, dbtest.MigrateFromFile(db, "../../../migrations/001_init.sql"))

	return db
}

func createTestUser(t *testing.T, db *sqlx.DB) entity.User {
	t.Helper()

	now := time.Now().UTC()
	user := entity.User{
		ID:           xid.New().String(),
		Email:        xid.New().String() + "@example.com",
		PasswordHash: []byte("not-a-real-hash"),
		Locale:       value.LocaleEN,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	require.NoError(t, persistence.NewUserRepository(db).CreateUser(context.Background(), user))

	return user
}

func TestWalletRepositoryAdjustKeepsLedgerAndBalanceInSync(t *testing.T) {
	rq := require.New(t)
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	repo := persistence.NewWalletRepository(db)

	balance, err := repo.Adjust(ctx, user.ID, 5000, "topup:starter")
	rq.NoError(err)
	rq.EqualValues(5000, balance)

	balance, err = repo.Adjust(ctx, user.ID, -2000, "request:abc")
	rq.NoError(err)
	rq.EqualValues(3000, balance)

	stored, err := repo.Balance(ctx, user.ID)
	rq.NoError(err)
	rq.EqualValues(3000, stored)

	entries, err := repo.Entries(ctx, user.ID, 10)
	rq.NoError(err)
	rq.Len(entries, 2)
	rq.EqualValues(-2000, entries[0].Tokens) // newest first
	rq.Equal("request:abc", entries[0].Reference)
}

func TestWalletRepositoryAdjustRefusesOverdraft(t *testing.T) {
	rq := require.New(t)
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	repo := persistence.NewWalletRepository(db)

	_, err := repo.Adjust(ctx, user.ID, 100, "topup:small")
	rq.NoError(err)

	_, err = repo.Adjust(ctx, user.ID, -101, "request:over")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.InsufficientTokenBalance))

	// The failed debit must not leave a ledger entry behind.
	entries, err := repo.Entries(ctx, user.ID, 10)
	rq.NoError(err)
	rq.Len(entries, 1)

	balance, err := repo.Balance(ctx, user.ID)
	rq.NoError(err)
	rq.EqualValues(100, balance)
}

func TestWalletRepositoryAdjustUnknownUser(t *testing.T) {
	rq := require.New(t)
	db := openTestDB(t)

	repo := persistence.NewWalletRepository(db)

	_, err := repo.Adjust(context.Background(), xid.New().String(), 100, "topup:ghost")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.WalletNotFound))
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	rq := require.New(t)
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db)

	duplicate := user
	duplicate.ID = xid.New().String()

	err := persistence.NewUserRepository(db).CreateUser(ctx, duplicate)
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.EmailAlreadyInUse))
}
