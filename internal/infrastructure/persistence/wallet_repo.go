package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/pkg/errcodes"
	"avenqor/pkg/lox"
)

// WalletRepository keeps the running balance on the users row and a full
// ledger in wallet_entries. Both change in one transaction.
type WalletRepository struct {
	db *sqlx.DB
}

func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Adjust applies a signed delta to the balance and appends a ledger entry.
// The WHERE clause is the balance floor: a debit past zero matches no rows.
func (r *WalletRepository) Adjust(ctx context.Context, userID string, delta int64, reference string) (int64, error) {
	var balance int64

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE users
			SET balance = balance + $1, updated_at = $2
			WHERE id = $3 AND balance + $1 >= 0
			RETURNING balance`

		if err := tx.GetContext(ctx, &balance, query, delta, time.Now(), userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return r.classifyAdjustMiss(ctx, tx, userID)
			}

			return domain.WrapError(err, errcodes.InternalServerError, "failed to adjust balance")
		}

		insertQuery := `
			INSERT INTO wallet_entries (user_id, tokens, reference, created_at)
			VALUES ($1, $2, $3, $4)`

		if _, err := tx.ExecContext(ctx, insertQuery, userID, delta, reference, time.Now()); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert ledger entry")
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// classifyAdjustMiss tells a missing user apart from a balance shortfall.
func (r *WalletRepository) classifyAdjustMiss(ctx context.Context, tx *sqlx.Tx, userID string) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	if err := tx.GetContext(ctx, &exists, query, userID); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check user existence")
	}

	if !exists {
		return domain.NewError(errcodes.WalletNotFound, "wallet not found")
	}

	return domain.NewError(errcodes.InsufficientTokenBalance, "insufficient token balance")
}

func (r *WalletRepository) Balance(ctx context.Context, userID string) (int64, error) {
	query := `SELECT balance FROM users WHERE id = $1`

	var balance int64
	if err := r.db.GetContext(ctx, &balance, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NewError(errcodes.WalletNotFound, "wallet not found")
		}

		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to get balance")
	}

	return balance, nil
}

func (r *WalletRepository) Entries(ctx context.Context, userID string, limit int) ([]entity.WalletEntry, error) {
	query := `
		SELECT id, user_id, tokens, reference, created_at
		FROM wallet_entries
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2`

	var schemas []walletEntrySchema
	if err := r.db.SelectContext(ctx, &schemas, query, userID, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list ledger entries")
	}

	return lox.Map(schemas, func(s walletEntrySchema) entity.WalletEntry {
		return s.toDomain()
	}), nil
}
