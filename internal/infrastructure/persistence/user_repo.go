package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/value"
	"avenqor/pkg/errcodes"
)

// pgUniqueViolation is the Postgres error code for unique_violation.
const pgUniqueViolation = "23505"

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, locale, balance, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :locale, :balance, :created_at, :updated_at)`

	params := map[string]any{
		"id":            user.ID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"locale":        user.Locale.String(),
		"balance":       user.Balance,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}

	if _, err := r.db.NamedExecContext(ctx, query, params); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.NewError(errcodes.EmailAlreadyInUse, "email already in use")
		}

		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert user")
	}

	return nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (entity.User, error) {
	query := `
		SELECT id, email, password_hash, locale, balance, created_at, updated_at
		FROM users
		WHERE email = $1`

	return r.getUser(ctx, query, email)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (entity.User, error) {
	query := `
		SELECT id, email, password_hash, locale, balance, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.getUser(ctx, query, id)
}

func (r *UserRepository) getUser(ctx context.Context, query string, arg any) (entity.User, error) {
	var schema userSchema
	if err := r.db.GetContext(ctx, &schema, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, domain.NewError(errcodes.NotFound, "user not found")
		}

		return entity.User{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get user")
	}

	return schema.toDomain(), nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID string, hash []byte) error {
	query := `
		UPDATE users
		SET password_hash = $1, updated_at = $2
		WHERE id = $3`

	return r.execUpdate(ctx, query, hash, time.Now(), userID)
}

func (r *UserRepository) UpdateLocale(ctx context.Context, userID string, locale value.Locale) error {
	query := `
		UPDATE users
		SET locale = $1, updated_at = $2
		WHERE id = $3`

	return r.execUpdate(ctx, query, locale.String(), time.Now(), userID)
}

func (r *UserRepository) execUpdate(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to execute update")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	if rows == 0 {
		return domain.NewError(errcodes.NotFound, "user not found")
	}

	return nil
}
