package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/pkg/errcodes"
	"avenqor/pkg/lox"
)

// CatalogRepository reads the storefront catalog: courses and token packs.
type CatalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListCourses(ctx context.Context) ([]entity.Course, error) {
	query := `
		SELECT slug, title, level, token_price, published, created_at, updated_at
		FROM courses
		WHERE published
		ORDER BY token_price, slug`

	var schemas []courseSchema
	if err := r.db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list courses")
	}

	return lox.Map(schemas, func(s courseSchema) entity.Course {
		return s.toDomain()
	}), nil
}

func (r *CatalogRepository) GetCourse(ctx context.Context, slug string) (entity.Course, error) {
	query := `
		SELECT slug, title, level, token_price, published, created_at, updated_at
		FROM courses
		WHERE slug = $1 AND published`

	var schema courseSchema
	if err := r.db.GetContext(ctx, &schema, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Course{}, domain.NewError(errcodes.CourseNotFound, "course not found")
		}

		return entity.Course{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get course")
	}

	return schema.toDomain(), nil
}

func (r *CatalogRepository) ListTokenPacks(ctx context.Context) ([]entity.TokenPack, error) {
	query := `
		SELECT id, name, tokens, bonus_tokens, price_tokens, active, updated_at
		FROM token_packs
		WHERE active
		ORDER BY tokens`

	var schemas []tokenPackSchema
	if err := r.db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list token packs")
	}

	return lox.Map(schemas, func(s tokenPackSchema) entity.TokenPack {
		return s.toDomain()
	}), nil
}

func (r *CatalogRepository) GetTokenPack(ctx context.Context, id string) (entity.TokenPack, error) {
	query := `
		SELECT id, name, tokens, bonus_tokens, price_tokens, active, updated_at
		FROM token_packs
		WHERE id = $1 AND active`

	var schema tokenPackSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.TokenPack{}, domain.NewError(errcodes.PackNotFound, "token pack not found")
		}

		return entity.TokenPack{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get token pack")
	}

	return schema.toDomain(), nil
}
