package catalog

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"avenqor/internal/domain/entity"
)

const (
	cacheTTL     = 30 * time.Second
	cacheCleanup = 5 * time.Minute

	coursesKey = "courses"
	packsKey   = "packs"
)

type Repository interface {
	ListCourses(ctx context.Context) ([]entity.Course, error)
	GetCourse(ctx context.Context, slug string) (entity.Course, error)
	ListTokenPacks(ctx context.Context) ([]entity.TokenPack, error)
	GetTokenPack(ctx context.Context, id string) (entity.TokenPack, error)
}

// Service serves the storefront catalog. Listings sit behind a short-lived
// in-process cache; the catalog changes on the scale of days, the landing
// page hits it on every render.
type Service struct {
	repo  Repository
	cache *gocache.Cache
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, cacheCleanup),
	}
}

func (s *Service) ListCourses(ctx context.Context) ([]entity.Course, error) {
	if cached, ok := s.cache.Get(coursesKey); ok {
		return cached.([]entity.Course), nil
	}

	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListCourses: %w", err)
	}

	s.cache.SetDefault(coursesKey, courses)

	return courses, nil
}

// GetCourse bypasses the listing cache: add-to-cart must see the price the
// database holds right now.
func (s *Service) GetCourse(ctx context.Context, slug string) (entity.Course, error) {
	course, err := s.repo.GetCourse(ctx, slug)
	if err != nil {
		return entity.Course{}, fmt.Errorf("repo.GetCourse: %w", err)
	}

	return course, nil
}

func (s *Service) ListTokenPacks(ctx context.Context) ([]entity.TokenPack, error) {
	if cached, ok := s.cache.Get(packsKey); ok {
		return cached.([]entity.TokenPack), nil
	}

	packs, err := s.repo.ListTokenPacks(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListTokenPacks: %w", err)
	}

	s.cache.SetDefault(packsKey, packs)

	return packs, nil
}

func (s *Service) GetTokenPack(ctx context.Context, id string) (entity.TokenPack, error) {
	pack, err := s.repo.GetTokenPack(ctx, id)
	if err != nil {
		return entity.TokenPack{}, fmt.Errorf("repo.GetTokenPack: %w", err)
	}

	return pack, nil
}
