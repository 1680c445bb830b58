package server

import (
	"context"
	"fmt"
	"net/http"

	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/pricing"
	"avenqor/pkg/httpx/reply"
	"avenqor/pkg/lox"
	"avenqor/pkg/rest"
)

type catalogService interface {
	ListCourses(ctx context.Context) ([]entity.Course, error)
	GetCourse(ctx context.Context, slug string) (entity.Course, error)
	ListTokenPacks(ctx context.Context) ([]entity.TokenPack, error)
}

type CatalogServer struct {
	catalogService catalogService
	quoter         pricing.Quoter
}

func NewCatalogServer(catalogService catalogService, quoter pricing.Quoter) CatalogServer {
	return CatalogServer{
		catalogService: catalogService,
		quoter:         quoter,
	}
}

// getCourses lists the published catalog, priced in the visitor's preferred
// currency.
func (s CatalogServer) getCourses(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	currency := currencyFromRequest(r)

	courses, err := s.catalogService.ListCourses(ctx)
	if err != nil {
		return fmt.Errorf("catalogService.ListCourses: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(courses, func(c entity.Course) rest.Course {
		return newRESTCourse(c, s.quoter, currency)
	}))

	return nil
}

func (s CatalogServer) getCourse(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	course, err := s.catalogService.GetCourse(ctx, r.PathValue("slug"))
	if err != nil {
		return fmt.Errorf("catalogService.GetCourse: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTCourse(course, s.quoter, currencyFromRequest(r)))

	return nil
}

func (s CatalogServer) getPacks(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	currency := currencyFromRequest(r)

	packs, err := s.catalogService.ListTokenPacks(ctx)
	if err != nil {
		return fmt.Errorf("catalogService.ListTokenPacks: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(packs, func(p entity.TokenPack) rest.TokenPack {
		return newRESTTokenPack(p, s.quoter, currency)
	}))

	return nil
}
