package service

import (
	"context"
	"time"

	"github.com/currybox/currybox/internal/api/dto"
	"github.com/currybox/currybox/internal/domain/catalog"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/types"
)

const (
	catalogCacheKey = "catalog"
	catalogCacheTTL = 10 * time.Minute
)

// CatalogService serves the externally supplied menu
type CatalogService interface {
	GetCatalog(ctx context.Context) (*dto.CatalogResponse, error)
	GetItems(ctx context.Context, category types.ItemCategory) (*dto.CatalogItemsResponse, error)
}

type catalogService struct {
	ServiceParams
}

func NewCatalogService(params ServiceParams) CatalogService {
	return &catalogService{ServiceParams: params}
}

func (s *catalogService) GetCatalog(ctx context.Context) (*dto.CatalogResponse, error) {
	cat, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CatalogResponse{Catalog: cat}, nil
}

func (s *catalogService) GetItems(ctx context.Context, category types.ItemCategory) (*dto.CatalogItemsResponse, error) {
	if !category.Validate() {
		return nil, ierr.NewError("unknown item category").
			WithHint("Unknown item category").
			WithReportableDetails(map[string]any{"category": category}).
			Mark(ierr.ErrValidation)
	}

	cat, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CatalogItemsResponse{Items: cat.ItemsFor(category)}, nil
}

func (s *catalogService) catalog(ctx context.Context) (*catalog.Catalog, error) {
	return fetchCatalog(ctx, s.ServiceParams)
}

// fetchCatalog returns the cached menu, loading it on a miss. Shared across
// services because the builder prices selections against the same catalog the
// browsing views render.
func fetchCatalog(ctx context.Context, p ServiceParams) (*catalog.Catalog, error) {
	if v, ok := p.Cache.Get(ctx, catalogCacheKey); ok {
		if cat, ok := v.(*catalog.Catalog); ok {
			return cat, nil
		}
	}

	cat, err := p.CatalogRepo.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	p.Cache.Set(ctx, catalogCacheKey, cat, catalogCacheTTL)
	return cat, nil
}
