package usecase

import (
	"context"
	"fmt"

	"github.com/immofind/ads-service/internal/entity"
	"github.com/immofind/ads-service/internal/port/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// BrowsePageSize is the page length of the incremental browse flow.
	BrowsePageSize = 16
	// SearchPageSize is the bound of the one-shot search result set. Browse
	// and search deliberately keep separate sizes and strategies; the
	// browse UI pages through a growing corpus while search is a single
	// bounded response.
	SearchPageSize = 30
)

type CatalogUseCase struct {
	adRepo repository.AdRepository
	tracer trace.Tracer
}

func NewCatalogUseCase(adRepo repository.AdRepository) *CatalogUseCase {
	return &CatalogUseCase{
		adRepo: adRepo,
		tracer: otel.Tracer("ads-service/usecase"),
	}
}

// ListAds returns one browse page of visible ads, newest first. A negative
// offset is treated as zero; an offset past the corpus yields an empty page.
func (uc *CatalogUseCase) ListAds(ctx context.Context, offset int64) ([]*entity.Ad, error) {
	ctx, span := uc.tracer.Start(ctx, "CatalogUseCase.ListAds",
		trace.WithAttributes(attribute.Int64("offset", offset)))
	defer span.End()

	if offset < 0 {
		offset = 0
	}

	ads, err := uc.adRepo.FindPage(ctx, offset, BrowsePageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	return ads, nil
}

// SearchAds returns the single bounded result set for the given filter,
// newest first. The baseline published+enabled predicate is applied by the
// repository regardless of the filter's contents.
func (uc *CatalogUseCase) SearchAds(ctx context.Context, filter repository.SearchFilter) ([]*entity.Ad, error) {
	ctx, span := uc.tracer.Start(ctx, "CatalogUseCase.SearchAds")
	defer span.End()

	ads, err := uc.adRepo.Search(ctx, filter, SearchPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to search ads: %w", err)
	}
	return ads, nil
}

// CountPages returns ceil(visible/BrowsePageSize); zero visible ads mean
// zero pages.
func (uc *CatalogUseCase) CountPages(ctx context.Context) (int64, error) {
	ctx, span := uc.tracer.Start(ctx, "CatalogUseCase.CountPages")
	defer span.End()

	count, err := uc.adRepo.CountVisible(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count ads: %w", err)
	}
	return (count + BrowsePageSize - 1) / BrowsePageSize, nil
}
