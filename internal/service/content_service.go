package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reeltrack/internal/cache"
	"reeltrack/internal/catalog"
	apperrors "reeltrack/internal/errors"
)

// detailsCacheTTL bounds how stale a cached TMDB details payload can be.
const detailsCacheTTL = 6 * time.Hour

// Catalog is the slice of the TMDB client the services depend on.
type Catalog interface {
	Search(ctx context.Context, query, mediaType string) ([]catalog.MediaSummary, error)
	GetDetails(ctx context.Context, externalID, mediaType string) (*catalog.MediaDetails, error)
	PosterURL(posterPath string) string
}

// ContentService proxies catalog search and details lookups, caching
// details payloads in Redis so repeated title views don't hammer TMDB.
type ContentService interface {
	Search(ctx context.Context, query, mediaType string) ([]catalog.MediaSummary, error)
	Details(ctx context.Context, externalID, mediaType string) (*catalog.MediaDetails, error)
}

type contentService struct {
	catalog Catalog
	cache   *cache.Client
}

// NewContentService creates a new content service.
func NewContentService(cat Catalog, cacheClient *cache.Client) ContentService {
	return &contentService{catalog: cat, cache: cacheClient}
}

func (s *contentService) Search(ctx context.Context, query, mediaType string) ([]catalog.MediaSummary, error) {
	results, err := s.catalog.Search(ctx, query, mediaType)
	if err != nil {
		return nil, catalogError(err)
	}
	return results, nil
}

func (s *contentService) Details(ctx context.Context, externalID, mediaType string) (*catalog.MediaDetails, error) {
	key := fmt.Sprintf("catalog:details:%s:%s", mediaType, externalID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached catalog.MediaDetails
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	details, err := s.catalog.GetDetails(ctx, externalID, mediaType)
	if err != nil {
		return nil, catalogError(err)
	}

	if payload, err := json.Marshal(details); err == nil {
		_ = s.cache.Set(ctx, key, payload, detailsCacheTTL)
	}
	return details, nil
}

// catalogError translates client failures into the domain taxonomy: a
// missing title is terminal, anything else is an upstream availability
// problem.
func catalogError(err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return apperrors.ErrMediaNotFound
	}
	return fmt.Errorf("%w: %v", apperrors.ErrCatalogUnavailable, err)
}
