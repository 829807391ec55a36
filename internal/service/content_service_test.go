package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reeltrack/internal/catalog"
	apperrors "reeltrack/internal/errors"
)

func TestContentService_Search(t *testing.T) {
	t.Run("passes results through", func(t *testing.T) {
		mockCatalog := new(MockCatalog)
		mockCatalog.On("Search", mock.Anything, "inception", "multi").Return([]catalog.MediaSummary{
			{ExternalID: "27205", MediaType: "movie", Title: "Inception"},
		}, nil)

		svc := NewContentService(mockCatalog, nil)
		results, err := svc.Search(context.Background(), "inception", "multi")

		assert.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("transport failure maps to catalog unavailable", func(t *testing.T) {
		mockCatalog := new(MockCatalog)
		mockCatalog.On("Search", mock.Anything, "inception", "multi").Return(nil, errors.New("connection refused"))

		svc := NewContentService(mockCatalog, nil)
		_, err := svc.Search(context.Background(), "inception", "multi")

		assert.ErrorIs(t, err, apperrors.ErrCatalogUnavailable)
	})
}

func TestContentService_Details(t *testing.T) {
	t.Run("forwards details without a cache", func(t *testing.T) {
		mockCatalog := new(MockCatalog)
		mockCatalog.On("GetDetails", mock.Anything, "27205", "movie").Return(&catalog.MediaDetails{
			ID: 27205, Title: "Inception",
		}, nil)

		svc := NewContentService(mockCatalog, nil)
		details, err := svc.Details(context.Background(), "27205", "movie")

		assert.NoError(t, err)
		assert.Equal(t, "Inception", details.Title)
	})

	t.Run("unknown title maps to media not found", func(t *testing.T) {
		mockCatalog := new(MockCatalog)
		mockCatalog.On("GetDetails", mock.Anything, "999999", "movie").Return(nil, catalog.ErrNotFound)

		svc := NewContentService(mockCatalog, nil)
		_, err := svc.Details(context.Background(), "999999", "movie")

		assert.ErrorIs(t, err, apperrors.ErrMediaNotFound)
	})
}
