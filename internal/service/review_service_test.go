package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "reeltrack/internal/errors"
	"reeltrack/internal/model"
)

func TestReviewService_Submit(t *testing.T) {
	reviewer := uuid.New()
	input := ReviewInput{
		MediaType:    model.MediaTypeMovie,
		ExternalID:   "27205",
		Rating:       9,
		Comment:      "Mind-bending.",
		ContentTitle: "Inception",
	}

	t.Run("creates review with reviewer summary attached", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockUserRepo := new(MockUserRepository)
		mockReviewRepo.On("FindByReviewerAndTitle", mock.Anything, reviewer, model.MediaTypeMovie, "27205").Return(nil, gorm.ErrRecordNotFound)
		mockReviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
		mockUserRepo.On("FindByID", mock.Anything, reviewer).Return(&model.User{ID: reviewer, Name: "Alice"}, nil)

		svc := NewReviewService(mockReviewRepo, mockUserRepo, new(MockCatalog))
		review, err := svc.Submit(context.Background(), reviewer, input)

		assert.NoError(t, err)
		assert.Equal(t, reviewer, review.ReviewerID)
		assert.Equal(t, 9.0, review.Rating)
		assert.NotNil(t, review.Reviewer)
		assert.Equal(t, "Alice", review.Reviewer.Name)
	})

	t.Run("rejects duplicate review", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByReviewerAndTitle", mock.Anything, reviewer, model.MediaTypeMovie, "27205").Return(&model.Review{}, nil)

		svc := NewReviewService(mockReviewRepo, new(MockUserRepository), new(MockCatalog))
		_, err := svc.Submit(context.Background(), reviewer, input)

		assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)
		mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReviewService_Update(t *testing.T) {
	reviewer := uuid.New()
	reviewID := uuid.New()

	t.Run("owner can edit", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockUserRepo := new(MockUserRepository)
		mockReviewRepo.On("FindByID", mock.Anything, reviewID).Return(&model.Review{
			ID: reviewID, ReviewerID: reviewer, Rating: 5, Comment: "mid",
		}, nil)
		mockReviewRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
		mockUserRepo.On("FindByID", mock.Anything, reviewer).Return(&model.User{ID: reviewer}, nil)

		svc := NewReviewService(mockReviewRepo, mockUserRepo, new(MockCatalog))
		review, err := svc.Update(context.Background(), reviewer, reviewID, 8, "rewatched, much better")

		assert.NoError(t, err)
		assert.Equal(t, 8.0, review.Rating)
		assert.Equal(t, "rewatched, much better", review.Comment)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByID", mock.Anything, reviewID).Return(&model.Review{
			ID: reviewID, ReviewerID: uuid.New(),
		}, nil)

		svc := NewReviewService(mockReviewRepo, new(MockUserRepository), new(MockCatalog))
		_, err := svc.Update(context.Background(), reviewer, reviewID, 8, "nope")

		assert.ErrorIs(t, err, apperrors.ErrNotReviewOwner)
	})

	t.Run("missing review", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByID", mock.Anything, reviewID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewReviewService(mockReviewRepo, new(MockUserRepository), new(MockCatalog))
		_, err := svc.Update(context.Background(), reviewer, reviewID, 8, "")

		assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
	})
}

func TestReviewService_Delete(t *testing.T) {
	reviewer := uuid.New()
	reviewID := uuid.New()

	t.Run("owner can delete", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByID", mock.Anything, reviewID).Return(&model.Review{ID: reviewID, ReviewerID: reviewer}, nil)
		mockReviewRepo.On("Delete", mock.Anything, reviewID).Return(nil)

		svc := NewReviewService(mockReviewRepo, new(MockUserRepository), new(MockCatalog))
		assert.NoError(t, svc.Delete(context.Background(), reviewer, reviewID))
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByID", mock.Anything, reviewID).Return(&model.Review{ID: reviewID, ReviewerID: uuid.New()}, nil)

		svc := NewReviewService(mockReviewRepo, new(MockUserRepository), new(MockCatalog))
		err := svc.Delete(context.Background(), reviewer, reviewID)

		assert.ErrorIs(t, err, apperrors.ErrNotReviewOwner)
		mockReviewRepo.AssertNotCalled(t, "Delete", mock.Anything, reviewID)
	})
}

func TestReviewService_GetOwn(t *testing.T) {
	reviewer := uuid.New()

	t.Run("nil when none exists", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByReviewerAndTitle", mock.Anything, reviewer, model.MediaTypeTV, "1396").Return(nil, gorm.ErrRecordNotFound)

		svc := NewReviewService(mockReviewRepo, new(MockUserRepository), new(MockCatalog))
		review, err := svc.GetOwn(context.Background(), reviewer, model.MediaTypeTV, "1396")

		assert.NoError(t, err)
		assert.Nil(t, review)
	})
}

func TestReviewService_ListForContent(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	mockReviewRepo := new(MockReviewRepository)
	mockUserRepo := new(MockUserRepository)
	mockReviewRepo.On("ListByTitle", mock.Anything, model.MediaTypeMovie, "27205").Return([]model.Review{
		{ReviewerID: alice, Rating: 9},
		{ReviewerID: bob, Rating: 6},
		{ReviewerID: alice, Rating: 7},
	}, nil)
	mockUserRepo.On("FindByIDs", mock.Anything, []uuid.UUID{alice, bob}).Return([]model.User{
		{ID: alice, Name: "Alice"},
		{ID: bob, Name: "Bob"},
	}, nil)

	svc := NewReviewService(mockReviewRepo, mockUserRepo, new(MockCatalog))
	reviews, err := svc.ListForContent(context.Background(), model.MediaTypeMovie, "27205")

	assert.NoError(t, err)
	assert.Len(t, reviews, 3)
	assert.Equal(t, "Alice", reviews[0].Reviewer.Name)
	assert.Equal(t, "Bob", reviews[1].Reviewer.Name)
	assert.Equal(t, "Alice", reviews[2].Reviewer.Name)
}

func TestReviewService_ListMine(t *testing.T) {
	reviewer := uuid.New()

	mockReviewRepo := new(MockReviewRepository)
	mockCatalog := new(MockCatalog)
	mockReviewRepo.On("ListByReviewer", mock.Anything, reviewer).Return([]model.Review{
		{ReviewerID: reviewer, ContentPosterPath: "/p.jpg"},
	}, nil)
	mockCatalog.On("PosterURL", "/p.jpg").Return("https://image.tmdb.org/t/p/w500/p.jpg")

	svc := NewReviewService(mockReviewRepo, new(MockUserRepository), mockCatalog)
	reviews, err := svc.ListMine(context.Background(), reviewer)

	assert.NoError(t, err)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", reviews[0].PosterFullURL)
}
