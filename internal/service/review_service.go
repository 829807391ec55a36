package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "reeltrack/internal/errors"
	"reeltrack/internal/model"
	"reeltrack/internal/repository"
)

// ReviewInput carries everything needed to create a review. The title
// and poster are denormalized from the client's current view of the
// content so review listings never need a catalog round-trip.
type ReviewInput struct {
	MediaType         string
	ExternalID        string
	Rating            float64
	Comment           string
	ContentTitle      string
	ContentPosterPath string
}

// ReviewService owns review submission and retrieval. One review per
// (reviewer, mediaType, externalId); a second submission is rejected and
// must go through Update instead.
type ReviewService interface {
	Submit(ctx context.Context, reviewerID uuid.UUID, input ReviewInput) (*model.Review, error)
	Update(ctx context.Context, reviewerID, reviewID uuid.UUID, rating float64, comment string) (*model.Review, error)
	Delete(ctx context.Context, reviewerID, reviewID uuid.UUID) error
	GetOwn(ctx context.Context, reviewerID uuid.UUID, mediaType, externalID string) (*model.Review, error)
	ListForContent(ctx context.Context, mediaType, externalID string) ([]model.Review, error)
	ListMine(ctx context.Context, reviewerID uuid.UUID) ([]model.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	catalog    Catalog
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository, cat Catalog) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, userRepo: userRepo, catalog: cat}
}

func (s *reviewService) Submit(ctx context.Context, reviewerID uuid.UUID, input ReviewInput) (*model.Review, error) {
	_, err := s.reviewRepo.FindByReviewerAndTitle(ctx, reviewerID, input.MediaType, input.ExternalID)
	if err == nil {
		return nil, apperrors.ErrDuplicateReview
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	review := &model.Review{
		ReviewerID:        reviewerID,
		MediaType:         input.MediaType,
		ExternalID:        input.ExternalID,
		Rating:            input.Rating,
		Comment:           input.Comment,
		ContentTitle:      input.ContentTitle,
		ContentPosterPath: input.ContentPosterPath,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	s.attachReviewer(ctx, review)
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, reviewerID, reviewID uuid.UUID, rating float64, comment string) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review.ReviewerID != reviewerID {
		return nil, apperrors.ErrNotReviewOwner
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	s.attachReviewer(ctx, review)
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, reviewerID, reviewID uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return fmt.Errorf("find review: %w", err)
	}
	if review.ReviewerID != reviewerID {
		return apperrors.ErrNotReviewOwner
	}
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

// GetOwn returns the caller's review for a title, or nil when there is
// none; the client renders an empty review form in that case.
func (s *reviewService) GetOwn(ctx context.Context, reviewerID uuid.UUID, mediaType, externalID string) (*model.Review, error) {
	review, err := s.reviewRepo.FindByReviewerAndTitle(ctx, reviewerID, mediaType, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return review, nil
}

// ListForContent returns all reviews for one title with reviewer names
// and avatars attached, newest first.
func (s *reviewService) ListForContent(ctx context.Context, mediaType, externalID string) ([]model.Review, error) {
	reviews, err := s.reviewRepo.ListByTitle(ctx, mediaType, externalID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(reviews))
	seen := map[uuid.UUID]bool{}
	for _, r := range reviews {
		if !seen[r.ReviewerID] {
			seen[r.ReviewerID] = true
			ids = append(ids, r.ReviewerID)
		}
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load reviewers: %w", err)
	}
	byID := make(map[uuid.UUID]model.UserSummary, len(users))
	for _, u := range users {
		byID[u.ID] = u.Summary()
	}
	for i := range reviews {
		if summary, ok := byID[reviews[i].ReviewerID]; ok {
			reviews[i].Reviewer = &summary
		}
	}
	return reviews, nil
}

// ListMine returns the caller's reviews with poster URLs expanded.
func (s *reviewService) ListMine(ctx context.Context, reviewerID uuid.UUID) ([]model.Review, error) {
	reviews, err := s.reviewRepo.ListByReviewer(ctx, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	for i := range reviews {
		reviews[i].PosterFullURL = s.catalog.PosterURL(reviews[i].ContentPosterPath)
	}
	return reviews, nil
}

func (s *reviewService) attachReviewer(ctx context.Context, review *model.Review) {
	if user, err := s.userRepo.FindByID(ctx, review.ReviewerID); err == nil {
		summary := user.Summary()
		review.Reviewer = &summary
	}
}
