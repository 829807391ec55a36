package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "reeltrack/internal/errors"
	"reeltrack/internal/model"
	"reeltrack/internal/service"
)

// ContentHandler handles catalog search, details and review endpoints.
type ContentHandler struct {
	contentService service.ContentService
	reviewService  service.ReviewService
}

// NewContentHandler creates a new content handler.
func NewContentHandler(contentService service.ContentService, reviewService service.ReviewService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		reviewService:  reviewService,
	}
}

// SubmitReviewRequest represents a new review for a title.
type SubmitReviewRequest struct {
	Rating            float64 `json:"rating" validate:"gte=0,lte=10"`
	Comment           string  `json:"comment" validate:"required,max=1000"`
	ContentTitle      string  `json:"contentTitle" validate:"required"`
	ContentPosterPath string  `json:"contentPosterPath"`
}

// UpdateReviewRequest represents an edit to an existing review.
type UpdateReviewRequest struct {
	Rating  float64 `json:"rating" validate:"gte=0,lte=10"`
	Comment string  `json:"comment" validate:"required,max=1000"`
}

func contentParams(c echo.Context) (mediaType, externalID string, err error) {
	mediaType = c.Param("mediaType")
	if !model.ValidMediaType(mediaType) {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "media type must be movie or tv",
			Code:  "INVALID_MEDIA_TYPE",
		})
	}
	return mediaType, c.Param("externalId"), nil
}

// Search godoc
// @Summary Search the catalog
// @Tags content
// @Produce json
// @Param query query string true "Search text"
// @Param type query string false "multi, movie or tv" default(multi)
// @Success 200 {array} catalog.MediaSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /content/search [get]
func (h *ContentHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "query parameter is required",
			Code:  "MISSING_QUERY",
		})
	}

	mediaType := c.QueryParam("type")
	switch mediaType {
	case "", "multi":
		mediaType = "multi"
	case model.MediaTypeMovie, model.MediaTypeTV:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "type must be multi, movie or tv",
			Code:  "INVALID_MEDIA_TYPE",
		})
	}

	results, err := h.contentService.Search(c.Request().Context(), query, mediaType)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, results)
}

// Details godoc
// @Summary Get title details
// @Tags content
// @Produce json
// @Param mediaType path string true "movie or tv"
// @Param externalId path string true "Catalog title ID"
// @Success 200 {object} catalog.MediaDetails
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /content/{mediaType}/{externalId} [get]
func (h *ContentHandler) Details(c echo.Context) error {
	mediaType, externalID, err := contentParams(c)
	if err != nil {
		return err
	}

	details, err := h.contentService.Details(c.Request().Context(), externalID, mediaType)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, details)
}

// ListReviews godoc
// @Summary List reviews for a title
// @Tags reviews
// @Produce json
// @Param mediaType path string true "movie or tv"
// @Param externalId path string true "Catalog title ID"
// @Success 200 {array} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Router /content/{mediaType}/{externalId}/reviews [get]
func (h *ContentHandler) ListReviews(c echo.Context) error {
	mediaType, externalID, err := contentParams(c)
	if err != nil {
		return err
	}

	reviews, err := h.reviewService.ListForContent(c.Request().Context(), mediaType, externalID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// SubmitReview godoc
// @Summary Review a title
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mediaType path string true "movie or tv"
// @Param externalId path string true "Catalog title ID"
// @Param request body SubmitReviewRequest true "Review"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /content/{mediaType}/{externalId}/reviews [post]
func (h *ContentHandler) SubmitReview(c echo.Context) error {
	reviewerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	mediaType, externalID, err := contentParams(c)
	if err != nil {
		return err
	}

	var req SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.Submit(c.Request().Context(), reviewerID, service.ReviewInput{
		MediaType:         mediaType,
		ExternalID:        externalID,
		Rating:            req.Rating,
		Comment:           req.Comment,
		ContentTitle:      req.ContentTitle,
		ContentPosterPath: req.ContentPosterPath,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, review)
}

// UpdateReview godoc
// @Summary Edit an own review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mediaType path string true "movie or tv"
// @Param externalId path string true "Catalog title ID"
// @Param reviewId path string true "Review ID"
// @Param request body UpdateReviewRequest true "Updated review"
// @Success 200 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /content/{mediaType}/{externalId}/reviews/{reviewId} [put]
func (h *ContentHandler) UpdateReview(c echo.Context) error {
	reviewerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		return domainError(apperrors.ErrInvalidID)
	}

	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.Update(c.Request().Context(), reviewerID, reviewID, req.Rating, req.Comment)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, review)
}

// MyReviewForContent godoc
// @Summary Get own review for a title
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param mediaType path string true "movie or tv"
// @Param externalId path string true "Catalog title ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /content/{mediaType}/{externalId}/reviews/me [get]
func (h *ContentHandler) MyReviewForContent(c echo.Context) error {
	reviewerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	mediaType, externalID, err := contentParams(c)
	if err != nil {
		return err
	}

	review, err := h.reviewService.GetOwn(c.Request().Context(), reviewerID, mediaType, externalID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"review": review,
	})
}
