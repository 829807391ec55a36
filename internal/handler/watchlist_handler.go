package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "reeltrack/internal/errors"
	"reeltrack/internal/model"
	"reeltrack/internal/repository"
	"reeltrack/internal/service"
)

// WatchlistHandler handles watchlist endpoints.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
}

// NewWatchlistHandler creates a new watchlist handler.
func NewWatchlistHandler(watchlistService service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// ToggleRequest identifies a title to add or remove.
type ToggleRequest struct {
	ExternalID string `json:"externalId" validate:"required"`
	MediaType  string `json:"mediaType" validate:"required,oneof=movie tv"`
}

// UpdateItemRequest carries tracking fields to change on a watchlist
// item. Absent fields are left untouched.
type UpdateItemRequest struct {
	Status              *string    `json:"status" validate:"omitempty,oneof=plan_to_watch watching completed on_hold dropped"`
	UserRating          *float64   `json:"userRating" validate:"omitempty,gte=0,lte=10"`
	EpisodesWatched     *int       `json:"episodesWatched" validate:"omitempty,gte=0"`
	UserNotes           *string    `json:"userNotes" validate:"omitempty,max=1000"`
	DateStartedWatching *time.Time `json:"dateStartedWatching"`
	DateCompleted       *time.Time `json:"dateCompleted"`
	ReminderDate        *time.Time `json:"reminderDate"`
}

// listFilter parses pagination and sorting query parameters. Unknown
// sort keys fall back to the repository default rather than erroring.
func listFilter(c echo.Context) repository.WatchlistFilter {
	filter := repository.WatchlistFilter{
		Status:    c.QueryParam("status"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	if sortBy := c.QueryParam("sortBy"); repository.IsSortable(sortBy) {
		filter.SortBy = sortBy
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	return filter
}

// Toggle godoc
// @Summary Add or remove a title from the watchlist
// @Description Removes the title if already present, otherwise fetches catalog details and adds it.
// @Tags watchlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ToggleRequest true "Title identifier"
// @Success 200 {object} service.ToggleResult
// @Success 201 {object} service.ToggleResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /watchlist/toggle [post]
func (h *WatchlistHandler) Toggle(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req ToggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.watchlistService.Toggle(c.Request().Context(), userID, req.ExternalID, req.MediaType)
	if err != nil {
		return domainError(err)
	}

	status := http.StatusOK
	if result.Action == service.ActionAdded {
		status = http.StatusCreated
	}
	return c.JSON(status, result)
}

// List godoc
// @Summary List own watchlist
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param sortBy query string false "Sort key" Enums(createdAt, updatedAt, dateCompleted, userRating, releaseDate, title)
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.WatchlistPage
// @Failure 401 {object} errors.ErrorResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	page, err := h.watchlistService.List(c.Request().Context(), userID, listFilter(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// FriendWatchlist godoc
// @Summary View another user's watchlist
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Watchlist owner ID"
// @Param status query string false "Filter by status"
// @Param sortBy query string false "Sort key"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.WatchlistPage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{userId}/watchlist [get]
func (h *WatchlistHandler) FriendWatchlist(c echo.Context) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return domainError(apperrors.ErrInvalidID)
	}

	page, err := h.watchlistService.FriendWatchlist(c.Request().Context(), viewerID, targetID, listFilter(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get a watchlist item
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} model.WatchlistItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /watchlist/{id} [get]
func (h *WatchlistHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainError(apperrors.ErrInvalidID)
	}

	item, err := h.watchlistService.Get(c.Request().Context(), userID, itemID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Update godoc
// @Summary Update tracking fields on a watchlist item
// @Tags watchlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body UpdateItemRequest true "Fields to update"
// @Success 200 {object} model.WatchlistItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /watchlist/{id} [put]
func (h *WatchlistHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainError(apperrors.ErrInvalidID)
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.watchlistService.Update(c.Request().Context(), userID, itemID, model.WatchlistPatch{
		Status:              req.Status,
		UserRating:          req.UserRating,
		EpisodesWatched:     req.EpisodesWatched,
		UserNotes:           req.UserNotes,
		DateStartedWatching: req.DateStartedWatching,
		DateCompleted:       req.DateCompleted,
		ReminderDate:        req.ReminderDate,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Remove a watchlist item
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /watchlist/{id} [delete]
func (h *WatchlistHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainError(apperrors.ErrInvalidID)
	}

	if err := h.watchlistService.Delete(c.Request().Context(), userID, itemID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "item removed from watchlist",
	})
}

// Status godoc
// @Summary Check whether a title is on the watchlist
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param mediaType path string true "movie or tv"
// @Param externalId path string true "Catalog title ID"
// @Success 200 {object} service.ItemStatus
// @Failure 400 {object} errors.ErrorResponse
// @Router /watchlist/status/{mediaType}/{externalId} [get]
func (h *WatchlistHandler) Status(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	mediaType := c.Param("mediaType")
	if !model.ValidMediaType(mediaType) {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "media type must be movie or tv",
			Code:  "INVALID_MEDIA_TYPE",
		})
	}

	status, err := h.watchlistService.Status(c.Request().Context(), userID, c.Param("externalId"), mediaType)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, status)
}
