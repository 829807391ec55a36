package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "reeltrack/internal/errors"
	"reeltrack/internal/service"
)

// UserHandler handles profile, search and stats endpoints.
type UserHandler struct {
	userService      service.UserService
	watchlistService service.WatchlistService
	reviewService    service.ReviewService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, watchlistService service.WatchlistService, reviewService service.ReviewService) *UserHandler {
	return &UserHandler{
		userService:      userService,
		watchlistService: watchlistService,
		reviewService:    reviewService,
	}
}

// UpdateProfileRequest represents a profile update request. Absent
// fields are left untouched.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=50"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	Privacy   *string `json:"privacy" validate:"omitempty,oneof=public friendsOnly private"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}

// Profile godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Profile(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, service.ProfilePatch{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Privacy:   req.Privacy,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if err == service.ErrUserAlreadyExists {
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: "email already in use",
				Code:  "EMAIL_TAKEN",
			})
		}
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// PublicProfile godoc
// @Summary Get another user's profile
// @Description Returns a reduced projection when the target's privacy settings deny visibility.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} model.PublicProfile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{userId}/profile [get]
func (h *UserHandler) PublicProfile(c echo.Context) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return domainError(apperrors.ErrInvalidID)
	}

	profile, err := h.userService.PublicProfile(c.Request().Context(), &viewerID, targetID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Search godoc
// @Summary Find a user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string true "User ID to look up"
// @Success 200 {array} model.UserSummary
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "query parameter q is required",
			Code:  "MISSING_QUERY",
		})
	}

	results, err := h.userService.SearchByID(c.Request().Context(), query)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, results)
}

// Stats godoc
// @Summary Get own watchlist statistics
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.watchlistService.Stats(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// MyReviews godoc
// @Summary List own reviews
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Review
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/my-reviews [get]
func (h *UserHandler) MyReviews(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	reviews, err := h.reviewService.ListMine(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// DeleteMyReview godoc
// @Summary Delete one of own reviews
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param reviewId path string true "Review ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/my-reviews/{reviewId} [delete]
func (h *UserHandler) DeleteMyReview(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		return domainError(apperrors.ErrInvalidID)
	}

	if err := h.reviewService.Delete(c.Request().Context(), userID, reviewID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "review deleted successfully",
	})
}
