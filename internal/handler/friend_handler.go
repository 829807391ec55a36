package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "reeltrack/internal/errors"
	"reeltrack/internal/service"
)

// FriendHandler handles friendship endpoints.
type FriendHandler struct {
	friendshipService service.FriendshipService
}

// NewFriendHandler creates a new friend handler.
func NewFriendHandler(friendshipService service.FriendshipService) *FriendHandler {
	return &FriendHandler{friendshipService: friendshipService}
}

func targetUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return uuid.Nil, domainError(apperrors.ErrInvalidID)
	}
	return id, nil
}

// SendRequest godoc
// @Summary Send a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Target user ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/friends/request/{userId} [post]
func (h *FriendHandler) SendRequest(c echo.Context) error {
	senderID, err := currentUserID(c)
	if err != nil {
		return err
	}
	targetID, err := targetUserID(c)
	if err != nil {
		return err
	}

	if err := h.friendshipService.SendRequest(c.Request().Context(), senderID, targetID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "friend request sent",
	})
}

// AcceptRequest godoc
// @Summary Accept a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Requester user ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/friends/accept/{userId} [post]
func (h *FriendHandler) AcceptRequest(c echo.Context) error {
	recipientID, err := currentUserID(c)
	if err != nil {
		return err
	}
	requesterID, err := targetUserID(c)
	if err != nil {
		return err
	}

	if err := h.friendshipService.AcceptRequest(c.Request().Context(), recipientID, requesterID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "friend request accepted",
	})
}

// RejectOrRemove godoc
// @Summary Reject a request, cancel a sent request, or remove a friend
// @Description Resolves whichever relationship exists with the target user and severs it.
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Target user ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/friends/remove/{userId} [delete]
func (h *FriendHandler) RejectOrRemove(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	targetID, err := targetUserID(c)
	if err != nil {
		return err
	}

	action, err := h.friendshipService.RejectOrRemove(c.Request().Context(), userID, targetID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "relationship " + action,
		"action":  action,
	})
}

// Friends godoc
// @Summary List friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserSummary
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/friends [get]
func (h *FriendHandler) Friends(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	friends, err := h.friendshipService.Friends(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, friends)
}

// PendingRequests godoc
// @Summary List received friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserSummary
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/friends/requests [get]
func (h *FriendHandler) PendingRequests(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	requesters, err := h.friendshipService.PendingRequests(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, requesters)
}
