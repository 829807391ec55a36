package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user record does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrItemNotFound is returned when a watchlist item does not exist
	// or is owned by someone else (never distinguished, see §ownership).
	ErrItemNotFound = errors.New("watchlist item not found")
	// ErrReviewNotFound is returned when a review does not exist.
	ErrReviewNotFound = errors.New("review not found")
	// ErrRequestNotFound is returned when no pending friend request exists.
	ErrRequestNotFound = errors.New("friend request not found")
	// ErrNoRelationship is returned when reject/remove finds nothing to sever.
	ErrNoRelationship = errors.New("no pending request or existing friendship found with this user")
	// ErrMediaNotFound is returned when the catalog provider does not know the title.
	ErrMediaNotFound = errors.New("media not found on external service")

	// ErrAlreadyFriends is returned on a friend request between friends.
	ErrAlreadyFriends = errors.New("already friends")
	// ErrRequestAlreadySent is returned on a duplicate friend request.
	ErrRequestAlreadySent = errors.New("friend request already sent")
	// ErrRequestPending is returned when the target already sent a request
	// the other way; the caller should accept it instead of re-sending.
	ErrRequestPending = errors.New("this user already sent you a request, accept it instead")
	// ErrDuplicateItem is returned when the (user, externalId, mediaType)
	// uniqueness constraint trips on insert.
	ErrDuplicateItem = errors.New("item already exists in your watchlist")
	// ErrDuplicateReview is returned when a user reviews the same title twice.
	ErrDuplicateReview = errors.New("you already reviewed this content, edit the existing review instead")

	// ErrSelfAction is returned when a relationship operation targets the caller.
	ErrSelfAction = errors.New("action cannot be performed on yourself")
	// ErrInvalidID is returned on malformed identifiers.
	ErrInvalidID = errors.New("invalid id format")

	// ErrWatchlistPrivate is returned when privacy rules deny watchlist access.
	ErrWatchlistPrivate = errors.New("access denied: this user's watchlist is private or for friends only")
	// ErrNotReviewOwner is returned when mutating someone else's review.
	ErrNotReviewOwner = errors.New("you do not have permission to modify this review")

	// ErrCatalogUnavailable is returned on catalog transport failures.
	ErrCatalogUnavailable = errors.New("catalog service unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrItemNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ITEM_NOT_FOUND")
	case errors.Is(err, ErrReviewNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REVIEW_NOT_FOUND")
	case errors.Is(err, ErrRequestNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REQUEST_NOT_FOUND")
	case errors.Is(err, ErrNoRelationship):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_RELATIONSHIP")
	case errors.Is(err, ErrMediaNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEDIA_NOT_FOUND")
	case errors.Is(err, ErrAlreadyFriends):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_FRIENDS")
	case errors.Is(err, ErrRequestAlreadySent):
		return NewHTTPError(http.StatusConflict, err.Error(), "REQUEST_ALREADY_SENT")
	case errors.Is(err, ErrRequestPending):
		return NewHTTPError(http.StatusConflict, err.Error(), "REQUEST_PENDING")
	case errors.Is(err, ErrDuplicateItem):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_ITEM")
	case errors.Is(err, ErrDuplicateReview):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_REVIEW")
	case errors.Is(err, ErrSelfAction):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_ACTION")
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ID")
	case errors.Is(err, ErrWatchlistPrivate):
		return NewHTTPError(http.StatusForbidden, err.Error(), "WATCHLIST_PRIVATE")
	case errors.Is(err, ErrNotReviewOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_REVIEW_OWNER")
	case errors.Is(err, ErrCatalogUnavailable):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "CATALOG_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
