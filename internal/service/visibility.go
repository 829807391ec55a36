package service

import (
	"github.com/google/uuid"

	"reeltrack/internal/model"
)

// CanView decides whether a viewer may see a target user's profile and
// watchlist. viewerID is nil for anonymous callers. isFriend is the
// precomputed friendship check between the two; it only matters for the
// friendsOnly setting.
//
// Self is always visible, public is visible to everyone, friendsOnly to
// friends, and everything else (private, friendsOnly without a match,
// anonymous) is not.
func CanView(viewerID *uuid.UUID, target *model.User, isFriend bool) bool {
	if viewerID != nil && *viewerID == target.ID {
		return true
	}
	switch target.Privacy {
	case model.PrivacyPublic:
		return true
	case model.PrivacyFriendsOnly:
		return viewerID != nil && isFriend
	default:
		return false
	}
}
