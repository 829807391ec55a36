package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "reeltrack/internal/errors"
	"reeltrack/internal/model"
	"reeltrack/internal/repository"
)

// ProfilePatch carries the optional profile fields an update may touch.
type ProfilePatch struct {
	Name      *string
	Email     *string
	Password  *string
	Privacy   *string
	AvatarURL *string
}

// UserService owns profile reads and writes plus the privacy-gated
// public profile view.
type UserService interface {
	Profile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*model.User, error)
	PublicProfile(ctx context.Context, viewerID *uuid.UUID, targetID uuid.UUID) (*model.PublicProfile, error)
	SearchByID(ctx context.Context, query string) ([]model.UserSummary, error)
}

type userService struct {
	userRepo       repository.UserRepository
	friendshipRepo repository.FriendshipRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, friendshipRepo repository.FriendshipRepository) UserService {
	return &userService{userRepo: userRepo, friendshipRepo: friendshipRepo}
}

func (s *userService) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(err)
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = strings.ToLower(*patch.Email)
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	if patch.Privacy != nil {
		user.Privacy = *patch.Privacy
	}
	if patch.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// PublicProfile returns another user's profile through the visibility
// policy. Denial is not an error: the reduced projection still carries
// the name and avatar plus an isPrivate marker, so the client can render
// a "this profile is private" state. Watchlist access is gated
// separately and *does* hard-fail; see WatchlistService.FriendWatchlist.
func (s *userService) PublicProfile(ctx context.Context, viewerID *uuid.UUID, targetID uuid.UUID) (*model.PublicProfile, error) {
	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, userLookupError(err)
	}

	isFriend := false
	if viewerID != nil {
		isFriend, err = s.friendshipRepo.AreFriends(ctx, targetID, *viewerID)
		if err != nil {
			return nil, fmt.Errorf("check friendship: %w", err)
		}
	}

	profile := &model.PublicProfile{
		ID:        target.ID,
		Name:      target.Name,
		AvatarURL: target.AvatarURL,
		Privacy:   target.Privacy,
	}
	if !CanView(viewerID, target, isFriend) {
		profile.IsPrivate = true
	}
	return profile, nil
}

// SearchByID looks a user up by exact id, returning a zero or one
// element list to match the search endpoint's shape.
func (s *userService) SearchByID(ctx context.Context, query string) ([]model.UserSummary, error) {
	id, err := uuid.Parse(query)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []model.UserSummary{}, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return []model.UserSummary{user.Summary()}, nil
}
