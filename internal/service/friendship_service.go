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

// Relationship results returned by RejectOrRemove.
const (
	ActionRejected  = "rejected"
	ActionCancelled = "cancelled"
	ActionRemoved   = "removed"
)

// FriendshipService mutates the friendship graph. It is the only writer
// of the friend_requests and friendships tables; every pair of users is
// in exactly one of four states (none, requested either way, friends)
// and each operation moves between them.
type FriendshipService interface {
	SendRequest(ctx context.Context, senderID, targetID uuid.UUID) error
	AcceptRequest(ctx context.Context, recipientID, requesterID uuid.UUID) error
	RejectOrRemove(ctx context.Context, userID, targetID uuid.UUID) (string, error)
	Friends(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error)
	PendingRequests(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error)
}

type friendshipService struct {
	userRepo       repository.UserRepository
	friendshipRepo repository.FriendshipRepository
}

// NewFriendshipService creates a new friendship service.
func NewFriendshipService(userRepo repository.UserRepository, friendshipRepo repository.FriendshipRepository) FriendshipService {
	return &friendshipService{
		userRepo:       userRepo,
		friendshipRepo: friendshipRepo,
	}
}

// SendRequest moves the pair (sender, target) from "none" to "requested
// by sender". Preconditions are checked in a fixed order so the first
// failure wins: self target, missing target, already friends, duplicate
// send, reverse request pending.
func (s *friendshipService) SendRequest(ctx context.Context, senderID, targetID uuid.UUID) error {
	if senderID == targetID {
		return apperrors.ErrSelfAction
	}
	if _, err := s.userRepo.FindByID(ctx, targetID); err != nil {
		return userLookupError(err)
	}

	friends, err := s.friendshipRepo.AreFriends(ctx, senderID, targetID)
	if err != nil {
		return fmt.Errorf("check friendship: %w", err)
	}
	if friends {
		return apperrors.ErrAlreadyFriends
	}

	if _, err := s.friendshipRepo.FindRequest(ctx, senderID, targetID); err == nil {
		return apperrors.ErrRequestAlreadySent
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check outgoing request: %w", err)
	}

	if _, err := s.friendshipRepo.FindRequest(ctx, targetID, senderID); err == nil {
		return apperrors.ErrRequestPending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check incoming request: %w", err)
	}

	req := &model.FriendRequest{RequesterID: senderID, RecipientID: targetID}
	if err := s.friendshipRepo.CreateRequest(ctx, req); err != nil {
		// two concurrent sends race to the unique (requester, recipient) index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrRequestAlreadySent
		}
		return fmt.Errorf("create friend request: %w", err)
	}
	return nil
}

// AcceptRequest turns a pending request from requester into a symmetric
// friendship. The request row is deleted and both mirrored friendship
// rows are inserted inside one transaction, so no crash can leave the
// pair in both states or in half of one.
func (s *friendshipService) AcceptRequest(ctx context.Context, recipientID, requesterID uuid.UUID) error {
	if recipientID == requesterID {
		return apperrors.ErrSelfAction
	}
	if _, err := s.userRepo.FindByID(ctx, requesterID); err != nil {
		return userLookupError(err)
	}

	if _, err := s.friendshipRepo.FindRequest(ctx, requesterID, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRequestNotFound
		}
		return fmt.Errorf("find friend request: %w", err)
	}

	err := s.friendshipRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.FriendshipRepository) error {
		if err := txRepo.DeleteRequest(ctx, requesterID, recipientID); err != nil {
			return err
		}
		return txRepo.CreateFriendship(ctx, recipientID, requesterID)
	})
	if err != nil {
		return fmt.Errorf("accept friend request: %w", err)
	}
	return nil
}

// RejectOrRemove severs whatever relationship exists with the target,
// dispatching on the pair's current state: an incoming request is
// rejected, an outgoing one cancelled, a friendship removed. The caller
// never has to know which state the pair was in.
func (s *friendshipService) RejectOrRemove(ctx context.Context, userID, targetID uuid.UUID) (string, error) {
	if userID == targetID {
		return "", apperrors.ErrSelfAction
	}
	if _, err := s.userRepo.FindByID(ctx, targetID); err != nil {
		return "", userLookupError(err)
	}

	if _, err := s.friendshipRepo.FindRequest(ctx, targetID, userID); err == nil {
		if err := s.friendshipRepo.DeleteRequest(ctx, targetID, userID); err != nil {
			return "", fmt.Errorf("reject friend request: %w", err)
		}
		return ActionRejected, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check incoming request: %w", err)
	}

	if _, err := s.friendshipRepo.FindRequest(ctx, userID, targetID); err == nil {
		if err := s.friendshipRepo.DeleteRequest(ctx, userID, targetID); err != nil {
			return "", fmt.Errorf("cancel friend request: %w", err)
		}
		return ActionCancelled, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check outgoing request: %w", err)
	}

	friends, err := s.friendshipRepo.AreFriends(ctx, userID, targetID)
	if err != nil {
		return "", fmt.Errorf("check friendship: %w", err)
	}
	if friends {
		if err := s.friendshipRepo.DeleteFriendship(ctx, userID, targetID); err != nil {
			return "", fmt.Errorf("remove friendship: %w", err)
		}
		return ActionRemoved, nil
	}

	return "", apperrors.ErrNoRelationship
}

// Friends lists the user's friends, newest first.
func (s *friendshipService) Friends(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	users, err := s.friendshipRepo.ListFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return summarize(users), nil
}

// PendingRequests lists the users who sent this user a friend request.
func (s *friendshipService) PendingRequests(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	users, err := s.friendshipRepo.ListRequesters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	return summarize(users), nil
}

func summarize(users []model.User) []model.UserSummary {
	out := make([]model.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return out
}

func userLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	return fmt.Errorf("find user: %w", err)
}
