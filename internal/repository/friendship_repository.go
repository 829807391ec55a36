package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reeltrack/internal/model"
)

// FriendshipRepository persists the friendship graph: pending request
// rows and mirrored friendship rows. It is only ever called from the
// friendship service, which is the single writer of these tables.
type FriendshipRepository interface {
	FindRequest(ctx context.Context, requesterID, recipientID uuid.UUID) (*model.FriendRequest, error)
	CreateRequest(ctx context.Context, req *model.FriendRequest) error
	DeleteRequest(ctx context.Context, requesterID, recipientID uuid.UUID) error
	ListRequesters(ctx context.Context, recipientID uuid.UUID) ([]model.User, error)

	AreFriends(ctx context.Context, userID, otherID uuid.UUID) (bool, error)
	CreateFriendship(ctx context.Context, userID, otherID uuid.UUID) error
	DeleteFriendship(ctx context.Context, userID, otherID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]model.User, error)

	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo FriendshipRepository) error) error
}

type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository builds a GORM-backed repository.
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) FindRequest(ctx context.Context, requesterID, recipientID uuid.UUID) (*model.FriendRequest, error) {
	var req model.FriendRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ? AND recipient_id = ?", requesterID, recipientID).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *friendshipRepository) CreateRequest(ctx context.Context, req *model.FriendRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *friendshipRepository) DeleteRequest(ctx context.Context, requesterID, recipientID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("requester_id = ? AND recipient_id = ?", requesterID, recipientID).
		Delete(&model.FriendRequest{}).Error
}

func (r *friendshipRepository) ListRequesters(ctx context.Context, recipientID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN friend_requests ON friend_requests.requester_id = users.id").
		Where("friend_requests.recipient_id = ?", recipientID).
		Order("friend_requests.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *friendshipRepository) AreFriends(ctx context.Context, userID, otherID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, otherID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateFriendship inserts both halves of the edge in one statement so
// the mirror invariant holds even without an outer transaction.
func (r *friendshipRepository) CreateFriendship(ctx context.Context, userID, otherID uuid.UUID) error {
	edges := []model.Friendship{
		{UserID: userID, FriendID: otherID},
		{UserID: otherID, FriendID: userID},
	}
	return r.db.WithContext(ctx).Create(&edges).Error
}

func (r *friendshipRepository) DeleteFriendship(ctx context.Context, userID, otherID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, otherID, otherID, userID).
		Delete(&model.Friendship{}).Error
}

func (r *friendshipRepository) ListFriends(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Order("friendships.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// WithTransaction runs fn against a repository bound to one transaction.
func (r *friendshipRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo FriendshipRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &friendshipRepository{db: tx})
	})
}
