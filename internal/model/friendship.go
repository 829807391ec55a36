package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendRequest is a pending, directional proposal to establish a
// friendship edge. At most one row may exist per ordered pair, and a
// pair with a friendship edge must have no request rows in either
// direction.
type FriendRequest struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	RequesterID uuid.UUID `json:"requester_id" gorm:"type:char(36);not null;uniqueIndex:idx_request_pair;index"`
	RecipientID uuid.UUID `json:"recipient_id" gorm:"type:char(36);not null;uniqueIndex:idx_request_pair;index"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (r *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Friendship is one half of a symmetric edge. Every accepted friendship
// is stored as two mirrored rows, (A,B) and (B,A), created and deleted
// together inside one transaction so the mirror can never be half built.
type Friendship struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_friend_pair;index"`
	FriendID  uuid.UUID `json:"friend_id" gorm:"type:char(36);not null;uniqueIndex:idx_friend_pair"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
