package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Privacy levels gating profile and watchlist visibility.
const (
	PrivacyPublic      = "public"
	PrivacyFriendsOnly = "friendsOnly"
	PrivacyPrivate     = "private"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. Friendship state is kept in the
// friend_requests and friendships tables, written only by the friendship
// service; the user row itself carries no relationship fields.
type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string         `json:"name" gorm:"size:50;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string         `json:"role" gorm:"size:16;default:user"`
	Privacy      string         `json:"privacy" gorm:"size:16;default:public;index"`
	AvatarURL    string         `json:"avatarUrl" gorm:"size:512"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PublicProfile is the projection returned for another user's profile.
// When the viewer is not allowed to see the full profile, IsPrivate is
// set and the response still succeeds; profile existence is always
// discoverable even though watchlist contents are not.
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
	Privacy   string    `json:"privacy"`
	IsPrivate bool      `json:"isPrivate,omitempty"`
}

// UserSummary is the short form used in friend and request listings.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
}

// Summary converts a full user record into its listing form.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}
