package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one user's rating and comment for one title. Uniqueness per
// (reviewer, mediaType, externalId) is enforced by an existence check in
// the review service before insert; resubmission goes through the
// update-by-id path instead.
type Review struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ReviewerID uuid.UUID `json:"reviewer_id" gorm:"type:char(36);not null;index"`
	MediaType  string    `json:"mediaType" gorm:"size:8;not null;index:idx_review_title"`
	ExternalID string    `json:"externalId" gorm:"size:32;not null;index:idx_review_title"`

	Rating  float64 `json:"rating" gorm:"not null"` // 0-10, 0 meaning "no rating"
	Comment string  `json:"comment" gorm:"type:text"`

	ContentTitle      string `json:"contentTitle" gorm:"size:255"`
	ContentPosterPath string `json:"contentPosterPath" gorm:"size:255"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Reviewer is populated for content review listings, never persisted
	// beyond the foreign key.
	Reviewer *UserSummary `json:"reviewer,omitempty" gorm:"-"`

	PosterFullURL string `json:"poster_full_url,omitempty" gorm:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
