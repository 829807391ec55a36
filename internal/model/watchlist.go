package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Media types recognized by the catalog.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// Watchlist item statuses.
const (
	StatusPlanToWatch = "plan_to_watch"
	StatusWatching    = "watching"
	StatusCompleted   = "completed"
	StatusOnHold      = "on_hold"
	StatusDropped     = "dropped"
)

// ValidStatus reports whether s is one of the five tracking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPlanToWatch, StatusWatching, StatusCompleted, StatusOnHold, StatusDropped:
		return true
	}
	return false
}

// ValidMediaType reports whether t is movie or tv.
func ValidMediaType(t string) bool {
	return t == MediaTypeMovie || t == MediaTypeTV
}

// WatchlistItem is a user's tracking record for one title. The catalog
// fields (title through totalSeasons) are denormalized from TMDB at add
// time and immutable afterwards; only the tracking fields below them may
// change. Invariant: DateCompleted is non-nil iff Status is completed.
type WatchlistItem struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID    uuid.UUID `json:"owner_id" gorm:"type:char(36);not null;uniqueIndex:idx_owner_title;index"`
	MediaType  string    `json:"mediaType" gorm:"size:8;not null;uniqueIndex:idx_owner_title"`
	ExternalID string    `json:"externalId" gorm:"size:32;not null;uniqueIndex:idx_owner_title"`

	Title         string   `json:"title" gorm:"size:255;not null"`
	OriginalTitle string   `json:"originalTitle" gorm:"size:255"`
	PosterPath    string   `json:"posterPath" gorm:"size:255"`
	ReleaseDate   string   `json:"releaseDate" gorm:"size:16"`
	Overview      string   `json:"overview" gorm:"type:text"`
	Genres        []string `json:"genres" gorm:"serializer:json"`
	Language      string   `json:"language" gorm:"size:8"`
	Runtime       *int     `json:"runtime,omitempty"`
	TotalEpisodes *int     `json:"totalEpisodes,omitempty"`
	TotalSeasons  *int     `json:"totalSeasons,omitempty"`

	Status              string     `json:"status" gorm:"size:16;not null;default:plan_to_watch;index"`
	UserRating          *float64   `json:"userRating,omitempty" gorm:"index"`
	EpisodesWatched     int        `json:"episodesWatched" gorm:"default:0"`
	DateStartedWatching *time.Time `json:"dateStartedWatching,omitempty"`
	DateCompleted       *time.Time `json:"dateCompleted,omitempty" gorm:"index"`
	UserNotes           string     `json:"userNotes" gorm:"size:1000"`
	ReminderDate        *time.Time `json:"reminderDate,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// PosterFullURL is filled by the service layer, never persisted.
	PosterFullURL string `json:"poster_full_url,omitempty" gorm:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (w *WatchlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// WatchlistPatch carries the mutable tracking fields of an item. Nil
// means "leave untouched"; the denormalized catalog fields have no patch
// representation at all.
type WatchlistPatch struct {
	Status              *string
	UserRating          *float64
	EpisodesWatched     *int
	UserNotes           *string
	DateStartedWatching *time.Time
	DateCompleted       *time.Time
	ReminderDate        *time.Time
}
