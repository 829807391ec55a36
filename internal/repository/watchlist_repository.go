package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reeltrack/internal/model"
)

// sortColumns maps API sort field names to database columns. Anything
// not listed here is not sortable.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"dateCompleted": "date_completed",
	"userRating":    "user_rating",
	"releaseDate":   "release_date",
	"title":         "title",
}

// IsSortable reports whether field is an allowed watchlist sort key.
func IsSortable(field string) bool {
	_, ok := sortColumns[field]
	return ok
}

// WatchlistFilter narrows and orders a watchlist listing.
type WatchlistFilter struct {
	Status    string
	SortBy    string
	SortOrder string // asc or desc
	Page      int
	Limit     int
}

// WatchlistRepository defines persistence operations for watchlist items.
type WatchlistRepository interface {
	Create(ctx context.Context, item *model.WatchlistItem) error
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.WatchlistItem, error)
	FindByTitle(ctx context.Context, ownerID uuid.UUID, externalID, mediaType string) (*model.WatchlistItem, error)
	List(ctx context.Context, ownerID uuid.UUID, filter WatchlistFilter) ([]model.WatchlistItem, int64, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.WatchlistItem, error)
	Update(ctx context.Context, item *model.WatchlistItem) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
	DeleteItem(ctx context.Context, item *model.WatchlistItem) error
}

type watchlistRepository struct {
	db *gorm.DB
}

// NewWatchlistRepository builds a GORM-backed repository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) Create(ctx context.Context, item *model.WatchlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *watchlistRepository) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *watchlistRepository) FindByTitle(ctx context.Context, ownerID uuid.UUID, externalID, mediaType string) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND external_id = ? AND media_type = ?", ownerID, externalID, mediaType).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *watchlistRepository) List(ctx context.Context, ownerID uuid.UUID, filter WatchlistFilter) ([]model.WatchlistItem, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.WatchlistItem{}).Where("owner_id = ?", ownerID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "updated_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var items []model.WatchlistItem
	err := q.Order(column + " " + direction).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *watchlistRepository) ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.WatchlistItem, error) {
	var items []model.WatchlistItem
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *watchlistRepository) Update(ctx context.Context, item *model.WatchlistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an item scoped to its owner and reports how many rows
// went away, so the caller can tell "not yours" apart from nothing at
// all without ever telling the client the difference.
func (r *watchlistRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.WatchlistItem{})
	return res.RowsAffected, res.Error
}

func (r *watchlistRepository) DeleteItem(ctx context.Context, item *model.WatchlistItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}
