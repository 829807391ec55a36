package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "reeltrack/internal/errors"
	"reeltrack/internal/model"
	"reeltrack/internal/repository"
)

// Toggle actions.
const (
	ActionAdded       = "added"
	ActionRemovedItem = "removed"
)

// ToggleResult reports what a toggle call did. Item is set only on add.
type ToggleResult struct {
	Action string               `json:"action"`
	Item   *model.WatchlistItem `json:"item,omitempty"`
}

// WatchlistPage is one page of a watchlist listing.
type WatchlistPage struct {
	FriendName  string                `json:"friendName,omitempty"`
	Items       []model.WatchlistItem `json:"items"`
	CurrentPage int                   `json:"currentPage"`
	TotalPages  int                   `json:"totalPages"`
	TotalItems  int64                 `json:"totalItems"`
}

// ItemStatus is the per-title membership probe result.
type ItemStatus struct {
	Exists     bool     `json:"exists"`
	Status     *string  `json:"status"`
	UserRating *float64 `json:"userRating"`
}

// GenreCount is one entry of the favorite-genres ranking.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Stats aggregates a user's whole watchlist.
type Stats struct {
	TotalItems         int            `json:"totalItems"`
	MoviesCount        int            `json:"moviesCount"`
	TVShowsCount       int            `json:"tvShowsCount"`
	CompletedCount     int            `json:"completedCount"`
	WatchingCount      int            `json:"watchingCount"`
	PlanToWatchCount   int            `json:"planToWatchCount"`
	OnHoldCount        int            `json:"onHoldCount"`
	DroppedCount       int            `json:"droppedCount"`
	AverageRating      float64        `json:"averageRating"`
	FavoriteGenres     []GenreCount   `json:"favoriteGenres"`
	CompletionActivity map[string]int `json:"completionActivity"`
}

// WatchlistService owns watchlist membership and tracking state.
type WatchlistService interface {
	Toggle(ctx context.Context, userID uuid.UUID, externalID, mediaType string) (*ToggleResult, error)
	List(ctx context.Context, userID uuid.UUID, filter repository.WatchlistFilter) (*WatchlistPage, error)
	FriendWatchlist(ctx context.Context, viewerID, targetID uuid.UUID, filter repository.WatchlistFilter) (*WatchlistPage, error)
	Get(ctx context.Context, userID, itemID uuid.UUID) (*model.WatchlistItem, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, patch model.WatchlistPatch) (*model.WatchlistItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	Status(ctx context.Context, userID uuid.UUID, externalID, mediaType string) (*ItemStatus, error)
	Stats(ctx context.Context, userID uuid.UUID) (*Stats, error)
}

type watchlistService struct {
	watchlistRepo  repository.WatchlistRepository
	userRepo       repository.UserRepository
	friendshipRepo repository.FriendshipRepository
	catalog        Catalog
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(
	watchlistRepo repository.WatchlistRepository,
	userRepo repository.UserRepository,
	friendshipRepo repository.FriendshipRepository,
	cat Catalog,
) WatchlistService {
	return &watchlistService{
		watchlistRepo:  watchlistRepo,
		userRepo:       userRepo,
		friendshipRepo: friendshipRepo,
		catalog:        cat,
	}
}

// Toggle flips membership for (user, externalId, mediaType): an existing
// item is deleted, a missing one is created from catalog details. The
// client always wants the opposite of the current state, so one endpoint
// replaces an add/remove pair plus the membership check round-trip.
func (s *watchlistService) Toggle(ctx context.Context, userID uuid.UUID, externalID, mediaType string) (*ToggleResult, error) {
	existing, err := s.watchlistRepo.FindByTitle(ctx, userID, externalID, mediaType)
	if err == nil {
		if err := s.watchlistRepo.DeleteItem(ctx, existing); err != nil {
			return nil, fmt.Errorf("remove watchlist item: %w", err)
		}
		return &ToggleResult{Action: ActionRemovedItem}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find watchlist item: %w", err)
	}

	details, err := s.catalog.GetDetails(ctx, externalID, mediaType)
	if err != nil {
		return nil, catalogError(err)
	}

	item := &model.WatchlistItem{
		OwnerID:       userID,
		MediaType:     mediaType,
		ExternalID:    externalID,
		Title:         details.DisplayTitle(),
		OriginalTitle: details.DisplayOriginalTitle(),
		PosterPath:    details.PosterPath,
		ReleaseDate:   details.DisplayReleaseDate(),
		Overview:      details.Overview,
		Genres:        details.GenreNames(),
		Language:      details.OriginalLanguage,
		Status:        model.StatusPlanToWatch,
	}
	switch mediaType {
	case model.MediaTypeMovie:
		item.Runtime = details.Runtime
	case model.MediaTypeTV:
		item.TotalEpisodes = details.NumberOfEpisodes
		item.TotalSeasons = details.NumberOfSeasons
	}

	if err := s.watchlistRepo.Create(ctx, item); err != nil {
		// two concurrent toggles race to the (owner, externalId, mediaType) index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateItem
		}
		return nil, fmt.Errorf("create watchlist item: %w", err)
	}

	item.PosterFullURL = s.catalog.PosterURL(item.PosterPath)
	return &ToggleResult{Action: ActionAdded, Item: item}, nil
}

// List returns one page of the user's own watchlist.
func (s *watchlistService) List(ctx context.Context, userID uuid.UUID, filter repository.WatchlistFilter) (*WatchlistPage, error) {
	return s.page(ctx, userID, "", filter)
}

// FriendWatchlist returns a page of another user's watchlist after the
// privacy check. Unlike the profile view, denial here is a hard
// Forbidden: profile existence is discoverable, watchlist contents are
// not.
func (s *watchlistService) FriendWatchlist(ctx context.Context, viewerID, targetID uuid.UUID, filter repository.WatchlistFilter) (*WatchlistPage, error) {
	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, userLookupError(err)
	}

	isFriend, err := s.friendshipRepo.AreFriends(ctx, targetID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("check friendship: %w", err)
	}
	if !CanView(&viewerID, target, isFriend) {
		return nil, apperrors.ErrWatchlistPrivate
	}

	return s.page(ctx, targetID, target.Name, filter)
}

func (s *watchlistService) page(ctx context.Context, ownerID uuid.UUID, friendName string, filter repository.WatchlistFilter) (*WatchlistPage, error) {
	items, total, err := s.watchlistRepo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	for i := range items {
		items[i].PosterFullURL = s.catalog.PosterURL(items[i].PosterPath)
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &WatchlistPage{
		FriendName:  friendName,
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

// Get fetches one item. Someone else's item looks exactly like a missing
// one so item ids cannot be enumerated.
func (s *watchlistService) Get(ctx context.Context, userID, itemID uuid.UUID) (*model.WatchlistItem, error) {
	item, err := s.watchlistRepo.FindByID(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("find watchlist item: %w", err)
	}
	item.PosterFullURL = s.catalog.PosterURL(item.PosterPath)
	return item, nil
}

// Update applies a partial update to the tracking fields. The catalog
// fields are immutable; they have no representation in the patch. The
// completed/dateCompleted invariant is maintained here: entering
// completed without an explicit date stamps now, leaving completed
// always clears the date — whether or not the caller asked.
func (s *watchlistService) Update(ctx context.Context, userID, itemID uuid.UUID, patch model.WatchlistPatch) (*model.WatchlistItem, error) {
	item, err := s.watchlistRepo.FindByID(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("find watchlist item: %w", err)
	}

	if patch.UserRating != nil {
		item.UserRating = patch.UserRating
	}
	if patch.EpisodesWatched != nil {
		item.EpisodesWatched = *patch.EpisodesWatched
	}
	if patch.UserNotes != nil {
		item.UserNotes = *patch.UserNotes
	}
	if patch.DateStartedWatching != nil {
		item.DateStartedWatching = patch.DateStartedWatching
	}
	if patch.ReminderDate != nil {
		item.ReminderDate = patch.ReminderDate
	}

	if patch.Status != nil {
		item.Status = *patch.Status
		switch {
		case item.Status == model.StatusCompleted && patch.DateCompleted != nil:
			item.DateCompleted = patch.DateCompleted
		case item.Status == model.StatusCompleted && item.DateCompleted == nil:
			now := time.Now()
			item.DateCompleted = &now
		case item.Status != model.StatusCompleted:
			item.DateCompleted = nil
		}
	} else if patch.DateCompleted != nil && item.Status == model.StatusCompleted {
		item.DateCompleted = patch.DateCompleted
	}

	if err := s.watchlistRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update watchlist item: %w", err)
	}
	item.PosterFullURL = s.catalog.PosterURL(item.PosterPath)
	return item, nil
}

// Delete removes an item, owner-scoped.
func (s *watchlistService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	deleted, err := s.watchlistRepo.Delete(ctx, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete watchlist item: %w", err)
	}
	if deleted == 0 {
		return apperrors.ErrItemNotFound
	}
	return nil
}

// Status probes membership for one title.
func (s *watchlistService) Status(ctx context.Context, userID uuid.UUID, externalID, mediaType string) (*ItemStatus, error) {
	item, err := s.watchlistRepo.FindByTitle(ctx, userID, externalID, mediaType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ItemStatus{Exists: false}, nil
		}
		return nil, fmt.Errorf("find watchlist item: %w", err)
	}
	return &ItemStatus{Exists: true, Status: &item.Status, UserRating: item.UserRating}, nil
}

// Stats aggregates the whole watchlist in memory; personal collections
// are small enough that pushing this into SQL buys nothing.
func (s *watchlistService) Stats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	items, err := s.watchlistRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	stats := &Stats{
		TotalItems:         len(items),
		FavoriteGenres:     []GenreCount{},
		CompletionActivity: map[string]int{},
	}

	var ratingSum float64
	var ratedCount int
	genreCounts := map[string]int{}

	for _, item := range items {
		if item.MediaType == model.MediaTypeMovie {
			stats.MoviesCount++
		} else {
			stats.TVShowsCount++
		}
		switch item.Status {
		case model.StatusCompleted:
			stats.CompletedCount++
		case model.StatusWatching:
			stats.WatchingCount++
		case model.StatusPlanToWatch:
			stats.PlanToWatchCount++
		case model.StatusOnHold:
			stats.OnHoldCount++
		case model.StatusDropped:
			stats.DroppedCount++
		}
		if item.UserRating != nil && *item.UserRating > 0 {
			ratingSum += *item.UserRating
			ratedCount++
		}
		for _, g := range item.Genres {
			genreCounts[g]++
		}
		if item.Status == model.StatusCompleted && item.DateCompleted != nil {
			stats.CompletionActivity[item.DateCompleted.Format("2006-01")]++
		}
	}

	if ratedCount > 0 {
		// one decimal place, matching the client's display precision
		stats.AverageRating = float64(int(ratingSum/float64(ratedCount)*10+0.5)) / 10
	}

	for genre, count := range genreCounts {
		stats.FavoriteGenres = append(stats.FavoriteGenres, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(stats.FavoriteGenres, func(i, j int) bool {
		if stats.FavoriteGenres[i].Count != stats.FavoriteGenres[j].Count {
			return stats.FavoriteGenres[i].Count > stats.FavoriteGenres[j].Count
		}
		return stats.FavoriteGenres[i].Genre < stats.FavoriteGenres[j].Genre
	})
	if len(stats.FavoriteGenres) > 5 {
		stats.FavoriteGenres = stats.FavoriteGenres[:5]
	}

	return stats, nil
}
