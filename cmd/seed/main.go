package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reeltrack/internal/config"
	"reeltrack/internal/db"
	"reeltrack/internal/model"
	"reeltrack/internal/repository"
)

// SeedUser describes a demo account to create.
type SeedUser struct {
	Name     string
	Email    string
	Password string
	Privacy  string
	Items    []model.WatchlistItem
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.FriendRequest{},
		&model.Friendship{},
		&model.WatchlistItem{},
		&model.Review{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	watchlistRepo := repository.NewWatchlistRepository(gormDB)
	ctx := context.Background()

	created, skipped, err := seedUsers(ctx, userRepo, watchlistRepo, demoUsers())
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users skipped: %d", skipped)
}

func demoUsers() []SeedUser {
	completed := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	rating := 8.5
	runtime := 148

	return []SeedUser{
		{
			Name:     "Alice Demo",
			Email:    "alice@example.com",
			Password: "password123",
			Privacy:  model.PrivacyPublic,
			Items: []model.WatchlistItem{
				{
					MediaType:     model.MediaTypeMovie,
					ExternalID:    "27205",
					Title:         "Inception",
					ReleaseDate:   "2010-07-15",
					Genres:        []string{"Action", "Science Fiction"},
					Runtime:       &runtime,
					Status:        model.StatusCompleted,
					UserRating:    &rating,
					DateCompleted: &completed,
				},
				{
					MediaType:  model.MediaTypeTV,
					ExternalID: "1396",
					Title:      "Breaking Bad",
					Status:     model.StatusWatching,
				},
			},
		},
		{
			Name:     "Bob Demo",
			Email:    "bob@example.com",
			Password: "password123",
			Privacy:  model.PrivacyFriendsOnly,
			Items: []model.WatchlistItem{
				{
					MediaType:  model.MediaTypeMovie,
					ExternalID: "603",
					Title:      "The Matrix",
					Status:     model.StatusPlanToWatch,
				},
			},
		},
		{
			Name:     "Carol Demo",
			Email:    "carol@example.com",
			Password: "password123",
			Privacy:  model.PrivacyPrivate,
		},
	}
}

// seedUsers creates demo users with their watchlist items, skipping
// users that already exist.
func seedUsers(ctx context.Context, userRepo repository.UserRepository, watchlistRepo repository.WatchlistRepository, seeds []SeedUser) (created int, skipped int, err error) {
	for _, seed := range seeds {
		existing, err := userRepo.FindByEmail(ctx, seed.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, skipped, fmt.Errorf("error checking user %s: %w", seed.Email, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", seed.Email)
			skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, skipped, fmt.Errorf("error hashing password for %s: %w", seed.Email, err)
		}

		user := &model.User{
			Name:         seed.Name,
			Email:        seed.Email,
			PasswordHash: string(hash),
			Role:         model.RoleUser,
			Privacy:      seed.Privacy,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return created, skipped, fmt.Errorf("error creating user %s: %w", seed.Email, err)
		}

		for i := range seed.Items {
			item := seed.Items[i]
			item.OwnerID = user.ID
			if item.Status == "" {
				item.Status = model.StatusPlanToWatch
			}
			if err := watchlistRepo.Create(ctx, &item); err != nil {
				return created, skipped, fmt.Errorf("error creating watchlist item for %s: %w", seed.Email, err)
			}
		}

		log.Printf("Created user %s with %d watchlist items", seed.Email, len(seed.Items))
		created++
	}

	return created, skipped, nil
}
