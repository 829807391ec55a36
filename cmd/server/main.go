package main

import (
	"log"
	"net/http"
	"os"

	_ "reeltrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"reeltrack/internal/auth"
	"reeltrack/internal/cache"
	"reeltrack/internal/catalog"
	"reeltrack/internal/config"
	"reeltrack/internal/db"
	"reeltrack/internal/handler"
	"reeltrack/internal/model"
	"reeltrack/internal/repository"
	"reeltrack/internal/router"
	"reeltrack/internal/service"
)

// @title ReelTrack API
// @version 1.0
// @description Movie and TV show tracking API with watchlists, friendships, reviews, and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Review{},
			&model.WatchlistItem{},
			&model.Friendship{},
			&model.FriendRequest{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.FriendRequest{},
		&model.Friendship{},
		&model.WatchlistItem{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	tmdbClient := catalog.New(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.PosterBaseURL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	friendshipRepo := repository.NewFriendshipRepository(gormDB)
	watchlistRepo := repository.NewWatchlistRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, friendshipRepo)
	friendshipService := service.NewFriendshipService(userRepo, friendshipRepo)
	contentService := service.NewContentService(tmdbClient, cacheClient)
	watchlistService := service.NewWatchlistService(watchlistRepo, userRepo, friendshipRepo, tmdbClient)
	reviewService := service.NewReviewService(reviewRepo, userRepo, tmdbClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, watchlistService, reviewService)
	friendHandler := handler.NewFriendHandler(friendshipService)
	watchlistHandler := handler.NewWatchlistHandler(watchlistService)
	contentHandler := handler.NewContentHandler(contentService, reviewService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		friendHandler,
		watchlistHandler,
		contentHandler,
	)

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
