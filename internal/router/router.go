package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"reeltrack/internal/auth"
	"reeltrack/internal/config"
	"reeltrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	friendHandler *handler.FriendHandler,
	watchlistHandler *handler.WatchlistHandler,
	contentHandler *handler.ContentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/content/search", contentHandler.Search)
	api.GET("/content/:mediaType/:externalId", contentHandler.Details)
	api.GET("/content/:mediaType/:externalId/reviews", contentHandler.ListReviews)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Profile and user lookup routes
	secured.GET("/users/profile", userHandler.Profile)
	secured.PUT("/users/profile", userHandler.UpdateProfile)
	secured.GET("/users/search", userHandler.Search)
	secured.GET("/users/stats", userHandler.Stats)
	secured.GET("/users/my-reviews", userHandler.MyReviews)
	secured.DELETE("/users/my-reviews/:reviewId", userHandler.DeleteMyReview)
	secured.GET("/users/:userId/profile", userHandler.PublicProfile)
	secured.GET("/users/:userId/watchlist", watchlistHandler.FriendWatchlist)

	// Friendship routes
	secured.POST("/users/friends/request/:userId", friendHandler.SendRequest)
	secured.POST("/users/friends/accept/:userId", friendHandler.AcceptRequest)
	secured.DELETE("/users/friends/remove/:userId", friendHandler.RejectOrRemove)
	secured.GET("/users/friends", friendHandler.Friends)
	secured.GET("/users/friends/requests", friendHandler.PendingRequests)

	// Watchlist routes
	secured.POST("/watchlist/toggle", watchlistHandler.Toggle)
	secured.GET("/watchlist", watchlistHandler.List)
	secured.GET("/watchlist/status/:mediaType/:externalId", watchlistHandler.Status)
	secured.GET("/watchlist/:id", watchlistHandler.Get)
	secured.PUT("/watchlist/:id", watchlistHandler.Update)
	secured.DELETE("/watchlist/:id", watchlistHandler.Delete)

	// Review routes
	secured.POST("/content/:mediaType/:externalId/reviews", contentHandler.SubmitReview)
	secured.GET("/content/:mediaType/:externalId/reviews/me", contentHandler.MyReviewForContent)
	secured.PUT("/content/:mediaType/:externalId/reviews/:reviewId", contentHandler.UpdateReview)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
