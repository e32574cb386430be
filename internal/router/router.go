package router

import (
	"errors"
	"log"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pawgrounds/backend/internal/handlers"
	"github.com/pawgrounds/backend/internal/middleware"
	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/repositories"
	"github.com/pawgrounds/backend/internal/services"
	"github.com/pawgrounds/backend/pkg/apperrors"
	"github.com/pawgrounds/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = errorHandler
	log.Println("Global middleware configured.")
}

// errorHandler maps application errors to HTTP responses with a stable
// JSON shape: {"error": {"code", "message", "fields"}}.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := statusForCode(appErr.Code)
		if status == http.StatusInternalServerError {
			c.Logger().Error(err)
		}
		_ = c.JSON(status, echo.Map{"error": appErr})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, echo.Map{"error": echo.Map{
			"code":    apperrors.CodeUnknown,
			"message": httpErr.Message,
		}})
		return
	}

	c.Logger().Error(err)
	_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": echo.Map{
		"code":    apperrors.CodeInternal,
		"message": "internal server error",
	}})
}

func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.CodeValidation, apperrors.CodeConflict, apperrors.CodeSelfAction:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// SetupRoutes configures all application routes and injects dependencies.
// It returns the notification service so the caller can run retention on it.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) *services.NotificationService {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	mongoDB := mgClient.Database(cfg.MongoDatabase)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	mediaRepo := repositories.NewMongoMediaRepository(mongoDB)
	checkinResolver := repositories.NewMongoCheckInResolver(mongoDB)

	// --- Initialize Services ---
	visibility := services.NewVisibilityResolver(friendshipRepo)
	friendshipService := services.NewFriendshipService(friendshipRepo, userRepo)
	postService := services.NewPostService(pgdb, postRepo, commentRepo, reactionRepo, notificationRepo, friendshipRepo, mediaRepo)
	reactionService := services.NewReactionService(pgdb, postRepo, reactionRepo, notificationRepo)
	commentService := services.NewCommentService(pgdb, postRepo, commentRepo, notificationRepo, userRepo, cfg.ReplyDepthCap)
	feedAssembler := services.NewFeedAssembler(friendshipRepo, postRepo, commentRepo, reactionRepo, userRepo, mediaRepo, checkinResolver, visibility)
	retention := time.Duration(cfg.NotificationRetentionDays) * 24 * time.Hour
	notificationService := services.NewNotificationService(notificationRepo, retention)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes ---
	// Bearer tokens are local JWTs by default; AUTH_MODE=firebase verifies
	// Firebase ID tokens on every request instead.
	api := e.Group("/api/v1")
	if cfg.AuthMode == "firebase" && firebaseAuthClient != nil {
		api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient, userRepo))
		log.Println("Firebase authentication middleware applied to /api/v1 group.")
	} else {
		api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
		log.Println("JWT authentication middleware applied to /api/v1 group.")
	}

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Friendship routes
	friendshipHandler := handlers.NewFriendshipHandler(friendshipService)
	friendshipHandler.RegisterFriendshipRoutes(api)
	log.Println("Friendship routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postService, feedAssembler, visibility)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(feedAssembler)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Reaction routes
	reactionHandler := handlers.NewReactionHandler(reactionService)
	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationService, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
	return notificationService
}
