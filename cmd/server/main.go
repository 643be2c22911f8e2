package main

import (
	"fmt"
	"log"
	"net/http"

	"filmmatch/backend/internal/auth"
	"filmmatch/backend/internal/config"
	"filmmatch/backend/internal/database"
	"filmmatch/backend/internal/handler"
	"filmmatch/backend/internal/notification"
	"filmmatch/backend/internal/service"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "filmmatch/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           FilmMatch API
// @version         1.0
// @description     This is the API for the FilmMatch service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Notifications are fire-and-forget; fall back to a no-op sender when
	// RabbitMQ is not configured.
	notifier := notification.NewNoopNotifier()
	if config.AppConfig.AMQPURL != "" {
		publisher, err := notification.NewPublisher(config.AppConfig.AMQPURL, "filmmatch.notifications")
		if err != nil {
			log.Printf("Warning: failed to connect to RabbitMQ: %v", err)
		} else {
			notifier = publisher
			defer notifier.Close()
		}
	}

	userService := service.NewUserService(database.DB)
	categoryService := service.NewCategoryService(database.DB)
	filmService := service.NewFilmService(database.DB)
	friendService := service.NewFriendService(database.DB, notifier)
	recommendationService := service.NewRecommendationService(database.DB, service.DefaultWeights())

	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	filmHandler := handler.NewFilmHandler(filmService, recommendationService)
	friendHandler := handler.NewFriendHandler(friendService)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", userHandler.Register)
			authRoutes.POST("/login", userHandler.Login)
		}

		// Public category listing
		apiV1.GET("/categories", categoryHandler.GetCategories)

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", userHandler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", userHandler.GetMe)
			userRoutes.GET("/:id", userHandler.GetUserByID)
		}

		// Film routes (protected)
		filmRoutes := apiV1.Group("/films")
		filmRoutes.Use(auth.AuthMiddleware())
		{
			filmRoutes.GET("", filmHandler.GetFilms)
			filmRoutes.GET("/liked", filmHandler.GetLikedFilms) // Must be before /:id
			filmRoutes.GET("/disliked", filmHandler.GetDislikedFilms)
			filmRoutes.GET("/bookmarked", filmHandler.GetBookmarkedFilms)
			filmRoutes.GET("/recommendations", filmHandler.GetRecommendations)
			filmRoutes.GET("/:id", filmHandler.GetFilmByID)
			filmRoutes.POST("/:id/like", filmHandler.ToggleLike)
			filmRoutes.POST("/:id/dislike", filmHandler.ToggleDislike)
			filmRoutes.POST("/:id/bookmark", filmHandler.BookmarkFilm)
			filmRoutes.DELETE("/:id/bookmark", filmHandler.UnbookmarkFilm)
		}

		// Friend routes (protected)
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.GET("", friendHandler.GetFriends)
			friendRoutes.GET("/possible", friendHandler.GetPossibleFriends)
			friendRoutes.DELETE("/:id", friendHandler.DeleteFriend)
		}

		requestRoutes := apiV1.Group("/friend-requests")
		requestRoutes.Use(auth.AuthMiddleware())
		{
			requestRoutes.POST("", friendHandler.SendRequest)
			requestRoutes.GET("", friendHandler.GetFriendRequests)
			requestRoutes.POST("/:id/accept", friendHandler.AcceptRequest)
			requestRoutes.POST("/:id/decline", friendHandler.DeclineRequest)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			// Categories CRUD
			categories := adminRoutes.Group("/categories")
			{
				categories.POST("", categoryHandler.CreateCategory)
				categories.PUT("/:id", categoryHandler.UpdateCategory)
				categories.DELETE("/:id", categoryHandler.DeleteCategory)
			}

			// Films CRUD (admin-only parts)
			adminFilmRoutes := adminRoutes.Group("/films")
			{
				adminFilmRoutes.POST("", filmHandler.CreateFilm)
				adminFilmRoutes.PUT("/:id", filmHandler.UpdateFilm)
				adminFilmRoutes.DELETE("/:id", filmHandler.DeleteFilm)
			}

			// User administration
			adminRoutes.POST("/users/:id/promote", userHandler.MakeAdmin)
		}
	}

	fmt.Println("Server is running on :8080")
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(":8080"))
}
