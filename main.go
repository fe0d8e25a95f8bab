package main

import (
	"net/http"
	"os"

	"conduit-api/config"
	"conduit-api/handlers"
	"conduit-api/middleware"
	"conduit-api/repositories"
	"conduit-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found")
	}

	config.InitLogger(os.Getenv("APP_ENV"))
	config.LoadJWT()

	// Initialize database
	db, err := config.InitDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(tokenRepo, config.AccessTokenLifetime, config.RefreshTokenLifetime)
	authService := services.NewAuthService(userRepo, tokenService)
	articleService := services.NewArticleService(articleRepo, userRepo, tagRepo)
	profileService := services.NewProfileService(userRepo)
	commentService := services.NewCommentService(commentRepo, articleRepo, userRepo)
	tagService := services.NewTagService(tagRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	articleHandler := handlers.NewArticleHandler(articleService)
	profileHandler := handlers.NewProfileHandler(profileService)
	commentHandler := handlers.NewCommentHandler(commentService)
	tagHandler := handlers.NewTagHandler(tagService)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	requireAuth := middleware.AuthMiddleware(tokenService)
	optionalAuth := middleware.OptionalAuthMiddleware(tokenService)

	// API routes
	api := router.Group("/api")
	{
		// Users & auth
		api.POST("/users", authHandler.Register)
		api.POST("/users/login", authHandler.Login)
		api.POST("/users/refresh", authHandler.Refresh)
		api.POST("/users/logout", requireAuth, authHandler.Logout)
		api.GET("/user", requireAuth, authHandler.GetCurrentUser)
		api.PUT("/user", requireAuth, authHandler.UpdateUser)

		// Profiles
		profiles := api.Group("/profiles")
		{
			profiles.GET("/:username", optionalAuth, profileHandler.GetProfile)
			profiles.POST("/:username/follow", requireAuth, profileHandler.FollowUser)
			profiles.DELETE("/:username/follow", requireAuth, profileHandler.UnfollowUser)
		}

		// Articles
		articles := api.Group("/articles")
		{
			articles.GET("", optionalAuth, articleHandler.ListArticles)
			articles.GET("/feed", requireAuth, articleHandler.GetFeed)
			articles.POST("", requireAuth, articleHandler.CreateArticle)
			articles.GET("/:slug", optionalAuth, articleHandler.GetArticle)
			articles.PUT("/:slug", requireAuth, articleHandler.UpdateArticle)
			articles.DELETE("/:slug", requireAuth, articleHandler.DeleteArticle)
			articles.POST("/:slug/favorite", requireAuth, articleHandler.FavoriteArticle)
			articles.DELETE("/:slug/favorite", requireAuth, articleHandler.UnfavoriteArticle)
			articles.POST("/:slug/comments", requireAuth, commentHandler.AddComment)
			articles.GET("/:slug/comments", optionalAuth, commentHandler.ListComments)
			articles.DELETE("/:slug/comments/:id", requireAuth, commentHandler.DeleteComment)
		}

		// Tags
		api.GET("/tags", tagHandler.GetTags)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
