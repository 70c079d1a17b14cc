package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warga-daily/config"
	"warga-daily/handlers"
	"warga-daily/middleware"
	"warga-daily/repositories"
	"warga-daily/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables; .env is optional in deployed environments
	_ = godotenv.Load()

	var logger *zap.Logger
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	articleService := services.NewArticleService(articleRepo, logger)
	curationService := services.NewCurationService(articleRepo, settingsRepo, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	articleHandler := handlers.NewArticleHandler(articleService)
	publicHandler := handlers.NewPublicHandler(articleService, authService, curationService)
	curationHandler := handlers.NewCurationHandler(curationService)

	// Setup router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

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

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public reader routes (published content only)
		public := v1.Group("/public")
		{
			public.GET("/home", publicHandler.GetHomeFeed)
			public.GET("/articles", publicHandler.GetPublishedArticles)
			public.GET("/articles/slug/:slug", publicHandler.GetArticleBySlug)
			public.GET("/articles/slug/:slug/app-link", publicHandler.GetAppLink)
			public.POST("/articles/:id/views", publicHandler.RecordView)
			public.POST("/articles/:id/app-click", publicHandler.RecordAppClick)
			public.GET("/categories/:category", publicHandler.GetCategory)
			public.GET("/authors/:id", publicHandler.GetAuthor)
			public.GET("/authors/:id/articles", publicHandler.GetAuthorArticles)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(userRepo))
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)

			// Articles
			articles := protected.Group("/articles")
			{
				articles.POST("", articleHandler.CreateArticle)
				articles.GET("", articleHandler.GetArticles)
				articles.GET("/:id", articleHandler.GetArticle)
				articles.PUT("/:id", articleHandler.UpdateArticle)
				articles.DELETE("/:id", articleHandler.DeleteArticle)
				articles.POST("/:id/submit", articleHandler.SubmitForReview)
				articles.PUT("/:id/status", middleware.RequireEditor(), articleHandler.ReviewArticle)
			}

			// Weekly picks curation (editors only)
			picks := protected.Group("/weekly-picks")
			picks.Use(middleware.RequireEditor())
			{
				picks.GET("", curationHandler.GetWeeklyPicks)
				picks.PUT("", curationHandler.SetWeeklyPicks)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	// Wait for the interrupt signal, then drain in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	stop()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
