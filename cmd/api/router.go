package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookjournal-backend/internal/infrastructure/metrics"
	"bookjournal-backend/internal/shared/middleware"
	"bookjournal-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		middleware.Metrics(c.Metrics),
	)

	if c.Config.Metrics.Enabled {
		router.GET(c.Config.Metrics.Path, gin.WrapH(metrics.Handler(c.Registry)))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupAuthorRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupJournalRoutes(v1, c)
		setupEntryRoutes(v1, c)
		setupFollowRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.RateLimiter.Middleware("register"), c.UserHandler.Register)
		auth.POST("/login", c.RateLimiter.Middleware("login"), c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		me := users.Group("/me", middleware.RequireAuth(c.JWTManager))
		{
			me.GET("", c.UserHandler.GetMe)
			me.PUT("/profile", c.UserHandler.UpdateProfile)
			me.PUT("/email", c.UserHandler.UpdateEmail)
		}

		public := users.Group("", middleware.OptionalAuth(c.JWTManager))
		{
			public.GET("/:id", c.GateHandler.GetProfile)
			public.GET("/:id/entries", c.JournalHandler.UserJournal)
		}
	}
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.POST("",
			middleware.RequireAuth(c.JWTManager),
			c.RateLimiter.Middleware("catalog"),
			c.AuthorHandler.Create,
		)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.GET("/:id/entries", middleware.OptionalAuth(c.JWTManager), c.JournalHandler.BookEntries)

		protected := books.Group("", middleware.RequireAuth(c.JWTManager), c.RateLimiter.Middleware("write"))
		{
			protected.POST("", c.BookHandler.CreateBook)
			protected.POST("/:id/entries", c.JournalHandler.CreateEntry)
		}
	}
}

// ========================================
// JOURNAL ROUTES
// ========================================
func setupJournalRoutes(v1 *gin.RouterGroup, c *container.Container) {
	journal := v1.Group("/journal", middleware.RequireAuth(c.JWTManager))
	{
		journal.GET("", c.JournalHandler.MyJournal)
		journal.GET("/tags", c.JournalHandler.MyTags)
		journal.GET("/books/:id", c.JournalHandler.MyBookEntries)
	}

	v1.GET("/feed", middleware.RequireAuth(c.JWTManager), c.JournalHandler.Feed)
}

func setupEntryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	entries := v1.Group("/entries")
	{
		entries.GET("/:id", middleware.OptionalAuth(c.JWTManager), c.GateHandler.GetEntry)

		protected := entries.Group("", middleware.RequireAuth(c.JWTManager), c.RateLimiter.Middleware("write"))
		{
			protected.PUT("/:id", c.JournalHandler.UpdateEntry)
			protected.DELETE("/:id", c.JournalHandler.DeleteEntry)
		}
	}
}

// ========================================
// FOLLOW ROUTES
// ========================================
func setupFollowRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.RequireAuth(c.JWTManager)

	requests := v1.Group("/follow-requests", auth)
	{
		requests.POST("", c.RateLimiter.Middleware("follow"), c.FollowHandler.CreateRequest)
		requests.GET("", c.FollowHandler.ListIncoming)
		requests.GET("/sent", c.FollowHandler.ListSent)
		requests.POST("/:id/accept", c.FollowHandler.Accept)
		requests.POST("/:id/decline", c.FollowHandler.Decline)
	}

	v1.GET("/following", auth, c.FollowHandler.ListFollowing)
	v1.GET("/followers", auth, c.FollowHandler.ListFollowers)
	v1.DELETE("/following/:id", auth, c.FollowHandler.Unfollow)
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{}
		status := http.StatusOK

		for name, err := range c.Health(ctx.Request.Context()) {
			if err != nil {
				checks[name] = err.Error()
				// cache down chỉ là degraded, database down thì unhealthy
				if name == "database" {
					status = http.StatusServiceUnavailable
				}
				continue
			}
			checks[name] = "ok"
		}

		ctx.JSON(status, gin.H{
			"status":    http.StatusText(status),
			"version":   c.Config.App.Version,
			"checks":    checks,
			"pool":      c.DB.Stats(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
