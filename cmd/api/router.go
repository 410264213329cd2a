package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

// SetupRouter builds the gin engine with all routes and middleware. Paths
// keep the original public API shape, so existing clients keep working.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	router.GET("/", func(ctx *gin.Context) {
		response.Success(ctx, http.StatusOK, gin.H{
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
		})
	})
	router.GET("/api/v1/health", healthHandler(c))

	// Uploaded PDFs are served straight from disk.
	router.Static(c.Config.Uploads.URLPrefix, c.Store.Dir())

	setupAuthRoutes(router, c)
	setupEventRoutes(router, c)
	setupAuthorRoutes(router, c)
	setupArticleRoutes(router, c)
	setupNotificationRoutes(router, c)
	setupAdminRoutes(router, c)

	return router
}

func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "database unavailable")
			return
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "cache unavailable")
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{"status": "healthy"})
	}
}

func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)
	}
}

func setupEventRoutes(router *gin.Engine, c *container.Container) {
	events := router.Group("/eventos")
	{
		events.POST("", c.EventHandler.CreateEvent)
		events.GET("", c.EventHandler.ListEvents)
		events.GET("/by-id/:id", c.EventHandler.GetEventByID)
		events.GET("/:slug", c.EventHandler.GetEventBySlug)
		events.PUT("/:id", c.EventHandler.UpdateEvent)
		events.DELETE("/:id", c.EventHandler.DeleteEvent)
		events.GET("/:slug/edicoes", c.EventHandler.EditionsByEvent)
		events.GET("/:slug/:ano", c.EventHandler.EditionByYear)
		events.GET("/:slug/:ano/artigos", c.ArticleHandler.ByEventEdition)
	}

	editions := router.Group("/edicoes")
	{
		editions.POST("", c.EventHandler.CreateEdition)
		editions.GET("", c.EventHandler.ListEditions)
		editions.PUT("/:id", c.EventHandler.UpdateEdition)
		editions.DELETE("/:id", c.EventHandler.DeleteEdition)
	}
}

func setupAuthorRoutes(router *gin.Engine, c *container.Container) {
	authors := router.Group("/autores")
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("", c.AuthorHandler.GetAll)
		authors.GET("/:slug", c.AuthorHandler.GetBySlug)
		authors.GET("/:slug/artigos", c.ArticleHandler.ByAuthor)
	}
}

func setupArticleRoutes(router *gin.Engine, c *container.Container) {
	articles := router.Group("/artigos")
	{
		articles.POST("", c.ArticleHandler.Create)
		articles.GET("", c.ArticleHandler.List)
		articles.GET("/:id", c.ArticleHandler.GetByID)
		articles.PUT("/:id", c.ArticleHandler.Update)
		articles.DELETE("/:id", c.ArticleHandler.Delete)
	}

	router.POST("/upload-pdf", c.ImportHandler.UploadPDF)
	// Preview is open; the handler gates action=save on the admin role.
	router.POST("/upload-bibtex", middleware.OptionalAuthMiddleware(c.JWTManager), c.ImportHandler.UploadBibTeX)
}

func setupNotificationRoutes(router *gin.Engine, c *container.Container) {
	authed := router.Group("", middleware.AuthMiddleware(c.JWTManager))
	{
		authed.POST("/usuarios/:id/seguir-autor/:author_id", c.NotificationHandler.FollowAuthor)
		authed.DELETE("/usuarios/:id/seguir-autor/:author_id", c.NotificationHandler.UnfollowAuthor)
		authed.GET("/usuarios/:id/notificacoes", c.UserHandler.GetPreferences)
		authed.PUT("/usuarios/:id/notificacoes", c.UserHandler.UpdatePreferences)
		authed.GET("/autores-seguidos", c.NotificationHandler.FollowedAuthors)
	}
}

func setupAdminRoutes(router *gin.Engine, c *container.Container) {
	admin := router.Group("/admin", middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("/enviar-notificacoes/:id", c.NotificationHandler.SendNotifications)
		admin.GET("/email-logs", c.NotificationHandler.EmailLogs)
		admin.POST("/test-email", c.NotificationHandler.TestEmail)
	}
}
