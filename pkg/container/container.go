package container

import (
	"context"
	"fmt"

	"library-backend/internal/config"
	"library-backend/internal/domains/article"
	articlehandler "library-backend/internal/domains/article/handler"
	articlerepo "library-backend/internal/domains/article/repository"
	articleservice "library-backend/internal/domains/article/service"
	"library-backend/internal/domains/author"
	authorhandler "library-backend/internal/domains/author/handler"
	authorrepo "library-backend/internal/domains/author/repository"
	authorservice "library-backend/internal/domains/author/service"
	"library-backend/internal/domains/event"
	eventhandler "library-backend/internal/domains/event/handler"
	eventrepo "library-backend/internal/domains/event/repository"
	eventservice "library-backend/internal/domains/event/service"
	"library-backend/internal/domains/notification"
	notificationhandler "library-backend/internal/domains/notification/handler"
	notificationrepo "library-backend/internal/domains/notification/repository"
	notificationservice "library-backend/internal/domains/notification/service"
	"library-backend/internal/domains/user"
	userhandler "library-backend/internal/domains/user/handler"
	userrepo "library-backend/internal/domains/user/repository"
	userservice "library-backend/internal/domains/user/service"
	"library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/email"
	"library-backend/internal/infrastructure/storage"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

// Container wires every layer of the application together: infrastructure,
// repositories, services and handlers.
type Container struct {
	Config *config.Config

	DB    *database.PostgresDB
	Cache *cache.RedisCache
	Store *storage.LocalStore

	JWTManager *jwt.Manager

	AuthorService       author.Service
	EventService        event.Service
	UserService         user.Service
	ArticleService      article.Service
	ImportService       article.Importer
	NotificationService notification.Service

	AuthorHandler       *authorhandler.AuthorHandler
	EventHandler        *eventhandler.EventHandler
	UserHandler         *userhandler.UserHandler
	ArticleHandler      *articlehandler.ArticleHandler
	ImportHandler       *articlehandler.ImportHandler
	NotificationHandler *notificationhandler.NotificationHandler
}

// New builds the full dependency graph. It connects to Postgres and Redis and
// runs the schema migration before any repository is handed out.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	dbCfg, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}

	c.DB = database.NewPostgresDB(dbCfg)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := c.DB.Migrate(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	c.Cache = cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}

	c.Store, err = storage.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("uploads: %w", err)
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	sender := email.NewSMTPSender(cfg.Email)

	authorRepository := authorrepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	eventRepository := eventrepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	userRepository := userrepo.NewPostgresRepository(c.DB.Pool)
	articleRepository := articlerepo.NewPostgresRepository(c.DB.Pool)
	notificationRepository := notificationrepo.NewPostgresRepository(c.DB.Pool)

	c.AuthorService = authorservice.NewAuthorService(authorRepository)
	c.EventService = eventservice.NewEventService(eventRepository, cfg.Import.FuzzyEventMatch)
	c.UserService = userservice.NewUserService(userRepository, c.JWTManager)
	c.NotificationService = notificationservice.NewNotificationService(
		notificationRepository, c.AuthorService, sender, cfg.Notify.SkipAlreadySent)
	c.ArticleService = articleservice.NewArticleService(
		articleRepository, c.AuthorService, c.Store, c.NotificationService)
	c.ImportService = articleservice.NewImportService(
		articleRepository, c.AuthorService, c.EventService, c.Store, c.NotificationService)

	c.AuthorHandler = authorhandler.NewAuthorHandler(c.AuthorService)
	c.EventHandler = eventhandler.NewEventHandler(c.EventService)
	c.UserHandler = userhandler.NewUserHandler(c.UserService)
	c.ArticleHandler = articlehandler.NewArticleHandler(c.ArticleService, c.EventService)
	c.ImportHandler = articlehandler.NewImportHandler(c.ImportService, c.Store)
	c.NotificationHandler = notificationhandler.NewNotificationHandler(c.NotificationService, cfg.Email)

	return c, nil
}

// Cleanup releases the external connections. Safe to call after a partial
// initialization.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("closing redis failed", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("closing database failed", err)
		}
	}
}
