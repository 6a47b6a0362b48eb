package di

import (
	"context"
	"time"

	"gorm.io/gorm"

	"heritage-archive/application/serviceimpl"
	"heritage-archive/domain/repositories"
	"heritage-archive/domain/services"
	"heritage-archive/infrastructure/metrics"
	"heritage-archive/infrastructure/oauth"
	"heritage-archive/infrastructure/postgres"
	"heritage-archive/infrastructure/redis"
	"heritage-archive/infrastructure/websocket"
	"heritage-archive/interfaces/api/handlers"
	"heritage-archive/pkg/config"
	"heritage-archive/pkg/logger"
	"heritage-archive/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.RedisClient
	Cache       services.CacheService
	GoogleOAuth *oauth.GoogleOAuth
	Metrics     *metrics.Metrics
	WSManager   *websocket.Manager
	Scheduler   scheduler.EventScheduler

	// Repositories
	ProfileRepository       repositories.ProfileRepository
	PersonRepository        repositories.PersonRepository
	MessageRepository       repositories.MessageRepository
	CommentRepository       repositories.CommentRepository
	ModerationLogRepository repositories.ModerationLogRepository

	// Services
	AccountService       services.AccountService
	AuthService          services.AuthService
	PersonService        services.PersonService
	ModerationService    services.ModerationService
	MessageService       services.MessageService
	CommentService       services.CommentService
	ModerationLogService services.ModerationLogService
	Maintenance          *serviceimpl.MaintenanceJobs
}

// NewContainer takes an already loaded config; the logger is set up from it first.
func NewContainer(cfg *config.Config) *Container {
	return &Container{Config: cfg}
}

func (c *Container) Initialize() error {
	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

// OpenDatabase connects and migrates. The migrate command uses it on its own.
func (c *Container) OpenDatabase() error {
	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		Debug:    c.Config.App.Env == "development",
	})
	if err != nil {
		return err
	}
	c.DB = db
	logger.Startup("db_connected", "Database connected", nil)

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Startup("db_migrated", "Database migrated", nil)
	return nil
}

func (c *Container) initInfrastructure() error {
	if err := c.OpenDatabase(); err != nil {
		return err
	}

	// Redis is optional; without it the directory is rebuilt on every request
	c.Cache = redis.NoopCache{}
	if c.Config.Redis.Enabled {
		c.RedisClient = redis.NewRedisClient(c.Config.Redis)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.RedisClient.Ping(ctx); err != nil {
			logger.StartupWarn("redis_connection_failed", "Redis connection failed, directory cache disabled", map[string]interface{}{"error": err.Error()})
		} else {
			c.Cache = c.RedisClient
			logger.Startup("redis_connected", "Redis connected", nil)
		}
	} else {
		logger.Startup("redis_disabled", "Redis disabled, directory cache off", nil)
	}

	// Initialize Google OAuth
	c.GoogleOAuth = oauth.NewGoogleOAuth(c.Config.Google)
	if err := c.GoogleOAuth.ValidateConfig(); err != nil {
		logger.StartupWarn("google_oauth_not_configured", "Google OAuth not configured", map[string]interface{}{"error": err.Error()})
	} else {
		logger.Startup("google_oauth_initialized", "Google OAuth initialized", nil)
	}

	c.Metrics = metrics.New()
	c.WSManager = websocket.NewManager()
	c.WSManager.OnClientCountChange(c.Metrics.SetWebSocketClients)

	return nil
}

func (c *Container) initRepositories() error {
	c.ProfileRepository = postgres.NewProfileRepository(c.DB)
	c.PersonRepository = postgres.NewPersonRepository(c.DB)
	c.MessageRepository = postgres.NewMessageRepository(c.DB)
	c.CommentRepository = postgres.NewCommentRepository(c.DB)
	c.ModerationLogRepository = postgres.NewModerationLogRepository(c.DB)
	logger.Startup("repositories_initialized", "Repositories initialized", nil)
	return nil
}

func (c *Container) initServices() error {
	c.AccountService = serviceimpl.NewAccountService(c.ProfileRepository, c.WSManager)
	c.AuthService = serviceimpl.NewAuthService(c.AccountService, c.GoogleOAuth, c.Config.JWT.Secret, c.Config.JWT.TTL)

	c.PersonService = serviceimpl.NewPersonService(
		c.PersonRepository,
		c.MessageRepository,
		c.ModerationLogRepository,
		c.Cache,
		c.WSManager,
		c.Metrics,
		c.Config.Cache.DirectoryTTL,
	)

	// The person service owns the directory cache key, moderation only invalidates it
	c.ModerationService = serviceimpl.NewModerationService(
		c.PersonRepository,
		c.ProfileRepository,
		c.ModerationLogRepository,
		c.PersonService,
		c.WSManager,
		c.Metrics,
	)

	c.MessageService = serviceimpl.NewMessageService(c.MessageRepository, c.ProfileRepository, c.WSManager)
	c.CommentService = serviceimpl.NewCommentService(c.CommentRepository, c.PersonRepository)
	c.ModerationLogService = serviceimpl.NewModerationLogService(c.ModerationLogRepository)

	c.Maintenance = serviceimpl.NewMaintenanceJobs(c.PersonRepository, c.ProfileRepository, c.PersonService, c.Metrics)

	logger.Startup("services_initialized", "Services initialized", nil)
	return nil
}

func (c *Container) initScheduler() error {
	if !c.Config.Scheduler.Enabled {
		logger.Startup("scheduler_disabled", "Maintenance scheduler disabled", nil)
		return nil
	}

	c.Scheduler = scheduler.NewEventScheduler()

	err := c.Scheduler.AddJob("review-queue", c.Config.Scheduler.ReviewQueueCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, _, err := c.Maintenance.RefreshReviewQueue(ctx); err != nil {
			logger.SchedulerError("review_queue_failed", "Review queue refresh failed", err, nil)
		}
	})
	if err != nil {
		return err
	}

	err = c.Scheduler.AddJob("directory-warm", c.Config.Scheduler.DirectoryCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := c.Maintenance.WarmDirectory(ctx)
		if err != nil {
			logger.SchedulerError("directory_warm_failed", "Directory warm-up failed", err, nil)
			return
		}
		logger.Scheduler("directory_warmed", "Directory cache rebuilt", map[string]interface{}{"entries": n})
	})
	if err != nil {
		return err
	}

	c.Scheduler.Start()
	return nil
}

func (c *Container) Cleanup() error {
	logger.Startup("cleanup_started", "Starting cleanup...", nil)

	// Stop scheduler
	if c.Scheduler != nil && c.Scheduler.IsRunning() {
		c.Scheduler.Stop()
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close Redis connection", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_closed", "Redis connection closed", nil)
		}
	}

	// Close database connection
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.StartupWarn("db_close_failed", "Failed to close database connection", map[string]interface{}{"error": err.Error()})
			} else {
				logger.Startup("db_closed", "Database connection closed", nil)
			}
		}
	}

	logger.Startup("cleanup_completed", "Cleanup completed", nil)
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		AuthService:          c.AuthService,
		PersonService:        c.PersonService,
		ModerationService:    c.ModerationService,
		MessageService:       c.MessageService,
		CommentService:       c.CommentService,
		ModerationLogService: c.ModerationLogService,
	}
}

func (c *Container) GetHandlerRepositories() *handlers.Repositories {
	return &handlers.Repositories{
		PersonRepository:  c.PersonRepository,
		ProfileRepository: c.ProfileRepository,
	}
}
