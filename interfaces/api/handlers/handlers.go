package handlers

import (
	"gorm.io/gorm"

	"heritage-archive/domain/repositories"
	"heritage-archive/domain/services"
	"heritage-archive/infrastructure/redis"
	"heritage-archive/pkg/config"
)

// Services contains all the services needed for handlers
type Services struct {
	AuthService          services.AuthService
	PersonService        services.PersonService
	ModerationService    services.ModerationService
	MessageService       services.MessageService
	CommentService       services.CommentService
	ModerationLogService services.ModerationLogService
}

// Repositories contains repositories needed for some handlers
type Repositories struct {
	PersonRepository  repositories.PersonRepository
	ProfileRepository repositories.ProfileRepository
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth          *AuthHandler
	Family        *FamilyHandler
	Admin         *AdminHandler
	Message       *MessageHandler
	Comment       *CommentHandler
	ModerationLog *ModerationLogHandler
	Log           *LogHandler
	Health        *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies.
// db and redisClient may be nil; the health handler reports them as missing.
func NewHandlers(services *Services, repos *Repositories, db *gorm.DB, redisClient *redis.RedisClient, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:          NewAuthHandler(services.AuthService, cfg.App.FrontendURL, cfg.JWT.TTL, cfg.App.Env == "production"),
		Family:        NewFamilyHandler(services.PersonService),
		Admin:         NewAdminHandler(services.ModerationService),
		Message:       NewMessageHandler(services.MessageService),
		Comment:       NewCommentHandler(services.CommentService),
		ModerationLog: NewModerationLogHandler(services.ModerationLogService),
		Log:           NewLogHandler(),
		Health:        NewHealthHandler(db, redisClient, repos.PersonRepository, repos.ProfileRepository),
	}
}
