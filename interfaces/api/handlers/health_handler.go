package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/infrastructure/redis"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db          *gorm.DB
	redisClient *redis.RedisClient
	personRepo  repositories.PersonRepository
	profileRepo repositories.ProfileRepository
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(
	db *gorm.DB,
	redisClient *redis.RedisClient,
	personRepo repositories.PersonRepository,
	profileRepo repositories.ProfileRepository,
) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		personRepo:  personRepo,
		profileRepo: profileRepo,
	}
}

// ComponentHealth represents health status of a component
type ComponentHealth struct {
	Status  string `json:"status"` // "ok", "error", "unavailable"
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// DetailedHealthResponse represents detailed health check response
type DetailedHealthResponse struct {
	Status     string                     `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
	Metrics    *HealthMetrics             `json:"metrics,omitempty"`
}

// HealthMetrics is the size of the archive and its review queue
type HealthMetrics struct {
	ApprovedPersons int64 `json:"approved_persons"`
	PendingPersons  int64 `json:"pending_persons"`
	Accounts        int64 `json:"accounts"`
	PendingAccounts int64 `json:"pending_accounts"`
}

// Health is the liveness probe
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "heritage-archive",
	})
}

// DetailedHealth godoc
// @Summary Get detailed system health
// @Description Returns detailed health status of all system components
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} DetailedHealthResponse
// @Router /health/detailed [get]
func (h *HealthHandler) DetailedHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	response := DetailedHealthResponse{
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}

	allHealthy := true
	hasCriticalFailure := false

	// Check Database
	dbHealth := h.checkDatabase(ctx)
	response.Components["database"] = dbHealth
	if dbHealth.Status != "ok" {
		hasCriticalFailure = true
	}

	// Check Redis
	redisHealth := h.checkRedis(ctx)
	response.Components["redis"] = redisHealth
	if redisHealth.Status == "error" {
		allHealthy = false
	}

	// Get metrics (only if DB is ok)
	if dbHealth.Status == "ok" {
		response.Metrics = h.getMetrics(ctx)
	}

	// Determine overall status
	if hasCriticalFailure {
		response.Status = "unhealthy"
	} else if !allHealthy {
		response.Status = "degraded"
	} else {
		response.Status = "healthy"
	}

	// Return 503 for unhealthy, 200 for others
	statusCode := fiber.StatusOK
	if response.Status == "unhealthy" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.db == nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Database not configured",
		}
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Failed to get database connection: " + err.Error(),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Database ping failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Connected",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkRedis(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.redisClient == nil {
		return ComponentHealth{
			Status:  "unavailable",
			Message: "Redis not configured",
		}
	}

	if err := h.redisClient.Ping(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Redis ping failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Connected",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) getMetrics(ctx context.Context) *HealthMetrics {
	if h.personRepo == nil || h.profileRepo == nil {
		return nil
	}

	metrics := &HealthMetrics{}

	if n, err := h.personRepo.Count(ctx, models.PersonFilter{Status: models.PersonStatusApproved}); err == nil {
		metrics.ApprovedPersons = n
	}
	if n, err := h.personRepo.Count(ctx, models.PersonFilter{Status: models.PersonStatusPending}); err == nil {
		metrics.PendingPersons = n
	}
	if n, err := h.profileRepo.Count(ctx); err == nil {
		metrics.Accounts = n
	}
	if n, err := h.profileRepo.CountPending(ctx); err == nil {
		metrics.PendingAccounts = n
	}

	return metrics
}
