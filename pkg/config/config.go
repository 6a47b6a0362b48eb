package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Google    GoogleOAuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Env         string
	FrontendURL string // Where the OAuth callback sends the browser after login
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type RateLimitConfig struct {
	Enabled            bool
	MaxRequests        int
	WindowSeconds      int
	AuthMaxRequests    int
	AuthWindowSeconds  int
	WriteMaxRequests   int // submissions, comments and messages per account
	WriteWindowSeconds int
}

type CacheConfig struct {
	DirectoryTTL time.Duration // How long the approved-family listing stays cached
}

type SchedulerConfig struct {
	Enabled         bool
	ReviewQueueCron string // Refreshes the pending-queue gauges
	DirectoryCron   string // Rebuilds the cached directory
}

type LogConfig struct {
	Dir     string
	Level   string
	Console bool
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists (optional for production)
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Family Archive"),
			Port:        getEnv("APP_PORT", "3000"),
			Env:         getEnv("APP_ENV", "development"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "family_archive"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Enabled:  getEnvBool("REDIS_ENABLED", true),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
			TTL:    getEnvDuration("JWT_TTL", 7*24*time.Hour),
		},
		Google: GoogleOAuthConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:3000/api/v1/auth/google/callback"),
		},
		RateLimit: RateLimitConfig{
			Enabled:            getEnvBool("RATE_LIMIT_ENABLED", true),
			MaxRequests:        getEnvInt("RATE_LIMIT_MAX", 120),
			WindowSeconds:      getEnvInt("RATE_LIMIT_WINDOW", 60),
			AuthMaxRequests:    getEnvInt("AUTH_RATE_LIMIT_MAX", 10),
			AuthWindowSeconds:  getEnvInt("AUTH_RATE_LIMIT_WINDOW", 60),
			WriteMaxRequests:   getEnvInt("WRITE_RATE_LIMIT_MAX", 20),
			WriteWindowSeconds: getEnvInt("WRITE_RATE_LIMIT_WINDOW", 60),
		},
		Cache: CacheConfig{
			DirectoryTTL: getEnvDuration("DIRECTORY_CACHE_TTL", time.Hour),
		},
		Log: LogConfig{
			Dir:     getEnv("LOG_DIR", "logs"),
			Level:   getEnv("LOG_LEVEL", "info"),
			Console: getEnvBool("LOG_CONSOLE", true),
		},
		Scheduler: SchedulerConfig{
			Enabled:         getEnvBool("SCHEDULER_ENABLED", true),
			ReviewQueueCron: getEnv("REVIEW_QUEUE_CRON", "*/5 * * * *"),
			DirectoryCron:   getEnv("DIRECTORY_WARM_CRON", "0 * * * *"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
