package postgres

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"heritage-archive/domain/models"
	"heritage-archive/pkg/apperror"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Debug    bool
}

func NewDatabase(config DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		config.Host, config.User, config.Password, config.DBName, config.Port, config.SSLMode)

	logLevel := logger.Warn
	if config.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Person{},
		&models.Message{},
		&models.Comment{},
		&models.ModerationLog{},
	); err != nil {
		return fmt.Errorf("failed to run auto migrations: %v", err)
	}

	if err := runIndexMigrations(db); err != nil {
		return fmt.Errorf("failed to run index migrations: %v", err)
	}

	return nil
}

// runIndexMigrations adds composite indexes AutoMigrate cannot express from struct tags.
func runIndexMigrations(db *gorm.DB) error {
	migrations := []string{
		// Directory listing: approved rows ordered by name
		`CREATE INDEX IF NOT EXISTS idx_family_members_status_name ON family_members(status, name)`,
		// Pending queue: newest first
		`CREATE INDEX IF NOT EXISTS idx_family_members_status_created ON family_members(status, created_date)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_pending ON profiles(is_approved, role, created_at)`,
	}

	for _, sql := range migrations {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("migration failed: %s, error: %v", sql, err)
		}
	}

	return nil
}

// storeError tags a gorm error. Missing rows become NotFound, everything else a store error.
func storeError(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(fmt.Sprintf("%s %s not found", entity, id))
	}
	return apperror.Store(fmt.Sprintf("failed to access %s", entity), err)
}
