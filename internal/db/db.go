package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"org-structure-service/internal/config"
	"org-structure-service/internal/models"
)

func Connect(cfg config.Config, log zerolog.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		gormWriter{log: log.With().Str("component", "gorm").Logger()},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	database, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(database); err != nil {
			return nil, err
		}
	}
	return database, nil
}

func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(&models.Organization{}, &models.Department{}, &models.Employee{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// gormWriter routes gorm's warnings and slow-query reports into zerolog.
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Msgf(format, args...)
}
