package db

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"domain_expiry/internal/model"
)

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB, logger *logrus.Entry) error {
	logger.Info("Starting database migration...")

	models := []interface{}{
		&model.ClientPreference{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Infof("✓ Database migration completed successfully (%d tables)", len(models))
	return nil
}
