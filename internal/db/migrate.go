package db

import (
	"context"
	"fmt"

	"github.com/fsdevblog/tinylink/internal/models"
	"gorm.io/gorm"
)

// Migrate создает/обновляет схему. Полноценные миграции пока не нужны, одна таблица.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&models.Link{}); err != nil {
		return fmt.Errorf("migrating sql: %w", err)
	}
	return nil
}
