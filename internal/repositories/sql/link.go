package sql

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LinkRepo репозиторий ссылок поверх GORM.
type LinkRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewLinkRepo(db *gorm.DB, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/link"),
	}
}

// Create вставляет запись. Уникальность кода обеспечивает первичный ключ,
// при дубликате вернется repositories.ErrDuplicateKey.
func (l *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if err := l.db.WithContext(ctx).Create(link).Error; err != nil {
		convErr := ConvertErrorType(err)
		if !errors.Is(convErr, repositories.ErrDuplicateKey) {
			l.logger.WithError(err).Errorf("failed to create record %+v", *link)
		}
		return convErr
	}
	return nil
}

func (l *LinkRepo) GetByCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	if err := l.db.WithContext(ctx).Where("code = ?", code).First(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to get record by code %s: %w", code, ConvertErrorType(err))
	}
	return link.UTC(), nil
}

// List возвращает все ссылки, новые первыми.
func (l *LinkRepo) List(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	err := l.db.WithContext(ctx).
		Order("created_at DESC").
		Order("code ASC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", ConvertErrorType(err))
	}
	for i := range links {
		links[i].UTC()
	}
	return links, nil
}

// IncrementClicks увеличивает счетчик одним UPDATE (clicks = clicks + 1), поэтому
// параллельные переходы не теряют инкременты. Возвращает обновленную запись.
func (l *LinkRepo) IncrementClicks(ctx context.Context, code string, at time.Time) (*models.Link, error) {
	var link models.Link
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Link{}).
			Where("code = ?", code).
			UpdateColumns(map[string]any{
				"clicks":       gorm.Expr("clicks + ?", 1),
				"last_clicked": at.UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("code = ?", code).First(&link).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to increment clicks for code %s: %w", code, ConvertErrorType(err))
	}
	return link.UTC(), nil
}

// Delete удаляет запись. Возвращает false если записи не было.
func (l *LinkRepo) Delete(ctx context.Context, code string) (bool, error) {
	res := l.db.WithContext(ctx).Where("code = ?", code).Delete(&models.Link{})
	if res.Error != nil {
		l.logger.WithError(res.Error).Errorf("failed to delete record by code %s", code)
		return false, fmt.Errorf("failed to delete record by code %s: %w", code, ConvertErrorType(res.Error))
	}
	return res.RowsAffected > 0, nil
}

// Ping проверяет соединение с базой.
func (l *LinkRepo) Ping(ctx context.Context) error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		return fmt.Errorf("ping database: %w", ConvertErrorType(pingErr))
	}
	return nil
}
