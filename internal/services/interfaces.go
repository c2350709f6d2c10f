package services

import (
	"context"
	"time"

	"github.com/fsdevblog/tinylink/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go -package=mocks

// LinkRepository описывает хранилище ссылок.
type LinkRepository interface {
	// Create сохраняет ссылку. Если код занят - repositories.ErrDuplicateKey.
	Create(ctx context.Context, link *models.Link) error
	// GetByCode находит ссылку по коду. Если нет - repositories.ErrNotFound.
	GetByCode(ctx context.Context, code string) (*models.Link, error)
	// List возвращает все ссылки, новые первыми.
	List(ctx context.Context) ([]models.Link, error)
	// IncrementClicks атомарно увеличивает счетчик переходов и выставляет время последнего перехода.
	IncrementClicks(ctx context.Context, code string, at time.Time) (*models.Link, error)
	// Delete удаляет ссылку, false если ее не было.
	Delete(ctx context.Context, code string) (bool, error)
}
