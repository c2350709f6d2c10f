package memstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fsdevblog/tinylink/internal/db"
	"github.com/fsdevblog/tinylink/internal/db/memory"
	"github.com/fsdevblog/tinylink/internal/models"
)

// LinkRepo представляет собой репозиторий для работы со ссылками в памяти.
type LinkRepo struct {
	s *db.MemoryStorage
}

// NewLinkRepo создает новый экземпляр репозитория.
//
// Параметры:
//   - store: экземпляр хранилища в памяти
//
// Возвращает:
//   - *LinkRepo: инициализированный репозиторий
func NewLinkRepo(store *db.MemoryStorage) *LinkRepo {
	return &LinkRepo{
		s: store,
	}
}

// Create сохраняет новую ссылку. Ключом является код, повтор ключа дает repositories.ErrDuplicateKey.
func (l *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if err := memory.Set[models.Link](ctx, link.Code, link, l.s.MStorage); err != nil {
		return fmt.Errorf("failed to create record: %w", convertErrorType(err))
	}
	return nil
}

// GetByCode получает ссылку по коду.
func (l *LinkRepo) GetByCode(ctx context.Context, code string) (*models.Link, error) {
	link, err := memory.Get[models.Link](ctx, code, l.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to get record by code %s: %w", code, convertErrorType(err))
	}
	return link.UTC(), nil
}

// List получает все ссылки, отсортированные по дате создания (новые первыми).
//
// Параметры:
//   - ctx: контекст выполнения
//
// Возвращает:
//   - []models.Link: все записи
//   - error: ошибка получения (преобразованная через convertErrorType)
func (l *LinkRepo) List(ctx context.Context) ([]models.Link, error) {
	links, err := memory.GetAll[models.Link](ctx, l.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", convertErrorType(err))
	}

	slices.SortFunc(links, func(a, b models.Link) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Code, b.Code)
	})
	for i := range links {
		links[i].UTC()
	}
	return links, nil
}

// IncrementClicks атомарно увеличивает счетчик переходов и выставляет время последнего перехода.
func (l *LinkRepo) IncrementClicks(ctx context.Context, code string, at time.Time) (*models.Link, error) {
	link, err := memory.Update[models.Link](ctx, code, l.s.MStorage, func(val *models.Link) error {
		clickedAt := at.UTC()
		val.Clicks++
		val.LastClicked = &clickedAt
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to increment clicks for code %s: %w", code, convertErrorType(err))
	}
	return link.UTC(), nil
}

// Delete удаляет ссылку. Возвращает false если ссылки не было.
func (l *LinkRepo) Delete(ctx context.Context, code string) (bool, error) {
	err := memory.Delete(ctx, code, l.s.MStorage)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, memory.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to delete record by code %s: %w", code, convertErrorType(err))
}

// Ping хранилище в памяти всегда доступно.
func (l *LinkRepo) Ping(_ context.Context) error {
	return nil
}
