package controllers

import (
	"context"

	"github.com/fsdevblog/tinylink/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocksctrl/store.go -package=mocksctrl

type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

// LinkStore операции над ссылками, которые нужны контроллерам.
type LinkStore interface {
	// Create создает ссылку, code может быть пустым - тогда он будет сгенерирован.
	Create(ctx context.Context, rawURL, code string) (*models.Link, error)
	Get(ctx context.Context, code string) (*models.Link, error)
	List(ctx context.Context) ([]models.Link, error)
	Delete(ctx context.Context, code string) error
	// Resolve возвращает ссылку для перехода и засчитывает переход.
	Resolve(ctx context.Context, code string) (*models.Link, error)
}
