package memstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/tinylink/internal/db/memory"
	"github.com/fsdevblog/tinylink/internal/repositories"
)

// convertErrorType переводит ошибки хранилища в памяти в ошибки уровня репозитория:
//   - memory.ErrDuplicateKey -> repositories.ErrDuplicateKey
//   - memory.ErrNotFound -> repositories.ErrNotFound
//   - отмена контекста остается как есть, чтобы errors.Is(err, context.Canceled) работал выше
//   - остальное -> repositories.ErrUnknown
func convertErrorType(err error) error {
	if err == nil {
		return nil
	}

	var nativeErr error
	switch {
	case errors.Is(err, memory.ErrDuplicateKey):
		nativeErr = repositories.ErrDuplicateKey
	case errors.Is(err, memory.ErrNotFound):
		nativeErr = repositories.ErrNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", repositories.ErrUnknown, err)
	default:
		nativeErr = repositories.ErrUnknown
	}

	return fmt.Errorf("%w: %s", nativeErr, err.Error())
}
