package sql

import (
	"fmt"
	"strings"

	"github.com/fsdevblog/tinylink/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ConvertErrorType конвертирует ошибки GORM в ошибки уровня репозитория, сохраняя исходный текст.
func ConvertErrorType(err error) error {
	if err == nil {
		return nil
	}

	var nativeErr error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		nativeErr = repositories.ErrDuplicateKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		nativeErr = repositories.ErrNotFound
	default:
		nativeErr = repositories.ErrUnknown
	}
	return fmt.Errorf("%w: %s", nativeErr, err.Error())
}

// isUniqueViolation запасной вариант на случай если драйвер не перевел ошибку
// (старые версии sqlite драйвера отдают голый текст `UNIQUE constraint failed`).
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
