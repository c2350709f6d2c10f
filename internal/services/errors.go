package services

import (
	"errors"
	"fmt"
)

// Ошибки сервисного слоя. Контроллеры переводят их в HTTP статусы.
var (
	ErrInvalidInput = errors.New("[service]: invalid input")       // 400
	ErrConflict     = errors.New("[service]: code already exists") // 409
	ErrNotFound     = errors.New("[service]: record not found")    // 404
	ErrStorage      = errors.New("[service]: storage error")       // 500
)

// Уточнения ErrInvalidInput. errors.Is(err, ErrInvalidInput) для них истинно.
var (
	ErrURLRequired = fmt.Errorf("%w: url is required", ErrInvalidInput)
	ErrInvalidURL  = fmt.Errorf("%w: invalid url", ErrInvalidInput)
	ErrInvalidCode = fmt.Errorf("%w: code must match [A-Za-z0-9]{6,8}", ErrInvalidInput)
)
