package controllers

import (
	"net/http"

	"github.com/fsdevblog/tinylink/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Публичные сообщения об ошибках. Внутренние подробности наружу не отдаем.
var (
	ErrRecordNotFound = errors.New("not found")                        // Запись не найдена
	ErrCodeExists     = errors.New("code already exists")              // Код занят
	ErrURLRequired    = errors.New("url is required")                  // Не передан url
	ErrInvalidURL     = errors.New("invalid url")                      // Некорректный url
	ErrInvalidCode    = errors.New("code must match [A-Za-z0-9]{6,8}") // Некорректный код
	ErrBadRequest     = errors.New("invalid request body")             // Тело запроса не разобрать
	ErrInternal       = errors.New("internal error")                   // Прочая ошибка
)

// errorStatus сопоставляет ошибку сервисного слоя HTTP статусу и публичной ошибке.
func errorStatus(err error) (int, error) {
	switch {
	case errors.Is(err, services.ErrURLRequired), errors.Is(err, ErrURLRequired):
		return http.StatusBadRequest, ErrURLRequired
	case errors.Is(err, services.ErrInvalidURL):
		return http.StatusBadRequest, ErrInvalidURL
	case errors.Is(err, services.ErrInvalidCode), errors.Is(err, ErrInvalidCode):
		return http.StatusBadRequest, ErrInvalidCode
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, ErrBadRequest
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict, ErrCodeExists
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, ErrRecordNotFound
	default:
		return http.StatusInternalServerError, ErrInternal
	}
}

// abortWithError единая обработка ошибок JSON ответов: исходная ошибка уходит в контекст gin
// (ее залогирует LoggerMiddleware), клиент получает статус и {"error": "..."}.
func abortWithError(ctx *gin.Context, err error) {
	status, public := errorStatus(err)
	_ = ctx.Error(err)
	ctx.AbortWithStatusJSON(status, gin.H{"error": public.Error()})
}
