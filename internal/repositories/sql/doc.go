// Package sql предоставляет реализацию репозитория ссылок поверх GORM (SQLite и PostgreSQL).
//
// Все методы репозитория преобразуют ошибки GORM в общие ошибки уровня репозитория
// с помощью ConvertErrorType:
//   - gorm.ErrDuplicatedKey -> repositories.ErrDuplicateKey
//   - gorm.ErrRecordNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package sql
