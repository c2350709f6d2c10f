package memory

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// MStorage хранилище ключ/значение в памяти. Значения хранятся в виде JSON, поэтому
// наружу всегда отдаются копии и случайные мутации снаружи на хранилище не влияют.
type MStorage struct {
	data map[string][]byte
	m    sync.RWMutex
}

func NewMemStorage() *MStorage {
	return &MStorage{
		data: make(map[string][]byte),
	}
}

func Get[T any](ctx context.Context, key string, m *MStorage) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m.m.RLock()
	defer m.m.RUnlock()

	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	var result T
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal json by key `%s`", key)
	}
	return &result, nil
}

// Set Сохраняет новую пару ключ/значение. Ключ обязан быть уникальным, иначе вернется ошибка ErrDuplicateKey.
// Проверка существования и запись выполняются под одной блокировкой.
func Set[T any](ctx context.Context, key string, val *T, m *MStorage) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	bytes, err := json.Marshal(val)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal json for object `%+v`", val)
	}

	m.m.Lock()
	defer m.m.Unlock()

	if _, ok := m.data[key]; ok {
		return ErrDuplicateKey
	}
	m.data[key] = bytes
	return nil
}

// Update атомарно читает значение по ключу, передает его в fn и сохраняет результат.
// Если fn вернула ошибку, значение не меняется.
func Update[T any](ctx context.Context, key string, m *MStorage, fn func(val *T) error) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m.m.Lock()
	defer m.m.Unlock()

	raw, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}

	var val T
	if err := json.Unmarshal(raw, &val); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal json by key `%s`", key)
	}
	if err := fn(&val); err != nil {
		return nil, err
	}

	bytes, err := json.Marshal(&val)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal json for object `%+v`", val)
	}
	m.data[key] = bytes
	return &val, nil
}

// Delete удаляет ключ. Возвращает ErrNotFound если ключа нет.
func Delete(ctx context.Context, key string, m *MStorage) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	m.m.Lock()
	defer m.m.Unlock()

	if _, ok := m.data[key]; !ok {
		return ErrNotFound
	}
	delete(m.data, key)
	return nil
}

// GetAll возвращает все значения в произвольном порядке.
func GetAll[T any](ctx context.Context, m *MStorage) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m.m.RLock()
	defer m.m.RUnlock()

	var result = make([]T, 0, len(m.data))

	for key, bytes := range m.data {
		var val T
		if err := json.Unmarshal(bytes, &val); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal json by key `%s`", key)
		}
		result = append(result, val)
	}
	return result, nil
}
