package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fsdevblog/tinylink/internal/codes"
	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MaxGenerateAttempts сколько раз пробуем сгенерировать свободный код, прежде чем сдаться.
const MaxGenerateAttempts = 10

// LinkService Сервис работает с хранилищем в контексте ссылок: создание, выдача, удаление и переходы.
type LinkService struct {
	repo     LinkRepository
	logger   *logrus.Entry
	now      func() time.Time
	generate func() (string, error)
}

// WithClock подменяет источник текущего времени (для тестов).
func WithClock(now func() time.Time) func(*LinkService) {
	return func(s *LinkService) {
		s.now = now
	}
}

// WithCodeGenerator подменяет генератор кодов.
func WithCodeGenerator(generate func() (string, error)) func(*LinkService) {
	return func(s *LinkService) {
		s.generate = generate
	}
}

func NewLinkService(repo LinkRepository, logger *logrus.Logger, opts ...func(*LinkService)) *LinkService {
	s := &LinkService{
		repo:     repo,
		logger:   logger.WithField("module", "service/link"),
		now:      time.Now,
		generate: codes.Generate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create создает ссылку на rawURL. Если code пустой, код генерируется, а коллизии
// с уже существующими кодами разрешаются повторной генерацией.
//
// Ошибки:
//   - ErrURLRequired, ErrInvalidURL, ErrInvalidCode (все ErrInvalidInput) - до обращения к хранилищу
//   - ErrConflict - пользовательский код уже занят
//   - ErrStorage - прочие ошибки хранилища
func (s *LinkService) Create(ctx context.Context, rawURL, code string) (*models.Link, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrURLRequired
	}
	if _, err := validateURL(rawURL); err != nil {
		return nil, errors.Wrap(ErrInvalidURL, err.Error())
	}

	if code != "" {
		if !codes.Validate(code) {
			return nil, ErrInvalidCode
		}
		link := s.newLink(rawURL, code)
		if err := s.repo.Create(ctx, link); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return nil, errors.Wrapf(ErrConflict, "code %s", code)
			}
			return nil, s.storageErr(err, "create link")
		}
		return link, nil
	}

	for range MaxGenerateAttempts {
		generated, genErr := s.generate()
		if genErr != nil {
			return nil, s.storageErr(genErr, "generate code")
		}
		link := s.newLink(rawURL, generated)
		err := s.repo.Create(ctx, link)
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, s.storageErr(err, "create link")
		}
		s.logger.Debugf("generated code %s collides, retrying", generated)
	}

	s.logger.Errorf("no free code after %d attempts for url %s", MaxGenerateAttempts, rawURL)
	return nil, errors.Wrapf(ErrStorage, "no free code after %d attempts", MaxGenerateAttempts)
}

// Get возвращает ссылку по коду.
func (s *LinkService) Get(ctx context.Context, code string) (*models.Link, error) {
	if !codes.Validate(code) {
		return nil, errors.Wrapf(ErrNotFound, "code %s", code)
	}
	link, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "code %s", code)
		}
		return nil, s.storageErr(err, "get link")
	}
	return link, nil
}

// List возвращает все ссылки, новые первыми.
func (s *LinkService) List(ctx context.Context) ([]models.Link, error) {
	links, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storageErr(err, "list links")
	}
	return links, nil
}

// Delete удаляет ссылку. Повторное удаление того же кода вернет ErrNotFound.
func (s *LinkService) Delete(ctx context.Context, code string) error {
	if !codes.Validate(code) {
		return errors.Wrapf(ErrNotFound, "code %s", code)
	}
	deleted, err := s.repo.Delete(ctx, code)
	if err != nil {
		return s.storageErr(err, "delete link")
	}
	if !deleted {
		return errors.Wrapf(ErrNotFound, "code %s", code)
	}
	return nil
}

// Resolve находит ссылку для перехода и засчитывает переход.
//
// Поиск и инкремент выполняются одной атомарной операцией хранилища, поэтому клиент получает
// либо редирект с учтенным переходом, либо ErrNotFound. Если инкремент упал по вине хранилища,
// пробуем просто прочитать ссылку: редирект важнее счетчика, сбой учета только логируем.
func (s *LinkService) Resolve(ctx context.Context, code string) (*models.Link, error) {
	if !codes.Validate(code) {
		return nil, errors.Wrapf(ErrNotFound, "code %s", code)
	}

	link, err := s.repo.IncrementClicks(ctx, code, s.now())
	if err == nil {
		return link, nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "code %s", code)
	}

	s.logger.WithError(err).Warnf("failed to record visit for code %s", code)

	link, getErr := s.repo.GetByCode(ctx, code)
	if getErr != nil {
		if errors.Is(getErr, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "code %s", code)
		}
		return nil, s.storageErr(getErr, "resolve link")
	}
	return link, nil
}

func (s *LinkService) newLink(rawURL, code string) *models.Link {
	return &models.Link{
		Code:      code,
		URL:       rawURL,
		CreatedAt: s.now().UTC(),
	}
}

// storageErr логирует исходную ошибку и отдает наружу ErrStorage без внутренних подробностей.
func (s *LinkService) storageErr(err error, op string) error {
	s.logger.WithError(err).Errorf("%s failed", op)
	return errors.Wrap(ErrStorage, op)
}

// validateURL проверяет, является ли строка абсолютным URL: разбирается url.Parse,
// есть схема и непустой хост. Схемы без хоста (javascript:, mailto:, data:) отсекаются.
func validateURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.New("invalid URL format")
	}

	if parsedURL.Scheme == "" {
		return nil, errors.New("URL must have a scheme")
	}

	if parsedURL.Host == "" {
		return nil, errors.New("URL must have a host")
	}

	return parsedURL, nil
}
