package logs

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EncodingType определяет формат вывода логов.
type EncodingType string

// EncodingTypeText Форматирование для консоли.
// EncodingTypeJSON Форматирование в JSON.
const (
	EncodingTypeText EncodingType = "text"
	EncodingTypeJSON EncodingType = "json"
)

// Параметры ротации файла логов.
const (
	fileMaxSizeMB  = 50
	fileMaxBackups = 5
	fileMaxAgeDays = 28
)

// LoggerOptions настройки логгера.
type LoggerOptions struct {
	Level    string       // Уровень логирования, пустой - по режиму запуска
	Encoding EncodingType // Формат вывода
	Output   io.Writer    // Основной вывод
	File     string       // Файл для дублирования логов (с ротацией), пустой - без файла
}

// New создает новый логгер с указанными настройками.
// Вне release режима (GIN_MODE != release) пишет текстом с уровнем debug, в release - JSON и info.
//
// Параметры:
//   - opts: функции для настройки логгера
//
// Возвращает:
//   - *logrus.Logger: настроенный логгер
//   - error: ошибка создания логгера
func New(opts ...func(*LoggerOptions)) (*logrus.Logger, error) {
	isProduction := os.Getenv("GIN_MODE") == "release"

	options := LoggerOptions{
		Level:    logrus.DebugLevel.String(),
		Encoding: EncodingTypeText,
		Output:   os.Stdout,
	}
	if isProduction {
		options.Level = logrus.InfoLevel.String()
		options.Encoding = EncodingTypeJSON
	}

	for _, opt := range opts {
		opt(&options)
	}

	lvl, err := logrus.ParseLevel(options.Level)
	if err != nil {
		return nil, errors.Wrap(err, "parse level")
	}

	logger := logrus.New()
	logger.SetLevel(lvl)

	switch options.Encoding {
	case EncodingTypeJSON:
		logger.SetFormatter(new(logrus.JSONFormatter))
	case EncodingTypeText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, errors.Errorf("unknown encoding %q", options.Encoding)
	}

	out := options.Output
	if options.File != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   options.File,
			MaxSize:    fileMaxSizeMB,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAgeDays,
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	return logger, nil
}

// MustNew создает новый логгер с указанными настройками.
// В случае ошибки вызывает panic.
func MustNew(opts ...func(*LoggerOptions)) *logrus.Logger {
	log, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return log
}
