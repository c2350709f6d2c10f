package config

import (
	"flag"
	"io/fs"
	"net/url"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/fsdevblog/tinylink/internal/db"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Значения по умолчанию.
const (
	DefaultServerAddress = "localhost:8080"
	DefaultSQLitePath    = "./tinylink.sqlite"
)

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS" mapstructure:"server_address"`
	// Базовый адрес результирующего сокращенного URL (scheme://host). Пустой - берем из запроса.
	BaseURL string `env:"BASE_URL" mapstructure:"base_url"`
	// Тип хранилища: sqlite, postgres или inMemory
	DBType db.StorageType `env:"DB" mapstructure:"db"`
	// Строка подключения к PostgreSQL
	DatabaseDSN string `env:"DATABASE_DSN" mapstructure:"database_dsn"`
	// Путь к файлу SQLite
	SQLitePath string `env:"SQLITE_PATH" mapstructure:"sqlite_path"`
	// Уровень логирования (debug, info, warning, error)
	LogLevel string `env:"LOG_LEVEL" mapstructure:"log_level"`
	// Файл для логов (с ротацией), помимо stdout
	LogFile string `env:"LOG_FILE" mapstructure:"log_file"`
	// Путь к файлу конфигурации (yaml, json, toml)
	ConfigFile string `env:"CONFIG" mapstructure:"-"`
}

// LoadConfig собирает конфигурацию. Приоритет: переменные окружения (в т.ч. из .env),
// затем флаги командной строки, затем файл конфигурации, затем значения по умолчанию.
func LoadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env file")
	}

	var envConfig, flagsConfig Config
	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	if err := loadFlags(&flagsConfig, args); err != nil {
		return nil, err
	}

	var fileConfig Config
	if path := defaultIfBlank(envConfig.ConfigFile, flagsConfig.ConfigFile); path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		fileConfig = *fc
		fileConfig.ConfigFile = path
	}

	conf := mergeConfig(&envConfig, &flagsConfig, &fileConfig)
	if err := conf.normalize(); err != nil {
		return nil, err
	}
	return conf, nil
}

// MustLoadConfig аналогичен LoadConfig, но паникует при ошибке.
func MustLoadConfig(args []string) *Config {
	conf, err := LoadConfig(args)
	if err != nil {
		panic(err)
	}
	return conf
}

// loadFlags парсит флаги командной строки.
func loadFlags(flagsConfig *Config, args []string) error {
	flags := flag.NewFlagSet("tinylink", flag.ContinueOnError)

	flags.StringVar(&flagsConfig.ServerAddress, "a", "", "Адрес сервера (по умолчанию "+DefaultServerAddress+")")
	flags.StringVar(&flagsConfig.BaseURL, "b",
		"", "Базовый адрес результирующего сокращенного URL (по умолчанию Scheme://Host запроса)")
	flags.Func("db", "Тип хранилища: sqlite, postgres, inMemory", func(s string) error {
		flagsConfig.DBType = db.StorageType(s)
		return nil
	})
	flags.StringVar(&flagsConfig.DatabaseDSN, "d", "", "Строка подключения к PostgreSQL")
	flags.StringVar(&flagsConfig.SQLitePath, "s", "", "Путь к файлу SQLite (по умолчанию "+DefaultSQLitePath+")")
	flags.StringVar(&flagsConfig.LogLevel, "l", "", "Уровень логирования")
	flags.StringVar(&flagsConfig.ConfigFile, "c", "", "Путь к файлу конфигурации")

	if err := flags.Parse(args); err != nil {
		return errors.Wrap(err, "parse flags")
	}
	return nil
}

// loadFile читает файл конфигурации, формат определяется по расширению.
func loadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Wrapf(err, "decode config file %s", path)
	}
	return &conf, nil
}

// mergeConfig сливает конфигурации в порядке приоритета.
func mergeConfig(envConfig, flagsConfig, fileConfig *Config) *Config {
	pick := func(get func(*Config) string) string {
		return defaultIfBlank(get(envConfig), defaultIfBlank(get(flagsConfig), get(fileConfig)))
	}
	return &Config{
		ServerAddress: pick(func(c *Config) string { return c.ServerAddress }),
		BaseURL:       pick(func(c *Config) string { return c.BaseURL }),
		DBType:        db.StorageType(pick(func(c *Config) string { return string(c.DBType) })),
		DatabaseDSN:   pick(func(c *Config) string { return c.DatabaseDSN }),
		SQLitePath:    pick(func(c *Config) string { return c.SQLitePath }),
		LogLevel:      pick(func(c *Config) string { return c.LogLevel }),
		LogFile:       pick(func(c *Config) string { return c.LogFile }),
		ConfigFile:    pick(func(c *Config) string { return c.ConfigFile }),
	}
}

// normalize проставляет значения по умолчанию и проверяет значения.
func (c *Config) normalize() error {
	c.ServerAddress = defaultIfBlank(c.ServerAddress, DefaultServerAddress)
	c.SQLitePath = defaultIfBlank(c.SQLitePath, DefaultSQLitePath)

	if c.DBType == "" {
		// как и раньше: задан DSN - значит работаем с postgres
		if c.DatabaseDSN != "" {
			c.DBType = db.StorageTypePostgres
		} else {
			c.DBType = db.StorageTypeSQLite
		}
	}
	knownTypes := []db.StorageType{db.StorageTypeSQLite, db.StorageTypePostgres, db.StorageTypeInMemory}
	if !slices.Contains(knownTypes, c.DBType) {
		return errors.Errorf("unknown storage type %q", c.DBType)
	}

	if c.BaseURL != "" {
		parsedURL, err := url.ParseRequestURI(c.BaseURL)
		if err != nil || parsedURL.Host == "" {
			return errors.Errorf("failed to parse base url %q", c.BaseURL)
		}
		// отсекаем Path и Query если они заданы в базовом урле.
		c.BaseURL = (&url.URL{Scheme: parsedURL.Scheme, Host: parsedURL.Host}).String()
	}
	return nil
}

func defaultIfBlank[T ~string](value T, defaultValue T) T {
	if value == "" {
		return defaultValue
	}
	return value
}
