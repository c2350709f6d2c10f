package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/tinylink/internal/config"
	"github.com/fsdevblog/tinylink/internal/controllers"
	"github.com/fsdevblog/tinylink/internal/db"
	"github.com/fsdevblog/tinylink/internal/logs"
	"github.com/fsdevblog/tinylink/internal/services"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Таймауты http сервера.
const (
	ReadTimeout       = 5 * time.Second
	WriteTimeout      = 10 * time.Second
	IdleTimeout       = 120 * time.Second
	ReadHeaderTimeout = 2 * time.Second
	ShutdownTimeout   = 10 * time.Second
	ConnectTimeout    = 10 * time.Second
)

type App struct {
	config     config.Config
	conn       any
	dbServices *services.Services
	Logger     *logrus.Logger
}

// New собирает приложение: логгер, подключение к хранилищу и сервисный слой.
func New(appConf config.Config) (*App, error) {
	logger, err := logs.New(func(o *logs.LoggerOptions) {
		if appConf.LogLevel != "" {
			o.Level = appConf.LogLevel
		}
		o.File = appConf.LogFile
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ConnectTimeout)
	defer cancel()

	conn, dbServices, err := initServices(ctx, appConf, logger)
	if err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return &App{
		config:     appConf,
		conn:       conn,
		dbServices: dbServices,
		Logger:     logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Handler http обработчик приложения.
func (a *App) Handler() http.Handler {
	return controllers.SetupRouter(controllers.RouterParams{
		LinkService: a.dbServices.LinkService,
		PingService: a.dbServices.PingService,
		AppConf:     a.config,
		Logger:      a.Logger,
	})
}

// Run запускает web сервер и блокируется до SIGINT/SIGTERM или ошибки сервера.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", a.config.ServerAddress)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.config.ServerAddress, err)
	}
	return a.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln до отмены ctx, после чего мягко останавливает сервер
// и закрывает подключение к хранилищу.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           a.Handler(),
		ReadTimeout:       ReadTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		a.Logger.Infof("Listening on %s", ln.Addr())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.WithError(serverErr).Error("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.WithError(err).Error("graceful shutdown failed")
	}
	if err := db.Close(a.conn); err != nil {
		a.Logger.WithError(err).Error("close storage")
	}

	return serverErr
}

// initServices создает подключение к хранилищу и возвращает сервисный слой приложения.
func initServices(
	ctx context.Context,
	appConf config.Config,
	logger *logrus.Logger,
) (any, *services.Services, error) {
	conn, connErr := db.NewConnectionFactory(ctx, db.FactoryConfig{
		StorageType:  appConf.DBType,
		PostgresDSN:  &appConf.DatabaseDSN,
		SqliteDBPath: &appConf.SQLitePath,
	})
	if connErr != nil {
		return nil, nil, connErr //nolint:wrapcheck
	}

	dbServices, dbServErr := services.Factory(conn, services.ServiceTypeFor(appConf.DBType), logger)
	if dbServErr != nil {
		_ = db.Close(conn)
		return nil, nil, dbServErr //nolint:wrapcheck
	}
	return conn, dbServices, nil
}
