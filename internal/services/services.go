package services

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/tinylink/internal/db"
	"github.com/fsdevblog/tinylink/internal/repositories/memstore"
	"github.com/fsdevblog/tinylink/internal/repositories/sql"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceTypeSQL      ServiceType = "sql"
	ServiceTypeInMemory ServiceType = "inMemory"
)

// Services сервисный слой приложения.
type Services struct {
	LinkService *LinkService
	PingService *PingService
}

// Factory собирает сервисы поверх подключения, созданного db.NewConnectionFactory.
// Для ServiceTypeSQL ожидается *gorm.DB, для ServiceTypeInMemory *db.MemoryStorage.
func Factory(conn any, sType ServiceType, logger *logrus.Logger) (*Services, error) {
	switch sType {
	case ServiceTypeSQL:
		gormDB, ok := conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		return getSQLServices(gormDB, logger), nil
	case ServiceTypeInMemory:
		store, ok := conn.(*db.MemoryStorage)
		if !ok {
			return nil, errors.New("invalid connection type. expected *db.MemoryStorage")
		}
		return getInMemoryServices(store, logger), nil
	default:
		return nil, fmt.Errorf("unknown service type: %s", sType)
	}
}

// ServiceTypeFor подбирает тип сервисов под тип хранилища.
func ServiceTypeFor(storageType db.StorageType) ServiceType {
	if storageType == db.StorageTypeInMemory {
		return ServiceTypeInMemory
	}
	return ServiceTypeSQL
}

func getSQLServices(conn *gorm.DB, logger *logrus.Logger) *Services {
	linkRepo := sql.NewLinkRepo(conn, logger)
	return &Services{
		LinkService: NewLinkService(linkRepo, logger),
		PingService: NewPingService(linkRepo),
	}
}

func getInMemoryServices(store *db.MemoryStorage, logger *logrus.Logger) *Services {
	linkRepo := memstore.NewLinkRepo(store)
	return &Services{
		LinkService: NewLinkService(linkRepo, logger),
		PingService: NewPingService(linkRepo),
	}
}
