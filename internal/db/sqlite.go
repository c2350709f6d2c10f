package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewSQLite(ctx context.Context, dbPath string) (*gorm.DB, error) {
	conn, connErr := connectSQLite(dbPath)
	if connErr != nil {
		return nil, fmt.Errorf("init database error: %w", connErr)
	}
	if migrateErr := closeOnError(conn, func() error { return Migrate(ctx, conn) }); migrateErr != nil {
		return nil, fmt.Errorf("migrate database error: %w", migrateErr)
	}
	return conn, nil
}

// closeOnError выполняет fn и закрывает подключение, если fn вернула ошибку.
func closeOnError(conn *gorm.DB, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	if closeErr := Close(conn); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}

func connectSQLite(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database with path %s error: %w", dbPath, err)
	}

	// sqlite не умеет конкурентную запись, поэтому держим одно соединение,
	// иначе параллельные инкременты ловят `database is locked`.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
