package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/CUknot/realtime_chat/config"
	"github.com/CUknot/realtime_chat/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects the store selected by cfg.Database.Driver, migrates its
// schema and, when a Redis address is configured, puts the room cache in
// front of it.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		store, err = ConnectPostgres(cfg.Database.DSN())
	case config.DriverSQLite:
		store, err = ConnectSQLite(cfg.Database.SQLitePath)
	case config.DriverMongo:
		store, err = ConnectMongo(ctx, cfg.Database.MongoURI, cfg.Database.MongoDatabase)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, err
	}

	if cfg.Cache.Enabled() {
		cache, err := NewRedisCache(ctx, cfg.Cache)
		if err != nil {
			store.Close()
			return nil, err
		}
		log.Printf("Room cache enabled at %s (ttl %s)", cfg.Cache.Addr, cfg.Cache.TTL)
		store = NewCachedStore(store, cache, cfg.Cache.TTL)
	}

	return store, nil
}

// ConnectPostgres opens a postgres-backed store
func ConnectPostgres(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established (postgres)")
	return newMigratedStore(db)
}

// ConnectSQLite opens a file-backed SQLite store. path may be ":memory:".
func ConnectSQLite(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	log.Printf("Database connection established (sqlite %s)", path)
	return newMigratedStore(db)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func newMigratedStore(db *gorm.DB) (*GormStore, error) {
	if err := Migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, err
	}
	return NewGormStore(db), nil
}

// Migrate automatically migrates the database schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Room{}, &models.Message{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migration completed")
	return nil
}
