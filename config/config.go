// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/CUknot/realtime_chat/utils"
	"github.com/joho/godotenv"
)

// Supported store drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// DatabaseConfig selects and configures the message/room store.
type DatabaseConfig struct {
	Driver string

	Host     string
	User     string
	Password string
	Name     string
	Port     string

	SQLitePath string

	MongoURI      string
	MongoDatabase string
}

// DSN builds the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port)
}

// CacheConfig enables the Redis room cache when Addr is set.
type CacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether a Redis address was configured.
func (c CacheConfig) Enabled() bool {
	return c.Addr != ""
}

// RateLimitConfig defines per-connection send-message throttling.
// Enabled is false when Burst is 0.
type RateLimitConfig struct {
	Burst    int
	Interval time.Duration
}

// Enabled reports whether send-message throttling is on.
func (c RateLimitConfig) Enabled() bool {
	return c.Burst > 0 && c.Interval > 0
}

// Config holds all server settings.
type Config struct {
	Port            string
	AllowedOrigins  []string
	MaxMessageSize  int64
	RateLimit       RateLimitConfig
	HistoryLimit    int
	ShutdownTimeout time.Duration
	GinMode         string

	Database DatabaseConfig
	Cache    CacheConfig
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Port:            "5000",
		AllowedOrigins:  []string{"http://localhost:5173"},
		MaxMessageSize:  4096,
		RateLimit:       RateLimitConfig{Burst: 5, Interval: time.Second},
		HistoryLimit:    100,
		ShutdownTimeout: 30 * time.Second,
		Database: DatabaseConfig{
			Driver:        DriverPostgres,
			Host:          "localhost",
			User:          "postgres",
			Password:      "postgres",
			Name:          "chatapp",
			Port:          "5432",
			SQLitePath:    "chat.db",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "chatapp",
		},
		Cache: CacheConfig{TTL: 5 * time.Minute},
	}
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv overlays environment variables on the defaults.
// Invalid numeric or duration values keep their defaults.
func FromEnv() Config {
	cfg := Default()

	cfg.Port = utils.GetEnv("PORT", cfg.Port)
	cfg.AllowedOrigins = utils.GetEnvList("FRONTEND_URL", cfg.AllowedOrigins)
	cfg.MaxMessageSize = int64(utils.GetEnvInt("MAX_MESSAGE_SIZE", int(cfg.MaxMessageSize)))
	// A burst of 0 turns the send-message limiter off.
	cfg.RateLimit.Burst = utils.GetEnvNonNegativeInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst)
	cfg.RateLimit.Interval = utils.GetEnvDuration("RATE_LIMIT_INTERVAL", cfg.RateLimit.Interval)
	cfg.HistoryLimit = utils.GetEnvInt("MESSAGE_HISTORY_LIMIT", cfg.HistoryLimit)
	cfg.ShutdownTimeout = utils.GetEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.GinMode = utils.GetEnv("GIN_MODE", cfg.GinMode)

	db := &cfg.Database
	db.Driver = utils.GetEnv("DB_DRIVER", db.Driver)
	db.Host = utils.GetEnv("DB_HOST", db.Host)
	db.User = utils.GetEnv("DB_USER", db.User)
	db.Password = utils.GetEnv("DB_PASS", db.Password)
	db.Name = utils.GetEnv("DB_NAME", db.Name)
	db.Port = utils.GetEnv("DB_PORT", db.Port)
	db.SQLitePath = utils.GetEnv("SQLITE_PATH", db.SQLitePath)
	db.MongoURI = utils.GetEnv("MONGODB_URI", db.MongoURI)
	db.MongoDatabase = utils.GetEnv("MONGODB_DATABASE", db.MongoDatabase)

	cfg.Cache.Addr = utils.GetEnv("REDIS_ADDR", cfg.Cache.Addr)
	cfg.Cache.Password = utils.GetEnv("REDIS_PASSWORD", cfg.Cache.Password)
	cfg.Cache.DB = utils.GetEnvInt("REDIS_DB", cfg.Cache.DB)
	cfg.Cache.TTL = utils.GetEnvDuration("CACHE_TTL", cfg.Cache.TTL)

	return cfg
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres, sqlite or mongo)", c.Database.Driver)
	}
	switch c.GinMode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported GIN_MODE %q (want debug, release or test)", c.GinMode)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
