package app

import (
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lighter/common/internal/module/user"
	"github.com/lighter/common/internal/shared/cache"
	"github.com/lighter/common/internal/shared/config"
	"github.com/lighter/common/internal/shared/database"
	"github.com/lighter/common/internal/shared/logger"
	"github.com/lighter/common/internal/shared/metrics"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideLogger,
	ProvideZapLogger,
	ProvideMetrics,
	ProvideDatabase,
	ProvideRedisClient,
	ProvideCountCache,
	NewHealthCheck,
)

// ProvideLogger creates a logger instance.
func ProvideLogger(cfg *config.Config) *logger.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideZapLogger creates a zap logger instance.
func ProvideZapLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	zl, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, nil, err
	}
	return zl, func() { _ = zl.Sync() }, nil
}

// ProvideMetrics creates a metrics instance registered with the default
// registry, or nil when metrics are disabled.
func ProvideMetrics(cfg *config.Config) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(cfg.Metrics.Namespace, nil)
}

// ProvideDatabase creates a database connection.
func ProvideDatabase(cfg *config.Config, zl *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.New(&cfg.Database, zl)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if err := database.Close(db); err != nil {
			zl.Warn("close database", zap.Error(err))
		}
	}, nil
}

// ProvideRedisClient creates a Redis client. Redis is optional: a failed
// connection is logged and listings count straight from the database.
func ProvideRedisClient(cfg *config.Config, zl *zap.Logger) (goredis.UniversalClient, func()) {
	client, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		zl.Warn("Redis connection failed, continuing without cache", zap.Error(err))
		return nil, func() {}
	}
	return client, func() { _ = cache.Close(client) }
}

// ProvideCountCache creates the listing count cache.
func ProvideCountCache(cfg *config.Config, client goredis.UniversalClient, m *metrics.Metrics, zl *zap.Logger) *cache.CountCache {
	return cache.NewCountCache(client, cfg.Redis.CountTTL, m, zl)
}

// ===== Module Providers =====

// UserSet provides user module dependencies.
var UserSet = wire.NewSet(
	user.NewRepository,
	user.NewService,
	user.NewHandler,
)
