package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/lighter/common/cmd/server/docs" // swagger docs
	"github.com/lighter/common/internal/module/user"
	"github.com/lighter/common/internal/shared/config"
	"github.com/lighter/common/internal/shared/database"
	apperrors "github.com/lighter/common/internal/shared/errors"
	"github.com/lighter/common/internal/shared/logger"
	"github.com/lighter/common/internal/shared/metrics"
	"github.com/lighter/common/internal/shared/middleware"
	"github.com/lighter/common/internal/shared/response"
)

// App holds the wired application.
type App struct {
	Config    *config.Config
	Router    *gin.Engine
	DB        *gorm.DB
	Logger    *logger.Logger
	ZapLogger *zap.Logger
}

const healthTimeout = 2 * time.Second

// HealthCheck reports whether the backing services are reachable.
type HealthCheck func(ctx context.Context) error

// NewHealthCheck pings the database.
func NewHealthCheck(db *gorm.DB) HealthCheck {
	return func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, health HealthCheck, users *user.Handler) *gin.Engine {
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Apply global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(log, "/health", cfg.Metrics.Path))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := health(ctx); err != nil {
				response.Error(c, apperrors.Unavailable("database unavailable", err))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics.Enabled && cfg.Metrics.Path != "" {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	if cfg.Server.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}

	v1 := r.Group("/api/v1")
	users.RegisterRoutes(v1)

	return r
}
