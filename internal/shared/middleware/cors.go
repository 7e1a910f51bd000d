package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lighter/common/internal/shared/config"
)

const defaultCORSMaxAge = 12 * time.Hour

// corsOptions translates the configured origins into gin-contrib/cors options.
// A wildcard origin disables credentials: browsers reject "*" with cookies.
func corsOptions(cfg config.CORSConfig) cors.Config {
	opts := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        cfg.MaxAge,
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = defaultCORSMaxAge
	}

	if len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*") {
		opts.AllowAllOrigins = true
		return opts
	}
	opts.AllowOrigins = cfg.AllowOrigins
	opts.AllowCredentials = cfg.AllowCredentials
	return opts
}

// CORS returns the cross-origin middleware for the public API.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsOptions(cfg))
}
