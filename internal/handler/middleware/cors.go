package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gallery/adminhub/internal/config"
)

// CORS builds the cors middleware. With no origins configured, or with "*", every
// origin is allowed and credentials are switched off.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedMethods) > 0 {
		corsCfg.AllowMethods = cfg.AllowedMethods
	}
	corsCfg.AddAllowHeaders("Authorization")
	if len(cfg.AllowedHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.AllowedHeaders
	}
	if cfg.MaxAge > 0 {
		corsCfg.MaxAge = cfg.MaxAge.Truncate(time.Second)
	}

	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = cfg.AllowCredentials
	}
	return cors.New(corsCfg)
}
