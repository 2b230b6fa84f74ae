package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// multipartOverhead is the room left for form fields beyond the file itself
const multipartOverhead = 1 << 20

type RouterConfig struct {
	AllowedOrigins []string
	MaxFileSize    int64
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter assembles the middleware chain and routes. A zero RateLimitRPS
// disables rate limiting.
func NewRouter(cfg RouterConfig, estimateHandler *EstimateHandler, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20

	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger), CORS(cfg.AllowedOrigins))
	if cfg.RateLimitRPS > 0 {
		router.Use(RateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst), logger))
	}
	if cfg.MaxFileSize > 0 {
		router.Use(MaxBodySize(cfg.MaxFileSize + multipartOverhead))
	}

	router.GET("/health", estimateHandler.Health)

	api := router.Group("/api/v1")
	{
		estimates := api.Group("/estimates")
		{
			estimates.POST("/parse", estimateHandler.ParseEstimate)
			estimates.POST("/parse-text", estimateHandler.ParseText)
		}
	}

	router.NoRoute(estimateHandler.NotFound)
	return router
}
