package cmd

import (
	"log/slog"

	"github.com/patrickmn/go-cache"

	"github.com/rapestimate/estimate-parser/config"
	"github.com/rapestimate/estimate-parser/service"
)

func newEstimateService(cfg *config.Config, logger *slog.Logger) *service.EstimateService {
	var resultCache *cache.Cache
	if cfg.CacheTTL > 0 {
		resultCache = cache.New(cfg.CacheTTL, cfg.CacheCleanupInterval)
	}
	return service.NewEstimateService(service.NewPDFProcessor(), resultCache, logger)
}
