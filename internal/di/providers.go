package di

import (
	"fmt"

	domrepo "QuoteLens/internal/domain/repository"
	"QuoteLens/internal/handler/api"
	"QuoteLens/internal/service/alphavantage"
	svccache "QuoteLens/internal/service/cache"
	"QuoteLens/internal/usecase"
	pkgcache "QuoteLens/pkg/cache"
	"QuoteLens/pkg/config"
	xhttp "QuoteLens/pkg/http"
	applogger "QuoteLens/pkg/logger"
	"QuoteLens/pkg/metrics"
	"QuoteLens/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	l, err := applogger.New(lc)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideCacheService creates the cache backing the table memoization:
// layered memory+redis when redis is configured, memory-only otherwise.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc), nil
}

// ProvideTableCache adapts the cache service to normalized-table memoization.
func ProvideTableCache(svc pkgcache.Service, cfg *config.Config) domrepo.TableCache {
	return svccache.NewTableCache(svc, cfg.Cache.TTL)
}

// ProvideQuoteSource creates the vendor quote client.
func ProvideQuoteSource(cfg *config.Config) domrepo.QuoteSource {
	return alphavantage.New(
		cfg.Quotes.BaseURL,
		cfg.Quotes.APIKey,
		cfg.Quotes.Timeout,
		cfg.Quotes.RequestsPerMinute,
	)
}

// ProvidePipeline creates the analysis pipeline orchestrator.
func ProvidePipeline(source domrepo.QuoteSource, tables domrepo.TableCache, m domrepo.Metrics) *usecase.AnalysisPipeline {
	return usecase.NewAnalysisPipeline(source, tables, m)
}

// ProvideHandler creates the Echo handler for the analysis API.
func ProvideHandler(l *applogger.Logger, pipeline *usecase.AnalysisPipeline) xhttp.Handler {
	return api.NewAnalysisHandler(l, pipeline)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, handler xhttp.Handler, cacheSvc pkgcache.Service, l *applogger.Logger) *server.App {
	return server.New(cfg, handler, cacheSvc, l)
}
