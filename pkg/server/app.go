package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"QuoteLens/pkg/cache"
	"QuoteLens/pkg/config"
	xhttp "QuoteLens/pkg/http"
	applogger "QuoteLens/pkg/logger"
)

// App encapsulates the application lifecycle: one HTTP server serving the
// analysis pipeline, a cache layer to close on the way out, and graceful
// shutdown on SIGINT/SIGTERM.
type App struct {
	cfg        *config.Config
	handler    xhttp.Handler
	cacheSvc   cache.Service
	httpServer *xhttp.Server
	logger     *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, handler xhttp.Handler, cacheSvc cache.Service, logger *applogger.Logger) *App {
	return &App{
		cfg:      cfg,
		handler:  handler,
		cacheSvc: cacheSvc,
		logger:   logger,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("analysis api up", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}
	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}
	a.logger.Info("shutdown complete")
	return nil
}
