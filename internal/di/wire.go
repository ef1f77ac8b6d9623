//go:build wireinject
// +build wireinject

package di

import (
	"QuoteLens/pkg/config"
	"QuoteLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCacheService,
		ProvideTableCache,
		ProvideQuoteSource,
		ProvidePipeline,
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
